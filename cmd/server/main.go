package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/resort-booking-backend/internal/app"
	"github.com/nekogravitycat/resort-booking-backend/internal/config"
	"github.com/nekogravitycat/resort-booking-backend/internal/db"
	"github.com/nekogravitycat/resort-booking-backend/internal/events"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB (optional)
	var pool *pgxpool.Pool
	if cfg.DBDSN != "" {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("failed to migrate db: %v", err)
		}
	}

	// Booking events (optional)
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
		log.Printf("publishing booking events to %s on %v", cfg.KafkaBookingTopic, cfg.KafkaBrokers)
	} else {
		log.Println("no kafka brokers configured, booking events are dropped")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("failed to close event publisher: %v", err)
		}
	}()

	container, err := app.NewContainer(ctx, app.Config{
		IsProduction:               cfg.IsProduction,
		ProdOrigins:                cfg.ProdOrigins,
		DBPool:                     pool,
		JWTSecret:                  cfg.JWTSecret,
		JWTTTL:                     cfg.JWTAccessTokenTTL,
		BcryptCost:                 cfg.BcryptCost,
		StaffUsername:              cfg.StaffUsername,
		StaffPassword:              cfg.StaffPassword,
		Location:                   cfg.Location,
		WeekdayDiscountEnabled:     cfg.WeekdayDiscountEnabled,
		TrustMobilePaymentOnSubmit: cfg.TrustMobilePaymentOnSubmit,
		CatalogFile:                cfg.CatalogFile,
		MediaDir:                   cfg.MediaDir,
		Publisher:                  publisher,
	})
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
