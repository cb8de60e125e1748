package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/resort-booking-backend/internal/accommodation"
	"github.com/nekogravitycat/resort-booking-backend/internal/api"
	"github.com/nekogravitycat/resort-booking-backend/internal/auth"
	"github.com/nekogravitycat/resort-booking-backend/internal/booking"
	"github.com/nekogravitycat/resort-booking-backend/internal/events"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/resort-booking-backend/internal/pricing"
	"github.com/nekogravitycat/resort-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	// DBPool is optional. Without it bookings and accounts are kept in memory.
	DBPool     *pgxpool.Pool
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	StaffUsername string
	StaffPassword string

	Location                   *time.Location
	WeekdayDiscountEnabled     bool
	TrustMobilePaymentOnSubmit bool
	CatalogFile                string
	MediaDir                   string

	// Publisher receives booking events. Nil disables publishing.
	Publisher events.Publisher
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	UserService    user.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Repositories
	var (
		userRepo    user.Repository
		bookingRepo booking.Repository
	)
	if cfg.DBPool != nil {
		userRepo = user.NewPgxRepository(cfg.DBPool)
		bookingRepo = booking.NewPgxRepository(cfg.DBPool)
	} else {
		log.Println("no database configured, using in-memory storage")
		userRepo = user.NewMemoryRepository()
		bookingRepo = booking.NewMemoryRepository()
	}

	// User Module
	userService := user.NewService(userRepo, passwordHasher)
	if cfg.StaffUsername != "" {
		if _, err := userService.EnsureStaff(ctx, cfg.StaffUsername, cfg.StaffPassword); err != nil {
			return nil, fmt.Errorf("failed to seed staff account: %w", err)
		}
		log.Printf("staff account %q ready", cfg.StaffUsername)
	}

	// Accommodation Module
	catalog, err := accommodation.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	media, err := storage.NewLocalStorage(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open media dir: %w", err)
	}

	// Pricing Module
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	calculator := pricing.NewCalculator(catalog, pricing.Policy{WeekdayDiscount: cfg.WeekdayDiscountEnabled}, location)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, calculator, booking.Policy{
		TrustMobilePaymentOnSubmit: cfg.TrustMobilePaymentOnSubmit,
	})
	if cfg.Publisher != nil {
		bookingService = events.NewNotifyingService(bookingService, cfg.Publisher)
	}

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		BookingService: bookingService,
		Catalog:        catalog,
		Calculator:     calculator,
		Media:          media,
		ImageProcessor: storage.NewImageProcessor(),
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		UserService:    userService,
		BookingService: bookingService,
	}, nil
}
