package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	// Embedded zone database so RESORT_TIMEZONE resolves on slim images.
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	StaffUsername string
	StaffPassword string

	Location                   *time.Location
	WeekdayDiscountEnabled     bool
	TrustMobilePaymentOnSubmit bool
	CatalogFile                string
	MediaDir                   string

	KafkaBrokers      []string
	KafkaBookingTopic string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	var err error
	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is optional; without it bookings live in memory.
	cfg.DBDSN = os.Getenv("DB_DSN")

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Staff account is seeded only when both values are set.
	cfg.StaffUsername = os.Getenv("STAFF_USERNAME")
	cfg.StaffPassword = os.Getenv("STAFF_PASSWORD")
	if (cfg.StaffUsername == "") != (cfg.StaffPassword == "") {
		return nil, fmt.Errorf("STAFF_USERNAME and STAFF_PASSWORD must be set together")
	}

	// Weekday discounts are decided on the resort's wall clock.
	tz := getEnv("RESORT_TIMEZONE", "Asia/Manila")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid RESORT_TIMEZONE: %w", err)
	}

	cfg.WeekdayDiscountEnabled, err = getEnvAsBool("WEEKDAY_DISCOUNT_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKDAY_DISCOUNT_ENABLED: %w", err)
	}

	cfg.TrustMobilePaymentOnSubmit, err = getEnvAsBool("TRUST_MOBILE_PAYMENT_ON_SUBMIT", true)
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_MOBILE_PAYMENT_ON_SUBMIT: %w", err)
	}

	cfg.CatalogFile = getEnv("CATALOG_FILE", "")
	cfg.MediaDir = getEnv("MEDIA_DIR", "./media")

	cfg.KafkaBrokers = getEnvAsList("KAFKA_BROKERS")
	cfg.KafkaBookingTopic = getEnv("KAFKA_BOOKING_TOPIC", "booking-events")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set and non-empty,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsList splits a comma-separated variable, dropping empty entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
