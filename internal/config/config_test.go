package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PROD_ORIGINS", "HTTP_ADDR", "DB_DSN", "JWT_SECRET", "JWT_ACCESS_TOKEN_TTL",
		"BCRYPT_COST", "STAFF_USERNAME", "STAFF_PASSWORD", "RESORT_TIMEZONE",
		"WEEKDAY_DISCOUNT_ENABLED", "TRUST_MOBILE_PAYMENT_ON_SUBMIT", "CATALOG_FILE",
		"MEDIA_DIR", "KAFKA_BROKERS", "KAFKA_BOOKING_TOPIC",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.DBDSN)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "Asia/Manila", cfg.Location.String())
	assert.True(t, cfg.WeekdayDiscountEnabled)
	assert.True(t, cfg.TrustMobilePaymentOnSubmit)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "booking-events", cfg.KafkaBookingTopic)
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "1h")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("STAFF_USERNAME", "frontdesk")
	t.Setenv("STAFF_PASSWORD", "changeme123")
	t.Setenv("RESORT_TIMEZONE", "UTC")
	t.Setenv("WEEKDAY_DISCOUNT_ENABLED", "false")
	t.Setenv("TRUST_MOBILE_PAYMENT_ON_SUBMIT", "0")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "frontdesk", cfg.StaffUsername)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.WeekdayDiscountEnabled)
	assert.False(t, cfg.TrustMobilePaymentOnSubmit)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":    {},
		"bad ttl":           {"JWT_SECRET": "s", "JWT_ACCESS_TOKEN_TTL": "soon"},
		"bad cost":          {"JWT_SECRET": "s", "BCRYPT_COST": "high"},
		"half staff":        {"JWT_SECRET": "s", "STAFF_USERNAME": "frontdesk"},
		"bad timezone":      {"JWT_SECRET": "s", "RESORT_TIMEZONE": "Mars/Olympus"},
		"bad discount flag": {"JWT_SECRET": "s", "WEEKDAY_DISCOUNT_ENABLED": "maybe"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := fromEnv()
			assert.Error(t, err)
		})
	}
}
