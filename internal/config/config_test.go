package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"APP_ENV": "test", "APP_PORT": "8080", "DB_USER": "root", "DB_HOST": "127.0.0.1",
		"DB_PORT": "3306", "DB_NAME": "cowork", "JWT_SECRET": "s3cret",
		"ACCESS_TOKEN_TTL_MIN": "15", "REFRESH_TOKEN_TTL_DAYS": "7", "BCRYPT_COST": "10",
	} {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, 60, cfg.SlotWidthMinutes)
	assert.Equal(t, "reservation.events", cfg.Broker.ReservationQueue)
	assert.Equal(t, "payment.events", cfg.Broker.PaymentQueue)
	assert.Equal(t, 5*time.Second, cfg.Broker.RetryDelay)
	assert.Equal(t, 20, cfg.Broker.MaxRedeliveries)
	assert.Equal(t, "0 */5 * * * *", cfg.Scheduler.Spec)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Cache.Methods["GET"])
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SPACE_TIMEZONE", "Europe/Rome")
	t.Setenv("SLOT_WIDTH_MINUTES", "30")
	t.Setenv("BROKER_ENABLED", "off")
	t.Setenv("RABBITMQ_URL", "amqp://u:p@mq:5672/")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_METHODS", "get, head")

	cfg := Load()
	require.NotNil(t, cfg.Timezone)
	assert.Equal(t, "Europe/Rome", cfg.Timezone.String())
	assert.Equal(t, 30, cfg.SlotWidthMinutes)
	assert.False(t, cfg.Broker.Enabled)
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.Broker.URL)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.True(t, cfg.Cache.Methods["HEAD"])
}

func TestRateLimitNormalized(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "Yes")
	t.Setenv("X_INT", "nope")
	t.Setenv("X_LIST", " a, ,b ")
	assert.True(t, envBool("X_BOOL", false))
	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.Equal(t, []string{"a", "b"}, envList("X_LIST", ""))
	assert.Equal(t, time.Minute, envDur("X_MISSING", time.Minute))
}
