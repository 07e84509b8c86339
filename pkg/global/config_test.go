package global

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocommerce.in/storefront/pkg/notify"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "STORAGE_BACKEND", "SESSION_TTL", "CHECKOUT_DELAY", "SIGNUP_FAILURE_RATE", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.CheckoutDelay)
	assert.Equal(t, 2500*time.Millisecond, cfg.SignupDelay)
	assert.InDelta(t, 0.1, cfg.SignupFailureRate, 1e-9)
	assert.Len(t, cfg.CORSOrigins, 2)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("CHECKOUT_DELAY", "0s")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("CORS_ORIGINS", " https://shop.example , ,https://admin.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Zero(t, cfg.CheckoutDelay)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSOrigins)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "STORAGE_BACKEND")

	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SIGNUP_FAILURE_RATE", "1.5")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "SIGNUP_FAILURE_RATE")
}

func TestResponses(t *testing.T) {
	ok := SuccessResponse(map[string]int{"n": 1}).WithNotifications([]notify.Notification{{Severity: notify.Info, Title: "hi"}})
	assert.True(t, ok.Success)
	assert.Len(t, ok.Notifications, 1)

	bad := ErrorResponse("nope", []ValidationError{{Field: "f", Message: "m", Code: "c"}})
	assert.False(t, bad.Success)
	assert.Equal(t, "nope", bad.Message)
}
