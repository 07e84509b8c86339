package global

import (
	"fmt"
	"time"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the storefront runtime configuration, read from the environment after .env is loaded.
type Config struct {
	Port           string
	Env            string
	StorageBackend string
	RedisAddress   string
	RedisPassword  string
	StorageTTL     time.Duration

	MongoURI      string
	MongoDatabase string
	CatalogFile   string

	SessionTTL        time.Duration
	CheckoutDelay     time.Duration
	SignupDelay       time.Duration
	SignupFailureRate float64
	SearchDebounce    time.Duration

	CORSOrigins []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           GetEnvOrDefault("PORT", "8000"),
		Env:            GetEnvOrDefault("ENV", "development"),
		StorageBackend: GetEnvOrDefault("STORAGE_BACKEND", StorageMemory),
		RedisAddress:   GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  GetEnvOrDefault("REDIS_PASSWORD", ""),
		StorageTTL:     GetEnvDuration("STORAGE_TTL", 30*24*time.Hour),

		MongoURI:      GetEnvOrDefault("MONGODB_URI", ""),
		MongoDatabase: GetEnvOrDefault("MONGODB_DATABASE", "neocommerce"),
		CatalogFile:   GetEnvOrDefault("CATALOG_FILE", ""),

		SessionTTL:        GetEnvDuration("SESSION_TTL", 24*time.Hour),
		CheckoutDelay:     GetEnvDuration("CHECKOUT_DELAY", 1500*time.Millisecond),
		SignupDelay:       GetEnvDuration("SIGNUP_DELAY", 2500*time.Millisecond),
		SignupFailureRate: GetEnvFloat("SIGNUP_FAILURE_RATE", 0.1),
		SearchDebounce:    GetEnvDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),

		CORSOrigins: GetEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	if cfg.StorageBackend != StorageMemory && cfg.StorageBackend != StorageRedis {
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %q or %q)", cfg.StorageBackend, StorageMemory, StorageRedis)
	}
	if cfg.SignupFailureRate < 0 || cfg.SignupFailureRate > 1 {
		return nil, fmt.Errorf("SIGNUP_FAILURE_RATE must be between 0 and 1, got %v", cfg.SignupFailureRate)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
