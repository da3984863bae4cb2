package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	SyncMaxResults     int64
	TokenCacheBackend  string // "memory" or "keyring"
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	syncMaxResults := int64(50)
	if raw := os.Getenv("SYNC_MAX_RESULTS"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			syncMaxResults = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "host=localhost user=postgres dbname=crmdesk port=5432 sslmode=disable"),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		SyncMaxResults:     syncMaxResults,
		TokenCacheBackend:  getEnv("TOKEN_CACHE_BACKEND", "memory"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
