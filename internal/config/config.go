// Package config manages application configuration
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"

	// Database
	DatabaseURL string

	// Security
	SecretKey string // For JWT signing

	// Session settings
	SessionDuration time.Duration

	// Import limits
	MaxImportBytes int64
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port:            getEnv("OVENBOOK_PORT", "8080"),
		Environment:     getEnv("OVENBOOK_ENV", "development"),
		DatabaseURL:     getEnv("OVENBOOK_DATABASE_URL", "ovenbook.db"),
		SecretKey:       getEnv("OVENBOOK_SECRET_KEY", "dev-secret-key-change-in-production"),
		SessionDuration: getDurationEnv("OVENBOOK_SESSION_DURATION", 24*time.Hour),
		MaxImportBytes:  getInt64Env("OVENBOOK_MAX_IMPORT_BYTES", 10<<20),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
