package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings.
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DBPath string

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Bootstrap admin account created on first start
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables, with a .env file
// as an optional source.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Host:          getEnv("HOST", "0.0.0.0"),
		DBPath:        getEnv("DB_PATH", "trackmyscore.db"),
		JWTSecret:     getEnv("JWT_SECRET", "trackmyscore_secret_key"),
		JWTExpiration: 24 * time.Hour,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if ttl := getEnv("JWT_EXPIRATION", ""); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.JWTExpiration = d
		}
	}

	return cfg, nil
}

// getEnv returns the environment variable or the given default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
