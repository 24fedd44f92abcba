package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./recruit.db)
	Timezone     string // Optional: IANA zone for created_at stamps (default: Africa/Blantyre)

	SessionTTL time.Duration // Optional: login session lifetime (default: 24h)
	BcryptCost int           // Optional: bcrypt work factor (default: bcrypt's own default)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Session cleanup interval (default: 1h)
}

func LoadConfig() Config {
	// Values already present in the environment win over .env entries.
	_ = godotenv.Load()

	return Config{
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "recruit.db"),
		Timezone:             getEnvOrDefault("TIMEZONE", "Africa/Blantyre"),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		BcryptCost:           getEnvIntOrDefault("BCRYPT_COST", 0),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Location resolves the configured timezone, falling back to UTC if the zone
// database does not know it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Accept bare integers as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
