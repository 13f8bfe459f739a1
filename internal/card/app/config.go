package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	CardsFile          string // Required-ish: path to the cards JSON document (default: ./cards.json)
	DatabaseFile       string // Optional: path to SQLite database file (default: ./tapcard.db)
	LegacyCountersFile string // Optional: old JSON counters document, imported once if present
	AssetsDir          string // Optional: photos/favicon directory served under /static/ (default: ./static)
	BaseURL            string // Optional: external base URL encoded into QR images (default: http://localhost:<port>)

	AdminPassword string // Optional: fallback credential, plain or pre-hashed (argon2id prefix)
	AdminResetKey string // Optional: secret enabling the password-reset flow
	SessionSecret string // Optional: HMAC key for session cookies; random per boot when unset
	SessionTTL    time.Duration

	Env                 string // Environment (dev, staging, prod) (default: dev)
	LogLevel            string // Log level (debug, info, warn, error) (default: info)
	LogFormat           string // Log format (json, text) (default: json)
	Port                int    // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration
}

func LoadConfig() Config {
	cfg := Config{
		CardsFile:          getEnvOrDefault("CARD_CARDS_FILE", "cards.json"),
		DatabaseFile:       getEnvOrDefault("CARD_DATABASE_FILE", "tapcard.db"),
		LegacyCountersFile: os.Getenv("CARD_LEGACY_COUNTERS_FILE"),
		AssetsDir:          getEnvOrDefault("CARD_ASSETS_DIR", "static"),
		BaseURL:            os.Getenv("CARD_BASE_URL"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminResetKey: os.Getenv("ADMIN_RESET_KEY"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
