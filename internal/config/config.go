package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the service.
type Config struct {
	HTTPPort    string
	DatabaseURL string
	LogLevel    string

	JWTSecret string
	TokenTTL  time.Duration

	// Telegram reminders are optional: leaving the token empty disables them.
	TelegramToken    string
	ReminderTime     string        // daily HH:MM, takes precedence when set
	ReminderInterval time.Duration // fallback periodic digest
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", "choreboard.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:         parseHours(os.Getenv("TOKEN_TTL_HOURS"), 72*time.Hour),
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		ReminderTime:     strings.TrimSpace(os.Getenv("REMINDER_TIME")),
		ReminderInterval: parseHours(os.Getenv("REMINDER_INTERVAL_HOURS"), 0),
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseHours(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return fallback
	}
	return hours
}
