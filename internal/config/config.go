package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	TokenDuration    time.Duration
	ReminderAt       string // HH:MM daily digest; empty falls back to the interval
	ReminderInterval time.Duration
	ReminderWindow   time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:             strings.TrimSpace(getEnv("ADDR", ":8080")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenDuration:    getEnvAsDuration("JWT_TOKEN_DURATION", 24*time.Hour),
		ReminderAt:       strings.TrimSpace(os.Getenv("REMINDER_AT")),
		ReminderInterval: parseIntervalHours(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_HOURS"))),
		ReminderWindow:   time.Duration(getEnvAsInt("REMINDER_WINDOW_HOURS", 48)) * time.Hour,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskboard.db"
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

// parseIntervalHours converts an hour count into a duration, zero when unset
// or invalid.
func parseIntervalHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(raw); err == nil && duration > 0 {
		return duration
	}
	return defaultValue
}
