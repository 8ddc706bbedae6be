// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob the binary reads. Values come from the
// environment; a .env file in the working directory fills gaps during
// development.
type Config struct {
	// Addr is the listen address of the edge API ("host:port").
	Addr string

	// SQLitePath is the catalog database file. Ignored when DatabaseURL
	// is set.
	SQLitePath string

	// DatabaseURL switches persistence to Postgres when non-empty.
	DatabaseURL string

	// LeadDays is added to today for the baseline delivery estimate.
	LeadDays int

	// Timezone names the store's calendar location.
	Timezone string

	// APIBaseURL is where widget commands reach the edge API.
	APIBaseURL string

	// RetryInterval paces the widget's fetch retries.
	RetryInterval time.Duration

	// LogLevel selects zap's level: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment. Missing values fall
// back to development defaults.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getenv("OTODOKE_ADDR", ":8700"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Timezone:    getenv("OTODOKE_TZ", "Asia/Tokyo"),
		APIBaseURL:  getenv("OTODOKE_API_URL", "http://localhost:8700"),
		LogLevel:    getenv("OTODOKE_LOG_LEVEL", "info"),
	}

	cfg.SQLitePath = os.Getenv("OTODOKE_DB")
	if cfg.SQLitePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.SQLitePath = filepath.Join(home, ".otodoke", "otodoke.db")
	}

	leadDays, err := intEnv("OTODOKE_LEAD_DAYS", 3)
	if err != nil {
		return nil, err
	}
	cfg.LeadDays = leadDays

	retrySecs, err := intEnv("OTODOKE_RETRY_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	cfg.RetryInterval = time.Duration(retrySecs) * time.Second

	return cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}
