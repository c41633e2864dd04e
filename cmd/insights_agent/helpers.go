package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-insights/internal/config"
)

// configDefaults are applied after the config file and CLI flags are merged
var configDefaults = config.Config{
	WindowDays:          30,
	LookbackDays:        180,
	BenchmarkWindowDays: 90,
	Concurrency:         4,
	LogLevel:            "info",
	LogFormat:           "console",
}

// loadCommandConfig loads the optional config file, validates it, and fills
// unset fields from the shared defaults
func loadCommandConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(configDefaults), nil
}

// resolveDatabaseURL fills the database URL from DATABASE_URL when no flag or
// config value was given
func resolveDatabaseURL(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	return nil
}

// parseRefDate parses a YYYY-MM-DD reference date, defaulting to now in UTC
func parseRefDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --ref-date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// parseRequiredUUID parses a UUID flag value, naming the flag in errors
func parseRequiredUUID(s, flag string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("%s is required", flag)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", flag, s, err)
	}
	return id, nil
}

// parseTenantID parses the required --tenant flag
func parseTenantID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("--tenant is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid tenant id %q: %w", s, err)
	}
	return id, nil
}
