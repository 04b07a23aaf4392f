// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/chitwiser/internal/models"
)

// Config holds the server settings.
type Config struct {
	Port        int
	MetricsPath string
	DBPath      string

	LogLevel  string
	LogFormat string

	JWTSecret string
	TokenTTL  time.Duration

	// NATSURL is optional; without it domain events are dropped.
	NATSURL           string
	NATSSubjectPrefix string

	// Bootstrap admin, created on startup if the phone is not registered.
	AdminName     string
	AdminPhone    string
	AdminPassword string

	DefaultPayoutMode models.PaymentMode
}

// Load reads the environment. Variables already set win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		MetricsPath:       getEnv("METRICS_PATH", "/metrics"),
		DBPath:            getEnv("DB_PATH", "./data/chitwiser.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "chitwiser"),
		AdminName:         getEnv("ADMIN_NAME", "Administrator"),
		AdminPhone:        os.Getenv("ADMIN_PHONE"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		DefaultPayoutMode: models.PaymentMode(getEnv("DEFAULT_PAYOUT_MODE", string(models.PaymentModeCash))),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnv("PORT", "8080")); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if !c.DefaultPayoutMode.Valid() {
		return fmt.Errorf("invalid DEFAULT_PAYOUT_MODE %q", c.DefaultPayoutMode)
	}
	if (c.AdminPhone == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_PHONE and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
