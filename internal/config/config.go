// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, rate limiting, turn-log retention, and archive settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir    string        // Data directory for the SQLite turn log
	TurnLogTTL time.Duration // Retention window for turn-log rows (default: 30 days)

	// Log Shipping
	BetterstackToken    string // Better Stack source token (empty = stdout only)
	BetterstackEndpoint string // Better Stack ingest endpoint override

	// Error Reporting
	SentryToken       string // Better Stack Errors token (empty = disabled)
	SentryHost        string // Better Stack Errors ingesting host
	SentryEnvironment string // Sentry environment tag (default: "production")

	// Archive Configuration (S3-compatible object storage)
	ArchiveEndpoint  string // S3 endpoint URL (empty = archiving disabled)
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchiveBucket    string
	ArchivePrefix    string // Object key prefix (default: "turnlog")

	// Webhook Configuration (embedded)
	Webhook WebhookConfig
}

// WebhookConfig holds webhook-specific configuration
type WebhookConfig struct {
	// Timeouts
	Timeout time.Duration // Timeout for webhook turn processing (see config/timeouts.go)

	// Rate Limits (Token Bucket Algorithm)
	ConvRateLimitBurst        float64 // Maximum burst tokens per conversation (default: 15)
	ConvRateLimitRefillPerSec float64 // Tokens refilled per second (default: 0.5 = 1 per 2s)

	GlobalRateLimitRPS float64 // Global rate limit in requests per second (default: 100)

	// Payload Constraints
	MaxBodyBytes int64 // Maximum webhook request body size (default: 64 KiB)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Metrics Authentication
		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		// Server Configuration
		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", GracefulShutdown),

		// Data Configuration
		DataDir:    getEnv("DATA_DIR", getDefaultDataDir()),
		TurnLogTTL: getDurationEnv("TURN_LOG_TTL", 720*time.Hour), // 30 days

		// Log Shipping
		BetterstackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterstackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),

		// Error Reporting
		SentryToken:       getEnv("SENTRY_TOKEN", ""),
		SentryHost:        getEnv("SENTRY_HOST", "errors.betterstack.com"),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),

		// Archive Configuration
		ArchiveEndpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
		ArchiveAccessKey: getEnv("ARCHIVE_ACCESS_KEY_ID", ""),
		ArchiveSecretKey: getEnv("ARCHIVE_SECRET_ACCESS_KEY", ""),
		ArchiveBucket:    getEnv("ARCHIVE_BUCKET", ""),
		ArchivePrefix:    getEnv("ARCHIVE_PREFIX", "turnlog"),

		// Webhook Configuration
		Webhook: WebhookConfig{
			Timeout:                   getDurationEnv("WEBHOOK_TIMEOUT", WebhookProcessing),
			ConvRateLimitBurst:        getFloatEnv("CONV_RATE_LIMIT_BURST", 15.0),
			ConvRateLimitRefillPerSec: getFloatEnv("CONV_RATE_LIMIT_REFILL_PER_SEC", 0.5), // 1 per 2s
			GlobalRateLimitRPS:        getFloatEnv("GLOBAL_RATE_LIMIT_RPS", 100.0),
			MaxBodyBytes:              int64(getIntEnv("MAX_BODY_BYTES", 64*1024)),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.TurnLogTTL <= 0 {
		errs = append(errs, fmt.Errorf("TURN_LOG_TTL must be positive, got %v", c.TurnLogTTL))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}
	if c.ArchiveEndpoint != "" {
		if c.ArchiveAccessKey == "" {
			errs = append(errs, errors.New("ARCHIVE_ACCESS_KEY_ID is required when ARCHIVE_ENDPOINT is set"))
		}
		if c.ArchiveSecretKey == "" {
			errs = append(errs, errors.New("ARCHIVE_SECRET_ACCESS_KEY is required when ARCHIVE_ENDPOINT is set"))
		}
		if c.ArchiveBucket == "" {
			errs = append(errs, errors.New("ARCHIVE_BUCKET is required when ARCHIVE_ENDPOINT is set"))
		}
	}
	if err := c.Webhook.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("webhook config: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks webhook configuration values
func (c *WebhookConfig) Validate() error {
	var errs []error

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("WEBHOOK_TIMEOUT must be positive, got %v", c.Timeout))
	}
	if c.ConvRateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("CONV_RATE_LIMIT_BURST must be positive, got %v", c.ConvRateLimitBurst))
	}
	if c.ConvRateLimitRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("CONV_RATE_LIMIT_REFILL_PER_SEC must be positive, got %v", c.ConvRateLimitRefillPerSec))
	}
	if c.GlobalRateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("GLOBAL_RATE_LIMIT_RPS must be positive, got %v", c.GlobalRateLimitRPS))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite turn-log database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "turnlog.db")
}

// ArchiveEnabled returns true if object-storage archiving is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveEndpoint != ""
}
