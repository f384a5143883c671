package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"expense-tracker/internal/auth"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	// HTTP Server
	Port            string
	SecureCookie    bool
	ShutdownTimeout time.Duration

	// Database
	DBPath string

	// Sessions
	SessionTTL     time.Duration
	SessionCleanup string

	// Logging
	LogLevel  string
	LogFormat string

	// Bootstrap account, created when no user exists yet
	AdminEmail    string
	AdminPassword string
}

// Load reads .env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		SecureCookie:    getEnvBool("SECURE_COOKIE", false),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBPath: getEnv("DB_PATH", "expenses.db"),

		SessionTTL:     getEnvDuration("SESSION_TTL", 720*time.Hour),
		SessionCleanup: getEnv("SESSION_CLEANUP", "@hourly"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if _, err := cron.ParseStandard(c.SessionCleanup); err != nil {
		errors = append(errors, fmt.Sprintf("invalid session cleanup schedule '%s': %v", c.SessionCleanup, err))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errors = append(errors, "ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if len(c.AdminPassword) > auth.MaxPasswordBytes {
		errors = append(errors, fmt.Sprintf("ADMIN_PASSWORD cannot be longer than %d bytes", auth.MaxPasswordBytes))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
