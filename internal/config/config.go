// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/joho/godotenv"

	"github.com/j-veylop/claude-usage/internal/budget"
)

// Config holds the application configuration.
type Config struct {
	Location          *time.Location
	ProxyURL          string
	ProxyToken        string
	StateFile         string
	DatabasePath      string
	LogFile           string
	LogLevel          string
	Timezone          string
	DiscordWebhookURL string
	WeeklyBudget      float64
	AlertThreshold    float64
	USDToEUR          float64
	RequestTimeout    time.Duration
	ResetHour         int
	// USDToEURFromEnv is true when USD_TO_EUR was set explicitly, in which
	// case no live rate is fetched.
	USDToEURFromEnv bool
	DesktopNotify   bool
}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		ProxyURL:          strings.TrimRight(getEnvString("CLAUDE_USAGE_PROXY_URL", defaultProxyURL), "/"),
		ProxyToken:        getEnvString("CLAUDE_USAGE_PROXY_TOKEN", ""),
		StateFile:         getEnvString("CLAUDE_USAGE_STATE_FILE", getDefaultStateFile()),
		DatabasePath:      getEnvString("CLAUDE_USAGE_DATABASE_PATH", getDefaultDatabasePath()),
		LogFile:           getEnvString("CLAUDE_USAGE_LOG_FILE", getDefaultLogFile()),
		LogLevel:          getEnvString("CLAUDE_USAGE_LOG_LEVEL", "info"),
		Timezone:          getEnvString("CLAUDE_USAGE_TIMEZONE", defaultTimezone),
		DiscordWebhookURL: getEnvString("CLAUDE_USAGE_DISCORD_WEBHOOK", ""),
		WeeklyBudget:      getEnvFloat("CLAUDE_USAGE_WEEKLY_BUDGET", defaultWeeklyBudget),
		AlertThreshold:    getEnvFloat("CLAUDE_USAGE_ALERT_THRESHOLD", defaultAlertThreshold),
		USDToEUR:          getEnvFloat("USD_TO_EUR", DefaultUSDToEUR),
		USDToEURFromEnv:   os.Getenv("USD_TO_EUR") != "",
		RequestTimeout:    getEnvDuration("CLAUDE_USAGE_REQUEST_TIMEOUT", defaultRequestTimeout),
		ResetHour:         clampHour(getEnvInt("CLAUDE_USAGE_RESET_HOUR", defaultResetHour)),
		DesktopNotify:     getEnvBool("CLAUDE_USAGE_DESKTOP_NOTIFY", false),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid CLAUDE_USAGE_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Budget returns the immutable budget configuration for the calculation engine.
func (c *Config) Budget() budget.Config {
	return budget.Config{
		Location:       c.Location,
		WeeklyBudget:   c.WeeklyBudget,
		AlertThreshold: c.AlertThreshold,
		ResetHour:      c.ResetHour,
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, "."+appDirName, ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
	}

	return paths
}

// getDefaultStateFile returns the default path of the JSON state file.
func getDefaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return stateFileName
	}
	return filepath.Join(home, ".openclaw", "workspace", "memory", stateFileName)
}

// getDefaultDatabasePath returns the default path for the SQLite check journal.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".config", appDirName, "history.db")
}

// getDefaultLogFile returns the default path for the rotating log file.
func getDefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName, "logs", appDirName+".log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
