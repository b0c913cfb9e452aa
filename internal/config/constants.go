// Package config contains everything related to configuration
package config

import "time"

const appDirName = "claude-usage"

const stateFileName = "claude-usage-state.json"

// Default values
const (
	defaultProxyURL       = "https://hal9000-claude-usage-proxy.onrender.com"
	defaultTimezone       = "Europe/Paris"
	defaultWeeklyBudget   = 625.0
	defaultAlertThreshold = 0.5
	defaultResetHour      = 21
	defaultRequestTimeout = 45 * time.Second

	// DefaultUSDToEUR is the display rate used when no live rate is available.
	DefaultUSDToEUR = 0.92
)
