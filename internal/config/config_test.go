package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at an empty temp dir so no
// real .env file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	for _, key := range []string{
		"CLAUDE_USAGE_PROXY_URL", "CLAUDE_USAGE_PROXY_TOKEN", "CLAUDE_USAGE_STATE_FILE",
		"CLAUDE_USAGE_WEEKLY_BUDGET", "CLAUDE_USAGE_ALERT_THRESHOLD", "CLAUDE_USAGE_RESET_HOUR",
		"CLAUDE_USAGE_TIMEZONE", "USD_TO_EUR", "CLAUDE_USAGE_DATABASE_PATH", "CLAUDE_USAGE_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_ENV_STRING", "test_value")

	if got := getEnvString("TEST_ENV_STRING", "default"); got != "test_value" {
		t.Errorf("getEnvString() = %q, want %q", got, "test_value")
	}
	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		want   float64
	}{
		{"Valid", "700.5", 700.5},
		{"Spaces", " 12 ", 12},
		{"Invalid", "lots", 625},
		{"Empty", "", 625},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_FLOAT", tt.envVal)
			if got := getEnvFloat("TEST_ENV_FLOAT", 625); got != tt.want {
				t.Errorf("getEnvFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "7")
	if got := getEnvInt("TEST_ENV_INT", 1); got != 7 {
		t.Errorf("getEnvInt() = %d, want 7", got)
	}
	t.Setenv("TEST_ENV_INT", "seven")
	if got := getEnvInt("TEST_ENV_INT", 1); got != 1 {
		t.Errorf("getEnvInt() = %d, want 1", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_ENV_BOOL", "true")
	if !getEnvBool("TEST_ENV_BOOL", false) {
		t.Error("getEnvBool() = false, want true")
	}
	t.Setenv("TEST_ENV_BOOL", "maybe")
	if getEnvBool("TEST_ENV_BOOL", false) {
		t.Error("getEnvBool() = true, want default false")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampHour(t *testing.T) {
	tests := []struct{ in, want int }{{-3, 0}, {0, 0}, {21, 21}, {23, 23}, {30, 23}}
	for _, tt := range tests {
		if got := clampHour(tt.in); got != tt.want {
			t.Errorf("clampHour(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := EnsureDir(""); err != nil {
		t.Error("EnsureDir(\"\") should not error")
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ProxyURL != defaultProxyURL {
		t.Errorf("ProxyURL = %q, want %q", cfg.ProxyURL, defaultProxyURL)
	}
	if cfg.WeeklyBudget != 625 || cfg.AlertThreshold != 0.5 || cfg.ResetHour != 21 {
		t.Errorf("budget config = %v/%v/%d, want 625/0.5/21", cfg.WeeklyBudget, cfg.AlertThreshold, cfg.ResetHour)
	}
	if cfg.Location == nil || cfg.Location.String() != "Europe/Paris" {
		t.Errorf("Location = %v, want Europe/Paris", cfg.Location)
	}
	if cfg.USDToEURFromEnv || cfg.USDToEUR != DefaultUSDToEUR {
		t.Errorf("USDToEUR = %v (fromEnv=%v), want fallback", cfg.USDToEUR, cfg.USDToEURFromEnv)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	wantState := filepath.Join(home, ".openclaw", "workspace", "memory", stateFileName)
	if cfg.StateFile != wantState {
		t.Errorf("StateFile = %q, want %q", cfg.StateFile, wantState)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CLAUDE_USAGE_PROXY_URL", "http://localhost:8080/")
	t.Setenv("CLAUDE_USAGE_WEEKLY_BUDGET", "1000")
	t.Setenv("CLAUDE_USAGE_RESET_HOUR", "99")
	t.Setenv("CLAUDE_USAGE_TIMEZONE", "America/New_York")
	t.Setenv("USD_TO_EUR", "0.85")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ProxyURL != "http://localhost:8080" {
		t.Errorf("ProxyURL = %q, want trailing slash trimmed", cfg.ProxyURL)
	}
	if cfg.WeeklyBudget != 1000 {
		t.Errorf("WeeklyBudget = %v, want 1000", cfg.WeeklyBudget)
	}
	if cfg.ResetHour != 23 {
		t.Errorf("ResetHour = %d, want clamped 23", cfg.ResetHour)
	}
	if !cfg.USDToEURFromEnv || cfg.USDToEUR != 0.85 {
		t.Errorf("USDToEUR = %v (fromEnv=%v), want 0.85 from env", cfg.USDToEUR, cfg.USDToEURFromEnv)
	}

	b := cfg.Budget()
	if b.WeeklyBudget != 1000 || b.ResetHour != 23 || b.Location.String() != "America/New_York" {
		t.Errorf("Budget() = %+v", b)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	isolate(t)
	t.Setenv("CLAUDE_USAGE_TIMEZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on an unknown timezone")
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	envPath := filepath.Join(tmpDir, ".env")
	content := "CLAUDE_USAGE_PROXY_TOKEN=env-token\nCLAUDE_USAGE_WEEKLY_BUDGET=300"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// godotenv does not override variables that are already set, even empty.
	os.Unsetenv("CLAUDE_USAGE_PROXY_TOKEN")
	os.Unsetenv("CLAUDE_USAGE_WEEKLY_BUDGET")
	t.Cleanup(func() {
		os.Unsetenv("CLAUDE_USAGE_PROXY_TOKEN")
		os.Unsetenv("CLAUDE_USAGE_WEEKLY_BUDGET")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ProxyToken != "env-token" {
		t.Errorf("ProxyToken = %q, want env-token", cfg.ProxyToken)
	}
	if cfg.WeeklyBudget != 300 {
		t.Errorf("WeeklyBudget = %v, want 300", cfg.WeeklyBudget)
	}
}
