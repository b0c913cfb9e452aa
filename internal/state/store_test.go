package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/claude-usage/internal/models"
)

func TestLoad_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	st := store.Load()
	if st.Budget.WeeklyLimit != 625 || st.WeeklyResetDay != "monday" {
		t.Errorf("Load() = %+v, want defaults", st)
	}
	if st.Error != nil || st.ProtectionMode {
		t.Error("default state should have no error and protection off")
	}
	if st.Alerts == nil || len(st.Alerts) != 0 {
		t.Errorf("Alerts = %v, want empty slice", st.Alerts)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	st := NewFileStore(path).Load()
	if st.Budget.WeeklyLimit != 625 || st.LastCheck != 0 {
		t.Errorf("Load() = %+v, want defaults on corrupt file", st)
	}
}

func TestLoad_PerFieldDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"lastCheck": 42, "budget": {"weekly_limit": 700}, "alerts": null, "unknown_field": true}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	st := NewFileStore(path).Load()

	if st.LastCheck != 42 {
		t.Errorf("LastCheck = %d, want 42", st.LastCheck)
	}
	if st.Budget.WeeklyLimit != 700 {
		t.Errorf("WeeklyLimit = %v, want 700", st.Budget.WeeklyLimit)
	}
	if st.Budget.AlertThreshold != 0.5 {
		t.Errorf("AlertThreshold = %v, want nested default 0.5", st.Budget.AlertThreshold)
	}
	if st.WeeklyResetHour != 21 {
		t.Errorf("WeeklyResetHour = %d, want default 21", st.WeeklyResetHour)
	}
	if st.Alerts == nil {
		t.Error("null alerts should normalise to an empty slice")
	}
	if st.Version != models.StateVersion {
		t.Errorf("Version = %d, want migrated to %d", st.Version, models.StateVersion)
	}
}

func TestParse_InvalidResetHour(t *testing.T) {
	st, err := Parse([]byte(`{"weekly_reset_hour": 42, "weekly_reset_day": ""}`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if st.WeeklyResetHour != 21 || st.WeeklyResetDay != "monday" {
		t.Errorf("reset = %s/%d, want monday/21", st.WeeklyResetDay, st.WeeklyResetHour)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	store := NewFileStore(path)

	msg := "Proxy HTTP 502: Bad Gateway"
	st := models.DefaultState()
	st.LastCheck = 1771336800000
	st.ProtectionMode = true
	st.CurrentWeek = models.WeekInfo{StartDate: "2026-02-16", EndDate: "2026-02-23", TotalCost: 195, Projection: 682.5, Pct: "31.2"}
	st.DailyCosts7d = []models.DailyCost{{Date: "2026-02-16", Cost: 100, TokensInput: 10, TokensOutput: 5}}
	st.Alerts = []string{"budget_50: $400.00/$625.00"}
	st.Error = &msg

	if err := store.Save(st); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got := store.Load()
	if got.LastCheck != st.LastCheck || !got.ProtectionMode || got.CurrentWeek != st.CurrentWeek {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.ErrorMessage() != msg {
		t.Errorf("Error = %q, want %q", got.ErrorMessage(), msg)
	}
	if len(got.DailyCosts7d) != 1 || got.DailyCosts7d[0] != st.DailyCosts7d[0] {
		t.Errorf("DailyCosts7d = %+v", got.DailyCosts7d)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain after save")
	}
}

func TestSave_TrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := NewFileStore(path).Save(models.DefaultState()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Errorf("state file should end with a newline, got %q", data[len(data)-5:])
	}
	if !strings.Contains(string(data), `"error": null`) {
		t.Error("error field should be written as null")
	}
}
