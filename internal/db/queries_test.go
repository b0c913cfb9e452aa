package db

import (
	"testing"
	"time"

	"github.com/j-veylop/claude-usage/internal/models"
)

func TestInsertCheckRun(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	run := &models.CheckRun{
		RunID:          "run-1",
		WeekStart:      "2026-02-16",
		WeekTotal:      400,
		Projection:     1400,
		ProtectionMode: true,
		Alerts:         []string{"budget_50: $400.00/$625.00", "projection: $1400.00 > $625.00"},
	}

	if err := db.InsertCheckRun(run); err != nil {
		t.Fatalf("InsertCheckRun() failed: %v", err)
	}
	if run.ID == 0 {
		t.Error("InsertCheckRun() should set ID")
	}
}

func TestInsertCheckRun_DuplicateRunID(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.InsertCheckRun(&models.CheckRun{RunID: "same"}); err != nil {
		t.Fatalf("InsertCheckRun() failed: %v", err)
	}
	if err := db.InsertCheckRun(&models.CheckRun{RunID: "same"}); err == nil {
		t.Error("expected a uniqueness error for a repeated run id")
	}
}

func TestGetRecentCheckRuns(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)
	runs := []*models.CheckRun{
		{RunID: "a", Timestamp: base.Add(-2 * time.Hour), WeekStart: "2026-02-16", WeekTotal: 100},
		{RunID: "b", Timestamp: base.Add(-1 * time.Hour), Error: "Proxy HTTP 502: Bad Gateway"},
		{RunID: "c", Timestamp: base, WeekStart: "2026-02-16", WeekTotal: 195, ProtectionMode: true,
			Alerts: []string{"anomaly: J-1 $95.00 > 2x avg $40.00"}},
	}
	for _, r := range runs {
		if err := db.InsertCheckRun(r); err != nil {
			t.Fatalf("InsertCheckRun() failed: %v", err)
		}
	}

	got, err := db.GetRecentCheckRuns(2)
	if err != nil {
		t.Fatalf("GetRecentCheckRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}

	if got[0].RunID != "c" || got[1].RunID != "b" {
		t.Errorf("order = %s,%s, want c,b", got[0].RunID, got[1].RunID)
	}
	if !got[0].Timestamp.Equal(base) {
		t.Errorf("Timestamp = %v, want %v", got[0].Timestamp, base)
	}
	if !got[0].ProtectionMode || got[0].WeekTotal != 195 || got[0].WeekStart != "2026-02-16" {
		t.Errorf("run c = %+v", got[0])
	}
	if len(got[0].Alerts) != 1 || got[0].Alerts[0] != "anomaly: J-1 $95.00 > 2x avg $40.00" {
		t.Errorf("Alerts = %v", got[0].Alerts)
	}
	if !got[1].Failed() || got[1].Error != "Proxy HTTP 502: Bad Gateway" {
		t.Errorf("run b should be a failure, got %+v", got[1])
	}
	if got[1].WeekStart != "" {
		t.Errorf("failed run WeekStart = %q, want empty", got[1].WeekStart)
	}
}

func TestGetRecentCheckRuns_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	got, err := db.GetRecentCheckRuns(10)
	if err != nil {
		t.Fatalf("GetRecentCheckRuns() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d runs, want 0", len(got))
	}
}

func TestUpsertDailyCosts(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	first := []models.DailyCost{
		{Date: "2026-02-15", Cost: 70},
		{Date: "2026-02-16", Cost: 90, TokensInput: 100, TokensOutput: 10},
	}
	if err := db.UpsertDailyCosts(first); err != nil {
		t.Fatalf("UpsertDailyCosts() failed: %v", err)
	}

	// The provider revised 02-16 and reported 02-17 twice.
	second := []models.DailyCost{
		{Date: "2026-02-16", Cost: 100, TokensInput: 120, TokensOutput: 12},
		{Date: "2026-02-17", Cost: 50},
		{Date: "2026-02-17", Cost: 45},
	}
	if err := db.UpsertDailyCosts(second); err != nil {
		t.Fatalf("UpsertDailyCosts() failed: %v", err)
	}

	got, err := db.GetDailyCosts("2026-02-15", "2026-02-18")
	if err != nil {
		t.Fatalf("GetDailyCosts() failed: %v", err)
	}

	want := []models.DailyCost{
		{Date: "2026-02-15", Cost: 70},
		{Date: "2026-02-16", Cost: 100, TokensInput: 120, TokensOutput: 12},
		{Date: "2026-02-17", Cost: 95},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d days, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGetDailyCosts_UpperBoundExclusive(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.UpsertDailyCosts([]models.DailyCost{{Date: "2026-02-17", Cost: 1}, {Date: "2026-02-18", Cost: 2}}); err != nil {
		t.Fatalf("UpsertDailyCosts() failed: %v", err)
	}

	got, err := db.GetDailyCosts("2026-02-17", "2026-02-18")
	if err != nil {
		t.Fatalf("GetDailyCosts() failed: %v", err)
	}
	if len(got) != 1 || got[0].Date != "2026-02-17" {
		t.Errorf("got %+v, want only 2026-02-17", got)
	}
}

func TestUpsertDailyCosts_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.UpsertDailyCosts(nil); err != nil {
		t.Errorf("UpsertDailyCosts(nil) = %v", err)
	}
}

func TestParseTimeString(t *testing.T) {
	tests := []string{
		"2026-02-17 21:00:00",
		"2026-02-17T21:00:00Z",
		"2026-02-17 21:00:00 +0000 UTC",
	}
	want := time.Date(2026, 2, 17, 21, 0, 0, 0, time.UTC)
	for _, in := range tests {
		got, ok := parseTimeString(in)
		if !ok || !got.Equal(want) {
			t.Errorf("parseTimeString(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := parseTimeString("yesterday"); ok {
		t.Error("parseTimeString should reject garbage")
	}
}
