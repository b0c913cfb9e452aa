package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/j-veylop/claude-usage/internal/logger"
	"github.com/j-veylop/claude-usage/internal/models"
)

var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	timestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 +0000 UTC",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InsertCheckRun journals one check cycle.
func (db *DB) InsertCheckRun(run *models.CheckRun) error {
	query := `
		INSERT INTO check_runs (
			run_id, timestamp, week_start, week_total, projection,
			protection_mode, alerts, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := run.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	alerts := run.Alerts
	if alerts == nil {
		alerts = []string{}
	}
	alertsJSON, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to encode alerts: %w", err)
	}

	result, err := db.ExecContext(context.Background(), query,
		run.RunID,
		timestamp.UTC().Format(timestampLayout),
		run.WeekStart,
		run.WeekTotal,
		run.Projection,
		run.ProtectionMode,
		string(alertsJSON),
		nullString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert check run: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		run.ID = id
	}

	return nil
}

// GetRecentCheckRuns returns the most recent check runs, newest first.
func (db *DB) GetRecentCheckRuns(limit int) ([]models.CheckRun, error) {
	query := `
		SELECT id, run_id, timestamp, week_start, week_total, projection,
			   protection_mode, alerts, error
		FROM check_runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query check runs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var runs []models.CheckRun
	for rows.Next() {
		var run models.CheckRun
		var ts string
		var weekStart, alerts, errStr sql.NullString

		err := rows.Scan(
			&run.ID,
			&run.RunID,
			&ts,
			&weekStart,
			&run.WeekTotal,
			&run.Projection,
			&run.ProtectionMode,
			&alerts,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check run: %w", err)
		}

		run.Timestamp, _ = parseTimeString(ts)
		run.WeekStart = weekStart.String
		run.Error = errStr.String
		if alerts.Valid && alerts.String != "" {
			if err := json.Unmarshal([]byte(alerts.String), &run.Alerts); err != nil {
				logger.Warn("failed to decode journaled alerts", "run_id", run.RunID, "error", err)
			}
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpsertDailyCosts archives the fetched series. Later fetches of the same
// date replace earlier ones since the provider revises recent days.
func (db *DB) UpsertDailyCosts(series []models.DailyCost) error {
	if len(series) == 0 {
		return nil
	}

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(context.Background(), `
		INSERT INTO daily_costs (date, cost, tokens_input, tokens_output, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			cost = excluded.cost,
			tokens_input = excluded.tokens_input,
			tokens_output = excluded.tokens_output,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare daily cost upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(timestampLayout)
	for _, day := range mergeByDate(series) {
		if _, err := stmt.ExecContext(context.Background(),
			day.Date, day.Cost, day.TokensInput, day.TokensOutput, now,
		); err != nil {
			return fmt.Errorf("failed to upsert daily cost %s: %w", day.Date, err)
		}
	}

	return tx.Commit()
}

// GetDailyCosts returns archived days in [from, to), oldest first.
func (db *DB) GetDailyCosts(from, to string) ([]models.DailyCost, error) {
	query := `
		SELECT date, cost, tokens_input, tokens_output
		FROM daily_costs
		WHERE date >= ? AND date < ?
		ORDER BY date ASC
	`

	rows, err := db.QueryContext(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily costs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var days []models.DailyCost
	for rows.Next() {
		var d models.DailyCost
		if err := rows.Scan(&d.Date, &d.Cost, &d.TokensInput, &d.TokensOutput); err != nil {
			return nil, fmt.Errorf("failed to scan daily cost: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// mergeByDate sums entries sharing a date, keeping first-seen order.
func mergeByDate(series []models.DailyCost) []models.DailyCost {
	index := make(map[string]int, len(series))
	merged := make([]models.DailyCost, 0, len(series))
	for _, d := range series {
		if i, ok := index[d.Date]; ok {
			merged[i].Cost += d.Cost
			merged[i].TokensInput += d.TokensInput
			merged[i].TokensOutput += d.TokensOutput
			continue
		}
		index[d.Date] = len(merged)
		merged = append(merged, d)
	}
	return merged
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
