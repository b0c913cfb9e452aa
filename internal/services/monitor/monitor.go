// Package monitor runs the check cycle: fetch the spend series, compute the
// week's metrics and alerts, and persist the new state.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/claude-usage/internal/budget"
	"github.com/j-veylop/claude-usage/internal/logger"
	"github.com/j-veylop/claude-usage/internal/models"
	"github.com/j-veylop/claude-usage/internal/notify"
	"github.com/j-veylop/claude-usage/internal/services/proxy"
	"github.com/j-veylop/claude-usage/internal/state"
)

const (
	failureTitle    = "Claude Usage Check Failed"
	protectionTitle = "Claude Usage Protection Enabled"
)

// Fetcher returns the daily spend series for [startDate, endDate).
type Fetcher interface {
	FetchSeries(ctx context.Context, startDate, endDate string) ([]models.DailyCost, error)
}

// Journal records check runs and archives fetched days.
type Journal interface {
	InsertCheckRun(run *models.CheckRun) error
	UpsertDailyCosts(series []models.DailyCost) error
}

// Monitor drives check cycles and protection mode changes.
type Monitor struct {
	fetcher  Fetcher
	store    state.Store
	journal  Journal
	notifier notify.Notifier
	nowFunc  func() time.Time
	newRunID func() string
	cfg      budget.Config
}

// Option configures Monitor.
type Option func(*Monitor)

// WithFetcher sets the series source.
func WithFetcher(f Fetcher) Option {
	return func(m *Monitor) {
		m.fetcher = f
	}
}

// WithStore sets the state store.
func WithStore(s state.Store) Option {
	return func(m *Monitor) {
		m.store = s
	}
}

// WithJournal sets the run journal. Without one, runs are not recorded.
func WithJournal(j Journal) Option {
	return func(m *Monitor) {
		m.journal = j
	}
}

// WithNotifier sets the notifier used for failures and protection changes.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Monitor) {
		m.notifier = n
	}
}

// WithNowFunc overrides the clock.
func WithNowFunc(fn func() time.Time) Option {
	return func(m *Monitor) {
		m.nowFunc = fn
	}
}

// WithRunIDFunc overrides run id generation.
func WithRunIDFunc(fn func() string) Option {
	return func(m *Monitor) {
		m.newRunID = fn
	}
}

// New creates a Monitor for cfg. A fetcher and a store are required for Check;
// the protection operations only need a store.
func New(cfg budget.Config, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:      cfg,
		notifier: notify.Nop{},
		nowFunc:  time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the budget configuration the monitor was built with.
func (m *Monitor) Config() budget.Config {
	return m.cfg
}

// State returns the persisted state.
func (m *Monitor) State() models.UsageState {
	return m.store.Load()
}

// Check runs one cycle. When the fetch or the save fails the previous state is
// kept, its error and lastCheck fields are stamped, and the error is returned.
func (m *Monitor) Check(ctx context.Context) (models.UsageState, error) {
	now := m.nowFunc()
	w := budget.ResolveWindow(now, m.cfg.Location, m.cfg.ResetHour)
	runID := m.newRunID()

	logger.Info("check started", "run_id", runID, "from", w.SevenDaysAgo, "to", w.Tomorrow, "week_start", w.WeekStart)

	series, err := m.fetcher.FetchSeries(ctx, w.SevenDaysAgo, w.Tomorrow)
	if err != nil {
		return m.recordFailure(ctx, runID, now, err)
	}

	metrics := budget.Aggregate(m.cfg, series, w)
	result := budget.Evaluate(m.cfg, metrics)

	prev := m.store.Load()
	next := budget.BuildState(m.cfg, prev, metrics, result, now)
	if err := m.store.Save(next); err != nil {
		return m.recordFailure(ctx, runID, now, fmt.Errorf("failed to save state: %w", err))
	}

	m.journalRun(&models.CheckRun{
		RunID:          runID,
		Timestamp:      now,
		WeekStart:      next.CurrentWeek.StartDate,
		WeekTotal:      next.CurrentWeek.TotalCost,
		Projection:     next.CurrentWeek.Projection,
		ProtectionMode: next.ProtectionMode,
		Alerts:         next.Alerts,
	})
	if m.journal != nil {
		if err := m.journal.UpsertDailyCosts(series); err != nil {
			logger.Warn("failed to archive daily costs", "error", err)
		}
	}

	if next.ProtectionMode && !prev.ProtectionMode {
		m.send(ctx, protectionTitle, protectionMessage(next))
	}

	logger.Info("check completed",
		"run_id", runID,
		"week_total", next.CurrentWeek.TotalCost,
		"projection", next.CurrentWeek.Projection,
		"alerts", len(next.Alerts),
		"protection_mode", next.ProtectionMode,
	)
	return next, nil
}

func (m *Monitor) recordFailure(ctx context.Context, runID string, now time.Time, checkErr error) (models.UsageState, error) {
	msg := checkErr.Error()
	logger.Error("check failed", "run_id", runID, "error", msg)

	st := m.store.Load()
	st.Error = &msg
	st.LastCheck = now.UnixMilli()
	if err := m.store.Save(st); err != nil {
		logger.Error("failed to save error state", "error", err)
	}

	m.journalRun(&models.CheckRun{
		RunID:          runID,
		Timestamp:      now,
		WeekStart:      st.CurrentWeek.StartDate,
		WeekTotal:      st.CurrentWeek.TotalCost,
		Projection:     st.CurrentWeek.Projection,
		ProtectionMode: st.ProtectionMode,
		Alerts:         st.Alerts,
		Error:          msg,
	})

	// Rate limiting is the proxy working as intended.
	if !proxy.IsRateLimited(checkErr) {
		m.send(ctx, failureTitle, msg)
	}

	return st, checkErr
}

func (m *Monitor) journalRun(run *models.CheckRun) {
	if m.journal == nil {
		return
	}
	if err := m.journal.InsertCheckRun(run); err != nil {
		logger.Warn("failed to journal check run", "run_id", run.RunID, "error", err)
	}
}

func (m *Monitor) send(ctx context.Context, title, message string) {
	if err := m.notifier.Notify(ctx, title, message); err != nil {
		logger.Warn("notification failed", "title", title, "error", err)
	}
}

func protectionMessage(st models.UsageState) string {
	if len(st.Alerts) == 0 {
		return fmt.Sprintf("Weekly cost at %s%% of budget", pctOrZero(st.CurrentWeek.Pct))
	}
	return strings.Join(st.Alerts, "\n")
}
