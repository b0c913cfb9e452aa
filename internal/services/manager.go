// Package services wires the configured collaborators shared by the CLI
// commands and the watch dashboard.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/j-veylop/claude-usage/internal/config"
	"github.com/j-veylop/claude-usage/internal/db"
	"github.com/j-veylop/claude-usage/internal/logger"
	"github.com/j-veylop/claude-usage/internal/notify"
	"github.com/j-veylop/claude-usage/internal/report"
	"github.com/j-veylop/claude-usage/internal/services/fx"
	"github.com/j-veylop/claude-usage/internal/services/monitor"
	"github.com/j-veylop/claude-usage/internal/services/proxy"
	"github.com/j-veylop/claude-usage/internal/state"
)

// RateSource returns the USD to EUR display rate.
type RateSource interface {
	Rate(ctx context.Context) float64
}

// Manager owns the state store, the run journal and the monitor.
type Manager struct {
	cfg      *config.Config
	store    *state.FileStore
	database *db.DB
	monitor  *monitor.Monitor

	fetcher  monitor.Fetcher
	notifier notify.Notifier
	rates    RateSource

	rateOnce sync.Once
	rate     float64
}

// Option configures Manager.
type Option func(*Manager)

// WithFetcher replaces the proxy client.
func WithFetcher(f monitor.Fetcher) Option {
	return func(m *Manager) {
		m.fetcher = f
	}
}

// WithNotifier replaces the notifiers built from the configuration.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithRateSource replaces the live exchange rate source.
func WithRateSource(r RateSource) Option {
	return func(m *Manager) {
		m.rates = r
	}
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:   cfg,
		store: state.NewFileStore(cfg.StateFile),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.fetcher == nil {
		m.fetcher = proxy.NewClient(cfg.ProxyURL, cfg.ProxyToken, proxy.WithTimeout(cfg.RequestTimeout))
	}
	if m.notifier == nil {
		n, err := buildNotifier(cfg)
		if err != nil {
			return nil, err
		}
		m.notifier = n
	}
	if m.rates == nil {
		m.rates = fx.NewSource()
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.monitor = monitor.New(cfg.Budget(),
		monitor.WithFetcher(m.fetcher),
		monitor.WithStore(m.store),
		monitor.WithJournal(m.database),
		monitor.WithNotifier(m.notifier),
	)

	return m, nil
}

func buildNotifier(cfg *config.Config) (notify.Notifier, error) {
	var multi notify.Multi
	if cfg.DesktopNotify {
		multi = append(multi, notify.Desktop{})
	}
	if cfg.DiscordWebhookURL != "" {
		d, err := notify.NewDiscord(cfg.DiscordWebhookURL)
		if err != nil {
			return nil, fmt.Errorf("invalid CLAUDE_USAGE_DISCORD_WEBHOOK: %w", err)
		}
		multi = append(multi, d)
	}
	if len(multi) == 0 {
		return notify.Nop{}, nil
	}
	return multi, nil
}

// Config returns the configuration the manager was built from.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Store returns the state file store.
func (m *Manager) Store() *state.FileStore {
	return m.store
}

// Monitor returns the check runner.
func (m *Manager) Monitor() *monitor.Monitor {
	return m.monitor
}

// Database returns the run journal.
func (m *Manager) Database() *db.DB {
	return m.database
}

// USDToEUR returns the display rate. An explicit USD_TO_EUR wins; otherwise
// the live rate is fetched once per process.
func (m *Manager) USDToEUR(ctx context.Context) float64 {
	if m.cfg.USDToEURFromEnv {
		return m.cfg.USDToEUR
	}
	m.rateOnce.Do(func() {
		m.rate = m.rates.Rate(ctx)
		logger.Debug("exchange rate", "usd_to_eur", m.rate)
	})
	return m.rate
}

// ReportConfig returns the display settings for the report renderers.
func (m *Manager) ReportConfig(ctx context.Context) report.Config {
	return report.Config{
		Location:     m.cfg.Location,
		WeeklyBudget: m.cfg.WeeklyBudget,
		USDToEUR:     m.USDToEUR(ctx),
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error
	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
