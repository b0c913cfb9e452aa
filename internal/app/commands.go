package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/claude-usage/internal/models"
	"github.com/j-veylop/claude-usage/internal/state"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// DefaultCheckTimeout bounds a check cycle started from the dashboard.
	DefaultCheckTimeout = 2 * time.Minute

	historyLimit = 20
)

// Checker runs check cycles and flips protection mode.
type Checker interface {
	Check(ctx context.Context) (models.UsageState, error)
	EnableProtection() error
	DisableProtection() error
}

// RunHistory lists journaled check runs, newest first.
type RunHistory interface {
	GetRecentCheckRuns(limit int) ([]models.CheckRun, error)
}

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadStateCmd reads the state file once.
func loadStateCmd(store state.Store) tea.Cmd {
	return func() tea.Msg {
		return StateLoadedMsg{State: store.Load()}
	}
}

// waitForStateEventCmd waits for the next reload from the state watcher.
func waitForStateEventCmd(ch <-chan state.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return StateChangedMsg{Event: ev}
	}
}

// runCheckCmd runs one check cycle.
func runCheckCmd(c Checker, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		st, err := c.Check(ctx)
		return CheckFinishedMsg{State: st, Err: err}
	}
}

// toggleProtectionCmd switches protection mode to enable.
func toggleProtectionCmd(c Checker, enable bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if enable {
			err = c.EnableProtection()
		} else {
			err = c.DisableProtection()
		}
		return ProtectionToggledMsg{Enabled: enable, Err: err}
	}
}

// loadHistoryCmd reads the most recent check runs.
func loadHistoryCmd(h RunHistory) tea.Cmd {
	return func() tea.Msg {
		runs, err := h.GetRecentCheckRuns(historyLimit)
		return HistoryLoadedMsg{Runs: runs, Err: err}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}
