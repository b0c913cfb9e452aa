package app

import (
	"time"

	"github.com/j-veylop/claude-usage/internal/models"
	"github.com/j-veylop/claude-usage/internal/state"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// StateLoadedMsg carries the state file read at startup.
type StateLoadedMsg struct {
	State models.UsageState
}

// StateChangedMsg carries a reload triggered by the state file changing on disk.
type StateChangedMsg struct {
	Event state.Event
}

// CheckFinishedMsg carries the result of a check cycle started from the dashboard.
type CheckFinishedMsg struct {
	Err   error
	State models.UsageState
}

// ProtectionToggledMsg carries the result of switching protection mode.
type ProtectionToggledMsg struct {
	Err     error
	Enabled bool
}

// HistoryLoadedMsg carries recent check runs from the journal.
type HistoryLoadedMsg struct {
	Err  error
	Runs []models.CheckRun
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
