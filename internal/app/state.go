// Package app provides the watch dashboard's Bubble Tea model and state management.
package app

import (
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/j-veylop/claude-usage/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

// LoadingNotificationID is the fixed ID for loading notifications.
const LoadingNotificationID = "__loading__"

const maxNotifications = 10

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks in-flight work.
type LoadingState struct {
	Initial    bool
	Check      bool
	Protection bool
	History    bool
}

// AppState is the dashboard's view of the usage state plus UI bookkeeping.
type AppState struct {
	LastUpdated time.Time

	notifications []Notification
	runs          []models.CheckRun
	usage         models.UsageState

	Loading LoadingState

	notificationSeq int
	mu              sync.RWMutex
}

// NewState returns a state waiting for its first load.
func NewState() *AppState {
	return &AppState{
		usage:         models.DefaultState(),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *AppState) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "check":
		s.Loading.Check = loading
	case "protection":
		s.Loading.Protection = loading
	case "history":
		s.Loading.History = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *AppState) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Check ||
		s.Loading.Protection ||
		s.Loading.History
}

// IsInitialLoading returns true if the state file has not been read yet.
func (s *AppState) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// IsChecking returns true while a check cycle runs.
func (s *AppState) IsChecking() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Check
}

// SetUsage replaces the displayed usage state.
func (s *AppState) SetUsage(st models.UsageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = st
	s.LastUpdated = time.Now()
}

// GetUsage returns the displayed usage state.
func (s *AppState) GetUsage() models.UsageState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usage
}

// SetProtection updates only the protection flag.
func (s *AppState) SetProtection(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage.ProtectionMode = enabled
}

// SetRuns replaces the check history.
func (s *AppState) SetRuns(runs []models.CheckRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = slices.Clone(runs)
}

// GetRuns returns a copy of the check history.
func (s *AppState) GetRuns() []models.CheckRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.runs)
}

// AddNotification adds a new notification and returns its ID.
func (s *AppState) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := "n" + strconv.Itoa(s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *AppState) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.ID == id
	})
}

// ClearExpiredNotifications removes all expired notifications.
func (s *AppState) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.IsExpired()
	})
}

// GetNotifications returns a copy of all active notifications.
func (s *AppState) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *AppState) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *AppState) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
