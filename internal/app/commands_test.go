package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/claude-usage/internal/models"
	"github.com/j-veylop/claude-usage/internal/state"
)

func TestTickCmd(t *testing.T) {
	if tickCmd(time.Millisecond) == nil || defaultTickCmd() == nil {
		t.Error("tick commands should not be nil")
	}
}

func TestNotifyCmds(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", notifySuccessCmd, NotificationSuccess},
		{"Error", notifyErrorCmd, NotificationError},
		{"Warning", notifyWarningCmd, NotificationWarning},
		{"Info", notifyInfoCmd, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" || addMsg.Duration <= 0 {
				t.Errorf("msg = %+v", addMsg)
			}
		})
	}
}

func TestLoadStateCmd(t *testing.T) {
	store := &memStore{state: usageState()}
	msg, ok := loadStateCmd(store)().(StateLoadedMsg)
	if !ok || msg.State.CurrentWeek.TotalCost != 195 {
		t.Errorf("loadStateCmd = %+v", msg)
	}
}

func TestWaitForStateEventCmd(t *testing.T) {
	ch := make(chan state.Event, 1)
	ch <- state.Event{State: models.DefaultState()}

	if _, ok := waitForStateEventCmd(ch)().(StateChangedMsg); !ok {
		t.Error("expected StateChangedMsg")
	}

	close(ch)
	if msg := waitForStateEventCmd(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %T", msg)
	}
}

func TestRunCheckCmd(t *testing.T) {
	boom := errors.New("boom")
	c := &fakeChecker{err: boom}

	msg := runCheckCmd(c, time.Second)().(CheckFinishedMsg)
	if !errors.Is(msg.Err, boom) || c.checks != 1 {
		t.Errorf("msg = %+v, checks = %d", msg, c.checks)
	}
}

func TestLoadHistoryCmd(t *testing.T) {
	h := &fakeHistory{runs: []models.CheckRun{{RunID: "r1"}}}
	msg := loadHistoryCmd(h)().(HistoryLoadedMsg)
	if msg.Err != nil || len(msg.Runs) != 1 {
		t.Errorf("msg = %+v", msg)
	}
}

func TestClearNotificationCmd(t *testing.T) {
	if clearNotificationCmd("id", time.Millisecond) == nil {
		t.Error("clearNotificationCmd returned nil")
	}
}
