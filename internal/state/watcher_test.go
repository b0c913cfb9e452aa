package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/claude-usage/internal/models"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a reload event")
		return Event{}
	}
}

func TestWatch_ReloadsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewFileStore(path)

	w, err := Watch(store)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	st := models.DefaultState()
	st.CurrentWeek.TotalCost = 123
	if err := store.Save(st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ev := waitEvent(t, w)
	if ev.Error != nil {
		t.Fatalf("unexpected error: %v", ev.Error)
	}
	if ev.State.CurrentWeek.TotalCost != 123 {
		t.Errorf("reloaded total = %v, want 123", ev.State.CurrentWeek.TotalCost)
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "state.json"))

	w, err := Watch(store)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected event for another file: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := Watch(NewFileStore(filepath.Join(t.TempDir(), "state.json")))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
