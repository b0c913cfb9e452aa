// Package state persists the usage state record as a JSON file and watches it
// for changes made by other processes.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/j-veylop/claude-usage/internal/logger"
	"github.com/j-veylop/claude-usage/internal/models"
)

// Store loads and saves the usage state.
type Store interface {
	Load() models.UsageState
	Save(models.UsageState) error
}

// FileStore keeps the usage state in a single JSON file. It assumes a single
// writer; concurrent writers race and the last rename wins.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the state file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the state file. A missing or unreadable file yields
// models.DefaultState(); fields absent from the file keep their defaults,
// including nested ones such as budget.alert_threshold.
func (s *FileStore) Load() models.UsageState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read state file", "path", s.path, "error", err)
		}
		return models.DefaultState()
	}

	st, err := Parse(data)
	if err != nil {
		logger.Warn("ignoring corrupt state file", "path", s.path, "error", err)
		return models.DefaultState()
	}
	return st
}

// Parse decodes a state document over the default record.
func Parse(data []byte) (models.UsageState, error) {
	st := models.DefaultState()
	if err := json.Unmarshal(data, &st); err != nil {
		return models.DefaultState(), fmt.Errorf("failed to parse state: %w", err)
	}
	migrate(&st)
	return st, nil
}

// migrate upgrades records written before the version field existed and
// restores invariants that older writers did not guarantee.
func migrate(st *models.UsageState) {
	if st.Version < models.StateVersion {
		st.Version = models.StateVersion
	}
	if st.DailyCosts7d == nil {
		st.DailyCosts7d = []models.DailyCost{}
	}
	if st.Alerts == nil {
		st.Alerts = []string{}
	}
	if st.WeeklyResetDay == "" {
		st.WeeklyResetDay = "monday"
	}
	if st.WeeklyResetHour < 0 || st.WeeklyResetHour > 23 {
		st.WeeklyResetHour = models.DefaultState().WeeklyResetHour
	}
}

// Save writes the state atomically (temp file + rename), creating the parent
// directory as needed. The document ends with a trailing newline.
func (s *FileStore) Save(st models.UsageState) error {
	if err := ensureDir(filepath.Dir(s.path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	data = append(data, '\n')

	// Write to temp file first, then rename
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, s.path); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}
