package monitor

import (
	"fmt"
	"strconv"
	"time"
)

// ProtectionStatus describes the protection mode flag for display.
type ProtectionStatus struct {
	Reason       string  `json:"reason"`
	WeekPct      string  `json:"weekPct"`
	LastCheck    string  `json:"lastCheck"`
	WeekTotal    float64 `json:"weekTotal"`
	WeeklyBudget float64 `json:"weeklyBudget"`
	Enabled      bool    `json:"enabled"`
}

// Status reports the current protection mode and why it is set.
func (m *Monitor) Status() ProtectionStatus {
	st := m.store.Load()

	lastCheck := "never"
	if st.LastCheck != 0 {
		lastCheck = time.UnixMilli(st.LastCheck).UTC().Format("2006-01-02T15:04:05.000Z")
	}

	pct := pctOrZero(st.CurrentWeek.Pct)
	reason := "Under budget threshold"
	if st.ProtectionMode {
		reason = fmt.Sprintf("Weekly cost at %s%% of budget ($%.2f/$%s)",
			pct, st.CurrentWeek.TotalCost, strconv.FormatFloat(m.cfg.WeeklyBudget, 'f', -1, 64))
	}

	return ProtectionStatus{
		Enabled:      st.ProtectionMode,
		Reason:       reason,
		WeekTotal:    st.CurrentWeek.TotalCost,
		WeeklyBudget: m.cfg.WeeklyBudget,
		WeekPct:      pct,
		LastCheck:    lastCheck,
	}
}

// EnableProtection switches protection mode on.
func (m *Monitor) EnableProtection() error {
	return m.setProtection(true)
}

// DisableProtection switches protection mode off. This is the only way to
// clear it once a check has set it.
func (m *Monitor) DisableProtection() error {
	return m.setProtection(false)
}

func (m *Monitor) setProtection(enabled bool) error {
	st := m.store.Load()
	st.ProtectionMode = enabled
	if err := m.store.Save(st); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func pctOrZero(pct string) string {
	if pct == "" {
		return "0"
	}
	return pct
}
