// Package models defines data structures and domain types.
package models

import "time"

// CheckRun is one row of the check journal (DB model).
type CheckRun struct {
	Timestamp      time.Time
	RunID          string
	WeekStart      string
	Error          string
	Alerts         []string
	ID             int64
	WeekTotal      float64
	Projection     float64
	ProtectionMode bool
}

// Failed reports whether the run ended with a fetch error.
func (r CheckRun) Failed() bool {
	return r.Error != ""
}
