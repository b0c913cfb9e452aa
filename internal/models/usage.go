// Package models defines data structures and domain types.
package models

// StateVersion is the current layout version of the persisted UsageState.
const StateVersion = 1

// DailyCost is one day of spend as reported by the usage proxy.
// A series may contain the same date more than once; amounts are additive.
type DailyCost struct {
	Date         string  `json:"date"`
	Cost         float64 `json:"cost"`
	TokensInput  int64   `json:"tokens_input"`
	TokensOutput int64   `json:"tokens_output"`
}

// DayInfo is a per-day snapshot stored in the state file (J-1, J-2, J-3).
type DayInfo struct {
	Date         string  `json:"date"`
	Cost         float64 `json:"cost"`
	TokensInput  int64   `json:"tokens_input"`
	TokensOutput int64   `json:"tokens_output"`
}

// BudgetInfo echoes the budget configuration used for the last computation.
type BudgetInfo struct {
	WeeklyLimit    float64 `json:"weekly_limit"`
	AlertThreshold float64 `json:"alert_threshold"`
}

// WeekInfo holds the current budget week totals.
type WeekInfo struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalCost  float64 `json:"total_cost"`
	Projection float64 `json:"projection"`
	Pct        string  `json:"pct,omitempty"`
}

// SevenDayInfo holds the trailing seven-day totals.
type SevenDayInfo struct {
	AvgDaily float64 `json:"avg_daily"`
	Total    float64 `json:"total"`
}

// UsageState is the durable record written after every check cycle.
type UsageState struct {
	Version         int          `json:"version"`
	LastCheck       int64        `json:"lastCheck"`
	ProtectionMode  bool         `json:"protection_mode"`
	WeeklyResetDay  string       `json:"weekly_reset_day"`
	WeeklyResetHour int          `json:"weekly_reset_hour"`
	Budget          BudgetInfo   `json:"budget"`
	CurrentWeek     WeekInfo     `json:"current_week"`
	Last7Days       SevenDayInfo `json:"last_7_days"`
	Yesterday       DayInfo      `json:"yesterday"`
	DayBefore       DayInfo      `json:"day_before"`
	ThreeDaysAgo    DayInfo      `json:"three_days_ago"`
	DailyCosts7d    []DailyCost  `json:"daily_costs_7d"`
	Alerts          []string     `json:"alerts"`
	LastAlertTS     int64        `json:"last_alert_ts"`
	Error           *string      `json:"error"`
}

// DefaultState returns the record used when no state file exists yet.
func DefaultState() UsageState {
	return UsageState{
		Version:         StateVersion,
		WeeklyResetDay:  "monday",
		WeeklyResetHour: 21,
		Budget: BudgetInfo{
			WeeklyLimit:    625.0,
			AlertThreshold: 0.5,
		},
		DailyCosts7d: []DailyCost{},
		Alerts:       []string{},
	}
}

// HasError reports whether the last check cycle failed.
func (s UsageState) HasError() bool {
	return s.Error != nil
}

// ErrorMessage returns the last failure message, or "" when the last cycle succeeded.
func (s UsageState) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}
