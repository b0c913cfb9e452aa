package budget

import (
	"time"

	"github.com/j-veylop/claude-usage/internal/models"
)

// ResetDay is the weekday name echoed into the state file.
const ResetDay = "monday"

// BuildState folds a successful cycle into the previous state.
//
// Protection mode is OR-ed with prev so that a cycle can only ever switch it
// on. LastAlertTS is carried over untouched and Error is cleared.
func BuildState(cfg Config, prev models.UsageState, m Metrics, a AlertResult, now time.Time) models.UsageState {
	alerts := make([]string, len(a.Alerts))
	copy(alerts, a.Alerts)

	daily := make([]models.DailyCost, len(m.DailyCosts))
	copy(daily, m.DailyCosts)

	return models.UsageState{
		Version:         models.StateVersion,
		LastCheck:       now.UnixMilli(),
		ProtectionMode:  a.ProtectionMode || prev.ProtectionMode,
		WeeklyResetDay:  ResetDay,
		WeeklyResetHour: cfg.ResetHour,
		Budget: models.BudgetInfo{
			WeeklyLimit:    cfg.WeeklyBudget,
			AlertThreshold: cfg.AlertThreshold,
		},
		CurrentWeek: models.WeekInfo{
			StartDate:  m.Week.StartDate,
			EndDate:    m.Week.EndDate,
			TotalCost:  m.Week.Total,
			Projection: m.Week.Projection,
			Pct:        m.Week.Pct,
		},
		Last7Days: models.SevenDayInfo{
			AvgDaily: m.SevenDays.Average,
			Total:    m.SevenDays.Total,
		},
		Yesterday:    m.Yesterday,
		DayBefore:    m.DayBefore,
		ThreeDaysAgo: m.ThreeDaysAgo,
		DailyCosts7d: daily,
		Alerts:       alerts,
		LastAlertTS:  prev.LastAlertTS,
		Error:        nil,
	}
}
