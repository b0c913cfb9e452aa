package budget

import (
	"github.com/shopspring/decimal"

	"github.com/j-veylop/claude-usage/internal/models"
)

// WeekMetrics summarizes spend since the start of the budget week.
type WeekMetrics struct {
	StartDate  string
	EndDate    string
	Pct        string  // Ratio*100, one decimal, for display
	Total      float64
	Projection float64
	Ratio      float64 // Total / WeeklyBudget, unrounded
	DayCount   int     // series entries counted, not calendar days
}

// SevenDayMetrics summarizes the whole supplied series.
type SevenDayMetrics struct {
	Total   float64
	Average float64
}

// Metrics is everything derived from one series for one window.
type Metrics struct {
	Yesterday    models.DayInfo
	DayBefore    models.DayInfo
	ThreeDaysAgo models.DayInfo
	Week         WeekMetrics
	SevenDays    SevenDayMetrics
	DailyCosts   []models.DailyCost
}

// CostForDate returns the summed cost of every entry dated date, or 0.
func CostForDate(series []models.DailyCost, date string) float64 {
	var sum float64
	for _, d := range series {
		if d.Date == date {
			sum += d.Cost
		}
	}
	return sum
}

// dayForDate builds a snapshot for date, adding up duplicate entries the same
// way CostForDate does. Missing dates yield zero cost and tokens.
func dayForDate(series []models.DailyCost, date string) models.DayInfo {
	info := models.DayInfo{Date: date}
	for _, d := range series {
		if d.Date != date {
			continue
		}
		info.Cost += d.Cost
		info.TokensInput += d.TokensInput
		info.TokensOutput += d.TokensOutput
	}
	return info
}

// Aggregate computes the metrics for series within w.
//
// The week total only filters on date >= w.WeekStart; the caller bounds the
// upper edge through its fetch range. The projection extrapolates linearly
// from the number of entries seen, so sparse data inflates it.
func Aggregate(cfg Config, series []models.DailyCost, w Window) Metrics {
	var weekTotal float64
	var weekCount int
	var total float64

	for _, d := range series {
		total += d.Cost
		if d.Date >= w.WeekStart {
			weekTotal += d.Cost
			weekCount++
		}
	}

	var projection float64
	if weekCount > 0 {
		projection = weekTotal / float64(weekCount) * 7
	}

	var average float64
	if len(series) > 0 {
		average = total / float64(len(series))
	}

	var ratio float64
	if cfg.WeeklyBudget > 0 {
		ratio = weekTotal / cfg.WeeklyBudget
	}

	return Metrics{
		Yesterday:    dayForDate(series, w.Yesterday),
		DayBefore:    dayForDate(series, w.DayBefore),
		ThreeDaysAgo: dayForDate(series, w.ThreeDaysAgo),
		Week: WeekMetrics{
			StartDate:  w.WeekStart,
			EndDate:    w.WeekEnd,
			Total:      weekTotal,
			Projection: projection,
			Ratio:      ratio,
			Pct:        formatPct(ratio),
			DayCount:   weekCount,
		},
		SevenDays: SevenDayMetrics{
			Total:   total,
			Average: average,
		},
		DailyCosts: series,
	}
}

// formatPct renders ratio as a percentage with one decimal, ties rounded away
// from zero.
func formatPct(ratio float64) string {
	return decimal.NewFromFloat(ratio * 100).StringFixed(1)
}
