package components

import (
	"math"
	"strings"

	"github.com/j-veylop/claude-usage/internal/ui/styles"
)

// BarWidth is the number of cells of a daily budget bar.
const BarWidth = 20

// maxBarRatio caps a bar at twice the daily budget.
const maxBarRatio = 2.0

// BarRatio returns value as a fraction of the daily budget, capped at 2.
func BarRatio(value, dailyBudget float64) float64 {
	if dailyBudget <= 0 {
		return 0
	}
	return math.Min(value/dailyBudget, maxBarRatio)
}

// BarCells returns the filled and empty cell counts for value. A full
// daily budget fills BarWidth cells; overspend keeps growing the bar up to
// twice that.
func BarCells(value, dailyBudget float64) (filled, empty int) {
	filled = int(math.Round(BarRatio(value, dailyBudget) * BarWidth))
	filled = max(filled, 0)
	empty = max(BarWidth-filled, 0)
	return filled, empty
}

// RenderBudgetBar renders a daily spend bar scaled to the daily budget
// (weekly budget / 7), colored by how far the day went over.
func RenderBudgetBar(value, dailyBudget float64) string {
	filled, empty := BarCells(value, dailyBudget)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return styles.BarStyle(BarRatio(value, dailyBudget)).Render(bar)
}
