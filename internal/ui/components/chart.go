// Package components provides reusable UI components for the TUI.
package components

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/claude-usage/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	width, height = chartBounds(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderCostChart plots daily costs against a flat daily budget line.
func RenderCostChart(costs []float64, dailyBudget float64, width, height int, caption string) string {
	if len(costs) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	if dailyBudget <= 0 {
		return RenderLineChart(costs, width, height, caption)
	}

	width, height = chartBounds(width, height)

	limit := make([]float64, len(costs))
	for i := range limit {
		limit[i] = dailyBudget
	}

	return asciigraph.PlotMany([][]float64{costs, limit},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Blue,
			asciigraph.Red,
		),
	)
}

func chartBounds(width, height int) (int, int) {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	return width, height
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width < 1 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}
