package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/claude-usage/internal/ui/styles"
)

// Gauge renders a labeled progress bar for a share of the weekly budget.
type Gauge struct {
	progress progress.Model
}

// NewGauge creates a gauge shading from green to red as it fills.
func NewGauge() Gauge {
	p := progress.New(
		progress.WithScaledGradient("#51cf66", "#ff6b6b"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return Gauge{progress: p}
}

// View renders the gauge at pct percent with label in front.
func (g Gauge) View(pct float64, label string, width int) string {
	barWidth := width - 24 // label and percentage
	if barWidth < 10 {
		barWidth = 10
	}
	g.progress.Width = barWidth

	bar := g.progress.ViewAs(clampUnit(pct / 100))

	pctStr := styles.PctStyle(pct).
		Width(7).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.1f%%", pct))
	labelStr := styles.HelpDescStyle.Width(16).Render(label)

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", pctStr)
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
