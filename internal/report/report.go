// Package report renders usage state for the terminal, scripts and email.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/claude-usage/internal/models"
	"github.com/j-veylop/claude-usage/internal/ui/styles"
)

// Format selects a report rendering.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat maps a user-supplied name to a Format; anything unknown is text.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON
	case FormatHTML:
		return FormatHTML
	default:
		return FormatText
	}
}

// Config holds the display settings shared by all renderers.
type Config struct {
	Location     *time.Location
	WeeklyBudget float64
	USDToEUR     float64
}

const (
	ruleWidth      = 45
	lastCheckStamp = "02/01/2006 15:04:05"
)

// Render produces the full report in the requested format.
func Render(st models.UsageState, cfg Config, f Format) (string, error) {
	switch f {
	case FormatJSON:
		return JSON(st)
	case FormatHTML:
		return HTML(st, cfg)
	default:
		return Text(st, cfg), nil
	}
}

// JSON returns the state exactly as it is persisted.
func JSON(st models.UsageState) (string, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	return string(data), nil
}

// Text renders the full terminal report.
func Text(st models.UsageState, cfg Config) string {
	var lines []string

	if banner := StaleBanner(st); banner != "" {
		lines = append(lines, banner)
	}

	lines = append(lines,
		styles.BoldStyle.Render("🔴 Claude Usage Report"),
		strings.Repeat("─", ruleWidth),
		"Protection mode: "+protectionBadge(st.ProtectionMode),
		"",
	)

	week := st.CurrentWeek
	lines = append(lines,
		styles.SectionStyle.Render("📊 Current Week"),
		fmt.Sprintf("  Period: %s → %s", week.StartDate, week.EndDate),
		fmt.Sprintf("  Total:  %s / %s", costDual(week.TotalCost, cfg), cfg.DualBudget(cfg.WeeklyBudget)),
		fmt.Sprintf("  Budget: %s%%", pctText(week.Pct)),
		fmt.Sprintf("  Proj:   %s", projectionDual(week.Projection, cfg)),
		"",
	)

	lines = append(lines,
		styles.SectionStyle.Render("📅 Recent Days"),
		fmt.Sprintf("  J-1 (%s):  %s", st.Yesterday.Date, cfg.Dual(st.Yesterday.Cost)),
		fmt.Sprintf("  J-2 (%s):  %s", st.DayBefore.Date, cfg.Dual(st.DayBefore.Cost)),
		fmt.Sprintf("  J-3 (%s):  %s", st.ThreeDaysAgo.Date, cfg.Dual(st.ThreeDaysAgo.Cost)),
		"",
	)

	lines = append(lines,
		styles.SectionStyle.Render("📈 7-Day Stats"),
		fmt.Sprintf("  Total:   %s", cfg.Dual(st.Last7Days.Total)),
		fmt.Sprintf("  Avg/day: %s", cfg.Dual(st.Last7Days.AvgDaily)),
		"",
	)

	if len(st.Alerts) > 0 {
		lines = append(lines, styles.AlertStyle.Render("⚠️  Alerts"))
		for _, a := range st.Alerts {
			lines = append(lines, "  • "+a)
		}
		lines = append(lines, "")
	}

	if len(st.DailyCosts7d) > 0 {
		lines = append(lines, "", SevenDaysDetail(st, cfg))
	}

	lines = append(lines, "", styles.HelpStyle.Render("Last check: "+lastCheck(st.LastCheck, cfg.Location)))

	return strings.Join(lines, "\n")
}

// StaleBanner warns that the figures come from an earlier successful check.
// It is empty when the last check succeeded.
func StaleBanner(st models.UsageState) string {
	if !st.HasError() {
		return ""
	}
	return styles.StaleBannerStyle.Render("⚠️  Last check failed, figures may be stale\n" + st.ErrorMessage())
}

func lastCheck(ms int64, loc *time.Location) string {
	if ms == 0 {
		return "never"
	}
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(lastCheckStamp)
}

func protectionBadge(on bool) string {
	if on {
		return styles.ProtectionActiveStyle.Render("🛡️  ACTIVE")
	}
	return styles.ProtectionOffStyle.Render("✅ OFF")
}

func weekPct(cost float64, cfg Config) float64 {
	if cfg.WeeklyBudget == 0 {
		return 0
	}
	return cost / cfg.WeeklyBudget * 100
}

func costDual(usd float64, cfg Config) string {
	return styles.PctStyle(weekPct(usd, cfg)).Render(cfg.Dual(usd))
}

func pctText(pct string) string {
	if pct == "" {
		pct = "0"
	}
	return styles.PctStyle(parsePct(pct)).Render(pct)
}

// parsePct reads the stored percentage string; unparseable values count as 0.
func parsePct(pct string) float64 {
	n, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return 0
	}
	return n
}

func projectionDual(usd float64, cfg Config) string {
	s := cfg.Dual(usd)
	if usd > cfg.WeeklyBudget {
		s += " ⚠️"
	}
	return styles.ProjectionStyle(usd, cfg.WeeklyBudget).Render(s)
}
