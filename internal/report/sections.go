package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/j-veylop/claude-usage/internal/models"
	"github.com/j-veylop/claude-usage/internal/services/monitor"
	"github.com/j-veylop/claude-usage/internal/ui/components"
	"github.com/j-veylop/claude-usage/internal/ui/styles"
)

const (
	detailRows  = 7
	chartWidth  = 40
	chartHeight = 8

	historySparkWidth = 30
)

// WeekSummary renders the compact current-week view.
func WeekSummary(st models.UsageState, cfg Config) string {
	week := st.CurrentWeek
	lines := []string{
		styles.SectionStyle.Render("📊 Current Week"),
		fmt.Sprintf("  Period:     %s → %s", week.StartDate, week.EndDate),
		fmt.Sprintf("  Total:      %s / %s", costDual(week.TotalCost, cfg), cfg.DualBudget(cfg.WeeklyBudget)),
		fmt.Sprintf("  Budget:     %s%%", pctText(week.Pct)),
		fmt.Sprintf("  Projection: %s", projectionDual(week.Projection, cfg)),
		fmt.Sprintf("  Protection: %s", protectionBadge(st.ProtectionMode)),
	}
	return withBanner(st, strings.Join(lines, "\n"))
}

// DailyBreakdown renders J-1..J-3 as bars against the daily budget, the
// seven-day totals, and a chart of the stored seven-day series.
func DailyBreakdown(st models.UsageState, cfg Config) string {
	lines := []string{styles.SectionStyle.Render("📅 Daily Breakdown"), ""}

	days := []struct {
		label string
		day   models.DayInfo
	}{
		{"J-1", st.Yesterday},
		{"J-2", st.DayBefore},
		{"J-3", st.ThreeDaysAgo},
	}
	for _, d := range days {
		bar := components.RenderBudgetBar(d.day.Cost, cfg.DailyBudget())
		lines = append(lines, fmt.Sprintf("  %s (%s): %s %s", d.label, d.day.Date, cfg.Dual(d.day.Cost), bar))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("  7-day total: %s", cfg.Dual(st.Last7Days.Total)),
		fmt.Sprintf("  7-day avg:   %s/day", cfg.Dual(st.Last7Days.AvgDaily)),
		fmt.Sprintf("  Daily budget: %s/day", cfg.Dual(cfg.DailyBudget())),
	)

	if series := chronological(st.DailyCosts7d); len(series) > 0 {
		costs := make([]float64, len(series))
		for i, d := range series {
			costs[i] = d.Cost
		}
		caption := fmt.Sprintf("%s → %s, USD/day vs budget", series[0].Date, series[len(series)-1].Date)
		lines = append(lines, "", components.RenderCostChart(costs, cfg.DailyBudget(), chartWidth, chartHeight, caption))
	}

	return withBanner(st, strings.Join(lines, "\n"))
}

// ProtectionStatus renders the protection mode flag and its reason.
func ProtectionStatus(status monitor.ProtectionStatus, cfg Config) string {
	state := styles.ProtectionOffStyle.Render("OFF")
	if status.Enabled {
		state = styles.CriticalTextStyle.Render("ACTIVE")
	}
	lines := []string{
		styles.SectionStyle.Render("🛡️  Protection Mode"),
		"  Status:  " + state,
		"  Reason:  " + status.Reason,
		fmt.Sprintf("  Budget:  %s/%s (%s%%)", cfg.EUR(status.WeekTotal), cfg.EURBudget(status.WeeklyBudget), status.WeekPct),
		"  Checked: " + status.LastCheck,
	}
	return strings.Join(lines, "\n")
}

// SevenDaysDetail renders the per-day token and cost table, most recent first.
func SevenDaysDetail(st models.UsageState, cfg Config) string {
	lines := []string{styles.SectionStyle.Render("📊 7-Day Detail (Tokens + Cost)"), ""}

	days := st.DailyCosts7d
	if len(days) == 0 {
		lines = append(lines, styles.HelpStyle.Render("  No data available"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		styles.HelpStyle.Render("  Date         Tokens In   Tokens Out            Cost (USD + EUR)"),
		styles.HelpStyle.Render("  ───────────  ──────────  ───────────  ──────────────────────"),
	)

	sorted := slices.Clone(days)
	slices.SortStableFunc(sorted, func(a, b models.DailyCost) int {
		return strings.Compare(b.Date, a.Date)
	})

	for _, d := range sorted[:min(detailRows, len(sorted))] {
		costStyle := styles.PlainStyle
		if d.Cost > cfg.DailyBudget() {
			costStyle = styles.WarningTextStyle
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  %s  %s",
			d.Date,
			styles.TokensInStyle.Render(fmt.Sprintf("%10s", tokens(d.TokensInput))),
			styles.TokensOutStyle.Render(fmt.Sprintf("%11s", tokens(d.TokensOutput))),
			costStyle.Render(fmt.Sprintf("%22s", cfg.Dual(d.Cost))),
		))
	}

	var totalIn, totalOut int64
	var totalCost float64
	for _, d := range days {
		totalIn += d.TokensInput
		totalOut += d.TokensOutput
		totalCost += d.Cost
	}

	lines = append(lines, "",
		styles.HelpStyle.Render("  TOTAL        ")+
			styles.TokensInStyle.Render(fmt.Sprintf("%10s", tokens(totalIn)))+"  "+
			styles.TokensOutStyle.Render(fmt.Sprintf("%11s", tokens(totalOut)))+"  "+
			styles.BoldStyle.Render(fmt.Sprintf("%22s", cfg.Dual(totalCost))),
	)

	return strings.Join(lines, "\n")
}

// History renders recent check runs, newest first.
func History(runs []models.CheckRun, cfg Config) string {
	lines := []string{styles.SectionStyle.Render("📜 Check History"), ""}
	if len(runs) == 0 {
		lines = append(lines, styles.HelpStyle.Render("  No checks recorded"))
		return strings.Join(lines, "\n")
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	// runs are newest first
	var totals []float64
	for i := len(runs) - 1; i >= 0; i-- {
		if !runs[i].Failed() {
			totals = append(totals, runs[i].WeekTotal)
		}
	}
	if len(totals) > 1 {
		lines = append(lines, "  Trend: "+styles.TokensInStyle.Render(components.RenderSparkline(totals, historySparkWidth)), "")
	}

	for _, r := range runs {
		when := r.Timestamp.In(loc).Format("2006-01-02 15:04")
		if r.Failed() {
			lines = append(lines, fmt.Sprintf("  %s  %s %s", when, styles.ErrorTextStyle.Render("❌"), r.Error))
			continue
		}

		prot := ""
		if r.ProtectionMode {
			prot = " " + styles.ProtectionActiveStyle.Render("🛡️")
		}
		alerts := ""
		if n := len(r.Alerts); n > 0 {
			alerts = styles.WarningTextStyle.Render(fmt.Sprintf("  %d alert(s)", n))
		}
		lines = append(lines, fmt.Sprintf("  %s  week %s  %s  proj %s%s%s",
			when, r.WeekStart, costDual(r.WeekTotal, cfg), cfg.Dual(r.Projection), prot, alerts))
	}

	return strings.Join(lines, "\n")
}

func withBanner(st models.UsageState, body string) string {
	if banner := StaleBanner(st); banner != "" {
		return banner + "\n" + body
	}
	return body
}

// chronological returns days sorted oldest first.
func chronological(days []models.DailyCost) []models.DailyCost {
	sorted := slices.Clone(days)
	slices.SortStableFunc(sorted, func(a, b models.DailyCost) int {
		return strings.Compare(a.Date, b.Date)
	})
	return sorted
}
