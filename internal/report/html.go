package report

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/j-veylop/claude-usage/internal/models"
)

const (
	colorRed    = template.CSS("#dc3545")
	colorYellow = template.CSS("#ffc107")
	colorGreen  = template.CSS("#28a745")
)

type htmlRow struct {
	Label string
	Date  string
	Value string
}

type htmlData struct {
	Error          string
	WeekTotal      string
	Budget         string
	Pct            string
	Projection     string
	Alerts         string
	CostColor      template.CSS
	ProjColor      template.CSS
	Days           []htmlRow
	AvgDaily       string
	ProtectionMode bool
}

var htmlReport = template.Must(template.New("report").Parse(htmlTemplate))

// HTML renders a compact summary for email briefings. Amounts are in euros.
func HTML(st models.UsageState, cfg Config) (string, error) {
	week := st.CurrentWeek

	pct := parsePct(week.Pct)
	costColor := colorGreen
	switch {
	case pct >= 80:
		costColor = colorRed
	case pct >= 50:
		costColor = colorYellow
	}
	projColor := colorGreen
	if week.Projection > cfg.WeeklyBudget {
		projColor = colorRed
	}

	data := htmlData{
		Error:          st.ErrorMessage(),
		ProtectionMode: st.ProtectionMode,
		WeekTotal:      cfg.EUR(week.TotalCost),
		Budget:         cfg.EURBudget(cfg.WeeklyBudget),
		Pct:            week.Pct,
		CostColor:      costColor,
		Projection:     cfg.EUR(week.Projection),
		ProjColor:      projColor,
		Days: []htmlRow{
			{Label: "J-1", Date: st.Yesterday.Date, Value: cfg.EUR(st.Yesterday.Cost)},
			{Label: "J-2", Date: st.DayBefore.Date, Value: cfg.EUR(st.DayBefore.Cost)},
			{Label: "J-3", Date: st.ThreeDaysAgo.Date, Value: cfg.EUR(st.ThreeDaysAgo.Cost)},
		},
		AvgDaily: cfg.EUR(st.Last7Days.AvgDaily),
		Alerts:   strings.Join(st.Alerts, " | "),
	}

	var buf bytes.Buffer
	if err := htmlReport.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const htmlTemplate = `<div style="font-family:system-ui,sans-serif;max-width:500px">
  <h3 style="margin-bottom:8px">🔴 Claude Usage</h3>
  {{- if .Error}}
  <p style="color:#dc3545">⚠️ Last check failed, figures may be stale: {{.Error}}</p>
  {{- end}}
  <p>Protection: {{if .ProtectionMode}}<span style="color:#dc3545;font-weight:bold">🛡️ ACTIVE</span>{{else}}<span style="color:#28a745">✅ OFF</span>{{end}}</p>
  <table style="border-collapse:collapse;width:100%">
    <tr>
      <td style="padding:4px 12px 4px 0"><strong>Week total</strong></td>
      <td style="padding:4px 0;color:{{.CostColor}};font-weight:bold">{{.WeekTotal}} / {{.Budget}} ({{.Pct}}%)</td>
    </tr>
    <tr>
      <td style="padding:4px 12px 4px 0"><strong>Projection</strong></td>
      <td style="padding:4px 0;color:{{.ProjColor}}">{{.Projection}}</td>
    </tr>
    {{- range .Days}}
    <tr>
      <td style="padding:4px 12px 4px 0"><strong>{{.Label}}</strong> ({{.Date}})</td>
      <td style="padding:4px 0">{{.Value}}</td>
    </tr>
    {{- end}}
    <tr>
      <td style="padding:4px 12px 4px 0"><strong>7-day avg</strong></td>
      <td style="padding:4px 0">{{.AvgDaily}}/day</td>
    </tr>
  </table>
  {{- if .Alerts}}
  <p style="color:#dc3545;margin-top:8px"><strong>⚠️ Alerts:</strong> {{.Alerts}}</p>
  {{- end}}
</div>`
