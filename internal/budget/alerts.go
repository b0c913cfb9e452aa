package budget

import "fmt"

const (
	anomalyFactor = 2.0
	criticalRatio = 0.8
)

// AlertResult is the outcome of one alert evaluation.
type AlertResult struct {
	Alerts         []string
	ProtectionMode bool
}

// Evaluate runs every alert rule against m. The rules are independent; their
// order only decides the order of the returned codes. Only the threshold rule
// turns protection mode on.
func Evaluate(cfg Config, m Metrics) AlertResult {
	res := AlertResult{Alerts: []string{}}
	limit := cfg.WeeklyBudget

	if avg := m.SevenDays.Average; avg > 0 && m.Yesterday.Cost > anomalyFactor*avg {
		res.Alerts = append(res.Alerts,
			fmt.Sprintf("anomaly: J-1 $%.2f > 2x avg $%.2f", m.Yesterday.Cost, avg))
	}

	if m.Week.Total > cfg.AlertThreshold*limit {
		res.ProtectionMode = true
		res.Alerts = append(res.Alerts,
			fmt.Sprintf("budget_50: $%.2f/$%.2f", m.Week.Total, limit))
	}

	if m.Week.Total > criticalRatio*limit {
		res.Alerts = append(res.Alerts,
			fmt.Sprintf("budget_80: $%.2f/$%.2f", m.Week.Total, limit))
	}

	if m.Week.Projection > limit {
		res.Alerts = append(res.Alerts,
			fmt.Sprintf("projection: $%.2f > $%.2f", m.Week.Projection, limit))
	}

	return res
}
