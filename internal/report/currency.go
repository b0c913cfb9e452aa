package report

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// money formats v with the given number of decimals, rounding half away from zero.
func money(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func (c Config) toEUR(usd float64) float64 {
	return usd * c.USDToEUR
}

// EUR formats a USD amount in euros, e.g. "€57.50".
func (c Config) EUR(usd float64) string {
	return "€" + money(c.toEUR(usd), 2)
}

// EURBudget formats a USD budget in whole euros, e.g. "€575".
func (c Config) EURBudget(usd float64) string {
	return "€" + money(c.toEUR(usd), 0)
}

// Dual formats a USD amount with its euro equivalent, e.g. "$62.50 (€57.50)".
func (c Config) Dual(usd float64) string {
	return "$" + money(usd, 2) + " (€" + money(c.toEUR(usd), 2) + ")"
}

// DualBudget formats a USD budget without decimals, e.g. "$625 (€575)".
func (c Config) DualBudget(usd float64) string {
	return "$" + money(usd, 0) + " (€" + money(c.toEUR(usd), 0) + ")"
}

// DailyBudget returns the weekly budget spread over seven days.
func (c Config) DailyBudget() float64 {
	return c.WeeklyBudget / 7
}

func tokens(n int64) string {
	return humanize.Comma(n)
}
