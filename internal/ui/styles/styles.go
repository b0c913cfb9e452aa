// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions.
var (
	// Primary colors
	Primary   = lipgloss.Color("208") // Orange
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Token columns
	Cyan    = lipgloss.Color("51")
	Magenta = lipgloss.Color("201")

	BgDark = lipgloss.Color("235")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary)

// SectionStyle is used for section headings.
var SectionStyle = lipgloss.NewStyle().
	Bold(true)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 2).
	MarginBottom(1)

// ToastStyle for floating notifications.
var ToastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1).
	MarginBottom(1)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// StaleBannerStyle marks a report whose last check failed.
var StaleBannerStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginBottom(1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Error).
	Foreground(Error)

// ProtectionActiveStyle renders the ACTIVE protection badge.
var ProtectionActiveStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// ProtectionOffStyle renders the OFF protection badge.
var ProtectionOffStyle = lipgloss.NewStyle().
	Foreground(Success)

// AlertStyle styles the alert section.
var AlertStyle = lipgloss.NewStyle().
	Foreground(Warning).
	Bold(true)

// TokensInStyle styles input token counts.
var TokensInStyle = lipgloss.NewStyle().
	Foreground(Cyan)

// TokensOutStyle styles output token counts.
var TokensOutStyle = lipgloss.NewStyle().
	Foreground(Magenta)

// PlainStyle renders text unchanged.
var PlainStyle = lipgloss.NewStyle().
	Foreground(TextPrimary)

// BoldStyle renders bold text.
var BoldStyle = lipgloss.NewStyle().
	Bold(true)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpSeparatorStyle styles separators in help text.
var HelpSeparatorStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// CriticalTextStyle for values past the budget.
var CriticalTextStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// PctStyle returns the style for a percentage of the weekly budget.
func PctStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return CriticalTextStyle
	case pct >= 50:
		return WarningTextStyle
	default:
		return SuccessTextStyle
	}
}

// ProjectionStyle returns the style for a projected weekly cost.
func ProjectionStyle(projection, budget float64) lipgloss.Style {
	switch {
	case projection > budget:
		return CriticalTextStyle
	case projection > budget*0.8:
		return WarningTextStyle
	default:
		return SuccessTextStyle
	}
}

// BarStyle returns the style for a daily bar filled to ratio of the daily budget.
func BarStyle(ratio float64) lipgloss.Style {
	switch {
	case ratio >= 1.5:
		return ErrorTextStyle
	case ratio >= 1:
		return WarningTextStyle
	default:
		return SuccessTextStyle
	}
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
