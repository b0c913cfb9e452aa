package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/claude-usage/internal/models"
	"github.com/j-veylop/claude-usage/internal/report"
	"github.com/j-veylop/claude-usage/internal/state"
	"github.com/j-veylop/claude-usage/internal/ui/components"
	"github.com/j-veylop/claude-usage/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabReport shows the full usage report.
	TabReport TabID = iota
	// TabDaily shows the daily breakdown and chart.
	TabDaily
	// TabDetail shows the seven-day token and cost table.
	TabDetail
	// TabHistory shows journaled check runs.
	TabHistory

	tabCount
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabReport:
		return "Report"
	case TabDaily:
		return "Daily"
	case TabDetail:
		return "Detail"
	case TabHistory:
		return "History"
	default:
		return "Unknown"
	}
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	Tab4       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Check      key.Binding
	Protection key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "report")),
		Tab2:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "daily")),
		Tab3:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "detail")),
		Tab4:       key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "history")),
		NextTab:    key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab/→", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab/←", "prev tab")),
		Check:      key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "check now")),
		Protection: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle protection")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp returns key bindings for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Check, k.Protection, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.NextTab, k.PrevTab},
		{k.Check, k.Protection},
		{k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content   lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#F97316"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Footer = lipgloss.NewStyle().Padding(0, 1)
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)

	return s
}

// Options wires the dashboard to its data sources. Any field may be nil;
// the matching feature is then disabled.
type Options struct {
	Store        state.Store
	Events       <-chan state.Event
	Checker      Checker
	History      RunHistory
	Report       report.Config
	CheckTimeout time.Duration
}

// Model is the main application model.
type Model struct {
	state  *AppState
	opts   Options
	keymap KeyMap
	styles Styles

	spinner  components.LoadingSpinner
	gauge    components.Gauge
	viewport viewport.Model

	activeTab TabID
	width     int
	height    int

	showHelp bool
	ready    bool
}

// NewModel initializes a new application model.
func NewModel(opts Options) *Model {
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = DefaultCheckTimeout
	}

	return &Model{
		state:     NewState(),
		opts:      opts,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   components.NewSpinner("Loading usage state..."),
		gauge:     components.NewGauge(),
		viewport:  viewport.New(0, 0),
		activeTab: TabReport,
	}
}

// GetState returns the application state.
func (m *Model) GetState() *AppState {
	return m.state
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick(),
		defaultTickCmd(),
	}

	if m.opts.Store != nil {
		m.state.SetLoadingNotification("Loading...")
		cmds = append(cmds, loadStateCmd(m.opts.Store))
	} else {
		m.state.SetLoading("initial", false)
	}
	if m.opts.Events != nil {
		cmds = append(cmds, waitForStateEventCmd(m.opts.Events))
	}
	if m.opts.History != nil {
		m.state.SetLoading("history", true)
		cmds = append(cmds, loadHistoryCmd(m.opts.History))
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.KeyMsg:
		if cmd := m.handleKeyMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	m.syncContent()

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case StateLoadedMsg:
		m.state.SetUsage(msg.State)
		m.stopLoading("initial")
	case StateChangedMsg:
		cmds = append(cmds, m.handleStateChanged(msg)...)
	case CheckFinishedMsg:
		cmds = append(cmds, m.handleCheckFinished(msg)...)
	case ProtectionToggledMsg:
		cmds = append(cmds, m.handleProtectionToggled(msg)...)
	case HistoryLoadedMsg:
		m.stopLoading("history")
		if msg.Err != nil {
			cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Failed to load history: %v", msg.Err)))
		} else {
			m.state.SetRuns(msg.Runs)
		}
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
	case StopLoadingMsg:
		m.stopLoading(msg.Resource)
	case TabSwitchMsg:
		m.switchTab(msg.Tab)
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) stopLoading(resource string) {
	m.state.SetLoading(resource, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) handleStateChanged(msg StateChangedMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if msg.Event.Error != nil {
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Failed to reload state: %v", msg.Event.Error)))
	} else {
		prev := m.state.GetUsage()
		m.state.SetUsage(msg.Event.State)
		m.stopLoading("initial")
		if msg.Event.State.LastCheck != prev.LastCheck && !m.state.IsChecking() {
			cmds = append(cmds, notifyInfoCmd("State file updated"))
		}
		if m.opts.History != nil {
			cmds = append(cmds, loadHistoryCmd(m.opts.History))
		}
	}
	if m.opts.Events != nil {
		cmds = append(cmds, waitForStateEventCmd(m.opts.Events))
	}
	return cmds
}

func (m *Model) handleCheckFinished(msg CheckFinishedMsg) []tea.Cmd {
	var cmds []tea.Cmd
	m.stopLoading("check")

	if msg.Err != nil {
		// The monitor stamped the error into the state; show it even if
		// no watcher is attached.
		m.state.SetUsage(msg.State)
		cmds = append(cmds, notifyErrorCmd("Check failed: "+msg.Err.Error()))
	} else {
		wasProtected := m.state.GetUsage().ProtectionMode
		m.state.SetUsage(msg.State)
		cmds = append(cmds, notifySuccessCmd(fmt.Sprintf("Check complete: %s this week", m.opts.Report.Dual(msg.State.CurrentWeek.TotalCost))))
		if msg.State.ProtectionMode && !wasProtected {
			cmds = append(cmds, notifyWarningCmd("Protection mode ENABLED"))
		}
	}

	if m.opts.History != nil {
		cmds = append(cmds, loadHistoryCmd(m.opts.History))
	}
	return cmds
}

func (m *Model) handleProtectionToggled(msg ProtectionToggledMsg) []tea.Cmd {
	m.stopLoading("protection")
	if msg.Err != nil {
		return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Failed to change protection mode: %v", msg.Err))}
	}
	m.state.SetProtection(msg.Enabled)
	if msg.Enabled {
		return []tea.Cmd{notifyWarningCmd("Protection mode ENABLED")}
	}
	return []tea.Cmd{notifySuccessCmd("Protection mode DISABLED")}
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	// navbar (2 lines) and footer (1 line)
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-3, 0)
}

func (m *Model) switchTab(tab TabID) {
	if tab < 0 || tab >= tabCount {
		return
	}
	m.activeTab = tab
	m.viewport.GotoTop()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keymap.Escape):
		m.showHelp = false
		return nil

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabReport)
		return nil

	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabDaily)
		return nil

	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabDetail)
		return nil

	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabHistory)
		return nil

	case key.Matches(msg, m.keymap.NextTab):
		if !m.showHelp {
			m.switchTab((m.activeTab + 1) % tabCount)
		}
		return nil

	case key.Matches(msg, m.keymap.PrevTab):
		if !m.showHelp {
			m.switchTab((m.activeTab - 1 + tabCount) % tabCount)
		}
		return nil

	case key.Matches(msg, m.keymap.Check):
		if m.opts.Checker == nil || m.state.IsChecking() {
			return nil
		}
		m.state.SetLoading("check", true)
		m.state.SetLoadingNotification("Checking usage...")
		return runCheckCmd(m.opts.Checker, m.opts.CheckTimeout)

	case key.Matches(msg, m.keymap.Protection):
		if m.opts.Checker == nil {
			return nil
		}
		m.state.SetLoading("protection", true)
		return toggleProtectionCmd(m.opts.Checker, !m.state.GetUsage().ProtectionMode)
	}

	// Remaining keys scroll the content.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// syncContent renders the active tab into the viewport.
func (m *Model) syncContent() {
	if !m.ready {
		return
	}
	content := m.styles.Content.Render(m.renderTab())

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.width, "…")
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) renderTab() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, max(m.width-4, 0), max(m.height-5, 0))
	}

	usage := m.state.GetUsage()
	cfg := m.opts.Report

	switch m.activeTab {
	case TabDaily:
		return report.DailyBreakdown(usage, cfg)
	case TabDetail:
		return report.SevenDaysDetail(usage, cfg)
	case TabHistory:
		return report.History(m.state.GetRuns(), cfg)
	default:
		return m.renderGauge(usage) + "\n\n" + report.Text(usage, cfg)
	}
}

func (m *Model) renderGauge(usage models.UsageState) string {
	pct := 0.0
	if m.opts.Report.WeeklyBudget > 0 {
		pct = usage.CurrentWeek.TotalCost / m.opts.Report.WeeklyBudget * 100
	}
	return m.gauge.View(pct, "Weekly budget", max(m.width-6, 40))
}

// View renders the application UI.
func (m *Model) View() string {
	if !m.ready {
		return m.styles.Content.Render(m.spinner.ViewWithLabel())
	}

	var b strings.Builder
	b.WriteString(m.renderNavbar())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		return m.overlayToasts(mainView, toasts)
	}

	return mainView
}

func (m *Model) renderNavbar() string {
	var tabs []string
	for t := TabID(0); t < tabCount; t++ {
		if t == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", t+1, t)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", t+1, t)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderFooter() string {
	var parts []string
	for _, b := range m.keymap.ShortHelp() {
		parts = append(parts, styles.HelpKeyStyle.Render(b.Help().Key)+" "+styles.HelpDescStyle.Render(b.Help().Desc))
	}
	footer := strings.Join(parts, styles.HelpSeparatorStyle.Render(" • "))
	return m.styles.Footer.Render(ansi.Truncate(footer, max(m.width-2, 0), "…"))
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if w := lipgloss.Width(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, styles.ToastStyle.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)
	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		if w := lipgloss.Width(mainLine); w < startX {
			mainLines[lineIdx] = mainLine + strings.Repeat(" ", startX-w) + toastLine
		} else {
			mainLines[lineIdx] = ansi.Truncate(mainLine, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	lines := []string{m.styles.Title.Render("Keyboard Shortcuts"), ""}

	sections := []string{"Tabs", "Navigation", "Actions", "General"}
	for i, group := range m.keymap.FullHelp() {
		lines = append(lines, m.styles.Highlight.Render(sections[i]))
		for _, b := range group {
			lines = append(lines, fmt.Sprintf("  %-12s %s", b.Help().Key, b.Help().Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, "  j/k, ↑/↓     Scroll", "")
	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}
