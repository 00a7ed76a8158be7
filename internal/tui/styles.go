package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor   = lipgloss.Color("#ff8c00")
	focusColor    = lipgloss.Color("#8ecae6")
	idleColor     = lipgloss.Color("#56526e")
	recordingRed  = lipgloss.Color("#ef4444")
	userTextColor = lipgloss.Color("#fff4d0")

	appTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(focusColor).Padding(0, 1)
	jobBadgeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	affordanceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	currentLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(focusColor)
	selectedItemStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	activeTabStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	inactiveTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	userMessageStyle   = lipgloss.NewStyle().Foreground(userTextColor)
	recordingStyle     = lipgloss.NewStyle().Bold(true).Foreground(recordingRed)
	previewCardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(idleColor).Padding(0, 1)

	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(idleColor)
	focusedPanelStyle = panelStyle.BorderForeground(focusColor)
)
