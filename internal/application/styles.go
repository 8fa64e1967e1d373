package application

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#0B6BCB")
	muted   = lipgloss.Color("#7B8794")
	danger  = lipgloss.Color("#E53935")
	success = lipgloss.Color("#2E7D32")

	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	chosenStyle     = lipgloss.NewStyle().Foreground(muted)
	labelStyle      = lipgloss.NewStyle().Bold(true)
	noticeStyle     = lipgloss.NewStyle().Italic(true).Foreground(muted)
	errorStyle      = lipgloss.NewStyle().Foreground(danger)
	statusStyle     = lipgloss.NewStyle().Foreground(success)
	helpStyle       = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	codeStyle       = lipgloss.NewStyle().Bold(true).Foreground(accent).Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2)
	incompleteStyle = lipgloss.NewStyle().Foreground(danger).Italic(true)
)
