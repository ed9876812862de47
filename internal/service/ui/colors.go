package ui

import "github.com/charmbracelet/lipgloss"

// ANSI colors only, so the CLI follows the terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// TableHeaderStyle is used by listing commands.
	TableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)
