package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	queryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 1)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	dirTag = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	execTag = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	pathTag = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Italic(true).
			Padding(0, 1)
)
