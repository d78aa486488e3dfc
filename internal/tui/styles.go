package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout
	Container lipgloss.Style

	// Header
	Title   lipgloss.Style
	Session lipgloss.Style
	Spinner lipgloss.Style

	// Clock face
	Clock lipgloss.Style

	// Done slot with the show class applied
	DoneVisible lipgloss.Style

	// Status colors
	StatusIdle     lipgloss.Style
	StatusRunning  lipgloss.Style
	StatusFinished lipgloss.Style

	Error lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 4),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Session: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Spinner: lipgloss.NewStyle().
		Foreground(lipgloss.Color("82")),

	Clock: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220")).
		Padding(1, 2),

	DoneVisible: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("114")).
		Padding(0, 1),

	StatusIdle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	StatusRunning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	StatusFinished: lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
}
