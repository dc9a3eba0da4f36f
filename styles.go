package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW        = 7  // width of each step column in characters
	labelVisualW = 6  // visual width of qubit label area
	barW         = 16 // width of a probability bar
	logRows      = 6  // measurement log lines shown
)

// Lipgloss styles used across the TUI.
var (
	circuitStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bb9af7")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9e64")).
			Bold(true)

	targetSelectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bb9af7")).
				Bold(true)

	activeGateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Bold(true)

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	barZeroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7aa2f7"))

	barOneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	entangleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7"))

	menuSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ff9e64"))

	menuNormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))

	stateStyles = map[string]lipgloss.Style{
		"idle":      dimStyle,
		"running":   barOneStyle.Bold(true),
		"paused":    activeGateStyle,
		"completed": gateStyle,
	}
)
