package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for failures
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue
	colorDock    = lipgloss.Color("#2B303B") // Dock background

	// Title bar across the top of the view
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1F2430")).
			Padding(0, 1)

	// Frame around the anomaly map and its loading skeleton
	mapFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	skeletonStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(lipgloss.Color("#262B36"))

	// Day dock
	dockStyle = lipgloss.NewStyle().
			Background(colorDock).
			Padding(0, 1)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D8DEE9")).
			Background(colorDock).
			Padding(0, 2).
			Align(lipgloss.Center)

	activeDayStyle = dayStyle.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Bold(true)

	disabledDayStyle = dayStyle.
				Foreground(lipgloss.Color("#4C566A"))

	// Blocking failure notification
	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorDanger).
			Padding(1, 3)

	noticeTitleStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0, 0, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
