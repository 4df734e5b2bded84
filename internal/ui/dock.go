package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/anomaly-terminal/internal/models"
)

// renderDock draws the seven-day selector. While loading every day is drawn
// disabled except the active one.
func renderDock(window models.DayWindow, active int, loading bool) string {
	days := make([]string, 0, len(window))
	for _, day := range window {
		label := fmt.Sprintf("%s\n%d", day.DayName, day.Date)

		style := dayStyle
		switch {
		case day.Index == active:
			style = activeDayStyle
		case loading:
			style = disabledDayStyle
		}
		days = append(days, style.Render(label))
	}

	return dockStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, days...))
}
