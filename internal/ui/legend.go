package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ngmaloney/anomaly-terminal/internal/palette"
)

// formatTemperature renders an anomaly bound with two decimals, "--" when absent
func formatTemperature(v *float64) string {
	if v == nil {
		return "-- °C"
	}
	return fmt.Sprintf("%.2f °C", *v)
}

// renderLegend draws the gradient bar labelled max (warm, left), 0 °C
// (centre) and min (cold, right).
func renderLegend(width int, minTemp, maxTemp *float64) string {
	if width < 24 {
		width = 24
	}

	cells := []rune(strings.Repeat(" ", width))
	place := func(label string, at int) {
		r := []rune(label)
		if at < 0 {
			at = 0
		}
		if at+len(r) > width {
			at = width - len(r)
		}
		copy(cells[at:], r)
	}

	maxLabel := formatTemperature(maxTemp)
	zeroLabel := "0 °C"
	minLabel := formatTemperature(minTemp)

	place(maxLabel, 1)
	place(zeroLabel, (width-len([]rune(zeroLabel)))/2)
	place(minLabel, width-len([]rune(minLabel))-1)

	var sb strings.Builder
	for i, r := range cells {
		bg := palette.At(float64(i) / float64(width-1))
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(bg.Hex())).
			Foreground(lipgloss.Color(labelColor(bg)))
		if r != ' ' {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(r)))
	}
	return sb.String()
}

// labelColor picks black text on light gradient cells and white on dark ones
func labelColor(bg colorful.Color) string {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
