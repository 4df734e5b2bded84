package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/anomaly-terminal/internal/models"
	"github.com/ngmaloney/anomaly-terminal/internal/palette"
)

func TestFormatTemperature(t *testing.T) {
	v := -1.234
	if got := formatTemperature(&v); got != "-1.23 °C" {
		t.Errorf("formatTemperature(-1.234) = %q", got)
	}
	if got := formatTemperature(nil); got != "-- °C" {
		t.Errorf("formatTemperature(nil) = %q", got)
	}
}

func TestRenderLegend_Labels(t *testing.T) {
	lo, hi := -1.23, 2.45
	out := renderLegend(60, &lo, &hi)

	maxAt := strings.Index(out, "2.45 °C")
	zeroAt := strings.Index(out, "0 °C")
	minAt := strings.Index(out, "-1.23 °C")
	if maxAt < 0 || zeroAt < 0 || minAt < 0 {
		t.Fatalf("legend missing labels: %q", out)
	}
	if !(maxAt < zeroAt && zeroAt < minAt) {
		t.Errorf("labels out of order: max@%d zero@%d min@%d", maxAt, zeroAt, minAt)
	}
	if w := lipgloss.Width(out); w != 60 {
		t.Errorf("legend width = %d, want 60", w)
	}
}

func TestLabelColor(t *testing.T) {
	if got := labelColor(palette.At(0.5)); got != "#000000" {
		t.Errorf("label on neutral = %s, want black", got)
	}
	if got := labelColor(palette.At(1)); got != "#FFFFFF" {
		t.Errorf("label on cold = %s, want white", got)
	}
}

func TestRenderDock(t *testing.T) {
	window := models.BuildDayWindow(time.Date(2024, time.August, 14, 12, 0, 0, 0, time.UTC))
	out := renderDock(window, 2, true)

	for _, want := range []string{"Wed", "14", "Fri", "16", "Tue", "20"} {
		if !strings.Contains(out, want) {
			t.Errorf("dock missing %q", want)
		}
	}
}
