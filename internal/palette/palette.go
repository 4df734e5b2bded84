// Package palette maps temperature anomalies onto the warm-neutral-cold
// gradient shared by the map renderer, the legend bar and the demo service.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient stops, warm (positive anomaly) to cold (negative anomaly)
const (
	WarmHex    = "#cc0101"
	NeutralHex = "#ffffff"
	ColdHex    = "#073467"
)

var (
	warm    = mustHex(WarmHex)
	neutral = mustHex(NeutralHex)
	cold    = mustHex(ColdHex)
)

// At returns the gradient colour at position t, 0 = warm, 1 = cold.
// t is clamped to [0, 1].
func At(t float64) colorful.Color {
	t = clamp(t, 0, 1)
	if t < 0.5 {
		return warm.BlendLab(neutral, t*2).Clamped()
	}
	return neutral.BlendLab(cold, (t-0.5)*2).Clamped()
}

// ForValue returns the colour for an anomaly value. Zero is always neutral;
// positive values scale against max and negative values against min.
func ForValue(v, min, max float64) colorful.Color {
	return At(Position(v, min, max))
}

// Position maps an anomaly value onto the gradient axis used by At
func Position(v, min, max float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.5
	case v > 0:
		if max <= 0 {
			return 0
		}
		return 0.5 - 0.5*clamp(v/max, 0, 1)
	case v < 0:
		if min >= 0 {
			return 1
		}
		return 0.5 + 0.5*clamp(v/min, 0, 1)
	}
	return 0.5
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
