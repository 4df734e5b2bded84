package demoservice

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"
	"math/rand"

	"github.com/ngmaloney/anomaly-terminal/internal/palette"
)

// Grid size of the synthetic anomaly field (2.5 degree cells)
const (
	gridWidth  = 144
	gridHeight = 72
)

// Field is a synthetic sea surface temperature anomaly grid in °C
type Field struct {
	Width  int
	Height int
	Values []float64 // row-major, Height rows of Width values
	Min    float64
	Max    float64
}

type blob struct {
	x, y   float64 // centre in grid units
	radius float64
	amp    float64
	drift  float64 // grid cells per day, eastward
}

// Generate builds the field for dayIndex. The same seed and day always yield
// the same field; consecutive days drift so the maps visibly evolve.
func Generate(seed int64, dayIndex int) Field {
	rng := rand.New(rand.NewSource(seed))

	blobs := make([]blob, 9)
	for i := range blobs {
		blobs[i] = blob{
			x:      rng.Float64() * gridWidth,
			y:      gridHeight*0.15 + rng.Float64()*gridHeight*0.7,
			radius: 6 + rng.Float64()*14,
			amp:    (rng.Float64()*2 - 1) * 3,
			drift:  rng.Float64()*3 - 1,
		}
	}

	f := Field{
		Width:  gridWidth,
		Height: gridHeight,
		Values: make([]float64, gridWidth*gridHeight),
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}

	day := float64(dayIndex)
	for y := 0; y < gridHeight; y++ {
		// Weaker anomalies toward the poles
		lat := math.Cos((float64(y)/gridHeight - 0.5) * math.Pi)
		for x := 0; x < gridWidth; x++ {
			v := 0.25 * math.Sin(float64(x)/9+day*0.4) * math.Cos(float64(y)/7)
			for _, b := range blobs {
				cx := math.Mod(b.x+b.drift*day, gridWidth)
				dx := math.Abs(float64(x) - cx)
				dx = math.Min(dx, gridWidth-dx)
				dy := float64(y) - b.y
				v += b.amp * math.Exp(-(dx*dx+dy*dy)/(2*b.radius*b.radius))
			}
			v *= lat
			v = math.Round(v*100) / 100

			f.Values[y*gridWidth+x] = v
			f.Min = math.Min(f.Min, v)
			f.Max = math.Max(f.Max, v)
		}
	}

	return f
}

// Image renders the field with the anomaly palette: zero is white, warm
// anomalies red, cold anomalies blue.
func (f Field) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.Set(x, y, palette.ForValue(f.Values[y*f.Width+x], f.Min, f.Max))
		}
	}
	return img
}

// DataURI encodes the rendered field as a base64 PNG data URI
func (f Field) DataURI() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image()); err != nil {
		return "", fmt.Errorf("encoding png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
