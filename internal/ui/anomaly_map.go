package ui

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// errRemoteImage marks image references that are not inline data URIs
var errRemoteImage = errors.New("image is not an inline data URI")

// anomalyMap holds the decoded map for the current result and its rendering
type anomalyMap struct {
	ref   string      // Image reference as received from the service
	img   image.Image // nil when ref could not be decoded
	err   error
	cols  int
	rows  int
	cells string // cached half-block rendering for cols x rows
}

// newAnomalyMap decodes ref; decoding failures are kept for display, not returned
func newAnomalyMap(ref string) *anomalyMap {
	img, err := decodeDataURI(ref)
	return &anomalyMap{ref: ref, img: img, err: err}
}

// render returns the map drawn into at most maxCols x maxRows terminal cells
func (a *anomalyMap) render(maxCols, maxRows int) string {
	if a.img == nil {
		if errors.Is(a.err, errRemoteImage) {
			return mutedStyle.Render("Anomaly map: " + truncate(a.ref, maxCols-14))
		}
		return mutedStyle.Render(fmt.Sprintf("Anomaly map unavailable: %v", a.err))
	}

	b := a.img.Bounds()
	cols, rows := fitCells(b.Dx(), b.Dy(), maxCols, maxRows)
	if cols != a.cols || rows != a.rows || a.cells == "" {
		a.cols, a.rows = cols, rows
		a.cells = renderHalfBlocks(a.img, cols, rows)
	}
	return a.cells
}

// decodeDataURI decodes "data:[<mediatype>][;base64],<data>" into an image
func decodeDataURI(ref string) (image.Image, error) {
	if !strings.HasPrefix(ref, "data:") {
		return nil, errRemoteImage
	}

	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return nil, errors.New("malformed data URI: missing ','")
	}
	meta, payload := ref[len("data:"):comma], ref[comma+1:]

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		payload = strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == ' ' {
				return -1
			}
			return r
		}, payload)
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return nil, fmt.Errorf("decoding base64 payload: %w", err)
			}
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("unescaping payload: %w", err)
		}
		data = []byte(unescaped)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// fitCells returns the largest cell grid that fits maxCols x maxRows while
// keeping the image aspect ratio. Each cell covers one pixel column and two
// pixel rows of the scaled image.
func fitCells(width, height, maxCols, maxRows int) (int, int) {
	if width <= 0 || height <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}

	cols := maxCols
	rows := (cols*height + width) / (2 * width)
	if rows > maxRows {
		rows = maxRows
		cols = (rows * 2 * width) / height
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// renderHalfBlocks draws img as cols x rows "▀" cells, the foreground carrying
// the upper pixel and the background the lower one.
func renderHalfBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	b := img.Bounds()
	sample := func(col, sub int) string {
		x := b.Min.X + (2*col+1)*b.Dx()/(2*cols)
		y := b.Min.Y + (2*sub+1)*b.Dy()/(4*rows)
		c, ok := colorful.MakeColor(img.At(x, y))
		if !ok {
			return "#000000"
		}
		return c.Hex()
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := sample(col, 2*row), sample(col, 2*row+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// truncate shortens s to n display cells, never splitting a rune
func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	return ansi.Truncate(s, n, "...")
}
