package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/palette"
)

// BufferPreview renders an effect buffer as colored terminal text,
// sampling the grid down to cols x rows. Each cell becomes one glyph
// from the gradient, colored with its foreground.
func BufferPreview(buf core.Buffer, gradient string, cols, rows int) string {
	bw, bh := buf.Width(), buf.Height()
	if bw == 0 || bh == 0 || cols <= 0 || rows <= 0 {
		return ""
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := buf[y*bh/rows][x*bw/cols]
			ch := palette.CharAtValue(float64(cell.CharIdx)/9.0, gradient)
			if ch == ' ' {
				b.WriteByte(' ')
				continue
			}
			color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", cell.Fg.R, cell.Fg.G, cell.Fg.B))
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(ch)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// BufferPreviewMono renders the buffer without color escapes, useful
// for logs and tests.
func BufferPreviewMono(buf core.Buffer, gradient string, cols, rows int) string {
	bw, bh := buf.Width(), buf.Height()
	if bw == 0 || bh == 0 || cols <= 0 || rows <= 0 {
		return ""
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := buf[y*bh/rows][x*bw/cols]
			b.WriteRune(palette.CharAtValue(float64(cell.CharIdx)/9.0, gradient))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// DriftChart plots one modulated parameter series over time.
func DriftChart(name string, series []float64, width, height int) string {
	if len(series) < 2 {
		return ""
	}
	graph := asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(name),
	)
	return graph
}

// ParamsTable formats a visual-parameter map with aligned bars, keys
// sorted for stable output.
func ParamsTable(params map[string]float64, barWidth int) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := params[k]
		bar := ""
		if v >= 0 && v <= 1 {
			bar = " " + ProgressBar(v, barWidth)
		}
		b.WriteString(fmt.Sprintf("  %-16s %6.3f%s\n", k, v, bar))
	}
	return b.String()
}
