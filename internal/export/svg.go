// Package export writes render results as SVG, either as a colored
// glyph grid or as braille dot clouds, plus parameter drift charts.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/palette"
	"github.com/san-kum/glyphgen/internal/viz"
)

const svgBackground = "#0a0a0a"

// BufferToSVG renders an effect buffer as a grid of colored text
// glyphs. cellSize is the pixel size of one character cell.
func BufferToSVG(buf core.Buffer, gradient, scheme string, cellSize float64) string {
	w, h := buf.Width(), buf.Height()
	if w == 0 || h == 0 {
		return ""
	}

	width := float64(w) * cellSize
	height := float64(h) * cellSize

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="%.1f" text-anchor="middle">
`, width, height, width, height, svgBackground, cellSize))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := buf[y][x]
			v := float64(cell.CharIdx) / 9.0
			ch := palette.CharAtValue(v, gradient)
			if ch == ' ' {
				continue
			}

			c := cell.Fg
			if c.R == 0 && c.G == 0 && c.B == 0 {
				c = palette.ValueToColor(v, scheme)
			}

			cx := float64(x)*cellSize + cellSize/2
			cy := float64(y)*cellSize + cellSize*0.8
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#%02x%02x%02x">%s</text>
`, cx, cy, c.R, c.G, c.B, escapeGlyph(ch)))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a braille canvas to an SVG dot cloud.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}
	if fill == "" {
		fill = "#00ff00"
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, svgBackground, fill))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// DriftToSVG charts a parameter drift series as an SVG path, sample
// index on the x axis.
func DriftToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}
	if strokeColor == "" {
		strokeColor = "#00d7ff"
	}

	minV, maxV := series[0], series[0]
	for _, v := range series {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}

	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, v := range series {
		x := float64(i) / float64(len(series)-1) * float64(width)
		y := float64(height) - (v-minV)/rangeV*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func escapeGlyph(r rune) string {
	switch r {
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '&':
		return "&amp;"
	}
	return string(r)
}
