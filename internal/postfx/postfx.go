package postfx

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
)

// Func is one buffer-level filter. Filters run after the per-pixel
// sweep and before rasterization, each making a single pass over the
// cell grid. Time enables the animated variants; passing 0 reproduces
// the static behavior.
type Func func(buf core.Buffer, args Args, t float64)

// Args carries the filter's keyword arguments.
type Args map[string]float64

func (a Args) get(name string, def float64) float64 {
	if v, ok := a[name]; ok {
		return v
	}
	return def
}

// Threshold binarizes char indices: everything at or above the cut
// becomes full density, the rest empty.
func Threshold(buf core.Buffer, args Args, t float64) {
	h := buf.Height()
	w := buf.Width()
	threshIdx := int(args.get("threshold", 0.5) * 9)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if buf[y][x].CharIdx >= threshIdx {
				buf[y][x].CharIdx = 9
			} else {
				buf[y][x].CharIdx = 0
			}
		}
	}
}

// Invert flips char indices and colors.
func Invert(buf core.Buffer, args Args, t float64) {
	h := buf.Height()
	w := buf.Width()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := &buf[y][x]
			cell.CharIdx = 9 - cell.CharIdx
			cell.Fg = core.RGB{R: 255 - cell.Fg.R, G: 255 - cell.Fg.G, B: 255 - cell.Fg.B}
			if cell.Bg != nil {
				cell.Bg = &core.RGB{R: 255 - cell.Bg.R, G: 255 - cell.Bg.G, B: 255 - cell.Bg.B}
			}
		}
	}
}

// EdgeDetect replaces char indices with Sobel gradient magnitude.
func EdgeDetect(buf core.Buffer, args Args, t float64) {
	h := buf.Height()
	w := buf.Width()
	if h < 3 || w < 3 {
		return
	}

	vals := make([][]int, h)
	for y := 0; y < h; y++ {
		vals[y] = make([]int, w)
		for x := 0; x < w; x++ {
			vals[y][x] = buf[y][x].CharIdx
		}
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := (vals[y-1][x+1] + 2*vals[y][x+1] + vals[y+1][x+1]) -
				(vals[y-1][x-1] + 2*vals[y][x-1] + vals[y+1][x-1])
			gy := (vals[y+1][x-1] + 2*vals[y+1][x] + vals[y+1][x+1]) -
				(vals[y-1][x-1] + 2*vals[y-1][x] + vals[y-1][x+1])
			mag := abs(gx) + abs(gy)
			if mag > 9 {
				mag = 9
			}
			buf[y][x].CharIdx = mag
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Scanlines darkens every Nth row; scroll_speed slides the pattern
// down over time.
func Scanlines(buf core.Buffer, args Args, t float64) {
	h := buf.Height()
	w := buf.Width()
	spacing := int(args.get("spacing", 4))
	if spacing < 1 {
		spacing = 1
	}
	factor := 1.0 - args.get("darkness", 0.3)

	offset := 0
	if scroll := args.get("scroll_speed", 0); scroll > 0 {
		offset = int(t*scroll*float64(spacing)) % spacing
	}

	for y := 0; y < h; y++ {
		if (y-offset+spacing*h)%spacing != 0 {
			continue
		}
		for x := 0; x < w; x++ {
			cell := &buf[y][x]
			cell.Fg = scaleRGB(cell.Fg, factor)
			cell.CharIdx = int(float64(cell.CharIdx) * factor)
			if cell.CharIdx < 0 {
				cell.CharIdx = 0
			}
		}
	}
}

// Vignette darkens toward the corners; pulse parameters breathe the
// strength over time.
func Vignette(buf core.Buffer, args Args, t float64) {
	h := buf.Height()
	w := buf.Width()
	if h == 0 || w == 0 {
		return
	}

	strength := args.get("strength", 0.5)
	if pulseSpeed := args.get("pulse_speed", 0); pulseSpeed > 0 {
		strength += args.get("pulse_amp", 0) * math.Sin(t*pulseSpeed*mathx.Tau)
	}

	cx := float64(w) / 2.0
	cy := float64(h) / 2.0
	maxDist := math.Sqrt(cx*cx + cy*cy)
	if maxDist == 0 {
		return
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nd := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			factor := math.Max(0.0, 1.0-strength*nd*nd)
			cell := &buf[y][x]
			cell.Fg = scaleRGB(cell.Fg, factor)
			cell.CharIdx = int(float64(cell.CharIdx) * factor)
			if cell.CharIdx < 0 {
				cell.CharIdx = 0
			}
		}
	}
}

// Pixelate averages char index and color over square blocks; pulse
// parameters vary the block size over time.
func Pixelate(buf core.Buffer, args Args, t float64) {
	h := buf.Height()
	w := buf.Width()
	blockSize := int(args.get("block_size", 4))
	if pulseSpeed := args.get("pulse_speed", 0); pulseSpeed > 0 {
		blockSize += int(args.get("pulse_amp", 0) * math.Sin(t*pulseSpeed*mathx.Tau))
	}
	if blockSize < 1 {
		blockSize = 1
	}

	for by := 0; by < h; by += blockSize {
		for bx := 0; bx < w; bx += blockSize {
			totalIdx, totalR, totalG, totalB, count := 0, 0, 0, 0, 0
			for dy := 0; dy < blockSize && by+dy < h; dy++ {
				for dx := 0; dx < blockSize && bx+dx < w; dx++ {
					cell := buf[by+dy][bx+dx]
					totalIdx += cell.CharIdx
					totalR += int(cell.Fg.R)
					totalG += int(cell.Fg.G)
					totalB += int(cell.Fg.B)
					count++
				}
			}
			if count == 0 {
				continue
			}
			avg := core.Cell{
				CharIdx: totalIdx / count,
				Fg: core.RGB{
					R: uint8(totalR / count),
					G: uint8(totalG / count),
					B: uint8(totalB / count),
				},
			}
			for dy := 0; dy < blockSize && by+dy < h; dy++ {
				for dx := 0; dx < blockSize && bx+dx < w; dx++ {
					buf[by+dy][bx+dx] = avg
				}
			}
		}
	}
}

// ColorShift rotates hue with a luminance-preserving YIQ-style matrix;
// drift_speed keeps the rotation moving.
func ColorShift(buf core.Buffer, args Args, t float64) {
	h := buf.Height()
	w := buf.Width()

	hueShift := args.get("hue_shift", 0.1)
	if drift := args.get("drift_speed", 0); drift > 0 {
		hueShift += t * drift
	}

	angle := hueShift * mathx.Tau
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := &buf[y][x]
			r := float64(cell.Fg.R)
			g := float64(cell.Fg.G)
			b := float64(cell.Fg.B)

			nr := r*(0.299+0.701*cosA+0.168*sinA) +
				g*(0.587-0.587*cosA+0.330*sinA) +
				b*(0.114-0.114*cosA-0.497*sinA)
			ng := r*(0.299-0.299*cosA-0.328*sinA) +
				g*(0.587+0.413*cosA+0.035*sinA) +
				b*(0.114-0.114*cosA+0.292*sinA)
			nb := r*(0.299-0.300*cosA+1.250*sinA) +
				g*(0.587-0.588*cosA-1.050*sinA) +
				b*(0.114+0.886*cosA-0.203*sinA)

			cell.Fg = core.RGB{
				R: uint8(mathx.Clamp(nr, 0, 255)),
				G: uint8(mathx.Clamp(ng, 0, 255)),
				B: uint8(mathx.Clamp(nb, 0, 255)),
			}
		}
	}
}

func scaleRGB(c core.RGB, factor float64) core.RGB {
	return core.RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Registry maps filter names to their functions.
var Registry = map[string]Func{
	"threshold":   Threshold,
	"invert":      Invert,
	"edge_detect": EdgeDetect,
	"scanlines":   Scanlines,
	"vignette":    Vignette,
	"pixelate":    Pixelate,
	"color_shift": ColorShift,
}

// Spec is one step of a configured postfx chain.
type Spec struct {
	Type string
	Args Args
}

// Apply runs a chain of filters in order, skipping unknown names.
func Apply(buf core.Buffer, chain []Spec, t float64) {
	for _, spec := range chain {
		if fn, ok := Registry[spec.Type]; ok {
			fn(buf, spec.Args, t)
		}
	}
}
