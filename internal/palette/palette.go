// Package palette maps scalar values to ASCII glyphs and colors.
package palette

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
)

// Gradients run from empty/sparse to dense. Every entry is indexed by
// rune, not byte, so multi-byte glyphs are safe.
var Gradients = map[string][]rune{
	"classic": []rune(" .:-=+*#%@"),
	"smooth":  []rune(" .':;!>+*%@#█"),
	"matrix":  []rune(" .:-=+*@#"),
	"plasma":  []rune("$?01▄abc+-><:."),
	"default": []rune(" .:-=+*#%@"),

	"blocks":       []rune(" ░▒▓█"),
	"blocks_fine":  []rune(" ·░▒▓█"),
	"blocks_ultra": []rune(" ·⠁░▒▓▓█"),

	"box_density":  []rune(" ·┄─┈━░▒▓█"),
	"box_vertical": []rune(" ·┆│┊┃░▒▓█"),
	"box_cross":    []rune(" ·+┼╋╬░▒▓█"),

	"dots_density": []rune(" ·∙•◦○◎◉●█"),
	"geometric":    []rune(" ·▪□▫▮■▓█"),

	"braille_density": []rune(" ⠁⠃⠇⡇⣇⣧⣷⣿"),

	"tech":    []rune(" .·:;+*░▒▓█"),
	"cyber":   []rune(" ·-=≡░▒▓█"),
	"organic": []rune(" ·∙•○◎●▒▓█"),
	"noise":   []rune(" ·⠁⠃░▒▓▓█"),
	"circuit": []rune(" ·┄─├┼╋▒▓█"),
	"glitch":  []rune(" ·░▒▓█▀▄▌▐"),
}

// CharAtValue maps a [0,1] value into the named gradient. Unknown
// names fall back to the default gradient.
func CharAtValue(value float64, gradientName string) rune {
	gradient, ok := Gradients[gradientName]
	if !ok {
		gradient = Gradients["default"]
	}
	value = mathx.Clamp01(value)
	idx := int(value * float64(len(gradient)-1))
	if idx < 0 {
		idx = 0
	}
	if idx > len(gradient)-1 {
		idx = len(gradient) - 1
	}
	return gradient[idx]
}

// GradientNames lists the glyph gradients, sorted.
func GradientNames() []string {
	names := make([]string, 0, len(Gradients))
	for name := range Gradients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemeNames lists the discrete color schemes.
var SchemeNames = []string{"heat", "rainbow", "cool", "matrix", "plasma", "ocean", "fire"}

// ValueToColor maps a [0,1] value through a named discrete scheme.
// Unknown schemes fall back to heat.
func ValueToColor(value float64, scheme string) core.RGB {
	value = mathx.Clamp01(value)
	switch scheme {
	case "rainbow":
		return rainbowColor(value)
	case "cool":
		return coolColor(value)
	case "matrix":
		return matrixColor(value)
	case "plasma":
		return plasmaColor(value)
	case "ocean":
		return oceanColor(value)
	case "fire":
		return fireColor(value)
	default:
		return heatColor(value)
	}
}

// warmthHue is the piecewise-linear warmth → hue curve used by the
// continuous mapping: cold blue at 0, red at 1.
var warmthHue = [][2]float64{
	{0.0, 0.60}, {0.15, 0.55}, {0.3, 0.50}, {0.45, 0.40},
	{0.55, 0.30}, {0.7, 0.15}, {0.8, 0.10}, {0.9, 0.03}, {1.0, 0.00},
}

// ValueToColorContinuous replaces the discrete schemes with a smooth
// warmth/saturation parameterization.
func ValueToColorContinuous(value, warmth, saturation float64) core.RGB {
	value = mathx.Clamp01(value)
	w := mathx.Clamp01(warmth)

	baseHue := warmthHue[len(warmthHue)-1][1]
	for i := 0; i < len(warmthHue)-1; i++ {
		w0, h0 := warmthHue[i][0], warmthHue[i][1]
		w1, h1 := warmthHue[i+1][0], warmthHue[i+1][1]
		if w <= w1 {
			t := 0.0
			if w1 > w0 {
				t = (w - w0) / (w1 - w0)
			}
			baseHue = h0 + (h1-h0)*t
			break
		}
	}

	hue := math.Mod(baseHue+value*0.1, 1.0)

	// Extremes desaturate so pure black and white stay neutral.
	valueSatFactor := 1.0 - math.Pow(2.0*value-1.0, 4)
	effSat := mathx.Clamp01(saturation * valueSatFactor)

	return HSV(hue, effSat, value)
}

// HSV converts h,s,v in [0,1] to an 8-bit RGB triple.
func HSV(h, s, v float64) core.RGB {
	c := colorful.Hsv(math.Mod(h, 1.0)*360.0, s, v)
	r, g, b := c.RGB255()
	return core.RGB{R: r, G: g, B: b}
}

func heatColor(t float64) core.RGB {
	switch {
	case t < 0.25:
		return core.RGB{R: uint8(t * 4 * 180)}
	case t < 0.5:
		return core.RGB{R: uint8(180 + (t-0.25)*4*75)}
	case t < 0.75:
		return core.RGB{R: 255, G: uint8((t - 0.5) * 4 * 165)}
	default:
		return core.RGB{R: 255, G: 255, B: uint8((t - 0.75) * 4 * 255)}
	}
}

func rainbowColor(t float64) core.RGB {
	h := math.Mod(t, 1.0)
	i := int(h * 6)
	f := h*6 - float64(i)

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = 1, f, 0
	case 1:
		r, g, b = 1-f, 1, 0
	case 2:
		r, g, b = 0, 1, f
	case 3:
		r, g, b = 0, 1-f, 1
	case 4:
		r, g, b = f, 0, 1
	default:
		r, g, b = 1, 0, 1-f
	}
	return core.RGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}

func coolColor(t float64) core.RGB {
	if t < 0.5 {
		return core.RGB{G: uint8(t * 2 * 255), B: 255}
	}
	return core.RGB{R: uint8((t - 0.5) * 2 * 255), G: 255, B: 255}
}

func matrixColor(t float64) core.RGB {
	if t < 0.5 {
		return core.RGB{G: uint8(t * 2 * 128)}
	}
	return core.RGB{G: uint8(128 + (t-0.5)*2*127)}
}

func plasmaColor(t float64) core.RGB {
	// Hue sweep with a brightness pulse riding on it.
	h := math.Mod(t, 1.0)
	v := 0.5 + 0.5*math.Sin(t*math.Pi)
	return HSV(h, 1.0, v)
}

func oceanColor(t float64) core.RGB {
	switch {
	case t < 0.3:
		f := t / 0.3
		return core.RGB{R: uint8(f * 30), G: uint8(20 + f*80), B: uint8(80 + f*100)}
	case t < 0.6:
		f := (t - 0.3) / 0.3
		return core.RGB{R: uint8(30 + f*50), G: uint8(100 + f*130), B: uint8(180 + f*55)}
	default:
		f := (t - 0.6) / 0.4
		return core.RGB{R: uint8(80 + f*175), G: uint8(230 + f*25), B: uint8(235 + f*20)}
	}
}

func fireColor(t float64) core.RGB {
	switch {
	case t < 0.2:
		f := t / 0.2
		return core.RGB{R: uint8(f * 150)}
	case t < 0.45:
		f := (t - 0.2) / 0.25
		return core.RGB{R: uint8(150 + f*105), G: uint8(f * 80)}
	case t < 0.7:
		f := (t - 0.45) / 0.25
		return core.RGB{R: 255, G: uint8(80 + f*175), B: uint8(f * 30)}
	default:
		f := (t - 0.7) / 0.3
		return core.RGB{R: 255, G: 255, B: uint8(30 + f*225)}
	}
}
