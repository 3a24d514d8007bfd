package palette

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
)

// Scheme is a named palette generated from continuous parameters,
// keyed by role.
type Scheme struct {
	Bg        core.RGB
	Primary   core.RGB
	Secondary core.RGB
	Accent    core.RGB
	Glow      core.RGB
	Outline   core.RGB
	Dim       core.RGB
}

// ColorSpace generates colors from warmth/saturation/brightness
// instead of picking one of the discrete schemes.
type ColorSpace struct{}

// Curve of warmth → base hue with more anchors than the per-pixel
// mapping: violet at the cold end, wrapping to magenta past red.
var warmthHueCurve = [][2]float64{
	{0.0, 0.75},
	{0.10, 0.65},
	{0.20, 0.58},
	{0.30, 0.50},
	{0.40, 0.40},
	{0.50, 0.30},
	{0.60, 0.18},
	{0.70, 0.12},
	{0.80, 0.05},
	{0.90, 0.00},
	{1.0, 0.92},
}

func (cs ColorSpace) WarmthToHue(warmth float64) float64 {
	w := mathx.Clamp01(warmth)
	for i := 0; i < len(warmthHueCurve)-1; i++ {
		w0, h0 := warmthHueCurve[i][0], warmthHueCurve[i][1]
		w1, h1 := warmthHueCurve[i+1][0], warmthHueCurve[i+1][1]
		if w <= w1 {
			t := 0.0
			if w1 > w0 {
				t = (w - w0) / (w1 - w0)
			}
			return mathx.Mix(h0, h1, t)
		}
	}
	return warmthHueCurve[len(warmthHueCurve)-1][1]
}

// Sample picks a color for a [0,1] value with the given temperature
// and saturation. hueSpread shifts hue slightly with value.
func (cs ColorSpace) Sample(value, warmth, saturation, brightness, hueSpread float64) core.RGB {
	value = mathx.Clamp01(value)

	baseHue := cs.WarmthToHue(warmth)
	hue := math.Mod(baseHue+value*hueSpread, 1.0)

	valueSatFactor := 1.0 - math.Pow(2.0*value-1.0, 4)
	effSat := mathx.Clamp01(saturation * valueSatFactor)
	effVal := mathx.Clamp01(value * brightness)

	return HSV(hue, effSat, effVal)
}

// Generate builds a full role palette from continuous parameters.
func (cs ColorSpace) Generate(warmth, saturation, brightness, contrast float64) Scheme {
	baseHue := cs.WarmthToHue(warmth)

	bgV := mathx.Mix(0.02, 0.08+brightness*0.15, 1.0-contrast)
	bg := HSV(baseHue, saturation*0.3, bgV)

	primary := HSV(baseHue, saturation, mathx.Mix(0.7, 1.0, brightness))

	secHue := math.Mod(baseHue+0.08+0.07*(1.0-warmth), 1.0)
	secondary := HSV(secHue, saturation*0.9, mathx.Mix(0.5, 0.85, brightness))

	var accent core.RGB
	if saturation > 0.5 {
		accHue := math.Mod(baseHue+0.4+0.2*(1.0-warmth), 1.0)
		accent = HSV(accHue, saturation*0.5, 0.95)
	} else {
		accent = core.RGB{R: 240, G: 240, B: 240}
	}

	glow := HSV(baseHue, saturation*0.4, math.Min(1.0, brightness+0.2))
	outline := HSV(baseHue, saturation*0.6, 0.3)
	dim := HSV(baseHue, saturation*0.4, 0.15)

	return Scheme{
		Bg:        bg,
		Primary:   primary,
		Secondary: secondary,
		Accent:    accent,
		Glow:      glow,
		Outline:   outline,
		Dim:       dim,
	}
}

func lerpRGB(a, b core.RGB, t float64) core.RGB {
	return core.RGB{
		R: uint8(mathx.Mix(float64(a.R), float64(b.R), t)),
		G: uint8(mathx.Mix(float64(a.G), float64(b.G), t)),
		B: uint8(mathx.Mix(float64(a.B), float64(b.B), t)),
	}
}

// InterpolateSchemes blends two palettes role by role.
func InterpolateSchemes(a, b Scheme, t float64) Scheme {
	return Scheme{
		Bg:        lerpRGB(a.Bg, b.Bg, t),
		Primary:   lerpRGB(a.Primary, b.Primary, t),
		Secondary: lerpRGB(a.Secondary, b.Secondary, t),
		Accent:    lerpRGB(a.Accent, b.Accent, t),
		Glow:      lerpRGB(a.Glow, b.Glow, t),
		Outline:   lerpRGB(a.Outline, b.Outline, t),
		Dim:       lerpRGB(a.Dim, b.Dim, t),
	}
}
