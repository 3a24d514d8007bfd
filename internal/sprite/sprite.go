// Package sprite renders the character layer: glow text, kaomoji
// faces and decorations drawn over the upscaled effect image, with
// breathing/floating/color-cycle animation.
package sprite

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/palette"
)

// Breathing returns a scale factor oscillating around 1.
func Breathing(t, amp, speed float64) float64 {
	return 1.0 + amp*math.Sin(t*speed)
}

// Floating returns a vertical pixel offset.
func Floating(t, amp, speed, phase float64) float64 {
	return amp * math.Sin(t*speed+phase)
}

// ColorCycle rotates hue over time.
func ColorCycle(t, baseHue, speed, saturation, value float64) core.RGB {
	hue := math.Mod(baseHue+t*speed, 1.0)
	return palette.HSV(hue, saturation, value)
}

// Anim is one animation track attached to a sprite.
type Anim struct {
	Type       string // breathing, floating, color_cycle
	Amp        float64
	Speed      float64
	Phase      float64
	BaseHue    float64
	Saturation float64
	Value      float64
}

// Base carries the shared sprite state. Breathing tracks multiply into
// the scale, floating tracks sum into the y offset, and the last color
// cycle wins.
type Base struct {
	X, Y    float64
	Scale   float64
	Color   core.RGB
	Visible bool
	Anims   []Anim
}

func NewBase(x, y float64, c core.RGB) Base {
	return Base{X: x, Y: y, Scale: 1.0, Color: c, Visible: true}
}

type animResult struct {
	scale   float64
	yOffset float64
	color   *core.RGB
}

func (b *Base) applyAnims(t float64) animResult {
	res := animResult{scale: b.Scale}
	for _, a := range b.Anims {
		switch a.Type {
		case "breathing":
			amp := a.Amp
			if amp == 0 {
				amp = 0.05
			}
			speed := a.Speed
			if speed == 0 {
				speed = 2.0
			}
			res.scale *= Breathing(t, amp, speed)
		case "floating":
			amp := a.Amp
			if amp == 0 {
				amp = 20.0
			}
			speed := a.Speed
			if speed == 0 {
				speed = 1.0
			}
			res.yOffset += Floating(t, amp, speed, a.Phase)
		case "color_cycle":
			sat := a.Saturation
			if sat == 0 {
				sat = 1.0
			}
			val := a.Value
			if val == 0 {
				val = 1.0
			}
			speed := a.Speed
			if speed == 0 {
				speed = 1.0
			}
			c := ColorCycle(t, a.BaseHue, speed, sat, val)
			res.color = &c
		}
	}
	return res
}

func (b *Base) resolveColor(res animResult) core.RGB {
	if res.color != nil {
		return *res.color
	}
	return b.Color
}

// drawString paints text with the bitmap face, thickened by drawing
// the string weight times with one-pixel offsets.
func drawString(img *image.RGBA, x, y int, text string, c core.RGB, weight int) {
	if weight < 1 {
		weight = 1
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}),
		Face: basicfont.Face7x13,
	}
	for dx := 0; dx < weight; dx++ {
		for dy := 0; dy < weight; dy++ {
			d.Dot = fixed.P(x+dx, y+dy+basicfont.Face7x13.Ascent)
			d.DrawString(text)
		}
	}
}
