package sprite

import (
	"image"

	"github.com/san-kum/glyphgen/internal/core"
)

// TextSprite draws a string with an optional outer glow. With glow the
// halo is painted first at shrinking offsets, then the body on top;
// without glow the body is thickened to simulate weight.
type TextSprite struct {
	Base
	Text      string
	Size      int
	GlowColor *core.RGB
	Glow      bool
}

func NewTextSprite(text string, x, y float64, size int, c core.RGB) *TextSprite {
	if size < 1 {
		size = 1
	}
	return &TextSprite{
		Base: NewBase(x, y, c),
		Text: text,
		Size: size,
	}
}

// WithGlow enables the halo pass in the given color.
func (s *TextSprite) WithGlow(c core.RGB) *TextSprite {
	s.Glow = true
	s.GlowColor = &c
	return s
}

func (s *TextSprite) Draw(img *image.RGBA, t float64) {
	if !s.Visible {
		return
	}
	res := s.applyAnims(t)
	color := s.resolveColor(res)

	x := int(s.X)
	y := int(s.Y + res.yOffset)
	size := s.Size
	if scaled := int(float64(size) * res.scale); scaled >= 1 {
		size = scaled
	}

	if s.Glow && s.GlowColor != nil {
		glow := *s.GlowColor
		if res.color != nil {
			glow = *res.color
		}
		for off := size + 3; off > 0; off-- {
			for _, dx := range [3]int{-off, 0, off} {
				for _, dy := range [3]int{-off, 0, off} {
					if dx == 0 && dy == 0 {
						continue
					}
					drawString(img, x+dx, y+dy, s.Text, glow, 1)
				}
			}
		}
		drawString(img, x, y, s.Text, color, size)
		return
	}
	drawString(img, x, y, s.Text, color, size)
}
