package sprite

import (
	"image"

	"github.com/san-kum/glyphgen/internal/core"
)

// FallbackKaomoji maps a mood name to a face. Lookup falls through to
// neutral for unknown moods.
var FallbackKaomoji = map[string]string{
	"bull":         "(^o^)",
	"happy":        "(◠‿◠)",
	"euphoria":     "\\(≧▽≦)/",
	"excitement":   "(*^_^*)",
	"love":         "(♡˙︶˙♡)",
	"proud":        "(•̀ᴗ•́)و",
	"relaxed":      "(´ー`)",
	"bear":         "(;_;)",
	"sad":          "(ಥ_ಥ)",
	"angry":        "(╬ Ò﹏Ó)",
	"anxiety":      "(´；ω；`)",
	"fear":         "Σ(°△°|||)",
	"panic":        "(×_×;）",
	"disappointed": "(ー_ー)!!",
	"lonely":       "(◞‸◟)",
	"neutral":      "(._.) ",
	"confused":     "(？_？)",
	"surprised":    "Σ(ﾟДﾟ)",
	"sleepy":       "(=_=) zzZ",
	"thinking":     "(˘_˘ )",
	"embarrassed":  "(〃▽〃)",
	"bored":        "(￢_￢)",
}

// KaomojiForMood returns the face for a mood, neutral when unknown.
func KaomojiForMood(mood string) string {
	if face, ok := FallbackKaomoji[mood]; ok {
		return face
	}
	return FallbackKaomoji["neutral"]
}

// KaomojiSprite draws a face with a dark outline behind it. The
// outline defaults to the body color at a third of each channel.
type KaomojiSprite struct {
	Base
	Face         string
	DrawScale    int
	OutlineColor *core.RGB
}

func NewKaomojiSprite(face string, x, y float64, scale int, c core.RGB) *KaomojiSprite {
	if scale < 1 {
		scale = 1
	}
	return &KaomojiSprite{
		Base:      NewBase(x, y, c),
		Face:      face,
		DrawScale: scale,
	}
}

func (s *KaomojiSprite) Draw(img *image.RGBA, t float64) {
	if !s.Visible {
		return
	}
	res := s.applyAnims(t)
	color := s.resolveColor(res)

	outline := core.RGB{R: color.R / 3, G: color.G / 3, B: color.B / 3}
	if s.OutlineColor != nil {
		outline = *s.OutlineColor
	}

	x := int(s.X)
	y := int(s.Y + res.yOffset)
	scale := int(float64(s.DrawScale) * res.scale)
	if scale < 1 {
		scale = 1
	}

	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, x+dx*scale, y+dy*scale, s.Face, outline, 1)
		}
	}
	for i := 0; i < scale; i++ {
		drawString(img, x+i, y+i, s.Face, color, 1)
	}
}
