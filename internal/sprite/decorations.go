package sprite

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/glyphgen/internal/core"
)

// BorderSet names the box-drawing glyphs of one line style.
type BorderSet struct {
	H, V                   string
	TL, TR, BL, BR         string
	LeftT, RightT          string
	TopT, BottomT          string
	Cross                  string
}

var borderSets = map[string]BorderSet{
	"light": {
		H: "─", V: "│", TL: "┌", TR: "┐", BL: "└", BR: "┘",
		LeftT: "├", RightT: "┤", TopT: "┬", BottomT: "┴", Cross: "┼",
	},
	"heavy": {
		H: "━", V: "┃", TL: "┏", TR: "┓", BL: "┗", BR: "┛",
		LeftT: "┣", RightT: "┫", TopT: "┳", BottomT: "┻", Cross: "╋",
	},
	"double": {
		H: "═", V: "║", TL: "╔", TR: "╗", BL: "╚", BR: "╝",
		LeftT: "╠", RightT: "╣", TopT: "╦", BottomT: "╩", Cross: "╬",
	},
	"round": {
		H: "─", V: "│", TL: "╭", TR: "╮", BL: "╰", BR: "╯",
		LeftT: "├", RightT: "┤", TopT: "┬", BottomT: "┴", Cross: "┼",
	},
	"dash_light": {
		H: "┄", V: "┆", TL: "┌", TR: "┐", BL: "└", BR: "┘",
		LeftT: "├", RightT: "┤", TopT: "┬", BottomT: "┴", Cross: "┼",
	},
	"dash_heavy": {
		H: "┅", V: "┇", TL: "┏", TR: "┓", BL: "┗", BR: "┛",
		LeftT: "┣", RightT: "┫", TopT: "┳", BottomT: "┻", Cross: "╋",
	},
}

// GetBorderSet looks up a box-drawing style, falling back to light.
func GetBorderSet(name string) BorderSet {
	if bs, ok := borderSets[name]; ok {
		return bs
	}
	return borderSets["light"]
}

// DecoParams carries everything a decoration builder needs.
type DecoParams struct {
	Chars         []string
	Warmth        float64
	Color         core.RGB
	Width, Height int
	Margin        int // defaults to 40
}

type decoBuilder func(p DecoParams, rng *rand.Rand) []*TextSprite

var decoBuilders = map[string]decoBuilder{
	"none":       decoNone,
	"corners":    decoCorners,
	"edges":      decoEdges,
	"scattered":  decoScattered,
	"minimal":    decoMinimal,
	"frame":      decoFrame,
	"grid_lines": decoGridLines,
	"circuit":    decoCircuit,
}

// DecorationStyles lists the known styles, sorted.
func DecorationStyles() []string {
	names := make([]string, 0, len(decoBuilders))
	for name := range decoBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildDecorations expands a decoration style into sprites.
func BuildDecorations(style string, p DecoParams, rng *rand.Rand) ([]*TextSprite, error) {
	builder, ok := decoBuilders[style]
	if !ok {
		return nil, fmt.Errorf("unknown decoration style %q (available: %v)", style, DecorationStyles())
	}
	if p.Margin == 0 {
		p.Margin = 40
	}
	if len(p.Chars) == 0 {
		p.Chars = []string{"+"}
	}
	return builder(p, rng), nil
}

// randint is inclusive on both ends; a degenerate range collapses to
// lo so small outputs never panic mid-render.
func randint(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func uniformIn(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func decoSprite(text string, x, y int, c core.RGB, anims ...Anim) *TextSprite {
	s := NewTextSprite(text, float64(x), float64(y), 1, c)
	s.Anims = anims
	return s
}

func decoNone(DecoParams, *rand.Rand) []*TextSprite { return nil }

func decoCorners(p DecoParams, _ *rand.Rand) []*TextSprite {
	m := p.Margin
	positions := [4][2]int{
		{m, m}, {p.Width - m, m}, {m, p.Height - m}, {p.Width - m, p.Height - m},
	}
	breath := Anim{Type: "breathing", Amp: 0.02, Speed: 0.5}
	out := make([]*TextSprite, 0, 4)
	for i, pos := range positions {
		ch := p.Chars[i%len(p.Chars)]
		out = append(out, decoSprite(ch, pos[0], pos[1], p.Color, breath))
	}
	return out
}

func decoEdges(p DecoParams, _ *rand.Rand) []*TextSprite {
	m := p.Margin
	var out []*TextSprite
	for i := 0; i < 4; i++ {
		ch := p.Chars[i%len(p.Chars)]
		for j := 0; j < 3; j++ {
			t := float64(j+1) / 4
			var x, y int
			switch i {
			case 0:
				x, y = int(t*float64(p.Width)), m
			case 1:
				x, y = int(t*float64(p.Width)), p.Height-m
			case 2:
				x, y = m, int(t*float64(p.Height))
			default:
				x, y = p.Width-m, int(t*float64(p.Height))
			}
			out = append(out, decoSprite(ch, x, y, p.Color))
		}
	}
	return out
}

func decoScattered(p DecoParams, rng *rand.Rand) []*TextSprite {
	m := p.Margin
	count := randint(rng, 8, 16)
	out := make([]*TextSprite, 0, count)
	for i := 0; i < count; i++ {
		ch := p.Chars[rng.Intn(len(p.Chars))]
		x := randint(rng, m, p.Width-m)
		y := randint(rng, m, p.Height-m)
		out = append(out, decoSprite(ch, x, y, p.Color, Anim{
			Type:  "floating",
			Amp:   uniformIn(rng, 1, 4),
			Speed: uniformIn(rng, 0.3, 1.0),
			Phase: uniformIn(rng, 0, 6.28),
		}))
	}
	return out
}

func decoMinimal(p DecoParams, _ *rand.Rand) []*TextSprite {
	m := p.Margin
	return []*TextSprite{
		decoSprite(p.Chars[0], m, m, p.Color),
		decoSprite(p.Chars[len(p.Chars)-1], p.Width-m, p.Height-m, p.Color),
	}
}

func decoFrame(p DecoParams, rng *rand.Rand) []*TextSprite {
	inset := p.Margin
	var bs BorderSet
	switch {
	case p.Warmth > 0.6:
		bs = GetBorderSet("heavy")
	case p.Warmth > 0.3:
		bs = GetBorderSet([]string{"light", "round"}[rng.Intn(2)])
	default:
		bs = GetBorderSet([]string{"dash_light", "round"}[rng.Intn(2)])
	}

	breath := Anim{Type: "breathing", Amp: 0.02, Speed: 0.4}
	out := []*TextSprite{
		decoSprite(bs.TL, inset, inset, p.Color, breath),
		decoSprite(bs.TR, p.Width-inset, inset, p.Color, breath),
		decoSprite(bs.BL, inset, p.Height-inset, p.Color, breath),
		decoSprite(bs.BR, p.Width-inset, p.Height-inset, p.Color, breath),
	}

	hCount := randint(rng, 5, 12)
	for i := 0; i < hCount; i++ {
		t := float64(i+1) / float64(hCount+1)
		px := inset + int(t*float64(p.Width-2*inset))
		out = append(out,
			decoSprite(bs.H, px, inset, p.Color),
			decoSprite(bs.H, px, p.Height-inset, p.Color))
	}

	vCount := randint(rng, 4, 10)
	for i := 0; i < vCount; i++ {
		t := float64(i+1) / float64(vCount+1)
		py := inset + int(t*float64(p.Height-2*inset))
		out = append(out,
			decoSprite(bs.V, inset, py, p.Color),
			decoSprite(bs.V, p.Width-inset, py, p.Color))
	}

	if rng.Float64() < 0.5 {
		for i := randint(rng, 1, 3); i > 0; i-- {
			side := rng.Intn(4)
			t := uniformIn(rng, 0.2, 0.8)
			var px, py int
			var ch string
			switch side {
			case 0:
				px, py, ch = inset+int(t*float64(p.Width-2*inset)), inset, bs.TopT
			case 1:
				px, py, ch = inset+int(t*float64(p.Width-2*inset)), p.Height-inset, bs.BottomT
			case 2:
				px, py, ch = inset, inset+int(t*float64(p.Height-2*inset)), bs.LeftT
			default:
				px, py, ch = p.Width-inset, inset+int(t*float64(p.Height-2*inset)), bs.RightT
			}
			out = append(out, decoSprite(ch, px, py, p.Color))
		}
	}

	return out
}

func dimColor(c core.RGB, by uint8) core.RGB {
	sub := func(v, d uint8) uint8 {
		if v < d {
			return 0
		}
		return v - d
	}
	return core.RGB{R: sub(c.R, by), G: sub(c.G, by), B: sub(c.B, by)}
}

func decoGridLines(p DecoParams, rng *rand.Rand) []*TextSprite {
	m := p.Margin
	bs := GetBorderSet([]string{"light", "heavy", "dash_light"}[rng.Intn(3)])

	gridCols := randint(rng, 2, 5)
	gridRows := randint(rng, 2, 5)
	dim := dimColor(p.Color, 40)

	var out []*TextSprite
	for c := 0; c < gridCols; c++ {
		t := float64(c+1) / float64(gridCols+1)
		px := int(t * float64(p.Width))
		for n := randint(rng, 3, 8); n > 0; n-- {
			out = append(out, decoSprite(bs.V, px, randint(rng, m, p.Height-m), dim))
		}
	}
	for r := 0; r < gridRows; r++ {
		t := float64(r+1) / float64(gridRows+1)
		py := int(t * float64(p.Height))
		for n := randint(rng, 3, 8); n > 0; n-- {
			out = append(out, decoSprite(bs.H, randint(rng, m, p.Width-m), py, dim))
		}
	}
	for c := 0; c < gridCols; c++ {
		for r := 0; r < gridRows; r++ {
			if rng.Float64() < 0.6 {
				px := int(float64(c+1) / float64(gridCols+1) * float64(p.Width))
				py := int(float64(r+1) / float64(gridRows+1) * float64(p.Height))
				out = append(out, decoSprite(bs.Cross, px, py, p.Color,
					Anim{Type: "breathing", Amp: 0.03, Speed: 0.3}))
			}
		}
	}
	return out
}

func decoCircuit(p DecoParams, rng *rand.Rand) []*TextSprite {
	m := p.Margin
	bs := GetBorderSet([]string{"light", "heavy"}[rng.Intn(2)])

	nodeCount := randint(rng, 4, 10)
	trace := dimColor(p.Color, 20)

	// Nodes sit a double margin in, clamped so small outputs still
	// leave a valid placement band.
	mx := min(m*2, p.Width/2)
	my := min(m*2, p.Height/2)

	var out []*TextSprite
	for n := 0; n < nodeCount; n++ {
		nx := randint(rng, mx, p.Width-mx)
		ny := randint(rng, my, p.Height-my)

		nodeChars := []string{bs.Cross, bs.LeftT, bs.RightT, bs.TopT, bs.BottomT}
		out = append(out, decoSprite(nodeChars[rng.Intn(len(nodeChars))], nx, ny, p.Color,
			Anim{Type: "breathing", Amp: 0.02, Speed: 0.6}))

		traceLen := randint(rng, 2, 6)
		horizontal := rng.Intn(2) == 0
		sign := 1

		for t := 1; t <= traceLen; t++ {
			sign = []int{-1, 1}[rng.Intn(2)]
			px, py, ch := nx, ny, bs.V
			if horizontal {
				px, ch = nx+sign*t*20, bs.H
			} else {
				py = ny + sign*t*20
			}
			if m < px && px < p.Width-m && m < py && py < p.Height-m {
				out = append(out, decoSprite(ch, px, py, trace))
			}
		}

		endX, endY := nx, ny
		if horizontal {
			endX = nx + sign*(traceLen+1)*20
		} else {
			endY = ny + sign*(traceLen+1)*20
		}
		if m < endX && endX < p.Width-m && m < endY && endY < p.Height-m {
			endChars := []string{"·", "•", "◦", "○", bs.TL, bs.TR, bs.BL, bs.BR}
			out = append(out, decoSprite(endChars[rng.Intn(len(endChars))], endX, endY, trace))
		}
	}
	return out
}
