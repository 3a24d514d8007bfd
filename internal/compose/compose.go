package compose

import (
	"errors"
	"fmt"

	"github.com/san-kum/glyphgen/internal/core"
)

// BlendMode selects the per-channel combine formula.
type BlendMode int

const (
	Add BlendMode = iota
	Multiply
	Screen
	Overlay
)

// ParseBlendMode maps the names used in scene specs.
func ParseBlendMode(name string) (BlendMode, error) {
	switch name {
	case "add", "ADD":
		return Add, nil
	case "multiply", "MULTIPLY":
		return Multiply, nil
	case "screen", "SCREEN":
		return Screen, nil
	case "overlay", "OVERLAY":
		return Overlay, nil
	}
	return Add, fmt.Errorf("unknown blend mode %q (available: ADD, MULTIPLY, SCREEN, OVERLAY)", name)
}

func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

func blendChannel(mode BlendMode, a, b int) int {
	switch mode {
	case Add:
		return a + b
	case Multiply:
		return a * b / 255
	case Screen:
		return 255 - (255-a)*(255-b)/255
	case Overlay:
		if a < 128 {
			return 2 * a * b / 255
		}
		return 255 - 2*(255-a)*(255-b)/255
	}
	return b
}

func blendRGB(mode BlendMode, c1, c2 core.RGB) core.RGB {
	return core.RGB{
		R: clamp255(blendChannel(mode, int(c1.R), int(c2.R))),
		G: clamp255(blendChannel(mode, int(c1.G), int(c2.G))),
		B: clamp255(blendChannel(mode, int(c1.B), int(c2.B))),
	}
}

// mixCells combines two cells: blend the foregrounds, then fade the
// result in over cell A's color by the mix weight. Char indices lerp
// with the same weight. Background keeps whichever side has one,
// mixing when both do.
func mixCells(a, b *core.Cell, mode BlendMode, mix float64) *core.Cell {
	blended := blendRGB(mode, a.Fg, b.Fg)

	out := &core.Cell{
		CharIdx: int(float64(a.CharIdx)*(1-mix) + float64(b.CharIdx)*mix),
		Fg: core.RGB{
			R: lerp8(a.Fg.R, blended.R, mix),
			G: lerp8(a.Fg.G, blended.G, mix),
			B: lerp8(a.Fg.B, blended.B, mix),
		},
	}

	switch {
	case a.Bg != nil && b.Bg != nil:
		out.Bg = &core.RGB{
			R: lerp8(a.Bg.R, b.Bg.R, mix),
			G: lerp8(a.Bg.G, b.Bg.G, mix),
			B: lerp8(a.Bg.B, b.Bg.B, mix),
		}
	case a.Bg != nil:
		out.Bg = a.Bg
	case b.Bg != nil:
		out.Bg = b.Bg
	}

	return out
}

// Composite blends two effects with a fixed mix weight. Nesting a
// composite inside another is rejected: two effects maximum.
type Composite struct {
	A    core.Effect
	B    core.Effect
	Mode BlendMode
	Mix  float64
}

type compositeState struct {
	a any
	b any
}

var errNested = errors.New("composite effects cannot be nested: maximum 2 effects")

func isComposite(e core.Effect) bool {
	switch e.(type) {
	case *Composite, *MaskedComposite:
		return true
	}
	return false
}

func NewComposite(a, b core.Effect, mode BlendMode, mix float64) (*Composite, error) {
	if isComposite(a) || isComposite(b) {
		return nil, errNested
	}
	if mix < 0 {
		mix = 0
	} else if mix > 1 {
		mix = 1
	}
	return &Composite{A: a, B: b, Mode: mode, Mix: mix}, nil
}

func (c *Composite) Pre(ctx *core.Context, buf core.Buffer) any {
	return &compositeState{
		a: c.A.Pre(ctx, buf),
		b: c.B.Pre(ctx, buf),
	}
}

func (c *Composite) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*compositeState)
	cellA := c.A.Main(x, y, ctx, s.a)
	cellB := c.B.Main(x, y, ctx, s.b)
	if cellA == nil {
		return cellB
	}
	if cellB == nil {
		return cellA
	}
	return mixCells(cellA, cellB, c.Mode, c.Mix)
}

func (c *Composite) Post(ctx *core.Context, buf core.Buffer, state any) {
	s := state.(*compositeState)
	c.A.Post(ctx, buf, s.a)
	c.B.Post(ctx, buf, s.b)
}

// MaskedComposite blends two effects with a per-pixel weight read from
// a third mask effect: the mask's char index over 9 is the local mix.
type MaskedComposite struct {
	A    core.Effect
	B    core.Effect
	Mask core.Effect
	Mode BlendMode
}

type maskedState struct {
	a    any
	b    any
	mask any
}

func NewMaskedComposite(a, b, mask core.Effect, mode BlendMode) (*MaskedComposite, error) {
	if isComposite(a) || isComposite(b) {
		return nil, errNested
	}
	return &MaskedComposite{A: a, B: b, Mask: mask, Mode: mode}, nil
}

func (c *MaskedComposite) Pre(ctx *core.Context, buf core.Buffer) any {
	return &maskedState{
		a:    c.A.Pre(ctx, buf),
		b:    c.B.Pre(ctx, buf),
		mask: c.Mask.Pre(ctx, buf),
	}
}

func (c *MaskedComposite) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*maskedState)
	cellA := c.A.Main(x, y, ctx, s.a)
	cellB := c.B.Main(x, y, ctx, s.b)
	if cellA == nil {
		return cellB
	}
	if cellB == nil {
		return cellA
	}

	mix := 0.0
	if maskCell := c.Mask.Main(x, y, ctx, s.mask); maskCell != nil {
		mix = float64(maskCell.CharIdx) / 9.0
	}
	return mixCells(cellA, cellB, c.Mode, mix)
}

func (c *MaskedComposite) Post(ctx *core.Context, buf core.Buffer, state any) {
	s := state.(*maskedState)
	c.A.Post(ctx, buf, s.a)
	c.B.Post(ctx, buf, s.b)
	c.Mask.Post(ctx, buf, s.mask)
}
