package effects

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
)

// ModXor builds Sierpinski-like fractal textures from integer bitwise
// operations folded through a modulus. Stacking layers with different
// moduli gives interference patterns.
type ModXor struct{}

func NewModXor() *ModXor { return &ModXor{} }

type modXorState struct {
	modulus int
	op      func(a, b int) int
	layers  int
	speed   float64
	zoom    float64
}

var bitOps = map[string]func(a, b int) int{
	"xor": func(a, b int) int { return a ^ b },
	"and": func(a, b int) int { return a & b },
	"or":  func(a, b int) int { return a | b },
}

func (e *ModXor) Pre(ctx *core.Context, buf core.Buffer) any {
	modulus := int(ctx.Param("modulus", 16))
	if modulus < 2 {
		modulus = 2
	}
	layers := int(ctx.Param("layers", 1))
	if layers < 1 {
		layers = 1
	} else if layers > 3 {
		layers = 3
	}
	op, ok := bitOps[ctx.StrParam("operation", "xor")]
	if !ok {
		op = bitOps["xor"]
	}

	return &modXorState{
		modulus: modulus,
		op:      op,
		layers:  layers,
		speed:   ctx.Param("speed", 0.5),
		zoom:    ctx.Param("zoom", 1.0),
	}
}

func (e *ModXor) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*modXorState)
	t := ctx.Time * s.speed

	// Zoom about the center, drift with time.
	cx := float64(ctx.Width) / 2.0
	cy := float64(ctx.Height) / 2.0
	sx := int((float64(x)-cx)/s.zoom + cx + t*5.0)
	sy := int((float64(y)-cy)/s.zoom + cy + t*3.0)

	total := 0.0
	for layer := 0; layer < s.layers; layer++ {
		layerMod := s.modulus + layer*7
		if layerMod < 2 {
			layerMod = 2
		}

		lx := sx + layer*17
		if lx < 0 {
			lx = -lx
		}
		ly := sy + layer*13
		if ly < 0 {
			ly = -ly
		}

		result := s.op(lx, ly) % layerMod
		if layerMod > 1 {
			total += float64(result) / float64(layerMod-1)
		}
	}

	value := mathx.Clamp01(total / float64(s.layers))

	colorValue := mathx.Fract(value + t*0.03)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      colorFor(colorValue, ctx, "rainbow"),
	}
}

func (e *ModXor) Post(ctx *core.Context, buf core.Buffer, state any) {}
