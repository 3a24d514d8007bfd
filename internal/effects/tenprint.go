package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
)

// TenPrint recreates the Commodore 64 one-liner maze: each grid cell
// draws either a / or \ diagonal, chosen by a spatial noise hash, with
// the columns sliding sideways over time.
type TenPrint struct{}

func NewTenPrint() *TenPrint { return &TenPrint{} }

type tenPrintState struct {
	cellSize    float64
	probability float64
	speed       float64
	noise       *noise.ValueNoise
}

func (e *TenPrint) Pre(ctx *core.Context, buf core.Buffer) any {
	return &tenPrintState{
		cellSize:    ctx.Param("cell_size", 6),
		probability: ctx.Param("probability", 0.5),
		speed:       ctx.Param("speed", 1.0),
		noise:       noise.New(ctx.Seed),
	}
}

func (e *TenPrint) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*tenPrintState)
	t := ctx.Time * s.speed

	shift := t * s.cellSize * 0.5
	cx := int(math.Floor((float64(x) + shift) / s.cellSize))
	cy := int(math.Floor(float64(y) / s.cellSize))

	lx := mathx.Fract((float64(x) + shift) / s.cellSize)
	ly := mathx.Fract(float64(y) / s.cellSize)

	isBackslash := s.noise.Sample(float64(cx)*0.73, float64(cy)*0.91) < s.probability

	var dist float64
	if isBackslash {
		dist = math.Abs(lx - ly)
	} else {
		dist = math.Abs(lx + ly - 1.0)
	}
	dist = mathx.Clamp01(dist * 1.414)

	// Cube the inverted distance to sharpen the line.
	value := 1.0 - dist
	value = value * value * value

	colorValue := mathx.Fract(value*0.8 + float64(cx+cy)*0.05 + t*0.02)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      colorFor(colorValue, ctx, "matrix"),
	}
}

func (e *TenPrint) Post(ctx *core.Context, buf core.Buffer, state any) {}
