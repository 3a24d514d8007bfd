package effects

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
)

// Wobbly applies iterative noise-driven domain warping, then samples a
// final FBM field at the warped coordinates. Gives fluid, organic
// distortion in the style of Quilez's warp articles.
type Wobbly struct{}

func NewWobbly() *Wobbly { return &Wobbly{} }

type wobblyState struct {
	warpAmount float64
	warpFreq   float64
	iterations int
	speed      float64
	noiseX     *noise.ValueNoise
	noiseY     *noise.ValueNoise
	noiseFinal *noise.ValueNoise
}

func (e *Wobbly) Pre(ctx *core.Context, buf core.Buffer) any {
	iterations := int(ctx.Param("iterations", 2))
	if iterations < 1 {
		iterations = 1
	} else if iterations > 3 {
		iterations = 3
	}

	return &wobblyState{
		warpAmount: ctx.Param("warp_amount", 0.4),
		warpFreq:   ctx.Param("warp_freq", 0.03),
		iterations: iterations,
		speed:      ctx.Param("speed", 0.5),
		noiseX:     noise.New(ctx.Seed),
		noiseY:     noise.New(ctx.Seed + 137),
		noiseFinal: noise.New(ctx.Seed + 293),
	}
}

func (e *Wobbly) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*wobblyState)
	t := ctx.Time * s.speed

	px := float64(x) * s.warpFreq
	py := float64(y) * s.warpFreq

	for i := 0; i < s.iterations; i++ {
		fi := float64(i)
		tOffsetX := t*0.7 + fi*1.7
		tOffsetY := t*0.5 + fi*2.3

		dx := s.noiseX.Sample(px+tOffsetX, py+10.0*fi)*2.0 - 1.0
		dy := s.noiseY.Sample(px+10.0*fi, py+tOffsetY)*2.0 - 1.0

		px += dx * s.warpAmount
		py += dy * s.warpAmount
	}

	value := mathx.Clamp01(s.noiseFinal.FBM(px+t*0.1, py+t*0.13, 3, 2.0, 0.5))

	colorValue := mathx.Fract(value + t*0.04)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      colorFor(colorValue, ctx, "ocean"),
	}
}

func (e *Wobbly) Post(ctx *core.Context, buf core.Buffer, state any) {}
