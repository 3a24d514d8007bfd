package effects

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
)

// Flame is the Doom fire: heat injected along the bottom row rises with
// a random sideways drift and decays, leaving ragged flame tongues. The
// heat map persists on the effect across frames.
type Flame struct {
	heatMap []float64
	width   int
	height  int
	noise   *noise.ValueNoise
}

func NewFlame() *Flame { return &Flame{} }

const flameMaxHeat = 50.0

type flameState struct {
	heatMap []float64
}

func (e *Flame) Pre(ctx *core.Context, buf core.Buffer) any {
	if e.heatMap == nil || e.width != ctx.Width || e.height != ctx.Height {
		e.width = ctx.Width
		e.height = ctx.Height
		e.heatMap = make([]float64, e.width*e.height)
		e.noise = noise.New(ctx.Seed)
	}

	intensity := ctx.Param("intensity", 1.0)
	t := ctx.Time * 0.5

	// Inject heat along the bottom row.
	lastRow := e.width * (e.height - 1)
	for x := 0; x < e.width; x++ {
		noiseVal := e.noise.Sample(float64(x)*0.05, t)
		heat := noiseVal*40*intensity + ctx.Rng.Float64()*10*intensity
		if heat > flameMaxHeat {
			heat = flameMaxHeat
		}
		e.heatMap[lastRow+x] = heat
	}

	// Propagate upward with random drift and decay.
	for y := e.height - 2; y >= 0; y-- {
		for x := 0; x < e.width; x++ {
			srcX := x + ctx.Rng.Intn(3) - 1
			if srcX < 0 {
				srcX = 0
			} else if srcX > e.width-1 {
				srcX = e.width - 1
			}

			srcHeat := e.heatMap[srcX+(y+1)*e.width]
			decay := ctx.Rng.Float64()*2 + 0.5

			heat := srcHeat - decay
			if heat < 0 {
				heat = 0
			}
			e.heatMap[x+y*e.width] = heat
		}
	}

	return &flameState{heatMap: e.heatMap}
}

func (e *Flame) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*flameState)
	heat := s.heatMap[x+y*ctx.Width]

	if heat < 1 {
		return &core.Cell{CharIdx: 0, Fg: core.RGB{}}
	}

	charIdx := int(mathx.Clamp(mathx.MapRange(heat, 0, flameMaxHeat, 0, 9), 0, 9))
	heatNorm := mathx.Clamp01(heat / flameMaxHeat)

	return &core.Cell{
		CharIdx: charIdx,
		Fg:      colorFor(heatNorm, ctx, "heat"),
	}
}

func (e *Flame) Post(ctx *core.Context, buf core.Buffer, state any) {}
