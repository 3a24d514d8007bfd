package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/palette"
)

// Wave stacks several horizontal sine waves at staggered frequencies
// and speeds.
type Wave struct{}

func NewWave() *Wave { return &Wave{} }

type waveState struct {
	waveCount   int
	amplitude   float64
	frequencies []float64
	speeds      []float64
	colorScheme string
}

func (e *Wave) Pre(ctx *core.Context, buf core.Buffer) any {
	waveCount := int(ctx.Param("wave_count", 5))
	if waveCount < 1 {
		waveCount = 1
	}
	baseFrequency := ctx.Param("frequency", 0.1)
	baseSpeed := ctx.Param("speed", 1.0)

	// Staggered multipliers keep the interference from repeating.
	frequencies := make([]float64, waveCount)
	speeds := make([]float64, waveCount)
	for i := 0; i < waveCount; i++ {
		frequencies[i] = baseFrequency * (1.0 + float64(i)*0.4)
		speeds[i] = baseSpeed * (1.0 - float64(i%2)*0.3 + float64(i%3)*0.2)
	}

	return &waveState{
		waveCount:   waveCount,
		amplitude:   ctx.Param("amplitude", 1.0),
		frequencies: frequencies,
		speeds:      speeds,
		colorScheme: ctx.StrParam("color_scheme", "ocean"),
	}
}

func (e *Wave) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*waveState)
	t := ctx.Time

	waveSum := 0.0
	for i := 0; i < s.waveCount; i++ {
		waveSum += math.Sin(float64(y)*s.frequencies[i]+t*s.speeds[i]) * s.amplitude
	}

	value := mathx.Clamp01((waveSum/(float64(s.waveCount)*s.amplitude) + 1.0) / 2.0)

	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      palette.ValueToColor(value, s.colorScheme),
	}
}

func (e *Wave) Post(ctx *core.Context, buf core.Buffer, state any) {}
