package effects

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
	"github.com/san-kum/glyphgen/internal/palette"
)

// NoiseField renders raw value noise, optionally stacked as FBM or
// turbulence, scrolling horizontally over time.
type NoiseField struct{}

func NewNoiseField() *NoiseField { return &NoiseField{} }

type noiseFieldState struct {
	noise      *noise.ValueNoise
	scale      float64
	octaves    int
	lacunarity float64
	gain       float64
	animate    bool
	speed      float64
	turbulence bool
}

func (e *NoiseField) Pre(ctx *core.Context, buf core.Buffer) any {
	return &noiseFieldState{
		noise:      noise.New(ctx.Seed),
		scale:      ctx.Param("scale", 0.05),
		octaves:    int(ctx.Param("octaves", 4)),
		lacunarity: ctx.Param("lacunarity", 2.0),
		gain:       ctx.Param("gain", 0.5),
		animate:    ctx.Param("animate", 1) != 0,
		speed:      ctx.Param("speed", 0.5),
		turbulence: ctx.Param("turbulence", 0) != 0,
	}
}

func (e *NoiseField) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*noiseFieldState)

	u := float64(x) / float64(ctx.Width)
	v := float64(y) / float64(ctx.Height)
	if ctx.Height > 0 {
		u *= float64(ctx.Width) / float64(ctx.Height)
	}

	t := 0.0
	if s.animate {
		t = ctx.Time * s.speed
	}

	nx := u/s.scale + t
	ny := v / s.scale

	var value float64
	switch {
	case s.octaves == 1:
		value = s.noise.Sample(nx, ny)
	case s.turbulence:
		value = s.noise.Turbulence(nx, ny, s.octaves, s.lacunarity, s.gain)
	default:
		value = s.noise.FBM(nx, ny, s.octaves, s.lacunarity, s.gain)
	}
	value = mathx.Clamp01(value)

	scheme := "plasma"
	if s.turbulence {
		scheme = "fire"
	}

	colorValue := mathx.Mod(value+t*0.05, 1.0)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      palette.ValueToColor(colorValue, scheme),
	}
}

func (e *NoiseField) Post(ctx *core.Context, buf core.Buffer, state any) {}
