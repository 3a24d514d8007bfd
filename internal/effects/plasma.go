package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/palette"
	"github.com/san-kum/glyphgen/internal/vec"
)

// Plasma layers four sine waves (directional, radial, axis-aligned,
// diagonal) into the classic interference pattern.
type Plasma struct{}

func NewPlasma() *Plasma { return &Plasma{} }

type plasmaState struct {
	frequency  float64
	speed      float64
	colorPhase float64
	center     vec.Vec2
	aspect     float64
}

func (e *Plasma) Pre(ctx *core.Context, buf core.Buffer) any {
	aspect := 1.0
	if ctx.Height > 0 {
		aspect = float64(ctx.Width) / float64(ctx.Height)
	}
	return &plasmaState{
		frequency:  ctx.Param("frequency", 0.05),
		speed:      ctx.Param("speed", 1.0),
		colorPhase: ctx.Param("color_phase", 0.0),
		center:     vec.V2(float64(ctx.Width)/2.0, float64(ctx.Height)/2.0),
		aspect:     aspect,
	}
}

func (e *Plasma) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*plasmaState)
	t := ctx.Time * s.speed

	u := float64(x) / float64(ctx.Width) * s.aspect
	v := float64(y) / float64(ctx.Height)
	coord := vec.V2(u, v)

	// Directional wave along a slowly rotating axis.
	direction := vec.V2(math.Sin(t*0.3), math.Cos(t*0.5))
	v1 := math.Sin(vec.Dot(coord, direction)*10.0*s.frequency + t)

	// Radial ripple from the canvas center.
	centerNorm := vec.V2(s.center.X/float64(ctx.Width)*s.aspect, s.center.Y/float64(ctx.Height))
	v2 := math.Cos(coord.Sub(centerNorm).Length()*40.0*s.frequency + t*0.7)

	// Axis-aligned grid interference.
	v3 := (math.Sin(u*10.0*s.frequency+t) + math.Sin(v*13.0*s.frequency+t*0.7)) / 2.0

	// Diagonal distortion wave.
	v4 := math.Sin(math.Sqrt(u*u+v*v)*15.0*s.frequency + t*1.2)

	value := mathx.Clamp01(((v1+v2+v3+v4)/4.0 + 1.0) / 2.0)

	colorValue := mathx.Mod(value+t*0.05+s.colorPhase, 1.0)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      palette.ValueToColor(colorValue, "plasma"),
	}
}

func (e *Plasma) Post(ctx *core.Context, buf core.Buffer, state any) {}
