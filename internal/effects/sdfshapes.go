package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/palette"
	"github.com/san-kum/glyphgen/internal/sdf"
	"github.com/san-kum/glyphgen/internal/vec"
)

// SDFShapes smooth-unions a handful of circles or boxes into one
// merged blob field.
type SDFShapes struct{}

func NewSDFShapes() *SDFShapes { return &SDFShapes{} }

type sdfShape struct {
	center vec.Vec2
	radius float64
	phase  float64
}

type sdfShapesState struct {
	shapes     []sdfShape
	shapeType  string
	smoothness float64
	animate    bool
	speed      float64
}

func (e *SDFShapes) Pre(ctx *core.Context, buf core.Buffer) any {
	shapeCount := int(ctx.Param("shape_count", 5))
	radiusMin := ctx.Param("radius_min", 0.05)
	radiusMax := ctx.Param("radius_max", 0.15)

	shapes := make([]sdfShape, shapeCount)
	for i := range shapes {
		shapes[i] = sdfShape{
			center: vec.V2(
				0.2+ctx.Rng.Float64()*0.6,
				0.2+ctx.Rng.Float64()*0.6,
			),
			radius: radiusMin + ctx.Rng.Float64()*(radiusMax-radiusMin),
			phase:  ctx.Rng.Float64() * mathx.Tau,
		}
	}

	return &sdfShapesState{
		shapes:     shapes,
		shapeType:  ctx.StrParam("shape_type", "circle"),
		smoothness: ctx.Param("smoothness", 0.1),
		animate:    ctx.Param("animate", 1) != 0,
		speed:      ctx.Param("speed", 1.0),
	}
}

func (e *SDFShapes) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*sdfShapesState)

	aspect := 1.0
	if ctx.Height > 0 {
		aspect = float64(ctx.Width) / float64(ctx.Height)
	}
	p := vec.V2(float64(x)/float64(ctx.Width)*aspect, float64(y)/float64(ctx.Height))

	t := 0.0
	if s.animate {
		t = ctx.Time * s.speed
	}

	d := math.Inf(1)
	for _, shape := range s.shapes {
		center := shape.center
		if s.animate {
			center = vec.V2(
				shape.center.X+math.Sin(t+shape.phase)*0.1,
				shape.center.Y+math.Cos(t*0.7+shape.phase)*0.1,
			)
		}

		var dShape float64
		if s.shapeType == "box" {
			dShape = sdf.Box(p, center, vec.V2(shape.radius, shape.radius))
		} else {
			dShape = sdf.Circle(p, center, shape.radius)
		}
		d = sdf.SmoothUnion(d, dShape, s.smoothness)
	}

	// Inside maps to 1, outside fades to 0 across a narrow band.
	value := mathx.Clamp01(1.0 - d*5.0)

	colorValue := mathx.Mod(value+t*0.05, 1.0)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      palette.ValueToColor(colorValue, "plasma"),
	}
}

func (e *SDFShapes) Post(ctx *core.Context, buf core.Buffer, state any) {}
