package mask

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
)

// Masks are ordinary effects whose char index encodes blend weight:
// 0 means fully effect A, 9 fully effect B. The gray Fg mirrors the
// weight for debug rendering.

func weightCell(t float64) *core.Cell {
	gray := uint8(mathx.Clamp(t*255, 0, 255))
	return &core.Cell{
		CharIdx: int(mathx.Clamp(t*9, 0, 9)),
		Fg:      core.RGB{R: gray, G: gray, B: gray},
	}
}

func softStep(edge, softness, v float64) float64 {
	if softness > 0.001 {
		return mathx.Smoothstep(edge-softness, edge+softness, v)
	}
	if v < edge {
		return 0.0
	}
	return 1.0
}

// HorizontalSplit weights the top against the bottom.
type HorizontalSplit struct{}

type splitState struct {
	split    float64
	softness float64
}

func (m *HorizontalSplit) Pre(ctx *core.Context, buf core.Buffer) any {
	split := ctx.Param("mask_split", 0.5)
	animSpeed := ctx.Param("mask_anim_speed", 0.0)
	if animSpeed > 0 && ctx.Time > 0 {
		split += 0.15 * math.Sin(ctx.Time*animSpeed*mathx.Tau)
		split = mathx.Clamp(split, 0.1, 0.9)
	}
	return &splitState{split: split, softness: ctx.Param("mask_softness", 0.1)}
}

func (m *HorizontalSplit) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*splitState)
	v := float64(y) / math.Max(float64(ctx.Height-1), 1)
	return weightCell(softStep(s.split, s.softness, v))
}

func (m *HorizontalSplit) Post(ctx *core.Context, buf core.Buffer, state any) {}

// VerticalSplit weights the left against the right.
type VerticalSplit struct{}

func (m *VerticalSplit) Pre(ctx *core.Context, buf core.Buffer) any {
	split := ctx.Param("mask_split", 0.5)
	animSpeed := ctx.Param("mask_anim_speed", 0.0)
	if animSpeed > 0 && ctx.Time > 0 {
		split += 0.15 * math.Sin(ctx.Time*animSpeed*mathx.Tau)
		split = mathx.Clamp(split, 0.1, 0.9)
	}
	return &splitState{split: split, softness: ctx.Param("mask_softness", 0.1)}
}

func (m *VerticalSplit) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*splitState)
	u := float64(x) / math.Max(float64(ctx.Width-1), 1)
	return weightCell(softStep(s.split, s.softness, u))
}

func (m *VerticalSplit) Post(ctx *core.Context, buf core.Buffer, state any) {}

// Diagonal splits along a rotatable diagonal axis.
type Diagonal struct{}

type diagonalState struct {
	split    float64
	softness float64
	angle    float64
}

func (m *Diagonal) Pre(ctx *core.Context, buf core.Buffer) any {
	angle := ctx.Param("mask_angle", 0.0)
	animSpeed := ctx.Param("mask_anim_speed", 0.0)
	if animSpeed > 0 && ctx.Time > 0 {
		angle += ctx.Time * animSpeed * 0.5
	}
	return &diagonalState{
		split:    ctx.Param("mask_split", 0.5),
		softness: ctx.Param("mask_softness", 0.15),
		angle:    angle,
	}
}

func (m *Diagonal) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*diagonalState)
	u := float64(x) / math.Max(float64(ctx.Width-1), 1)
	v := float64(y) / math.Max(float64(ctx.Height-1), 1)

	var d float64
	if math.Abs(s.angle) > 0.001 {
		d = (u-0.5)*math.Cos(s.angle) + (v-0.5)*math.Sin(s.angle) + 0.5
	} else {
		d = (u + v) / 2.0
	}
	return weightCell(softStep(s.split, s.softness, d))
}

func (m *Diagonal) Post(ctx *core.Context, buf core.Buffer, state any) {}

// Radial weights the center against the edges.
type Radial struct{}

type radialState struct {
	cx, cy   float64
	radius   float64
	softness float64
	invert   bool
}

func (m *Radial) Pre(ctx *core.Context, buf core.Buffer) any {
	radius := ctx.Param("mask_radius", 0.5)
	animSpeed := ctx.Param("mask_anim_speed", 0.0)
	if animSpeed > 0 && ctx.Time > 0 {
		radius += 0.1 * math.Sin(ctx.Time*animSpeed*mathx.Tau)
		radius = mathx.Clamp(radius, 0.05, 0.9)
	}
	return &radialState{
		cx:       ctx.Param("mask_center_x", 0.5),
		cy:       ctx.Param("mask_center_y", 0.5),
		radius:   radius,
		softness: ctx.Param("mask_softness", 0.15),
		invert:   ctx.Param("mask_invert", 0) != 0,
	}
}

func (m *Radial) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*radialState)
	u := float64(x) / math.Max(float64(ctx.Width-1), 1)
	v := float64(y) / math.Max(float64(ctx.Height-1), 1)

	dist := math.Hypot(u-s.cx, v-s.cy)
	t := softStep(s.radius, s.softness, dist)
	if s.invert {
		t = 1.0 - t
	}
	return weightCell(t)
}

func (m *Radial) Post(ctx *core.Context, buf core.Buffer, state any) {}

// Noise thresholds drifting fbm into organic blobs.
type Noise struct{}

type noiseMaskState struct {
	noise      *noise.ValueNoise
	scale      float64
	octaves    int
	threshold  float64
	softness   float64
	timeOffset float64
}

func (m *Noise) Pre(ctx *core.Context, buf core.Buffer) any {
	seedOffset := int64(ctx.Param("mask_seed_offset", 777))
	animSpeed := ctx.Param("mask_anim_speed", 0.0)
	timeOffset := 0.0
	if animSpeed > 0 {
		timeOffset = ctx.Time * animSpeed * 10.0
	}
	return &noiseMaskState{
		noise:      noise.New(ctx.Seed + seedOffset),
		scale:      ctx.Param("mask_noise_scale", 0.05),
		octaves:    int(ctx.Param("mask_noise_octaves", 3)),
		threshold:  ctx.Param("mask_threshold", 0.5),
		softness:   ctx.Param("mask_softness", 0.15),
		timeOffset: timeOffset,
	}
}

func (m *Noise) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*noiseMaskState)
	val := s.noise.FBM(
		float64(x)*s.scale+s.timeOffset,
		float64(y)*s.scale+s.timeOffset*0.7,
		s.octaves, 2.0, 0.5,
	)
	return weightCell(softStep(s.threshold, s.softness, val))
}

func (m *Noise) Post(ctx *core.Context, buf core.Buffer, state any) {}

// SDF thresholds a signed distance shape (circle, box or ring).
type SDF struct{}

type sdfMaskState struct {
	shape     string
	cx, cy    float64
	size      float64
	softness  float64
	invert    bool
	thickness float64
}

func (m *SDF) Pre(ctx *core.Context, buf core.Buffer) any {
	size := ctx.Param("mask_sdf_size", 0.3)
	animSpeed := ctx.Param("mask_anim_speed", 0.0)
	if animSpeed > 0 && ctx.Time > 0 {
		size += 0.08 * math.Sin(ctx.Time*animSpeed*mathx.Tau)
		size = mathx.Clamp(size, 0.05, 0.8)
	}
	return &sdfMaskState{
		shape:     ctx.StrParam("mask_sdf_shape", "circle"),
		cx:        ctx.Param("mask_center_x", 0.5),
		cy:        ctx.Param("mask_center_y", 0.5),
		size:      size,
		softness:  ctx.Param("mask_softness", 0.05),
		invert:    ctx.Param("mask_invert", 0) != 0,
		thickness: ctx.Param("mask_sdf_thickness", 0.05),
	}
}

func (m *SDF) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*sdfMaskState)
	u := float64(x) / math.Max(float64(ctx.Width-1), 1)
	v := float64(y) / math.Max(float64(ctx.Height-1), 1)
	dx := u - s.cx
	dy := v - s.cy

	var dist float64
	switch s.shape {
	case "box":
		ax := math.Abs(dx) - s.size
		ay := math.Abs(dy) - s.size
		outside := math.Hypot(math.Max(ax, 0), math.Max(ay, 0))
		inside := math.Min(math.Max(ax, ay), 0)
		dist = outside + inside
	case "ring":
		dist = math.Abs(math.Hypot(dx, dy)-s.size) - s.thickness
	default:
		dist = math.Hypot(dx, dy) - s.size
	}

	t := softStep(0, s.softness, dist)
	if s.invert {
		t = 1.0 - t
	}
	return weightCell(t)
}

func (m *SDF) Post(ctx *core.Context, buf core.Buffer, state any) {}

// Registry maps mask names to constructors.
var Registry = map[string]func() core.Effect{
	"horizontal_split": func() core.Effect { return &HorizontalSplit{} },
	"vertical_split":   func() core.Effect { return &VerticalSplit{} },
	"diagonal":         func() core.Effect { return &Diagonal{} },
	"radial":           func() core.Effect { return &Radial{} },
	"noise":            func() core.Effect { return &Noise{} },
	"sdf":              func() core.Effect { return &SDF{} },
}
