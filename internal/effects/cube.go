package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
	"github.com/san-kum/glyphgen/internal/sdf"
	"github.com/san-kum/glyphgen/internal/vec"
)

// WireframeCube projects a rotating cube's 12 edges to screen space
// and shades each pixel by its distance to the nearest edge.
type WireframeCube struct{}

func NewWireframeCube() *WireframeCube { return &WireframeCube{} }

var cubeVertices = []vec.Vec3{
	{X: -0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5},
}

var cubeEdges = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

type cubeState struct {
	distBuffer [][]float64
	thickness  float64
}

func (e *WireframeCube) Pre(ctx *core.Context, buf core.Buffer) any {
	speedX := ctx.Param("rotation_speed_x", 0.7)
	speedY := ctx.Param("rotation_speed_y", 1.0)
	speedZ := ctx.Param("rotation_speed_z", 0.3)
	scale := ctx.Param("scale", 0.3)
	thickness := ctx.Param("edge_thickness", 0.015)

	vertexNoise := ctx.Param("vertex_noise", 0.0)
	morph := ctx.Param("morph", 0.0)

	var noiseFn *noise.ValueNoise
	if vertexNoise > 0 {
		noiseFn = noise.New(ctx.Seed + 55)
	}

	t := ctx.Time
	w := ctx.Width
	h := ctx.Height

	ax := t * speedX
	ay := t * speedY
	az := t * speedZ

	projected := make([]vec.Vec2, len(cubeVertices))
	for vi, v := range cubeVertices {
		mv := v

		// Blend each vertex toward the unit half-sphere for morph.
		if morph > 0 {
			vlen := v.Length()
			if vlen > 0.001 {
				sphere := v.Scale(0.5 / vlen)
				mv = v.Scale(1.0 - morph).Add(sphere.Scale(morph))
			}
		}

		if noiseFn != nil {
			mv = mv.Add(vec.V3(
				(noiseFn.Sample(float64(vi)*7.1, t*0.5)-0.5)*vertexNoise*0.5,
				(noiseFn.Sample(t*0.5, float64(vi)*7.1)-0.5)*vertexNoise*0.5,
				(noiseFn.Sample(float64(vi)*3.7, float64(vi)*5.3+t*0.3)-0.5)*vertexNoise*0.5,
			))
		}

		sv := mv.Scale(scale).RotateX(ax).RotateY(ay).RotateZ(az)
		sv.Z += 1.5

		sx, sy, _ := vec.ProjectPerspective(sv, 60.0, 1.0)
		projected[vi] = vec.V2(sx*0.5+0.5, -sy*0.5+0.5)
	}

	distBuffer := make([][]float64, h)
	for yPx := 0; yPx < h; yPx++ {
		distBuffer[yPx] = make([]float64, w)
		ny := float64(yPx) / float64(h)
		for xPx := 0; xPx < w; xPx++ {
			nx := float64(xPx) / float64(w)
			p := vec.V2(nx, ny)

			minDist := 1e10
			for _, edge := range cubeEdges {
				d := sdf.Line(p, projected[edge[0]], projected[edge[1]])
				if d < minDist {
					minDist = d
				}
			}
			distBuffer[yPx][xPx] = minDist
		}
	}

	return &cubeState{distBuffer: distBuffer, thickness: thickness}
}

func (e *WireframeCube) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*cubeState)
	dist := s.distBuffer[y][x]

	var value float64
	if dist < s.thickness {
		value = 1.0
	} else {
		falloff := s.thickness * 3.0
		value = 1.0 - mathx.Clamp01((dist-s.thickness)/falloff)
	}

	if value < 0.02 {
		return &core.Cell{CharIdx: 0, Fg: core.RGB{R: 15, G: 15, B: 25}}
	}

	value = math.Min(value, 1.0)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      colorFor(value, ctx, "cool"),
	}
}

func (e *WireframeCube) Post(ctx *core.Context, buf core.Buffer, state any) {}
