package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
	"github.com/san-kum/glyphgen/internal/palette"
	"github.com/san-kum/glyphgen/internal/vec"
)

// Donut is the classic spinning torus, rendered into a z-buffer with
// per-point lambert shading during Pre so Main is just a table lookup.
type Donut struct{}

func NewDonut() *Donut { return &Donut{} }

const (
	donutThetaSteps = 90
	donutPhiSteps   = 40
)

type donutState struct {
	zBuffer   [][]float64
	lumBuffer [][]float64
}

func (e *Donut) Pre(ctx *core.Context, buf core.Buffer) any {
	r1 := ctx.Param("R1", 1.0)
	r2 := ctx.Param("R2", 2.0)
	speed := ctx.Param("rotation_speed", 1.0)

	lightDir := vec.V3(
		ctx.Param("light_x", 0.0),
		ctx.Param("light_y", 1.0),
		ctx.Param("light_z", -1.0),
	).Normalize()

	surfaceNoise := ctx.Param("surface_noise", 0.0)
	asymmetryX := ctx.Param("asymmetry_x", 1.0)
	asymmetryY := ctx.Param("asymmetry_y", 1.0)
	twist := ctx.Param("twist", 0.0)
	count := int(ctx.Param("count", 1))
	if count < 1 {
		count = 1
	}
	ringOffset := ctx.Param("ring_offset", 0.3)

	var noiseFn *noise.ValueNoise
	if surfaceNoise > 0 {
		noiseFn = noise.New(ctx.Seed + 99)
	}

	w := ctx.Width
	h := ctx.Height

	s := &donutState{
		zBuffer:   make([][]float64, h),
		lumBuffer: make([][]float64, h),
	}
	for y := range s.zBuffer {
		s.zBuffer[y] = make([]float64, w)
		s.lumBuffer[y] = make([]float64, w)
	}

	a := ctx.Time * speed * 0.8
	b := ctx.Time * speed * 0.6

	const k2 = 5.0
	k1 := float64(w) * k2 * 3.0 / (8.0 * (r1 + r2))

	thetaStep := mathx.Tau / donutThetaSteps
	phiStep := mathx.Tau / donutPhiSteps

	for torusIdx := 0; torusIdx < count; torusIdx++ {
		offsetX, offsetY := 0.0, 0.0
		if torusIdx > 0 {
			torusAngle := float64(torusIdx)*(mathx.Tau/float64(count)) + ctx.Time*0.3
			offsetX = ringOffset * math.Cos(torusAngle)
			offsetY = ringOffset * math.Sin(torusAngle)
		}

		for j := 0; j < donutThetaSteps; j++ {
			theta := float64(j) * thetaStep
			cosTheta := math.Cos(theta)
			sinTheta := math.Sin(theta)

			for i := 0; i < donutPhiSteps; i++ {
				phi := float64(i) * phiStep
				cosPhi := math.Cos(phi)
				sinPhi := math.Sin(phi)

				localR1 := r1
				if noiseFn != nil {
					noiseVal := noiseFn.Sample(theta*3.0, phi*3.0)
					localR1 = r1 + (noiseVal-0.5)*2.0*surfaceNoise*r1
				}

				// Twist rotates the cross-section as phi advances.
				deformedCos := cosTheta
				deformedSin := sinTheta
				if twist > 0 {
					twistAngle := phi * twist
					ct := math.Cos(twistAngle)
					st := math.Sin(twistAngle)
					deformedCos = cosTheta*ct - sinTheta*st
					deformedSin = cosTheta*st + sinTheta*ct
				}

				circleX := r2 + localR1*deformedCos
				circleY := localR1 * deformedSin

				px := circleX*cosPhi*asymmetryX + offsetX
				py := circleY*asymmetryY + offsetY
				pz := -circleX * sinPhi

				p := vec.V3(px, py, pz).RotateX(a).RotateZ(b)
				n := vec.V3(deformedCos*cosPhi, deformedSin, -deformedCos*sinPhi).RotateX(a).RotateZ(b)

				p.Z += k2

				ooz := 0.0
				if p.Z > 0.1 {
					ooz = 1.0 / p.Z
				}

				xp := int(float64(w)/2.0 + k1*ooz*p.X)
				yp := int(float64(h)/2.0 - k1*ooz*p.Y)

				if xp >= 0 && xp < w && yp >= 0 && yp < h {
					if ooz > s.zBuffer[yp][xp] {
						s.zBuffer[yp][xp] = ooz
						s.lumBuffer[yp][xp] = vec.Dot3(n, lightDir)
					}
				}
			}
		}
	}

	return s
}

func (e *Donut) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*donutState)

	if s.zBuffer[y][x] <= 0.0 {
		return &core.Cell{CharIdx: 0, Fg: core.RGB{R: 20, G: 20, B: 30}}
	}

	value := mathx.Clamp01((s.lumBuffer[y][x] + 1.0) * 0.5)

	var color core.RGB
	if warmth, ok := ctx.Params["warmth"]; ok {
		color = palette.ValueToColorContinuous(value, warmth, ctx.Param("saturation", 1.0))
	} else {
		color = palette.ValueToColor(value, "heat")
	}

	return &core.Cell{CharIdx: core.QuantizeChar(value), Fg: color}
}

func (e *Donut) Post(ctx *core.Context, buf core.Buffer, state any) {}
