package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
	"github.com/san-kum/glyphgen/internal/palette"
)

// ChromaSpiral renders a polar spiral and offsets the R and B channels
// against G for a chromatic-aberration look.
type ChromaSpiral struct{}

func NewChromaSpiral() *ChromaSpiral { return &ChromaSpiral{} }

type chromaState struct {
	arms         int
	tightness    float64
	speed        float64
	chromaOffset float64
	distortion   float64
	noise        *noise.ValueNoise
	centers      [][2]float64
	multiCenter  int
}

func (e *ChromaSpiral) Pre(ctx *core.Context, buf core.Buffer) any {
	s := &chromaState{
		arms:         int(ctx.Param("arms", 3)),
		tightness:    ctx.Param("tightness", 0.5),
		speed:        ctx.Param("speed", 1.0),
		chromaOffset: ctx.Param("chroma_offset", 0.1),
		distortion:   ctx.Param("distortion", 0.0),
		multiCenter:  int(ctx.Param("multi_center", 1)),
	}
	if s.arms < 1 {
		s.arms = 1
	}
	if s.multiCenter < 1 {
		s.multiCenter = 1
	}
	if s.distortion > 0 {
		s.noise = noise.New(ctx.Seed + 88)
	}

	cx := float64(ctx.Width) / 2.0
	cy := float64(ctx.Height) / 2.0
	if s.multiCenter > 1 {
		for ci := 0; ci < s.multiCenter; ci++ {
			angle := float64(ci) * (mathx.Tau / float64(s.multiCenter))
			s.centers = append(s.centers, [2]float64{
				cx + float64(ctx.Width)*0.15*math.Cos(angle),
				cy + float64(ctx.Height)*0.15*math.Sin(angle),
			})
		}
	} else {
		s.centers = [][2]float64{{cx, cy}}
	}

	return s
}

func (e *ChromaSpiral) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*chromaState)
	t := ctx.Time * s.speed

	maxRadius := math.Min(float64(ctx.Width), float64(ctx.Height)) / 2.0
	u := float64(x) / float64(ctx.Width)
	v := float64(y) / float64(ctx.Height)

	var rVal, gVal, bVal float64
	for ci, c := range s.centers {
		dx := float64(x) - c[0]
		dy := float64(y) - c[1]
		radius := math.Sqrt(dx*dx + dy*dy)
		angle := math.Atan2(dy, dx)

		normRadius := 0.0
		if maxRadius > 0 {
			normRadius = radius / maxRadius
		}

		if s.noise != nil {
			angle += (s.noise.Sample(u*4.0+float64(ci)*10.0, v*4.0) - 0.5) * s.distortion * 2.0
			normRadius += (s.noise.Sample(u*4.0+float64(ci)*10.0+50.0, v*4.0+50.0) - 0.5) * s.distortion * 0.3
		}

		phase := 0.0
		if len(s.centers) > 1 {
			phase = float64(ci) * 0.7
		}
		spiral := func(rOff, aOff float64) float64 {
			r := normRadius + rOff
			a := angle + aOff
			return mathx.Fract(a/mathx.Tau*float64(s.arms) + r*s.tightness*10.0 + t + phase)
		}

		rv := spiral(s.chromaOffset, s.chromaOffset*0.5)
		gv := spiral(0.0, 0.0)
		bv := spiral(-s.chromaOffset, -s.chromaOffset*0.5)

		// Smoothstep curve per channel.
		rVal += rv * rv * (3.0 - 2.0*rv)
		gVal += gv * gv * (3.0 - 2.0*gv)
		bVal += bv * bv * (3.0 - 2.0*bv)
	}
	n := float64(len(s.centers))
	rVal /= n
	gVal /= n
	bVal /= n

	avg := (rVal + gVal + bVal) / 3.0
	charIdx := core.QuantizeChar(avg)

	var color core.RGB
	if warmth, ok := ctx.Params["warmth"]; ok {
		colorValue := mathx.Fract(avg + t*0.05)
		color = palette.ValueToColorContinuous(colorValue, warmth, ctx.Param("saturation", 1.0))
	} else {
		color = core.RGB{
			R: uint8(mathx.Clamp(rVal*255, 0, 255)),
			G: uint8(mathx.Clamp(gVal*255, 0, 255)),
			B: uint8(mathx.Clamp(bVal*255, 0, 255)),
		}
	}

	return &core.Cell{CharIdx: charIdx, Fg: color}
}

func (e *ChromaSpiral) Post(ctx *core.Context, buf core.Buffer, state any) {}
