package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
)

// Moire multiplies two rotating radial wave fields; their product
// forms the interference pattern. Optional polar distortion and extra
// centers break the symmetry.
type Moire struct{}

func NewMoire() *Moire { return &Moire{} }

type moireState struct {
	freqA, freqB   float64
	speedA, speedB float64
	centerA        [2]float64
	centerB        [2]float64
	colorScheme    string
	distortion     float64
	noise          *noise.ValueNoise
	multiCenter    int
	extraCenters   [][2]float64
}

func (e *Moire) Pre(ctx *core.Context, buf core.Buffer) any {
	s := &moireState{
		freqA:       ctx.Param("freq_a", 8.0),
		freqB:       ctx.Param("freq_b", 13.0),
		speedA:      ctx.Param("speed_a", 0.5),
		speedB:      ctx.Param("speed_b", -0.3),
		colorScheme: ctx.StrParam("color_scheme", "rainbow"),
		distortion:  ctx.Param("distortion", 0.0),
		multiCenter: int(ctx.Param("multi_center", 1)),
	}
	if s.multiCenter < 1 {
		s.multiCenter = 1
	}

	s.centerA = [2]float64{0.5 + ctx.Param("offset_a", 0.0), 0.5}
	s.centerB = [2]float64{0.5 + ctx.Param("offset_b", 0.0), 0.5}

	if s.distortion > 0 {
		s.noise = noise.New(ctx.Seed + 77)
	}

	if s.multiCenter > 1 {
		for ci := 0; ci < s.multiCenter; ci++ {
			angle := float64(ci) * (mathx.Tau / float64(s.multiCenter))
			s.extraCenters = append(s.extraCenters, [2]float64{
				0.5 + 0.2*math.Cos(angle),
				0.5 + 0.2*math.Sin(angle),
			})
		}
	}

	return s
}

func (e *Moire) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*moireState)
	t := ctx.Time

	u := float64(x) / float64(ctx.Width)
	v := float64(y) / float64(ctx.Height)

	var interference float64
	if s.multiCenter > 1 {
		for ci, c := range s.extraCenters {
			angle := math.Atan2(v-c[1], u-c[0])
			if s.noise != nil {
				angle += (s.noise.Sample(u*4.0+float64(ci)*10.0, v*4.0) - 0.5) * s.distortion * 2.0
			}
			interference += math.Cos(angle*s.freqA + t*s.speedA + float64(ci)*1.7)
		}
		interference /= float64(s.multiCenter)

		angleB := math.Atan2(v-s.centerB[1], u-s.centerB[0])
		if s.noise != nil {
			angleB += (s.noise.Sample(u*4.0+50.0, v*4.0+50.0) - 0.5) * s.distortion * 2.0
		}
		interference *= math.Cos(angleB*s.freqB + t*s.speedB)
	} else {
		angleA := math.Atan2(v-s.centerA[1], u-s.centerA[0])
		angleB := math.Atan2(v-s.centerB[1], u-s.centerB[0])
		if s.noise != nil {
			angleA += (s.noise.Sample(u*4.0, v*4.0) - 0.5) * s.distortion * 2.0
			angleB += (s.noise.Sample(u*4.0+50.0, v*4.0+50.0) - 0.5) * s.distortion * 2.0
		}
		waveA := math.Cos(angleA*s.freqA + t*s.speedA)
		waveB := math.Cos(angleB*s.freqB + t*s.speedB)
		interference = waveA * waveB
	}

	value := mathx.Clamp01((interference + 1.0) / 2.0)

	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      colorFor(value, ctx, s.colorScheme),
	}
}

func (e *Moire) Post(ctx *core.Context, buf core.Buffer, state any) {}
