package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
)

// Dyna sums sine waves radiating from moving attractor points. The
// attractors bounce off the walls (or wrap) between frames, so the
// standing-wave pattern keeps shifting.
type Dyna struct {
	attractors [][4]float64 // x, y, vx, vy
	started    bool
}

func NewDyna() *Dyna { return &Dyna{} }

type dynaState struct {
	attractors [][4]float64
	frequency  float64
}

func (e *Dyna) init(ctx *core.Context) {
	count := int(ctx.Param("attractor_count", 4))
	if count < 1 {
		count = 1
	}
	w := float64(ctx.Width)
	h := float64(ctx.Height)

	e.attractors = make([][4]float64, count)
	for i := range e.attractors {
		e.attractors[i] = [4]float64{
			ctx.Rng.Float64() * w,
			ctx.Rng.Float64() * h,
			(ctx.Rng.Float64() - 0.5) * 2.0,
			(ctx.Rng.Float64() - 0.5) * 2.0,
		}
	}
}

func (e *Dyna) update(ctx *core.Context, speed float64, bounce bool) {
	w := float64(ctx.Width)
	h := float64(ctx.Height)

	for i := range e.attractors {
		att := &e.attractors[i]
		att[0] += att[2] * speed
		att[1] += att[3] * speed

		if bounce {
			if att[0] < 0 {
				att[0] = -att[0]
				att[2] = -att[2]
			} else if att[0] >= w {
				att[0] = 2*w - att[0] - 1
				att[2] = -att[2]
			}
			if att[1] < 0 {
				att[1] = -att[1]
				att[3] = -att[3]
			} else if att[1] >= h {
				att[1] = 2*h - att[1] - 1
				att[3] = -att[3]
			}
		} else {
			att[0] = mathx.Mod(att[0], w)
			att[1] = mathx.Mod(att[1], h)
		}
	}
}

func (e *Dyna) Pre(ctx *core.Context, buf core.Buffer) any {
	if !e.started {
		e.init(ctx)
		e.started = true
	}
	bounce := ctx.Param("bounce", 1) != 0
	e.update(ctx, ctx.Param("speed", 1.0), bounce)

	return &dynaState{
		attractors: e.attractors,
		frequency:  ctx.Param("frequency", 0.5),
	}
}

func (e *Dyna) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*dynaState)

	total := 0.0
	for _, att := range s.attractors {
		dx := float64(x) - att[0]
		dy := float64(y) - att[1]
		dist := math.Sqrt(dx*dx + dy*dy)
		total += math.Sin(dist * s.frequency * mathx.Tau / float64(ctx.Width))
	}

	value := mathx.Clamp01((total/float64(len(s.attractors)) + 1.0) / 2.0)

	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      colorFor(value, ctx, "plasma"),
	}
}

func (e *Dyna) Post(ctx *core.Context, buf core.Buffer, state any) {}
