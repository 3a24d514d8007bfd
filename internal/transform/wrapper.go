package transform

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
)

// Step is one entry of a transform chain.
type Step struct {
	Fn   Func
	Args map[string]Value
}

// Effect wraps an inner effect and remaps coordinates through the
// transform chain before delegating to the inner Main. N effects times
// M transforms multiplies the available visual structures.
type Effect struct {
	Inner core.Effect
	Chain []Step
}

func Wrap(inner core.Effect, chain []Step) *Effect {
	return &Effect{Inner: inner, Chain: chain}
}

func (e *Effect) Pre(ctx *core.Context, buf core.Buffer) any {
	return e.Inner.Pre(ctx, buf)
}

func (e *Effect) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	u, v := 0.0, 0.0
	if ctx.Width > 0 {
		u = float64(x) / float64(ctx.Width)
	}
	if ctx.Height > 0 {
		v = float64(y) / float64(ctx.Height)
	}

	for _, step := range e.Chain {
		u, v = step.Fn(u, v, ResolveArgs(step.Args, ctx.Time))
	}

	tx := int(mathx.Clamp(u*float64(ctx.Width), 0, float64(ctx.Width-1)))
	ty := int(mathx.Clamp(v*float64(ctx.Height), 0, float64(ctx.Height-1)))
	return e.Inner.Main(tx, ty, ctx, state)
}

func (e *Effect) Post(ctx *core.Context, buf core.Buffer, state any) {
	e.Inner.Post(ctx, buf, state)
}
