package effects

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/palette"
)

// colorFor picks between the continuous warmth mapping (when the
// caller supplied a warmth param) and the named discrete scheme.
func colorFor(value float64, ctx *core.Context, scheme string) core.RGB {
	if warmth, ok := ctx.Params["warmth"]; ok {
		return palette.ValueToColorContinuous(value, warmth, ctx.Param("saturation", 1.0))
	}
	return palette.ValueToColor(value, scheme)
}
