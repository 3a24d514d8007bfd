package transform

import (
	"math"
	"testing"

	"github.com/san-kum/glyphgen/internal/core"
)

type gradientEffect struct{}

func (gradientEffect) Pre(ctx *core.Context, buf core.Buffer) any { return nil }

func (gradientEffect) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	value := float64(x+y) / float64(ctx.Width+ctx.Height)
	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      core.RGB{R: uint8(x % 256), G: uint8(y % 256)},
	}
}

func (gradientEffect) Post(ctx *core.Context, buf core.Buffer, state any) {}

func TestMirrorX(t *testing.T) {
	u1, v1 := MirrorX(0.2, 0.3, nil)
	u2, v2 := MirrorX(0.8, 0.3, nil)
	if math.Abs(u1-u2) > 1e-9 || v1 != v2 {
		t.Errorf("mirrored points differ: (%v,%v) vs (%v,%v)", u1, v1, u2, v2)
	}
	if math.Abs(u1-0.4) > 1e-9 {
		t.Errorf("expected u=0.4, got %v", u1)
	}
}

func TestTileWraps(t *testing.T) {
	u, v := Tile(0.75, 0.75, Args{"cols": 2, "rows": 2})
	if math.Abs(u-0.5) > 1e-9 || math.Abs(v-0.5) > 1e-9 {
		t.Errorf("expected (0.5, 0.5), got (%v, %v)", u, v)
	}
}

func TestRotateIdentity(t *testing.T) {
	u, v := Rotate(0.3, 0.7, Args{"angle": 0})
	if math.Abs(u-0.3) > 1e-9 || math.Abs(v-0.7) > 1e-9 {
		t.Errorf("zero rotation moved point to (%v, %v)", u, v)
	}
}

func TestZoomCenterFixed(t *testing.T) {
	u, v := Zoom(0.5, 0.5, Args{"factor": 3})
	if math.Abs(u-0.5) > 1e-9 || math.Abs(v-0.5) > 1e-9 {
		t.Errorf("zoom moved the center to (%v, %v)", u, v)
	}

	u, v = Zoom(0.5, 0.5, Args{"factor": 0})
	if u != 0.5 || v != 0.5 {
		t.Errorf("zero factor should collapse to center, got (%v, %v)", u, v)
	}
}

func TestKaleidoscopeSymmetry(t *testing.T) {
	// A point and its mirror across the x axis fold onto the same
	// location: the last segment is mirrored onto the first.
	args := Args{"segments": 4}
	r, theta := 0.2, 0.3
	u1, v1 := Kaleidoscope(0.5+r*math.Cos(theta), 0.5+r*math.Sin(theta), args)
	u2, v2 := Kaleidoscope(0.5+r*math.Cos(theta), 0.5-r*math.Sin(theta), args)
	if math.Abs(u1-u2) > 1e-9 || math.Abs(v1-v2) > 1e-9 {
		t.Errorf("mirror symmetry broken: (%v,%v) vs (%v,%v)", u1, v1, u2, v2)
	}
}

func TestPolarRemapRanges(t *testing.T) {
	u, v := PolarRemap(0.5, 0.0, nil)
	if u < 0 || u >= 1 {
		t.Errorf("angle out of range: %v", u)
	}
	if math.Abs(v-1.0) > 1e-9 {
		t.Errorf("expected radius 1.0 at edge midpoint, got %v", v)
	}
}

func TestValueStatic(t *testing.T) {
	v := Static(1.5)
	if v.At(0) != 1.5 || v.At(100) != 1.5 {
		t.Error("static value should not vary with time")
	}
}

func TestValueLinear(t *testing.T) {
	v := Animated(0.5, 1.0, 0, "linear")
	if got := v.At(3.0); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("expected 3.5, got %v", got)
	}
}

func TestValueOscillate(t *testing.T) {
	v := Animated(2.0, 1.0, 0.5, "oscillate")
	if got := v.At(0); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("expected 2.0 at t=0, got %v", got)
	}
	// sin(0.25 * 2pi) = 1
	if got := v.At(0.25); math.Abs(got-2.5) > 1e-6 {
		t.Errorf("expected 2.5 at t=0.25, got %v", got)
	}
}

func TestValuePingPong(t *testing.T) {
	v := Animated(0, 1.0, 1.0, "ping_pong")
	cases := []struct {
		time, want float64
	}{
		{0.5, 0.5},
		{1.0, 1.0},
		{1.5, 0.5},
		{2.0, 0.0},
	}
	for _, tc := range cases {
		if got := v.At(tc.time); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("At(%v): expected %v, got %v", tc.time, tc.want, got)
		}
	}
}

func TestWrappedEffectAnimatedRotation(t *testing.T) {
	wrapped := Wrap(gradientEffect{}, []Step{
		{Fn: Rotate, Args: map[string]Value{
			"angle": Animated(0, 0.5, 0, "linear"),
		}},
	})

	ctx0 := core.NewContext(32, 32, 0.0, 0, 42, nil)
	ctx1 := core.NewContext(32, 32, 1.0, 15, 42, nil)
	state := wrapped.Pre(ctx0, nil)

	c0 := wrapped.Main(10, 10, ctx0, state)
	c1 := wrapped.Main(10, 10, ctx1, state)
	if c0.Fg == c1.Fg && c0.CharIdx == c1.CharIdx {
		t.Error("animated rotation produced identical cells at different times")
	}
}

func TestWrappedEffectStaticChain(t *testing.T) {
	wrapped := Wrap(gradientEffect{}, []Step{
		{Fn: MirrorQuad},
		{Fn: Tile, Args: map[string]Value{
			"cols": Static(2), "rows": Static(2),
		}},
	})

	ctx := core.NewContext(32, 32, 0.0, 0, 42, nil)
	state := wrapped.Pre(ctx, nil)
	cell := wrapped.Main(5, 5, ctx, state)
	if cell == nil {
		t.Fatal("expected a cell")
	}
	if cell.CharIdx < 0 || cell.CharIdx > 9 {
		t.Errorf("char index %d out of range", cell.CharIdx)
	}
}
