package mask

import (
	"math"
	"testing"

	"github.com/san-kum/glyphgen/internal/core"
)

func TestHorizontalSplitWeights(t *testing.T) {
	m := &HorizontalSplit{}
	ctx := core.NewContext(32, 32, 0, 0, 42, map[string]float64{"mask_softness": 0})
	state := m.Pre(ctx, nil)

	top := m.Main(0, 0, ctx, state)
	bottom := m.Main(0, 31, ctx, state)
	if top.CharIdx != 0 {
		t.Errorf("expected weight 0 at top, got %d", top.CharIdx)
	}
	if bottom.CharIdx != 9 {
		t.Errorf("expected weight 9 at bottom, got %d", bottom.CharIdx)
	}
}

func TestSplitAnimates(t *testing.T) {
	m := &HorizontalSplit{}
	params := map[string]float64{"mask_split": 0.5, "mask_anim_speed": 1.0}

	s0 := m.Pre(core.NewContext(32, 32, 0.0, 0, 42, params), nil).(*splitState)
	s1 := m.Pre(core.NewContext(32, 32, 0.25, 4, 42, params), nil).(*splitState)

	if math.Abs(s0.split-0.5) > 1e-9 {
		t.Errorf("split should be unchanged at t=0, got %v", s0.split)
	}
	if math.Abs(s1.split-0.5) < 0.01 {
		t.Errorf("split should have shifted at t=0.25, got %v", s1.split)
	}
	if s1.split < 0.1 || s1.split > 0.9 {
		t.Errorf("animated split out of [0.1, 0.9]: %v", s1.split)
	}
}

func TestDiagonalAngleAnimates(t *testing.T) {
	m := &Diagonal{}
	params := map[string]float64{"mask_angle": 0.0, "mask_anim_speed": 1.0}

	s0 := m.Pre(core.NewContext(32, 32, 0.0, 0, 42, params), nil).(*diagonalState)
	s1 := m.Pre(core.NewContext(32, 32, 1.0, 15, 42, params), nil).(*diagonalState)

	if math.Abs(s0.angle) > 1e-9 {
		t.Errorf("angle should be zero at t=0, got %v", s0.angle)
	}
	if math.Abs(s1.angle) < 0.1 {
		t.Errorf("angle should have advanced at t=1, got %v", s1.angle)
	}
}

func TestRadialCenterVsEdge(t *testing.T) {
	m := &Radial{}
	ctx := core.NewContext(33, 33, 0, 0, 42, map[string]float64{"mask_radius": 0.3})
	state := m.Pre(ctx, nil)

	center := m.Main(16, 16, ctx, state)
	corner := m.Main(0, 0, ctx, state)
	if center.CharIdx != 0 {
		t.Errorf("expected weight 0 at center, got %d", center.CharIdx)
	}
	if corner.CharIdx != 9 {
		t.Errorf("expected weight 9 at corner, got %d", corner.CharIdx)
	}
}

func TestRadialInvert(t *testing.T) {
	m := &Radial{}
	ctx := core.NewContext(33, 33, 0, 0, 42, map[string]float64{
		"mask_radius": 0.3, "mask_invert": 1,
	})
	state := m.Pre(ctx, nil)

	if got := m.Main(16, 16, ctx, state).CharIdx; got != 9 {
		t.Errorf("inverted center should be 9, got %d", got)
	}
}

func TestNoiseMaskDrifts(t *testing.T) {
	m := &Noise{}
	params := map[string]float64{"mask_anim_speed": 1.0}

	s0 := m.Pre(core.NewContext(32, 32, 0.0, 0, 42, params), nil).(*noiseMaskState)
	s1 := m.Pre(core.NewContext(32, 32, 1.0, 15, 42, params), nil).(*noiseMaskState)

	if math.Abs(s0.timeOffset) > 1e-9 {
		t.Errorf("offset should be zero at t=0, got %v", s0.timeOffset)
	}
	if math.Abs(s1.timeOffset) < 0.1 {
		t.Errorf("offset should have drifted at t=1, got %v", s1.timeOffset)
	}
}

func TestSDFShapes(t *testing.T) {
	for _, shape := range []string{"circle", "box", "ring"} {
		t.Run(shape, func(t *testing.T) {
			m := &SDF{}
			ctx := core.NewContext(33, 33, 0, 0, 42, map[string]float64{"mask_sdf_size": 0.3})
			ctx.StrParams["mask_sdf_shape"] = shape
			state := m.Pre(ctx, nil)

			corner := m.Main(0, 0, ctx, state)
			if corner.CharIdx != 9 {
				t.Errorf("expected weight 9 outside the %s, got %d", shape, corner.CharIdx)
			}
		})
	}
}

func TestSDFSizePulsesWithTime(t *testing.T) {
	m := &SDF{}
	params := map[string]float64{"mask_sdf_size": 0.3, "mask_anim_speed": 1.0}

	s := m.Pre(core.NewContext(32, 32, 0.25, 4, 42, params), nil).(*sdfMaskState)
	if math.Abs(s.size-0.3) < 0.01 {
		t.Errorf("size should pulse at t=0.25, got %v", s.size)
	}

	static := m.Pre(core.NewContext(32, 32, 1.0, 15, 42, map[string]float64{
		"mask_sdf_size": 0.3, "mask_anim_speed": 0.0,
	}), nil).(*sdfMaskState)
	if math.Abs(static.size-0.3) > 1e-9 {
		t.Errorf("size should be static at zero speed, got %v", static.size)
	}
}

func TestRegistryComplete(t *testing.T) {
	for _, name := range []string{"horizontal_split", "vertical_split", "diagonal", "radial", "noise", "sdf"} {
		if _, ok := Registry[name]; !ok {
			t.Errorf("missing mask %q", name)
		}
	}
}
