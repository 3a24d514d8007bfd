package effects

import (
	"strings"
	"testing"

	"github.com/san-kum/glyphgen/internal/core"
)

func renderFrame(t *testing.T, name string, ctx *core.Context) core.Buffer {
	t.Helper()

	effect, err := Default.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", name, err)
	}

	buf := core.NewBuffer(ctx.Width, ctx.Height)
	state := effect.Pre(ctx, buf)
	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			if cell := effect.Main(x, y, ctx, state); cell != nil {
				buf[y][x] = *cell
			}
		}
	}
	effect.Post(ctx, buf, state)
	return buf
}

func TestRegistryGetUnknown(t *testing.T) {
	_, err := Default.Get("nope")
	if err == nil {
		t.Fatal("expected error for unknown effect")
	}
	msg := err.Error()
	if !strings.Contains(msg, "available:") {
		t.Errorf("error should list the registered effects, got %q", msg)
	}
	for _, name := range []string{"plasma", "donut", "slime_dish"} {
		if !strings.Contains(msg, name) {
			t.Errorf("error should name %q, got %q", name, msg)
		}
	}
}

func TestRegistryList(t *testing.T) {
	names := Default.List()
	if len(names) != 17 {
		t.Errorf("expected 17 effects, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("list not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range []string{"plasma", "flame", "cppn", "slime_dish"} {
		if !Default.Has(name) {
			t.Errorf("expected registry to have %q", name)
		}
	}
}

func TestAllEffectsRenderInRange(t *testing.T) {
	for _, name := range Default.List() {
		t.Run(name, func(t *testing.T) {
			ctx := core.NewContext(32, 32, 1.5, 90, 42, nil)
			buf := renderFrame(t, name, ctx)

			for y := 0; y < ctx.Height; y++ {
				for x := 0; x < ctx.Width; x++ {
					idx := buf[y][x].CharIdx
					if idx < 0 || idx > 9 {
						t.Fatalf("cell (%d,%d) char index %d out of range", x, y, idx)
					}
				}
			}
		})
	}
}

func TestEffectsDeterministicPerSeed(t *testing.T) {
	for _, name := range []string{"plasma", "noise_field", "ten_print", "mod_xor", "cppn"} {
		t.Run(name, func(t *testing.T) {
			a := renderFrame(t, name, core.NewContext(24, 24, 2.0, 120, 7, nil))
			b := renderFrame(t, name, core.NewContext(24, 24, 2.0, 120, 7, nil))

			for y := range a {
				for x := range a[y] {
					if a[y][x] != b[y][x] {
						t.Fatalf("cell (%d,%d) differs between identical renders", x, y)
					}
				}
			}
		})
	}
}

func TestEffectsSeedDivergence(t *testing.T) {
	a := renderFrame(t, "noise_field", core.NewContext(24, 24, 2.0, 120, 1, nil))
	b := renderFrame(t, "noise_field", core.NewContext(24, 24, 2.0, 120, 99, nil))

	same := 0
	for y := range a {
		for x := range a[y] {
			if a[y][x] == b[y][x] {
				same++
			}
		}
	}
	if same == 24*24 {
		t.Error("different seeds produced identical noise fields")
	}
}

func TestDonutBackgroundCorners(t *testing.T) {
	ctx := core.NewContext(40, 40, 0.0, 0, 42, nil)
	buf := renderFrame(t, "donut", ctx)

	corner := buf[0][0]
	if corner.CharIdx != 0 {
		t.Errorf("expected empty corner, got char index %d", corner.CharIdx)
	}
	want := core.RGB{R: 20, G: 20, B: 30}
	if corner.Fg != want {
		t.Errorf("expected background color %v, got %v", want, corner.Fg)
	}
}

func TestFlameHeatRises(t *testing.T) {
	effect := NewFlame()
	ctx := core.NewContext(32, 32, 0.0, 0, 42, map[string]float64{"intensity": 2.0})
	buf := core.NewBuffer(32, 32)

	// Run several frames so heat propagates upward.
	var state any
	for frame := 0; frame < 20; frame++ {
		ctx.Time = float64(frame) / 30.0
		ctx.Frame = frame
		state = effect.Pre(ctx, buf)
	}

	lit := 0
	for x := 0; x < 32; x++ {
		if cell := effect.Main(x, 31, ctx, state); cell != nil && cell.CharIdx > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected lit cells along the bottom row after 20 frames")
	}
}

func TestGameOfLifeEmptyStaysEmpty(t *testing.T) {
	ctx := core.NewContext(16, 16, 1.0, 60, 42, map[string]float64{"density": 0.0})
	buf := renderFrame(t, "game_of_life", ctx)

	for y := range buf {
		for x := range buf[y] {
			if buf[y][x].CharIdx != 0 {
				t.Fatalf("cell (%d,%d) alive in an empty world", x, y)
			}
		}
	}
}

func TestSandGameAccumulates(t *testing.T) {
	effect := NewSandGame()
	ctx := core.NewContext(16, 16, 0.0, 0, 42, map[string]float64{"spawn_rate": 0.8})
	buf := core.NewBuffer(16, 16)

	var state any
	for frame := 0; frame < 30; frame++ {
		ctx.Frame = frame
		state = effect.Pre(ctx, buf)
	}

	settled := 0
	for x := 0; x < 16; x++ {
		if cell := effect.Main(x, 15, ctx, state); cell != nil && cell.CharIdx > 0 {
			settled++
		}
	}
	if settled == 0 {
		t.Error("expected particles piled on the bottom row after 30 frames")
	}
}

func TestCPPNInterpolateEndpoints(t *testing.T) {
	a := NewCPPN(1)
	b := NewCPPN(2)

	mid, err := InterpolateCPPNs(a, b, 0.0)
	if err != nil {
		t.Fatalf("interpolate failed: %v", err)
	}

	ctx := core.NewContext(16, 16, 1.0, 60, 1, nil)
	state := a.Pre(ctx, nil)
	midState := mid.Pre(ctx, nil)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			ca := a.Main(x, y, ctx, state)
			cm := mid.Main(x, y, ctx, midState)
			if ca.CharIdx != cm.CharIdx {
				t.Fatalf("t=0 interpolation differs from source at (%d,%d)", x, y)
			}
		}
	}
}

func TestCPPNInterpolateShapeMismatch(t *testing.T) {
	a := NewCPPNWith(CPPNConfig{Seed: 1, NumHidden: 2, LayerSize: 4, ColorMode: "hsv"})
	b := NewCPPNWith(CPPNConfig{Seed: 2, NumHidden: 3, LayerSize: 8, ColorMode: "hsv"})

	if _, err := InterpolateCPPNs(a, b, 0.5); err == nil {
		t.Error("expected error for mismatched architectures")
	}
}

func TestContinuousColorParamSwitchesMapping(t *testing.T) {
	plain := renderFrame(t, "mod_xor", core.NewContext(16, 16, 1.0, 60, 5, nil))
	warm := renderFrame(t, "mod_xor", core.NewContext(16, 16, 1.0, 60, 5, map[string]float64{"warmth": 0.9}))

	same := 0
	for y := range plain {
		for x := range plain[y] {
			if plain[y][x].Fg == warm[y][x].Fg {
				same++
			}
		}
	}
	if same == 16*16 {
		t.Error("warmth param had no effect on colors")
	}
}
