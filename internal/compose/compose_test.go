package compose

import (
	"strings"
	"testing"

	"github.com/san-kum/glyphgen/internal/core"
)

type flatEffect struct {
	idx int
	fg  core.RGB
	bg  *core.RGB
}

func (e flatEffect) Pre(ctx *core.Context, buf core.Buffer) any { return nil }

func (e flatEffect) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	return &core.Cell{CharIdx: e.idx, Fg: e.fg, Bg: e.bg}
}

func (e flatEffect) Post(ctx *core.Context, buf core.Buffer, state any) {}

type nilEffect struct{}

func (nilEffect) Pre(ctx *core.Context, buf core.Buffer) any              { return nil }
func (nilEffect) Main(x, y int, ctx *core.Context, state any) *core.Cell  { return nil }
func (nilEffect) Post(ctx *core.Context, buf core.Buffer, state any)      {}

func TestParseBlendMode(t *testing.T) {
	cases := map[string]BlendMode{
		"add": Add, "ADD": Add,
		"multiply": Multiply,
		"screen":   Screen,
		"overlay":  Overlay,
	}
	for name, want := range cases {
		got, err := ParseBlendMode(name)
		if err != nil {
			t.Errorf("ParseBlendMode(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseBlendMode(%q) = %v, want %v", name, got, want)
		}
	}
	_, err := ParseBlendMode("difference")
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	for _, mode := range []string{"ADD", "MULTIPLY", "SCREEN", "OVERLAY"} {
		if !strings.Contains(err.Error(), mode) {
			t.Errorf("error should name %s, got %q", mode, err)
		}
	}
}

func TestBlendChannelFormulas(t *testing.T) {
	cases := []struct {
		mode BlendMode
		a, b int
		want int
	}{
		{Add, 100, 100, 200},
		{Multiply, 255, 128, 128},
		{Multiply, 0, 200, 0},
		{Screen, 0, 128, 128},
		{Screen, 255, 128, 255},
		{Overlay, 0, 200, 0},
		{Overlay, 255, 100, 255},
	}
	for _, tc := range cases {
		if got := blendChannel(tc.mode, tc.a, tc.b); got != tc.want {
			t.Errorf("blendChannel(%v, %d, %d) = %d, want %d", tc.mode, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompositeMixEndpoints(t *testing.T) {
	a := flatEffect{idx: 2, fg: core.RGB{R: 40, G: 40, B: 40}}
	b := flatEffect{idx: 8, fg: core.RGB{R: 200, G: 200, B: 200}}
	ctx := core.NewContext(8, 8, 0, 0, 1, nil)

	comp, err := NewComposite(a, b, Add, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	cell := comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
	if cell.CharIdx != 2 || cell.Fg != a.fg {
		t.Errorf("mix 0 should return A unchanged, got idx=%d fg=%v", cell.CharIdx, cell.Fg)
	}

	comp, err = NewComposite(a, b, Add, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	cell = comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
	if cell.CharIdx != 8 {
		t.Errorf("mix 1 should take B's char index, got %d", cell.CharIdx)
	}
	if cell.Fg != (core.RGB{R: 240, G: 240, B: 240}) {
		t.Errorf("mix 1 should give the full additive blend, got %v", cell.Fg)
	}
}

func TestCompositeMixClamped(t *testing.T) {
	a := flatEffect{idx: 0}
	b := flatEffect{idx: 9}
	comp, err := NewComposite(a, b, Add, 3.0)
	if err != nil {
		t.Fatal(err)
	}
	if comp.Mix != 1.0 {
		t.Errorf("mix should clamp to 1, got %v", comp.Mix)
	}
}

func TestCompositeNilPassthrough(t *testing.T) {
	a := flatEffect{idx: 5, fg: core.RGB{R: 10}}
	ctx := core.NewContext(8, 8, 0, 0, 1, nil)

	comp, err := NewComposite(a, nilEffect{}, Screen, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	cell := comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
	if cell == nil || cell.CharIdx != 5 {
		t.Error("nil B side should pass A through untouched")
	}

	comp, err = NewComposite(nilEffect{}, nilEffect{}, Screen, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if cell := comp.Main(0, 0, ctx, comp.Pre(ctx, nil)); cell != nil {
		t.Error("both sides nil should yield nil")
	}
}

func TestCompositeBackgroundSelection(t *testing.T) {
	bgA := &core.RGB{R: 10, G: 10, B: 10}
	bgB := &core.RGB{R: 30, G: 30, B: 30}
	ctx := core.NewContext(8, 8, 0, 0, 1, nil)

	comp, err := NewComposite(flatEffect{bg: bgA}, flatEffect{bg: bgB}, Add, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	cell := comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
	if cell.Bg == nil || cell.Bg.R != 20 {
		t.Errorf("both backgrounds should lerp, got %v", cell.Bg)
	}

	comp, err = NewComposite(flatEffect{}, flatEffect{bg: bgB}, Add, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	cell = comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
	if cell.Bg != bgB {
		t.Error("single background should be kept")
	}
}

func TestCompositeRejectsNesting(t *testing.T) {
	inner, err := NewComposite(flatEffect{}, flatEffect{}, Add, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewComposite(inner, flatEffect{}, Add, 0.5); err == nil {
		t.Error("nesting a composite should be rejected")
	}
	if _, err := NewMaskedComposite(flatEffect{}, inner, flatEffect{}, Add); err == nil {
		t.Error("nesting a composite inside a masked composite should be rejected")
	}
}

func TestMaskedCompositeWeight(t *testing.T) {
	a := flatEffect{idx: 0, fg: core.RGB{}}
	b := flatEffect{idx: 9, fg: core.RGB{R: 90, G: 90, B: 90}}
	ctx := core.NewContext(8, 8, 0, 0, 1, nil)

	full := flatEffect{idx: 9}
	comp, err := NewMaskedComposite(a, b, full, Add)
	if err != nil {
		t.Fatal(err)
	}
	cell := comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
	if cell.CharIdx != 9 {
		t.Errorf("full mask weight should take B, got idx %d", cell.CharIdx)
	}

	empty := flatEffect{idx: 0}
	comp, err = NewMaskedComposite(a, b, empty, Add)
	if err != nil {
		t.Fatal(err)
	}
	cell = comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
	if cell.CharIdx != 0 {
		t.Errorf("zero mask weight should take A, got idx %d", cell.CharIdx)
	}
}
