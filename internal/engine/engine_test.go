package engine

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/effects"
	"github.com/san-kum/glyphgen/internal/postfx"
)

type checkerEffect struct{}

func (checkerEffect) Pre(ctx *core.Context, buf core.Buffer) any { return nil }

func (checkerEffect) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	if (x+y)%2 == 0 {
		return &core.Cell{CharIdx: 9, Fg: core.RGB{R: 255, G: 255, B: 255}}
	}
	return &core.Cell{CharIdx: 0}
}

func (checkerEffect) Post(ctx *core.Context, buf core.Buffer, state any) {}

func TestRenderBufferFillsGrid(t *testing.T) {
	e := New()
	ctx := core.NewContext(16, 16, 0, 0, 42, nil)
	buf := e.RenderBuffer(checkerEffect{}, ctx)

	if buf.Width() != 16 || buf.Height() != 16 {
		t.Fatalf("unexpected buffer size %dx%d", buf.Width(), buf.Height())
	}
	if buf[0][0].CharIdx != 9 || buf[0][1].CharIdx != 0 {
		t.Error("checker pattern not rendered")
	}
}

func TestRenderBufferMatchesSerialSweep(t *testing.T) {
	e := New()
	eff, err := effects.Default.Get("plasma")
	if err != nil {
		t.Fatal(err)
	}
	ctx := core.NewContext(32, 32, 0.5, 7, 42, nil)
	parallel := e.RenderBuffer(eff, ctx)

	serial := core.NewBuffer(32, 32)
	ctx2 := core.NewContext(32, 32, 0.5, 7, 42, nil)
	eff2, _ := effects.Default.Get("plasma")
	state := eff2.Pre(ctx2, serial)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if cell := eff2.Main(x, y, ctx2, state); cell != nil {
				serial[y][x] = *cell
			}
		}
	}
	eff2.Post(ctx2, serial, state)

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if parallel[y][x] != serial[y][x] {
				t.Fatalf("cell (%d,%d) differs between parallel and serial sweep", x, y)
			}
		}
	}
}

func TestRenderFrameSize(t *testing.T) {
	e := New()
	e.InternalWidth, e.InternalHeight = 16, 16
	e.OutputWidth, e.OutputHeight = 64, 64
	e.pool = newBufferPool(16, 16)

	img := e.RenderFrame(checkerEffect{}, FrameOpts{Seed: 42})
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Errorf("expected 64x64 frame, got %v", img.Bounds())
	}
}

func TestRenderFrameAppliesPostFX(t *testing.T) {
	newEngine := func() *Engine {
		e := New()
		e.InternalWidth, e.InternalHeight = 16, 16
		e.OutputWidth, e.OutputHeight = 16, 16
		e.Sharpen = false
		e.Contrast = 1.0
		e.pool = newBufferPool(16, 16)
		return e
	}

	plain := newEngine().RenderFrame(checkerEffect{}, FrameOpts{Seed: 42})
	filtered := newEngine().RenderFrame(checkerEffect{}, FrameOpts{
		Seed:   42,
		PostFX: []postfx.Spec{{Type: "invert"}},
	})

	// The checker's lit cells are white; inverting empties them.
	same := true
	for i := range plain.Pix {
		if plain.Pix[i] != filtered.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("postfx chain had no effect on the frame")
	}
}

func TestRenderVideoFrameCount(t *testing.T) {
	e := New()
	e.InternalWidth, e.InternalHeight = 8, 8
	e.OutputWidth, e.OutputHeight = 8, 8
	e.Sharpen = false
	e.pool = newBufferPool(8, 8)

	frames, err := e.RenderVideo(context.Background(), checkerEffect{}, 1.0, 5, FrameOpts{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 5 {
		t.Errorf("expected 5 frames, got %d", len(frames))
	}
}

func TestRenderVideoCancellation(t *testing.T) {
	e := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.RenderVideo(ctx, checkerEffect{}, 10.0, 15, FrameOpts{Seed: 42})
	if err == nil {
		t.Error("cancelled context should abort the render")
	}
}

func TestBufferToImagePixelMode(t *testing.T) {
	buf := core.NewBuffer(4, 4)
	buf[1][2] = core.Cell{CharIdx: 9, Fg: core.RGB{R: 200, G: 100, B: 50}}
	buf[3][3] = core.Cell{CharIdx: 0, Bg: &core.RGB{R: 10, G: 20, B: 30}}

	img := BufferToImage(buf, 1, "default")
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("expected 4x4 image, got %v", img.Bounds())
	}

	lit := img.RGBAAt(2, 1)
	if lit.R != 200 || lit.G != 100 || lit.B != 50 {
		t.Errorf("dense cell should paint its foreground, got %v", lit)
	}
	bg := img.RGBAAt(3, 3)
	if bg.R != 10 || bg.G != 20 || bg.B != 30 {
		t.Errorf("empty cell with background should paint it, got %v", bg)
	}
	black := img.RGBAAt(0, 0)
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("empty cell should stay black, got %v", black)
	}
}

func TestUpscaleNearestKeepsEdges(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, rgba(255, 0, 0))
	src.SetRGBA(1, 1, rgba(0, 0, 255))

	dst := UpscaleNearest(src, 8, 8)
	if got := dst.RGBAAt(1, 1); got.R != 255 {
		t.Errorf("top-left quadrant should be red, got %v", got)
	}
	if got := dst.RGBAAt(6, 6); got.B != 255 {
		t.Errorf("bottom-right quadrant should be blue, got %v", got)
	}
	if got := dst.RGBAAt(6, 1); got.R != 0 || got.B != 0 {
		t.Errorf("top-right quadrant should be black, got %v", got)
	}
}

func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func TestBgFillOnlyTouchesEmptyBackgrounds(t *testing.T) {
	buf := core.NewBuffer(16, 16)
	keep := &core.RGB{R: 99, G: 99, B: 99}
	buf[0][0].Bg = keep

	BgFill(buf, 16, 16, 42, &BgSpec{Effect: "plasma"})

	if buf[0][0].Bg != keep {
		t.Error("existing background was overwritten")
	}
	if buf[5][5].Bg == nil {
		t.Fatal("empty background was not filled")
	}
	c := buf[5][5].Bg
	if int(c.R)+int(c.G)+int(c.B) < 15 {
		t.Errorf("fill should stay off pure black, got %v", *c)
	}
}

func TestBgFillDeterministic(t *testing.T) {
	spec := &BgSpec{Effect: "noise_field", Mask: &MaskSpec{Type: "radial"}}

	a := core.NewBuffer(16, 16)
	b := core.NewBuffer(16, 16)
	BgFill(a, 16, 16, 7, spec)
	BgFill(b, 16, 16, 7, spec)

	for y := range a {
		for x := range a[y] {
			if *a[y][x].Bg != *b[y][x].Bg {
				t.Fatalf("fill differs at (%d,%d) for the same seed", x, y)
			}
		}
	}
}

func TestBgFillPoolExcludesSimulations(t *testing.T) {
	pool := BgFillEffectPool()
	for _, name := range pool {
		if bgHeavyEffects[name] {
			t.Errorf("simulation effect %q should not be in the fill pool", name)
		}
	}
	if len(pool) < 10 {
		t.Errorf("fill pool unexpectedly small: %d", len(pool))
	}
}
