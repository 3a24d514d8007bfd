package postfx

import (
	"testing"

	"github.com/san-kum/glyphgen/internal/core"
)

func gradientBuffer(w, h int) core.Buffer {
	buf := core.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := (x + y) % 10
			buf[y][x] = core.Cell{
				CharIdx: idx,
				Fg:      core.RGB{R: uint8(x * 7 % 256), G: uint8(y * 11 % 256), B: 128},
			}
		}
	}
	return buf
}

func buffersEqual(a, b core.Buffer) bool {
	for y := range a {
		for x := range a[y] {
			if a[y][x].CharIdx != b[y][x].CharIdx || a[y][x].Fg != b[y][x].Fg {
				return false
			}
		}
	}
	return true
}

func TestThresholdBinarizes(t *testing.T) {
	buf := gradientBuffer(16, 16)
	Threshold(buf, Args{"threshold": 0.5}, 0)
	for y := range buf {
		for x := range buf[y] {
			if idx := buf[y][x].CharIdx; idx != 0 && idx != 9 {
				t.Fatalf("cell (%d,%d) has index %d after threshold", x, y, idx)
			}
		}
	}
}

func TestInvertRoundTrip(t *testing.T) {
	buf := gradientBuffer(8, 8)
	orig := gradientBuffer(8, 8)
	Invert(buf, nil, 0)
	if buffersEqual(buf, orig) {
		t.Fatal("invert left the buffer unchanged")
	}
	Invert(buf, nil, 0)
	if !buffersEqual(buf, orig) {
		t.Fatal("double invert should restore the buffer")
	}
}

func TestEdgeDetectFlatRegion(t *testing.T) {
	buf := core.NewBuffer(8, 8)
	for y := range buf {
		for x := range buf[y] {
			buf[y][x].CharIdx = 5
		}
	}
	EdgeDetect(buf, nil, 0)
	if buf[4][4].CharIdx != 0 {
		t.Errorf("flat region should have zero gradient, got %d", buf[4][4].CharIdx)
	}
}

func TestEdgeDetectFindsEdge(t *testing.T) {
	buf := core.NewBuffer(8, 8)
	for y := range buf {
		for x := range buf[y] {
			if x >= 4 {
				buf[y][x].CharIdx = 9
			}
		}
	}
	EdgeDetect(buf, nil, 0)
	if buf[4][4].CharIdx == 0 {
		t.Error("vertical edge should produce nonzero gradient")
	}
}

func TestScanlinesDarkenRows(t *testing.T) {
	buf := gradientBuffer(8, 8)
	orig := gradientBuffer(8, 8)
	Scanlines(buf, Args{"spacing": 4, "darkness": 0.5}, 0)

	if buf[0][3].Fg.R >= orig[0][3].Fg.R && orig[0][3].Fg.R > 0 {
		t.Error("row 0 should be darkened")
	}
	if buf[1][3] != orig[1][3] {
		t.Error("row 1 should be untouched")
	}
}

func TestScanlinesScroll(t *testing.T) {
	a := gradientBuffer(8, 8)
	b := gradientBuffer(8, 8)
	args := Args{"spacing": 4, "darkness": 0.5, "scroll_speed": 1.0}
	Scanlines(a, args, 0)
	Scanlines(b, args, 0.5)
	if buffersEqual(a, b) {
		t.Error("scrolling scanlines should shift between frames")
	}
}

func TestVignetteDarkensCorners(t *testing.T) {
	buf := core.NewBuffer(17, 17)
	for y := range buf {
		for x := range buf[y] {
			buf[y][x] = core.Cell{CharIdx: 9, Fg: core.RGB{R: 200, G: 200, B: 200}}
		}
	}
	Vignette(buf, Args{"strength": 0.8}, 0)

	center := buf[8][8]
	corner := buf[0][0]
	if corner.Fg.R >= center.Fg.R {
		t.Errorf("corner (%d) should be darker than center (%d)", corner.Fg.R, center.Fg.R)
	}
	if corner.CharIdx >= center.CharIdx {
		t.Errorf("corner index (%d) should drop below center (%d)", corner.CharIdx, center.CharIdx)
	}
}

func TestVignettePulse(t *testing.T) {
	a := gradientBuffer(16, 16)
	b := gradientBuffer(16, 16)
	args := Args{"strength": 0.5, "pulse_speed": 1.0, "pulse_amp": 0.3}
	Vignette(a, args, 0)
	Vignette(b, args, 0.25)
	if buffersEqual(a, b) {
		t.Error("pulsing vignette should change between frames")
	}
}

func TestPixelateBlocksUniform(t *testing.T) {
	buf := gradientBuffer(16, 16)
	Pixelate(buf, Args{"block_size": 4}, 0)
	for by := 0; by < 16; by += 4 {
		for bx := 0; bx < 16; bx += 4 {
			want := buf[by][bx]
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 4; dx++ {
					got := buf[by+dy][bx+dx]
					if got.CharIdx != want.CharIdx || got.Fg != want.Fg {
						t.Fatalf("block at (%d,%d) is not uniform", bx, by)
					}
				}
			}
		}
	}
}

func TestPixelatePulseChangesBlockSize(t *testing.T) {
	a := gradientBuffer(16, 16)
	b := gradientBuffer(16, 16)
	args := Args{"block_size": 4, "pulse_speed": 1.0, "pulse_amp": 3.0}
	Pixelate(a, args, 0)
	Pixelate(b, args, 0.25)
	if buffersEqual(a, b) {
		t.Error("pulsing block size should change between frames")
	}
}

func TestColorShiftChangesColors(t *testing.T) {
	buf := gradientBuffer(8, 8)
	orig := gradientBuffer(8, 8)
	ColorShift(buf, Args{"hue_shift": 0.3}, 0)
	if buffersEqual(buf, orig) {
		t.Error("hue rotation should change colors")
	}
	if buf[3][3].CharIdx != orig[3][3].CharIdx {
		t.Error("hue rotation should leave char indices alone")
	}
}

func TestColorShiftDrift(t *testing.T) {
	a := gradientBuffer(8, 8)
	b := gradientBuffer(8, 8)
	args := Args{"hue_shift": 0.1, "drift_speed": 0.5}
	ColorShift(a, args, 0)
	ColorShift(b, args, 1.0)
	if buffersEqual(a, b) {
		t.Error("drifting hue should change between frames")
	}
}

func TestApplyChainSkipsUnknown(t *testing.T) {
	buf := gradientBuffer(8, 8)
	Apply(buf, []Spec{
		{Type: "no_such_filter"},
		{Type: "threshold", Args: Args{"threshold": 0.5}},
	}, 0)
	for y := range buf {
		for x := range buf[y] {
			if idx := buf[y][x].CharIdx; idx != 0 && idx != 9 {
				t.Fatalf("chain did not reach threshold, index %d", idx)
			}
		}
	}
}

func TestRegistryNames(t *testing.T) {
	for _, name := range []string{"threshold", "invert", "edge_detect", "scanlines", "vignette", "pixelate", "color_shift"} {
		if _, ok := Registry[name]; !ok {
			t.Errorf("missing filter %q", name)
		}
	}
}
