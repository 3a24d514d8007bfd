package core

import "testing"

func TestNewBuffer(t *testing.T) {
	buf := NewBuffer(8, 4)
	if buf.Width() != 8 || buf.Height() != 4 {
		t.Errorf("expected 8x4, got %dx%d", buf.Width(), buf.Height())
	}
	for y := range buf {
		for x := range buf[y] {
			c := buf[y][x]
			if c.CharIdx != 0 || c.Bg != nil {
				t.Fatalf("cell (%d,%d) not zero-initialized: %+v", x, y, c)
			}
		}
	}
}

func TestQuantizeChar(t *testing.T) {
	tests := []struct {
		v        float64
		expected int
	}{
		{0.0, 0},
		{0.5, 4},
		{1.0, 9},
		{1.5, 9},
		{-0.2, 0},
		{0.99, 8},
	}
	for _, tt := range tests {
		if got := QuantizeChar(tt.v); got != tt.expected {
			t.Errorf("QuantizeChar(%v): expected %d, got %d", tt.v, tt.expected, got)
		}
	}
}

func TestContextParams(t *testing.T) {
	ctx := NewContext(160, 160, 0, 0, 42, map[string]float64{"frequency": 0.05})
	if got := ctx.Param("frequency", 0.1); got != 0.05 {
		t.Errorf("expected 0.05, got %f", got)
	}
	if got := ctx.Param("missing", 0.1); got != 0.1 {
		t.Errorf("expected default 0.1, got %f", got)
	}
	if got := ctx.StrParam("shape", "circle"); got != "circle" {
		t.Errorf("expected default circle, got %s", got)
	}
}

func TestContextRngDeterministic(t *testing.T) {
	a := NewContext(10, 10, 0, 0, 7, nil)
	b := NewContext(10, 10, 0, 0, 7, nil)
	if a.Rng.Float64() != b.Rng.Float64() {
		t.Error("same seed should give same rng stream")
	}
}
