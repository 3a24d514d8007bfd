package mathx

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, expected float64
	}{
		{1.5, 0, 1, 1.0},
		{-0.3, 0, 1, 0.0},
		{0.5, 0, 1, 0.5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.min, tt.max); got != tt.expected {
			t.Errorf("Clamp(%v, %v, %v): expected %v, got %v", tt.v, tt.min, tt.max, tt.expected, got)
		}
	}
}

func TestMix(t *testing.T) {
	if got := Mix(0, 10, 0.5); got != 5.0 {
		t.Errorf("expected 5.0, got %f", got)
	}
	if got := Mix(0, 10, 0.0); got != 0.0 {
		t.Errorf("expected 0.0, got %f", got)
	}
	if got := Mix(0, 10, 1.0); got != 10.0 {
		t.Errorf("expected 10.0, got %f", got)
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0, 1, 0.0); got != 0.0 {
		t.Errorf("expected 0.0 at lower edge, got %f", got)
	}
	if got := Smoothstep(0, 1, 1.0); got != 1.0 {
		t.Errorf("expected 1.0 at upper edge, got %f", got)
	}
	if got := Smoothstep(0, 1, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5 at midpoint, got %f", got)
	}
	// Nonlinear below midpoint
	if got := Smoothstep(0, 1, 0.25); math.Abs(got-0.15625) > 1e-9 {
		t.Errorf("expected 0.15625, got %f", got)
	}
}

func TestMapRange(t *testing.T) {
	if got := MapRange(50, 0, 100, 0, 1); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := MapRange(0.5, 0, 1, -100, 100); got != 0.0 {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestFract(t *testing.T) {
	if got := Fract(3.7); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("expected 0.7, got %f", got)
	}
	// Always non-negative
	if got := Fract(-0.3); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("expected 0.7, got %f", got)
	}
}

func TestMod(t *testing.T) {
	if got := Mod(5.5, 3.0); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected 2.5, got %f", got)
	}
	if got := Mod(-1.5, 3.0); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("expected 1.5, got %f", got)
	}
}

func TestStepPulse(t *testing.T) {
	if Step(0.5, 0.3) != 0.0 {
		t.Error("expected 0 below edge")
	}
	if Step(0.5, 0.5) != 1.0 {
		t.Error("expected 1 at edge")
	}
	if Pulse(0.3, 0.7, 0.5) != 1.0 {
		t.Error("expected 1 inside pulse")
	}
	if Pulse(0.3, 0.7, 0.1) != 0.0 {
		t.Error("expected 0 outside pulse")
	}
}
