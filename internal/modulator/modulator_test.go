package modulator

import (
	"math"
	"testing"
)

func TestSampleStaysWithinAmplitude(t *testing.T) {
	mod := New(0.5, 0.2, 0.1, 42)
	for i := 0; i < 100; i++ {
		v := mod.Sample(float64(i) * 0.1)
		if v < 0.3-1e-9 || v > 0.7+1e-9 {
			t.Fatalf("sample %v outside base±amplitude", v)
		}
	}
}

func TestSampleDeterministicPerSeed(t *testing.T) {
	a := New(0.5, 0.2, 0.1, 42)
	b := New(0.5, 0.2, 0.1, 42)
	c := New(0.5, 0.2, 0.1, 43)

	if a.Sample(1.5) != b.Sample(1.5) {
		t.Error("same seed should sample identically")
	}
	same := true
	for i := 0; i < 10; i++ {
		tt := float64(i) * 0.37
		if a.Sample(tt) != c.Sample(tt) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should diverge")
	}
}

func TestSampleVariesOverTime(t *testing.T) {
	mod := New(0.5, 0.2, 0.5, 42)
	v0 := mod.Sample(0)
	varied := false
	for i := 1; i < 50; i++ {
		if math.Abs(mod.Sample(float64(i)*0.5)-v0) > 1e-6 {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("modulated value never moved")
	}
}

func TestWithRangeClamps(t *testing.T) {
	mod := New(0.95, 0.5, 0.3, 42).WithRange(0.0, 1.0)
	for i := 0; i < 100; i++ {
		v := mod.Sample(float64(i) * 0.2)
		if v < 0 || v > 1 {
			t.Fatalf("clamped sample %v out of range", v)
		}
	}
}

func TestSample2DVariesSpatially(t *testing.T) {
	mod := New(0.5, 0.3, 2.0, 42)
	a := mod.Sample2D(0.1, 0.1, 0)
	b := mod.Sample2D(0.9, 0.9, 0)
	if a == b {
		t.Error("distant points should sample differently")
	}
}

func TestModulatedParams(t *testing.T) {
	p := NewParams(42).
		Add("frequency", 0.05, 0.03, 0.2).
		AddClamped("density", 0.5, 0.4, 0.1, 0.0, 1.0)

	static := p.SampleStatic()
	if static["frequency"] != 0.05 || static["density"] != 0.5 {
		t.Errorf("static sample should return bases, got %v", static)
	}

	sampled := p.Sample(1.5)
	if len(sampled) != 2 {
		t.Fatalf("expected 2 params, got %d", len(sampled))
	}
	if f := sampled["frequency"]; f < 0.02-1e-9 || f > 0.08+1e-9 {
		t.Errorf("frequency %v outside base±amplitude", f)
	}
	if d := sampled["density"]; d < 0 || d > 1 {
		t.Errorf("density %v escaped its clamp", d)
	}
}

func TestModulateVisualParamsDeterministic(t *testing.T) {
	params := map[string]float64{"warmth": 0.7, "speed": 2.0, "octaves": 4}
	a := ModulateVisualParams(params, 1.5, 0.3, 42)
	b := ModulateVisualParams(params, 1.5, 0.3, 42)
	for k := range a {
		if a[k] != b[k] {
			t.Errorf("%s differs between identical calls", k)
		}
	}
}

func TestModulateVisualParamsRanges(t *testing.T) {
	params := map[string]float64{"warmth": 0.7, "saturation": 0.9, "speed": 2.0, "octaves": 4}
	out := ModulateVisualParams(params, 3.7, 0.5, 42)

	if out["warmth"] < 0 || out["warmth"] > 1 {
		t.Errorf("unit param escaped [0,1]: %v", out["warmth"])
	}
	if out["speed"] < 0 {
		t.Errorf("nonnegative param went negative: %v", out["speed"])
	}
	if oct := out["octaves"]; oct != math.Trunc(oct) || oct < 1 {
		t.Errorf("octaves should stay a positive integer, got %v", oct)
	}
}

func TestModulateVisualParamsZeroDrift(t *testing.T) {
	params := map[string]float64{"warmth": 0.7, "speed": 2.0}
	out := ModulateVisualParams(params, 5.0, 0.0, 42)
	if out["warmth"] != 0.7 || out["speed"] != 2.0 {
		t.Errorf("zero drift should leave values unchanged, got %v", out)
	}
}
