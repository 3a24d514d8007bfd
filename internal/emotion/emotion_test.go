package emotion

import (
	"math"
	"testing"
)

func TestNewClampsComponents(t *testing.T) {
	v := New(2.0, -3.0, 0.5)
	if v.Valence != 1.0 || v.Arousal != -1.0 || v.Dominance != 0.5 {
		t.Errorf("components not clamped: %+v", v)
	}
}

func TestMagnitudeAndNormalize(t *testing.T) {
	v := New(1, 0, 0)
	if math.Abs(v.Magnitude()-1.0) > 1e-9 {
		t.Errorf("expected magnitude 1, got %v", v.Magnitude())
	}

	zero := Vector{}
	if zero.Normalized() != (Vector{}) {
		t.Error("zero vector should normalize to zero")
	}

	n := New(0.5, 0.5, 0).Normalized()
	if math.Abs(n.Magnitude()-1.0) > 1e-9 {
		t.Errorf("normalized magnitude should be 1, got %v", n.Magnitude())
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := New(-1, 0, 0)
	b := New(1, 0.5, -0.5)
	if a.Lerp(b, 0) != a {
		t.Error("lerp at t=0 should return the start")
	}
	if a.Lerp(b, 1) != b {
		t.Error("lerp at t=1 should return the end")
	}
	mid := a.Lerp(b, 0.5)
	if math.Abs(mid.Valence) > 1e-9 || math.Abs(mid.Arousal-0.25) > 1e-9 {
		t.Errorf("midpoint wrong: %+v", mid)
	}
}

func TestSlerpPreservesUnitLength(t *testing.T) {
	a := New(1, 0, 0)
	b := New(0, 1, 0)
	mid := a.Slerp(b, 0.5)
	if math.Abs(mid.Magnitude()-1.0) > 1e-6 {
		t.Errorf("slerp midpoint of unit vectors should stay unit, got %v", mid.Magnitude())
	}
}

func TestDistance(t *testing.T) {
	a := New(0, 0, 0)
	b := New(1, 0, 0)
	if math.Abs(a.Distance(b)-1.0) > 1e-9 {
		t.Errorf("expected distance 1, got %v", a.Distance(b))
	}
}

func TestVisualParamsRanges(t *testing.T) {
	for name, anchor := range Anchors {
		params := anchor.VisualParams()
		for _, key := range []string{"warmth", "saturation", "structure", "energy", "intensity"} {
			if p := params[key]; p < 0 || p > 1 {
				t.Errorf("%s: %s = %v out of [0,1]", name, key, p)
			}
		}
		if oct := params["octaves"]; oct < 1 || oct > 8 {
			t.Errorf("%s: octaves %v out of [1,8]", name, oct)
		}
		if sp := params["speed"]; sp < 0.2 || sp > 5.0 {
			t.Errorf("%s: speed %v out of [0.2,5]", name, sp)
		}
	}
}

func TestVisualParamsDirections(t *testing.T) {
	joy := FromName("joy").VisualParams()
	sadness := FromName("sadness").VisualParams()
	if joy["warmth"] <= sadness["warmth"] {
		t.Error("positive valence should be warmer than negative")
	}

	panic_ := FromName("panic").VisualParams()
	calm := FromName("calm").VisualParams()
	if panic_["speed"] <= calm["speed"] {
		t.Error("high arousal should be faster than low arousal")
	}
}

func TestFromNameFallback(t *testing.T) {
	if FromName("no_such_mood") != Anchors["neutral"] {
		t.Error("unknown name should fall back to neutral")
	}
	if FromName("JOY") != Anchors["joy"] {
		t.Error("lookup should be case-insensitive")
	}
}

func TestFromTextDetectsSentiment(t *testing.T) {
	up := FromText("markets surge and rally to record highs", Vector{})
	if up.Valence <= 0 {
		t.Errorf("bullish text should have positive valence, got %v", up.Valence)
	}

	down := FromText("crash panic collapse", Vector{})
	if down.Valence >= 0 {
		t.Errorf("crash text should have negative valence, got %v", down.Valence)
	}
	if down.Arousal <= 0 {
		t.Errorf("crash text should have high arousal, got %v", down.Arousal)
	}
}

func TestFromTextMultiByteKeywords(t *testing.T) {
	crash := FromText("市场暴跌 恐慌蔓延", Vector{})
	if crash.Valence >= 0 {
		t.Errorf("暴跌/恐慌 text should have negative valence, got %v", crash.Valence)
	}
	if crash.Arousal <= 0 {
		t.Errorf("暴跌/恐慌 text should have high arousal, got %v", crash.Arousal)
	}

	calm := FromText("市场稳定，保持平静", Vector{})
	if calm.Valence <= 0 {
		t.Errorf("稳定/平静 text should have positive valence, got %v", calm.Valence)
	}
	if calm.Arousal >= 0 {
		t.Errorf("稳定/平静 text should have low arousal, got %v", calm.Arousal)
	}
}

func TestFromTextMixedScripts(t *testing.T) {
	mixed := FromText("crash 恐慌", Vector{})
	onlyWord := FromText("crash", Vector{})
	if mixed.Valence >= onlyWord.Valence {
		t.Errorf("adding 恐慌 should deepen negative valence: %v vs %v", mixed.Valence, onlyWord.Valence)
	}
}

func TestFromTextDeterministic(t *testing.T) {
	text := "暴涨 牛市 breakthrough 希望"
	a := FromText(text, Vector{})
	for i := 0; i < 10; i++ {
		if b := FromText(text, Vector{}); b != a {
			t.Fatalf("repeated inference diverged: %+v vs %+v", a, b)
		}
	}
}

func TestFromTextNoKeywords(t *testing.T) {
	v := FromText("the quick brown fox", Vector{})
	if v != (Vector{}) {
		t.Errorf("text without keywords should be neutral, got %+v", v)
	}
}

func TestFromTextBlendsBase(t *testing.T) {
	base := FromName("joy")
	v := FromText("nothing matching here", base)
	want := Vector{}.Lerp(base, 0.3)
	if math.Abs(v.Valence-want.Valence) > 1e-9 {
		t.Errorf("base should contribute 30%%, got %+v want %+v", v, want)
	}
}

func TestBlend(t *testing.T) {
	a := New(1, 0, 0)
	b := New(-1, 0, 0)
	mixed := Blend([]Vector{a, b}, nil)
	if math.Abs(mixed.Valence) > 1e-9 {
		t.Errorf("equal-weight opposites should cancel, got %v", mixed.Valence)
	}

	weighted := Blend([]Vector{a, b}, []float64{3, 1})
	if math.Abs(weighted.Valence-0.5) > 1e-9 {
		t.Errorf("3:1 weights should give 0.5, got %v", weighted.Valence)
	}

	if Blend(nil, nil) != (Vector{}) {
		t.Error("empty input should give the zero vector")
	}
}
