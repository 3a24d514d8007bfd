package grammar

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGenerateDeterministicPerSeed(t *testing.T) {
	p := Params{Energy: 0.7, Warmth: 0.3, Structure: 0.5, Intensity: 0.6, Valence: 0.4, Arousal: 0.5}
	a := New(42).Generate(p)
	b := New(42).Generate(p)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and params should expand to the same scene")
	}
}

func TestGenerateSeedsDiverge(t *testing.T) {
	p := Params{Energy: 0.5, Warmth: 0.5, Structure: 0.5, Intensity: 0.5}
	distinct := map[string]bool{}
	for seed := int64(0); seed < 20; seed++ {
		spec := New(seed).Generate(p)
		distinct[spec.BgEffect+"/"+spec.LayoutType+"/"+spec.GradientName] = true
	}
	if len(distinct) < 5 {
		t.Errorf("20 seeds produced only %d distinct combinations", len(distinct))
	}
}

func TestGenerateRanges(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		spec := New(seed).Generate(Params{Energy: 0.9, Structure: 0.2, Intensity: 0.8, Arousal: 0.9})

		if spec.KaomojiCount < 2 || spec.KaomojiCount > 12 {
			t.Errorf("seed %d: kaomoji count %d out of [2,12]", seed, spec.KaomojiCount)
		}
		if spec.KaomojiSizeMin > spec.KaomojiSizeMax {
			t.Errorf("seed %d: size range inverted (%d > %d)", seed, spec.KaomojiSizeMin, spec.KaomojiSizeMax)
		}
		if spec.KaomojiSizeMin < 60 || spec.KaomojiSizeMax > 200 {
			t.Errorf("seed %d: size range [%d,%d] escaped [60,200]", seed, spec.KaomojiSizeMin, spec.KaomojiSizeMax)
		}
		if spec.OverlayEffect != "" && spec.OverlayEffect == spec.BgEffect {
			t.Errorf("seed %d: overlay duplicates background effect %q", seed, spec.BgEffect)
		}
		if spec.OverlayEffect != "" && (spec.OverlayMix < 0.15 || spec.OverlayMix > 0.5) {
			t.Errorf("seed %d: overlay mix %v out of range", seed, spec.OverlayMix)
		}
		if len(spec.DecorationChars) == 0 {
			t.Errorf("seed %d: no decoration chars", seed)
		}
		if spec.ParticleChars == "" {
			t.Errorf("seed %d: empty particle chars", seed)
		}
	}
}

func TestStructureBiasesLayout(t *testing.T) {
	structured, scattered := 0, 0
	for seed := int64(0); seed < 200; seed++ {
		high := New(seed).Generate(Params{Structure: 1.0})
		if high.LayoutType == "grid_jitter" || high.LayoutType == "preset" {
			structured++
		}
		low := New(seed).Generate(Params{Structure: 0.0})
		if low.LayoutType == "grid_jitter" || low.LayoutType == "preset" {
			scattered++
		}
	}
	if structured <= scattered {
		t.Errorf("high structure should favor regular layouts: %d vs %d", structured, scattered)
	}
}

func TestEffectParamsPerEffect(t *testing.T) {
	g := New(42)
	cases := map[string][]string{
		"plasma":         {"frequency", "speed", "color_phase"},
		"wave":           {"wave_count", "frequency", "amplitude", "speed"},
		"flame":          {"intensity"},
		"moire":          {"freq_a", "freq_b", "speed_a", "speed_b"},
		"noise_field":    {"scale", "octaves", "lacunarity", "gain", "speed"},
		"sdf_shapes":     {"shape_count", "radius_min", "radius_max"},
		"cppn":           {"num_hidden", "layer_size", "seed"},
		"donut":          {"R1", "R2", "rotation_speed", "surface_noise", "twist"},
		"wireframe_cube": {"scale", "rotation_speed_x", "vertex_noise", "morph"},
		"mod_xor":        {"modulus", "layers", "zoom", "speed"},
		"ten_print":      {"cell_size", "probability", "speed"},
		"wobbly":         {"warp_amount", "warp_freq", "iterations"},
		"chroma_spiral":  {"arms", "tightness", "chroma_offset"},
		"slime_dish":     {"agent_count", "decay_rate", "sensor_angle", "sensor_distance"},
		"sand_game":      {"spawn_rate", "gravity_speed", "particle_types"},
		"game_of_life":   {"density", "speed", "wrap"},
		"dyna":           {"attractor_count", "frequency", "speed"},
	}
	for effect, keys := range cases {
		params := g.effectParams(effect, 0.5, 0.5)
		for _, key := range keys {
			if _, ok := params[key]; !ok {
				t.Errorf("%s params missing %q", effect, key)
			}
		}
	}
	if len(g.effectParams("unknown", 0.5, 0.5)) != 0 {
		t.Error("unknown effect should get empty params")
	}
}

func TestCPPNParamsInRange(t *testing.T) {
	g := New(7)
	for i := 0; i < 50; i++ {
		params := g.effectParams("cppn", 0.5, 0.5)
		if h := params["num_hidden"]; h < 2 || h > 5 {
			t.Errorf("num_hidden %v out of [2,5]", h)
		}
		ls := params["layer_size"]
		if ls != 4 && ls != 6 && ls != 8 && ls != 10 && ls != 12 {
			t.Errorf("layer_size %v not in the allowed set", ls)
		}
	}
}

func TestKaomojiMoodBuckets(t *testing.T) {
	cases := []struct {
		valence, arousal float64
		want             string
	}{
		{0.8, 0.8, "euphoria"},
		{0.8, -0.2, "happy"},
		{0.3, 0.5, "excitement"},
		{0.3, 0.0, "relaxed"},
		{-0.1, 0.5, "confused"},
		{-0.1, 0.0, "bored"},
		{-0.5, 0.5, "anxiety"},
		{-0.5, 0.0, "sad"},
		{-0.9, 0.5, "panic"},
		{-0.9, 0.0, "lonely"},
		{-0.8, 0.9, "panic"},
	}
	for _, tc := range cases {
		if got := chooseKaomojiMood(tc.valence, tc.arousal); got != tc.want {
			t.Errorf("mood(%v, %v) = %q, want %q", tc.valence, tc.arousal, got, tc.want)
		}
	}
}

func TestBgEffectDiversity(t *testing.T) {
	p := Params{Energy: 0.5, Warmth: 0.5, Structure: 0.5, Intensity: 0.5}
	counts := map[string]int{}
	for seed := int64(0); seed < 100; seed++ {
		counts[New(seed).Generate(p).BgEffect]++
	}
	if len(counts) < 8 {
		t.Errorf("only %d distinct background effects over 100 seeds", len(counts))
	}
	for effect, n := range counts {
		if n > 25 {
			t.Errorf("%s chosen %d/100 times (>25%%)", effect, n)
		}
	}
}

func TestRareBgEffectsAppear(t *testing.T) {
	p := Params{Energy: 0.5, Warmth: 0.5, Structure: 0.5, Intensity: 0.5}
	counts := map[string]int{}
	for seed := int64(0); seed < 200; seed++ {
		counts[New(seed).Generate(p).BgEffect]++
	}
	for _, effect := range []string{"slime_dish", "sand_game", "wireframe_cube", "donut"} {
		if counts[effect] == 0 {
			t.Errorf("%s never chosen over 200 seeds", effect)
		}
	}
}

func TestPostFXNeverEmpty(t *testing.T) {
	p := Params{Energy: 0.1, Structure: 0.1, Intensity: 0.1}
	for seed := int64(0); seed < 200; seed++ {
		spec := New(seed).Generate(p)
		if len(spec.PostFX) < 1 {
			t.Fatalf("seed %d: empty postfx chain", seed)
		}
		for _, fx := range spec.PostFX {
			if fx.Type == "" {
				t.Fatalf("seed %d: postfx step without a type", seed)
			}
		}
	}
}

func TestPostFXVariety(t *testing.T) {
	p := Params{Energy: 0.5, Structure: 0.5, Intensity: 0.5}
	types := map[string]bool{}
	for seed := int64(0); seed < 100; seed++ {
		for _, fx := range New(seed).Generate(p).PostFX {
			types[fx.Type] = true
		}
	}
	if len(types) < 4 {
		t.Errorf("only %d postfx types over 100 seeds", len(types))
	}
}

func TestTransformChain(t *testing.T) {
	p := Params{Energy: 0.5, Structure: 0.5, Intensity: 0.5}
	withChain := 0
	types := map[string]bool{}
	for seed := int64(0); seed < 100; seed++ {
		spec := New(seed).Generate(p)
		if len(spec.Transforms) > 2 {
			t.Fatalf("seed %d: %d transforms, max is 2", seed, len(spec.Transforms))
		}
		if len(spec.Transforms) > 0 {
			withChain++
		}
		for _, tr := range spec.Transforms {
			types[tr.Type] = true
		}
	}
	if withChain < 45 {
		t.Errorf("only %d/100 scenes carry a transform chain", withChain)
	}
	if len(types) < 4 {
		t.Errorf("only %d transform types over 100 seeds", len(types))
	}
}

func TestCompositionModesAppear(t *testing.T) {
	p := Params{Energy: 0.7, Warmth: 0.5, Structure: 0.5, Intensity: 0.5}
	modes := map[string]int{}
	total := 0
	for seed := int64(0); seed < 300; seed++ {
		spec := New(seed).Generate(p)
		if spec.OverlayEffect == "" {
			continue
		}
		modes[spec.CompositionMode]++
		total++
	}
	for _, mode := range []string{"blend", "masked_split", "radial_masked", "noise_masked"} {
		if modes[mode] == 0 {
			t.Errorf("composition mode %s never chosen", mode)
		}
	}
	if total > 0 && float64(modes["blend"])/float64(total) > 0.45 {
		t.Errorf("blend dominates: %d/%d overlay scenes", modes["blend"], total)
	}
}

func TestMaskMatchesCompositionMode(t *testing.T) {
	p := Params{Energy: 0.8, Warmth: 0.5, Structure: 0.5, Intensity: 0.5}
	maskTypes := map[string]map[string]bool{
		"masked_split":  {"horizontal_split": true, "vertical_split": true, "diagonal": true},
		"radial_masked": {"radial": true},
		"noise_masked":  {"noise": true},
	}
	for seed := int64(0); seed < 200; seed++ {
		spec := New(seed).Generate(p)
		switch {
		case spec.OverlayEffect == "" || spec.CompositionMode == "blend":
			if spec.Mask != nil {
				t.Fatalf("seed %d: mask without a masked composition", seed)
			}
		default:
			allowed := maskTypes[spec.CompositionMode]
			if spec.Mask == nil {
				t.Fatalf("seed %d: %s composition without a mask", seed, spec.CompositionMode)
			}
			if !allowed[spec.Mask.Type] {
				t.Fatalf("seed %d: mask %s does not fit mode %s", seed, spec.Mask.Type, spec.CompositionMode)
			}
		}
	}
}

func TestSceneSpecYAMLRoundTrip(t *testing.T) {
	spec := New(42).Generate(Params{Energy: 0.7, Warmth: 0.3, Structure: 0.5, Intensity: 0.6})
	path := filepath.Join(t.TempDir(), "scene.yaml")

	if err := spec.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSceneSpec(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(&spec, loaded) {
		t.Errorf("round trip changed the spec:\n got %+v\nwant %+v", loaded, &spec)
	}
}

func TestLoadSceneSpecMissingFile(t *testing.T) {
	if _, err := LoadSceneSpec(filepath.Join(os.TempDir(), "no-such-scene.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
