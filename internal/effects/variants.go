package effects

import "math/rand"

// ParamRange bounds one numeric parameter of a variant. Min == Max
// pins the value.
type ParamRange struct {
	Min, Max float64
}

func fixed(v float64) ParamRange        { return ParamRange{v, v} }
func between(lo, hi float64) ParamRange { return ParamRange{lo, hi} }

// Variant is a named structural preset for an effect. The grammar
// picks one by weight, then samples each parameter uniformly within
// its range.
type Variant struct {
	Name      string
	Weight    float64
	Params    map[string]ParamRange
	StrParams map[string]string
}

// SampleParams draws one concrete parameter set from the ranges.
func (v Variant) SampleParams(rng *rand.Rand) map[string]float64 {
	out := make(map[string]float64, len(v.Params))
	for k, r := range v.Params {
		if r.Min == r.Max {
			out[k] = r.Min
			continue
		}
		out[k] = r.Min + rng.Float64()*(r.Max-r.Min)
	}
	return out
}

// PickVariant makes a weighted choice among an effect's variants.
// Each weight is jittered by a uniform [0.5, 1.5] factor so the same
// emotional input still wanders across variants between seeds. The
// second return is false when the effect has no variant table.
func PickVariant(effect string, rng *rand.Rand) (Variant, bool) {
	variants, ok := Variants[effect]
	if !ok || len(variants) == 0 {
		return Variant{}, false
	}

	weights := make([]float64, len(variants))
	total := 0.0
	for i, v := range variants {
		weights[i] = v.Weight * (0.5 + rng.Float64())
		total += weights[i]
	}
	if total <= 0 {
		return variants[0], true
	}

	pick := rng.Float64() * total
	for i, w := range weights {
		pick -= w
		if pick <= 0 {
			return variants[i], true
		}
	}
	return variants[len(variants)-1], true
}

// Variants names the structural presets per effect. Boolean switches
// are encoded as pinned 0/1 parameters.
var Variants = map[string][]Variant{
	"donut": {
		{Name: "classic", Weight: 0.2},
		{Name: "alien", Weight: 0.2, Params: map[string]ParamRange{
			"surface_noise": between(0.3, 0.8),
			"asymmetry_x":   between(0.5, 1.5),
			"asymmetry_y":   between(0.5, 1.5),
			"twist":         between(0.3, 1.5),
		}},
		{Name: "thin_ring", Weight: 0.15, Params: map[string]ParamRange{
			"R1": between(0.1, 0.3), "R2": between(2.0, 4.0),
		}},
		{Name: "fat_blob", Weight: 0.15, Params: map[string]ParamRange{
			"R1": between(1.5, 3.0), "R2": between(0.05, 0.5),
			"surface_noise": between(0.1, 0.5),
		}},
		{Name: "multi", Weight: 0.15, Params: map[string]ParamRange{
			"count": between(2, 3), "ring_offset": between(0.2, 0.5),
		}},
		{Name: "twisted", Weight: 0.15, Params: map[string]ParamRange{
			"twist": between(0.8, 2.0), "surface_noise": between(0.1, 0.4),
		}},
	},
	"wireframe_cube": {
		{Name: "classic", Weight: 0.25},
		{Name: "irregular", Weight: 0.25, Params: map[string]ParamRange{
			"vertex_noise": between(0.1, 0.6),
		}},
		{Name: "morphing", Weight: 0.25, Params: map[string]ParamRange{
			"morph": between(0.2, 1.0),
		}},
		{Name: "deformed", Weight: 0.25, Params: map[string]ParamRange{
			"vertex_noise": between(0.2, 0.5), "morph": between(0.1, 0.5),
			"scale": between(0.2, 0.7),
		}},
	},
	"plasma": {
		{Name: "classic", Weight: 0.2},
		{Name: "warped", Weight: 0.2, Params: map[string]ParamRange{
			"self_warp": between(0.2, 0.8),
		}},
		{Name: "noisy", Weight: 0.2, Params: map[string]ParamRange{
			"noise_injection": between(0.2, 0.7),
		}},
		{Name: "turbulent", Weight: 0.2, Params: map[string]ParamRange{
			"self_warp": between(0.1, 0.4), "noise_injection": between(0.1, 0.4),
			"frequency": between(0.08, 0.2),
		}},
		{Name: "slow_morph", Weight: 0.2, Params: map[string]ParamRange{
			"frequency": between(0.01, 0.03), "speed": between(0.1, 0.5),
			"noise_injection": between(0.3, 0.6),
		}},
	},
	"wave": {
		{Name: "classic", Weight: 0.25},
		{Name: "warped", Weight: 0.25, Params: map[string]ParamRange{
			"self_warp": between(0.2, 0.7),
		}},
		{Name: "chaotic", Weight: 0.25, Params: map[string]ParamRange{
			"noise_injection": between(0.3, 0.8),
			"wave_count":      between(5, 10),
		}},
		{Name: "minimal", Weight: 0.25, Params: map[string]ParamRange{
			"wave_count": between(1, 2), "amplitude": between(1.5, 3.0),
		}},
	},
	"moire": {
		{Name: "classic", Weight: 0.25},
		{Name: "distorted", Weight: 0.25, Params: map[string]ParamRange{
			"distortion": between(0.2, 0.7),
		}},
		{Name: "multi_center", Weight: 0.25, Params: map[string]ParamRange{
			"multi_center": between(2, 3),
		}},
		{Name: "dense", Weight: 0.25, Params: map[string]ParamRange{
			"freq_a": between(12.0, 20.0), "freq_b": between(12.0, 20.0),
			"distortion": between(0.1, 0.3),
		}},
	},
	"chroma_spiral": {
		{Name: "classic", Weight: 0.2},
		{Name: "warped", Weight: 0.2, Params: map[string]ParamRange{
			"distortion": between(0.2, 0.6),
		}},
		{Name: "multi", Weight: 0.2, Params: map[string]ParamRange{
			"multi_center": between(2, 4),
		}},
		{Name: "tight", Weight: 0.2, Params: map[string]ParamRange{
			"arms": between(5, 8), "tightness": between(1.0, 2.0),
		}},
		{Name: "loose", Weight: 0.2, Params: map[string]ParamRange{
			"arms": between(1, 2), "tightness": between(0.1, 0.3),
			"chroma_offset": between(0.15, 0.3),
		}},
	},
	"mod_xor": {
		{Name: "classic", Weight: 0.25},
		{Name: "distorted", Weight: 0.25, Params: map[string]ParamRange{
			"distortion": between(0.2, 0.6),
		}},
		{Name: "fine", Weight: 0.25, Params: map[string]ParamRange{
			"modulus": between(4, 8), "zoom": between(0.5, 0.8),
		}},
		{Name: "layered", Weight: 0.25, Params: map[string]ParamRange{
			"modulus": between(16, 64), "layers": between(2, 3),
		}},
	},
	"flame": {
		{Name: "classic", Weight: 0.25},
		{Name: "intense", Weight: 0.25, Params: map[string]ParamRange{
			"intensity": between(2.0, 3.0),
		}},
		{Name: "faint", Weight: 0.25, Params: map[string]ParamRange{
			"intensity": between(0.3, 0.6),
		}},
		{Name: "turbulent", Weight: 0.25, Params: map[string]ParamRange{
			"intensity": between(1.5, 2.5),
		}},
	},
	"noise_field": {
		{Name: "classic", Weight: 0.17},
		{Name: "dense", Weight: 0.17, Params: map[string]ParamRange{
			"scale": between(0.02, 0.04), "octaves": between(6, 8),
		}},
		{Name: "coarse", Weight: 0.17, Params: map[string]ParamRange{
			"scale": between(0.1, 0.2), "octaves": between(1, 2),
		}},
		{Name: "turbulent", Weight: 0.17, Params: map[string]ParamRange{
			"turbulence": fixed(1), "octaves": between(4, 6), "speed": between(0.3, 0.7),
		}},
		{Name: "smooth_flow", Weight: 0.16, Params: map[string]ParamRange{
			"lacunarity": between(1.5, 1.8), "gain": between(0.6, 0.8), "speed": between(1.0, 3.0),
		}},
		{Name: "sharp", Weight: 0.16, Params: map[string]ParamRange{
			"lacunarity": between(2.5, 3.0), "gain": between(0.3, 0.4), "octaves": between(5, 7),
		}},
	},
	"ten_print": {
		{Name: "classic", Weight: 0.2},
		{Name: "compact", Weight: 0.2, Params: map[string]ParamRange{
			"cell_size": between(4, 5),
		}},
		{Name: "spacious", Weight: 0.2, Params: map[string]ParamRange{
			"cell_size": between(10, 12),
		}},
		{Name: "biased", Weight: 0.2, Params: map[string]ParamRange{
			"probability": between(0.65, 0.80),
		}},
		{Name: "dynamic", Weight: 0.2, Params: map[string]ParamRange{
			"speed": between(2.0, 4.0), "cell_size": between(7, 9),
		}},
	},
	"wobbly": {
		{Name: "classic", Weight: 0.2},
		{Name: "gentle", Weight: 0.2, Params: map[string]ParamRange{
			"warp_amount": between(0.1, 0.2), "iterations": fixed(1),
		}},
		{Name: "violent", Weight: 0.2, Params: map[string]ParamRange{
			"warp_amount": between(0.7, 1.0), "iterations": fixed(3),
		}},
		{Name: "fine_ripple", Weight: 0.2, Params: map[string]ParamRange{
			"warp_freq": between(0.08, 0.15), "warp_amount": between(0.3, 0.5),
		}},
		{Name: "coarse_warp", Weight: 0.2, Params: map[string]ParamRange{
			"warp_freq": between(0.01, 0.02), "warp_amount": between(0.5, 0.8),
		}},
	},
	"sdf_shapes": {
		{Name: "classic", Weight: 0.17},
		{Name: "single", Weight: 0.17, Params: map[string]ParamRange{
			"shape_count": fixed(1), "radius_max": between(0.2, 0.3),
		}},
		{Name: "swarm", Weight: 0.17, Params: map[string]ParamRange{
			"shape_count": between(8, 10), "radius_min": between(0.02, 0.05),
		}},
		{Name: "boxes", Weight: 0.17, Params: map[string]ParamRange{
			"shape_count": between(3, 5), "smoothness": between(0.08, 0.15),
		}, StrParams: map[string]string{"shape_type": "box"}},
		{Name: "sharp", Weight: 0.16, Params: map[string]ParamRange{
			"smoothness": between(0.02, 0.06), "shape_count": between(4, 7),
		}},
		{Name: "fuzzy", Weight: 0.16, Params: map[string]ParamRange{
			"smoothness": between(0.2, 0.3), "shape_count": between(5, 8),
		}},
	},
	"game_of_life": {
		{Name: "classic", Weight: 0.2},
		{Name: "sparse", Weight: 0.2, Params: map[string]ParamRange{
			"density": between(0.2, 0.35),
		}},
		{Name: "dense", Weight: 0.2, Params: map[string]ParamRange{
			"density": between(0.55, 0.7),
		}},
		{Name: "fast_evolution", Weight: 0.2, Params: map[string]ParamRange{
			"speed": between(8.0, 15.0),
		}},
		{Name: "bounded", Weight: 0.2, Params: map[string]ParamRange{
			"wrap": fixed(0), "density": between(0.4, 0.5),
		}},
	},
	"sand_game": {
		{Name: "classic", Weight: 0.2},
		{Name: "rain", Weight: 0.2, Params: map[string]ParamRange{
			"spawn_rate": between(0.6, 0.8), "gravity_speed": between(3, 4),
		}},
		{Name: "drizzle", Weight: 0.2, Params: map[string]ParamRange{
			"spawn_rate": between(0.05, 0.15), "gravity_speed": fixed(1),
		}},
		{Name: "avalanche", Weight: 0.2, Params: map[string]ParamRange{
			"spawn_rate": between(0.3, 0.5), "gravity_speed": between(4, 5),
		}},
		{Name: "rainbow", Weight: 0.2, Params: map[string]ParamRange{
			"particle_types": fixed(3), "spawn_rate": between(0.2, 0.4),
		}},
	},
	"slime_dish": {
		{Name: "classic", Weight: 0.17},
		{Name: "sparse", Weight: 0.17, Params: map[string]ParamRange{
			"agent_count": between(500, 1000), "decay_rate": between(0.92, 0.95),
		}},
		{Name: "dense", Weight: 0.17, Params: map[string]ParamRange{
			"agent_count": between(3500, 5000), "decay_rate": between(0.96, 0.99),
		}},
		{Name: "explorer", Weight: 0.17, Params: map[string]ParamRange{
			"sensor_angle": between(0.8, 1.0), "sensor_distance": between(12, 15),
		}},
		{Name: "focused", Weight: 0.16, Params: map[string]ParamRange{
			"sensor_angle": between(0.2, 0.35), "sensor_distance": between(3, 6),
		}},
		{Name: "persistent", Weight: 0.16, Params: map[string]ParamRange{
			"decay_rate": between(0.97, 0.99), "agent_count": between(2000, 3000),
		}},
	},
	"dyna": {
		{Name: "classic", Weight: 0.17},
		{Name: "single", Weight: 0.17, Params: map[string]ParamRange{
			"attractor_count": fixed(1), "frequency": between(0.5, 0.8),
		}},
		{Name: "many", Weight: 0.17, Params: map[string]ParamRange{
			"attractor_count": between(6, 8), "frequency": between(0.3, 0.6),
		}},
		{Name: "long_waves", Weight: 0.17, Params: map[string]ParamRange{
			"frequency": between(0.08, 0.15), "attractor_count": between(3, 4),
		}},
		{Name: "short_ripples", Weight: 0.16, Params: map[string]ParamRange{
			"frequency": between(1.5, 2.0), "attractor_count": between(4, 6),
		}},
		{Name: "chaotic", Weight: 0.16, Params: map[string]ParamRange{
			"speed": between(0.3, 0.6), "frequency": between(1.2, 1.8), "bounce": fixed(0),
		}},
	},
	"cppn": {
		{Name: "classic", Weight: 0.17},
		{Name: "delicate", Weight: 0.17, Params: map[string]ParamRange{
			"num_hidden": fixed(2), "layer_size": fixed(4),
		}},
		{Name: "intricate", Weight: 0.17, Params: map[string]ParamRange{
			"num_hidden": fixed(4), "layer_size": fixed(12),
		}},
		{Name: "radiant", Weight: 0.17, Params: map[string]ParamRange{
			"num_hidden": fixed(3), "use_radial": fixed(1), "use_time": fixed(0),
		}},
		{Name: "chaotic", Weight: 0.16, Params: map[string]ParamRange{
			"num_hidden": fixed(5), "layer_size": fixed(16), "use_radial": fixed(0),
		}, StrParams: map[string]string{"color_mode": "rgb"}},
		{Name: "linear", Weight: 0.16, Params: map[string]ParamRange{
			"num_hidden": fixed(2), "layer_size": fixed(6), "use_radial": fixed(0),
		}},
	},
}
