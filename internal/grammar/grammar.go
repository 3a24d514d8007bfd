// Package grammar expands stochastic production rules into complete
// scene specifications. Or-nodes pick one weighted candidate, and-nodes
// combine sub-elements, parameter nodes sample continuous ranges; the
// emotion-derived inputs skew every choice, so nearby feelings yield
// related but never identical scenes.
package grammar

import (
	"math"
	"math/rand"

	"github.com/san-kum/glyphgen/internal/mathx"
)

// Params are the continuous inputs that bias rule selection, usually
// taken from emotion.Vector.VisualParams().
type Params struct {
	Energy    float64
	Warmth    float64
	Structure float64
	Intensity float64
	Valence   float64
	Arousal   float64
}

// VisualGrammar derives SceneSpecs from one seeded random stream, so a
// (seed, params) pair always expands to the same scene.
type VisualGrammar struct {
	rng *rand.Rand
}

func New(seed int64) *VisualGrammar {
	return &VisualGrammar{rng: rand.New(rand.NewSource(seed))}
}

// Generate expands one scene.
func (g *VisualGrammar) Generate(p Params) SceneSpec {
	spec := DefaultSceneSpec()

	spec.Warmth = p.Warmth
	spec.Saturation = mathx.Clamp(0.6+p.Intensity*0.4, 0, 1)
	spec.Brightness = mathx.Clamp(0.5+p.Valence*0.3, 0.3, 1.0)

	spec.BgEffect = g.chooseBgEffect(p.Energy, p.Structure)
	spec.BgParams = g.effectParams(spec.BgEffect, p.Energy, p.Structure)

	// High energy is more likely to stack a second layer.
	if g.rng.Float64() < 0.2+p.Energy*0.4 {
		spec.OverlayEffect = g.chooseOverlayEffect(spec.BgEffect)
		spec.OverlayParams = g.effectParams(spec.OverlayEffect, p.Energy*0.7, p.Structure)
		spec.OverlayBlend = g.chooseBlendMode(p.Energy)
		spec.OverlayMix = g.uniform(0.15, 0.5)
		spec.CompositionMode = g.chooseCompositionMode(p.Structure)
		spec.Mask = g.maskForComposition(spec.CompositionMode)
	}

	spec.Transforms = g.chooseTransforms(p.Energy, p.Structure)
	spec.PostFX = g.choosePostFX(p.Energy, p.Structure, p.Intensity)

	spec.LayoutType = g.chooseLayout(p.Structure)
	spec.LayoutCount = g.chooseKaomojiCount(p.Energy)
	spec.KaomojiCount = spec.LayoutCount

	baseSize := int(80 + p.Intensity*40)
	sizeVar := int(30 + p.Energy*40)
	spec.KaomojiSizeMin = max(60, baseSize-sizeVar)
	spec.KaomojiSizeMax = min(200, baseSize+sizeVar)

	spec.HasCentral = g.rng.Float64() < 0.5+p.Structure*0.3
	spec.CentralSize = int(160 + p.Intensity*80)

	spec.FloatAmp = 1.0 + p.Energy*7.0
	spec.BreathAmp = 0.02 + math.Abs(p.Arousal)*0.13
	spec.Animations = g.chooseAnimations(p.Energy, p.Arousal)

	spec.DecorationStyle = g.chooseDecorationStyle(p.Structure)
	spec.DecorationChars = g.chooseDecorationChars(p.Energy, p.Warmth)

	spec.GradientName = g.chooseGradient(p.Energy, p.Structure)

	spec.Sharpen = g.rng.Float64() < 0.7
	spec.Contrast = 1.0 + p.Intensity*0.4

	spec.ParticleChars = g.chooseParticleChars(p.Warmth, p.Energy)
	spec.TextElements = g.chooseTextElements(p.Valence, p.Arousal, p.Energy)
	spec.KaomojiMood = chooseKaomojiMood(p.Valence, p.Arousal)

	return spec
}

// weighted is one or-node candidate. Candidates live in slices, not
// maps, so the cumulative walk is deterministic per seed.
type weighted struct {
	name   string
	weight float64
}

// weightedChoice perturbs each configured weight by an independent
// uniform [0.5, 1.5] factor before the cumulative walk, so a dominant
// candidate still loses sometimes and rare ones surface across seeds.
func (g *VisualGrammar) weightedChoice(candidates []weighted) string {
	jittered := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		jittered[i] = c.weight * (0.5 + g.rng.Float64())
		total += jittered[i]
	}
	if total <= 0 {
		return candidates[0].name
	}

	r := g.rng.Float64() * total
	cumulative := 0.0
	for i, c := range candidates {
		cumulative += jittered[i]
		if r <= cumulative {
			return c.name
		}
	}
	return candidates[len(candidates)-1].name
}

func (g *VisualGrammar) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// randint is inclusive on both ends.
func (g *VisualGrammar) randint(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

// chooseBgEffect draws from the full effect family with flattened
// weights, so the simulation and 3-D effects stay in rotation instead
// of the wave family crowding them out.
func (g *VisualGrammar) chooseBgEffect(energy, structure float64) string {
	return g.weightedChoice([]weighted{
		{"plasma", 0.30 + energy*0.15},
		{"wave", 0.30 + (1-energy)*0.15},
		{"flame", 0.20 + energy*0.30},
		{"moire", 0.25 + structure*0.20},
		{"noise_field", 0.30 + (1-energy)*0.15},
		{"sdf_shapes", 0.20 + structure*0.25},
		{"cppn", 0.30},
		{"donut", 0.25},
		{"wireframe_cube", 0.22 + structure*0.15},
		{"mod_xor", 0.20 + structure*0.20},
		{"ten_print", 0.20 + structure*0.15},
		{"wobbly", 0.25 + (1-energy)*0.15},
		{"chroma_spiral", 0.20 + energy*0.20},
		{"slime_dish", 0.22 + energy*0.15},
		{"sand_game", 0.20 + energy*0.15},
		{"game_of_life", 0.20 + structure*0.10},
		{"dyna", 0.20 + energy*0.20},
	})
}

func (g *VisualGrammar) chooseOverlayEffect(bgEffect string) string {
	all := []weighted{
		{"plasma", 0.3},
		{"wave", 0.3},
		{"noise_field", 0.4},
		{"moire", 0.2},
		{"cppn", 0.3},
	}
	candidates := all[:0:0]
	for _, c := range all {
		if c.name != bgEffect {
			candidates = append(candidates, c)
		}
	}
	return g.weightedChoice(candidates)
}

func (g *VisualGrammar) chooseBlendMode(energy float64) string {
	return g.weightedChoice([]weighted{
		{"ADD", 0.3 + energy*0.3},
		{"SCREEN", 0.3},
		{"OVERLAY", 0.2 + energy*0.2},
		{"MULTIPLY", 0.2 + (1-energy)*0.2},
	})
}

// chooseCompositionMode decides how the overlay combines with the
// background. Blend is the plain mix; the masked modes route the mix
// weight through a mask effect.
func (g *VisualGrammar) chooseCompositionMode(structure float64) string {
	return g.weightedChoice([]weighted{
		{"blend", 0.30},
		{"masked_split", 0.22 + structure*0.10},
		{"radial_masked", 0.25},
		{"noise_masked", 0.20 + (1-structure)*0.10},
	})
}

// maskForComposition samples the mask configuration matching a
// composition mode; plain blend needs none.
func (g *VisualGrammar) maskForComposition(mode string) *MaskSpec {
	switch mode {
	case "masked_split":
		kind := g.weightedChoice([]weighted{
			{"horizontal_split", 0.35},
			{"vertical_split", 0.35},
			{"diagonal", 0.30},
		})
		m := &MaskSpec{Type: kind, Params: map[string]float64{
			"split":    g.uniform(0.35, 0.65),
			"softness": g.uniform(0.05, 0.25),
		}}
		if kind == "diagonal" {
			m.Params["angle"] = g.uniform(0, 1)
		}
		return m
	case "radial_masked":
		return &MaskSpec{Type: "radial", Params: map[string]float64{
			"radius":   g.uniform(0.3, 0.6),
			"center_x": g.uniform(0.35, 0.65),
			"center_y": g.uniform(0.35, 0.65),
			"softness": g.uniform(0.1, 0.25),
		}}
	case "noise_masked":
		return &MaskSpec{Type: "noise", Params: map[string]float64{
			"noise_scale": g.uniform(0.03, 0.08),
			"threshold":   g.uniform(0.4, 0.6),
			"softness":    g.uniform(0.1, 0.25),
		}}
	}
	return nil
}

// chooseTransforms builds the 0-2 element domain transform chain.
func (g *VisualGrammar) chooseTransforms(energy, structure float64) []TransformSpec {
	var chain []TransformSpec
	if g.rng.Float64() < 0.60 {
		chain = append(chain, g.oneTransform(energy, structure))
	}
	if len(chain) == 1 && g.rng.Float64() < 0.25+energy*0.10 {
		second := g.oneTransform(energy, structure)
		if second.Type != chain[0].Type {
			chain = append(chain, second)
		}
	}
	return chain
}

func (g *VisualGrammar) oneTransform(energy, structure float64) TransformSpec {
	kind := g.weightedChoice([]weighted{
		{"mirror_x", 0.30},
		{"mirror_y", 0.25},
		{"mirror_quad", 0.18 + structure*0.10},
		{"kaleidoscope", 0.22 + structure*0.18},
		{"tile", 0.16 + structure*0.20},
		{"rotate", 0.25},
		{"zoom", 0.25},
		{"spiral_warp", 0.14 + energy*0.16},
		{"polar_remap", 0.12 + energy*0.12},
	})
	switch kind {
	case "kaleidoscope":
		return TransformSpec{Type: kind, Args: map[string]float64{
			"segments": float64(g.randint(4, 8)),
		}}
	case "tile":
		n := float64(g.randint(2, 4))
		return TransformSpec{Type: kind, Args: map[string]float64{"cols": n, "rows": n}}
	case "rotate":
		return TransformSpec{Type: kind, Args: map[string]float64{
			"angle": g.uniform(0, 6.28),
		}}
	case "zoom":
		return TransformSpec{Type: kind, Args: map[string]float64{
			"factor": g.uniform(0.7, 1.6),
		}}
	case "spiral_warp":
		return TransformSpec{Type: kind, Args: map[string]float64{
			"twist": g.uniform(0.2, 0.8),
		}}
	}
	return TransformSpec{Type: kind}
}

// choosePostFX guarantees at least one buffer filter, then sometimes
// stacks a second distinct one.
func (g *VisualGrammar) choosePostFX(energy, structure, intensity float64) []PostFXSpec {
	chain := []PostFXSpec{g.onePostFX(energy, structure)}
	if g.rng.Float64() < 0.30+intensity*0.20 {
		second := g.onePostFX(energy, structure)
		if second.Type != chain[0].Type {
			chain = append(chain, second)
		}
	}
	return chain
}

func (g *VisualGrammar) onePostFX(energy, structure float64) PostFXSpec {
	kind := g.weightedChoice([]weighted{
		{"vignette", 0.30},
		{"scanlines", 0.18 + structure*0.10},
		{"color_shift", 0.18 + energy*0.10},
		{"pixelate", 0.10 + (1-structure)*0.08},
		{"edge_detect", 0.06 + structure*0.08},
		{"threshold", 0.06 + energy*0.06},
		{"invert", 0.05},
	})
	switch kind {
	case "vignette":
		return PostFXSpec{Type: kind, Args: map[string]float64{
			"strength": g.uniform(0.3, 0.7),
		}}
	case "scanlines":
		return PostFXSpec{Type: kind, Args: map[string]float64{
			"spacing":  float64(g.randint(3, 6)),
			"darkness": g.uniform(0.2, 0.4),
		}}
	case "color_shift":
		return PostFXSpec{Type: kind, Args: map[string]float64{
			"hue_shift": g.uniform(0.05, 0.25),
		}}
	case "pixelate":
		return PostFXSpec{Type: kind, Args: map[string]float64{
			"block_size": float64(g.randint(2, 4)),
		}}
	case "threshold":
		return PostFXSpec{Type: kind, Args: map[string]float64{
			"threshold": g.uniform(0.35, 0.65),
		}}
	}
	return PostFXSpec{Type: kind}
}

func (g *VisualGrammar) chooseLayout(structure float64) string {
	return g.weightedChoice([]weighted{
		{"random_scatter", 0.3 + (1-structure)*0.3},
		{"grid_jitter", 0.2 + structure*0.4},
		{"spiral", 0.3},
		{"force_directed", 0.2},
		{"preset", 0.2 + structure*0.3},
	})
}

func (g *VisualGrammar) chooseKaomojiCount(energy float64) int {
	base := 4 + int(energy*4)
	variation := g.randint(-2, 2)
	return max(2, min(12, base+variation))
}

func (g *VisualGrammar) chooseAnimations(energy, arousal float64) []AnimSpec {
	var anims []AnimSpec

	if g.rng.Float64() < 0.85 {
		anims = append(anims, AnimSpec{
			Type:  "floating",
			Amp:   1.0 + energy*7.0,
			Speed: 0.5 + energy*2.0,
		})
	}
	if g.rng.Float64() < 0.7 {
		anims = append(anims, AnimSpec{
			Type:  "breathing",
			Amp:   0.02 + math.Abs(arousal)*0.13,
			Speed: 1.0 + energy*2.0,
		})
	}
	if g.rng.Float64() < 0.3+energy*0.3 {
		anims = append(anims, AnimSpec{
			Type:       "color_cycle",
			Speed:      0.1 + energy*0.5,
			Saturation: 0.7 + energy*0.3,
		})
	}
	return anims
}

func (g *VisualGrammar) chooseDecorationStyle(structure float64) string {
	return g.weightedChoice([]weighted{
		{"corners", 0.20 + structure*0.15},
		{"edges", 0.12 + structure*0.12},
		{"scattered", 0.20 + (1-structure)*0.15},
		{"minimal", 0.12},
		{"none", 0.06},
		{"frame", 0.10 + structure*0.20},
		{"grid_lines", 0.06 + structure*0.15},
		{"circuit", 0.08 + (1-structure)*0.08},
	})
}

var (
	classicDecoSets = [][]string{
		{"+", "+", "+", "+"},
		{".", ".", ".", "."},
		{"x", "x", "x", "x"},
		{"|", "|", "|", "|"},
		{"/", "\\", "/", "\\"},
		{"*", "*", "*", "*"},
		{"#", "#", "#", "#"},
		{"~", "~", "~", "~"},
		{"{}", "[]", "<>", "()"},
		{"====", "====", "----", "----"},
		{">>", "<<", ">>", "<<"},
		{":::", ":::", ":::", ":::"},
	}
	boxCornerSets = [][]string{
		{"┌", "┐", "└", "┘"},
		{"╭", "╮", "╰", "╯"},
		{"┏", "┓", "┗", "┛"},
		{"╔", "╗", "╚", "╝"},
		{"┌─", "─┐", "└─", "─┘"},
		{"╔═", "═╗", "╚═", "═╝"},
		{"┏━", "━┓", "┗━", "━┛"},
		{"╭─", "─╮", "╰─", "─╯"},
	}
	boxLineSets = [][]string{
		{"─", "─", "│", "│"},
		{"━", "━", "┃", "┃"},
		{"═", "═", "║", "║"},
		{"┄", "┄", "┆", "┆"},
		{"┈", "┈", "┊", "┊"},
		{"├", "┤", "┬", "┴"},
		{"┣", "┫", "┳", "┻"},
		{"╠", "╣", "╦", "╩"},
	}
	crossSets = [][]string{
		{"┼", "┼", "┼", "┼"},
		{"╋", "╋", "╋", "╋"},
		{"╬", "╬", "╬", "╬"},
		{"╳", "╳", "╳", "╳"},
	}
	blockSets = [][]string{
		{"░", "░", "░", "░"},
		{"▪", "▫", "▪", "▫"},
		{"■", "□", "■", "□"},
		{"▛", "▜", "▙", "▟"},
		{"▀", "▄", "▌", "▐"},
		{"●", "○", "●", "○"},
		{"◆", "◇", "◆", "◇"},
		{"◉", "◎", "◉", "◎"},
	}
	dotSets = [][]string{
		{"·", "·", "·", "·"},
		{"∙", "∙", "∙", "∙"},
		{"•", "◦", "•", "◦"},
		{"○", "◎", "○", "◎"},
	}
)

func (g *VisualGrammar) chooseDecorationChars(energy, warmth float64) []string {
	var pool [][]string
	switch {
	case energy > 0.7:
		pool = concat(boxCornerSets, crossSets, blockSets)
	case energy > 0.4:
		pool = concat(classicDecoSets, boxCornerSets, boxLineSets)
	case warmth > 0.6:
		pool = concat(dotSets, [][]string{{"╭", "╮", "╰", "╯"}}, classicDecoSets[:4])
	default:
		pool = concat(dotSets, boxLineSets[:3], classicDecoSets[:4])
	}
	return pool[g.rng.Intn(len(pool))]
}

func (g *VisualGrammar) chooseGradient(energy, structure float64) string {
	return g.weightedChoice([]weighted{
		{"classic", 0.20},
		{"smooth", 0.12},
		{"matrix", 0.10 + energy*0.10},
		{"plasma", 0.10 + energy*0.15},
		{"blocks", 0.10 + structure*0.15},
		{"blocks_fine", 0.08 + structure*0.10},
		{"glitch", 0.05 + energy*0.15},
		{"box_density", 0.06 + structure*0.12},
		{"box_cross", 0.04 + structure*0.08 + energy*0.08},
		{"circuit", 0.04 + structure*0.10 + energy*0.06},
		{"dots_density", 0.06 + (1-energy)*0.08},
		{"geometric", 0.05 + structure*0.08},
		{"braille_density", 0.04 + (1-structure)*0.06},
		{"tech", 0.06 + energy*0.06},
		{"cyber", 0.04 + energy*0.08},
		{"organic", 0.05 + (1-structure)*0.08},
	})
}

var (
	classicParticles = []string{
		"01·", "0123456789", "*o.:-", "$#@!", "+-×÷", "~≈≋",
	}
	geometricParticles = []string{
		"·•○◦", "·∙•◦○◎", "◦○◎◉●", "▪▫□■▮", "◆◇◈◉◎", "△▽○□◇",
	}
	boxLineParticles = []string{
		"─│┼┄┆", "━┃╋┅┇", "═║╬", "├┤┬┴┼", "┣┫┳┻╋", "╠╣╦╩╬", "╱╲╳",
	}
	blockParticles = []string{
		"░▒▓", "░▒▓█", "▀▄▌▐█", "▖▗▘▙▚▛▜▝",
	}
	brailleParticles = []string{
		"⠁⠂⠃⠄⠅⠆⠇", "⣀⣁⣂⣃⣄⣅⣆⣇",
	}
)

func (g *VisualGrammar) chooseParticleChars(warmth, energy float64) string {
	var pool []string
	switch {
	case energy > 0.7:
		pool = concat(boxLineParticles, blockParticles, classicParticles[:3])
	case energy > 0.4:
		pool = concat(classicParticles, geometricParticles, boxLineParticles[:3])
	case warmth > 0.6:
		pool = concat(geometricParticles, brailleParticles, classicParticles[:2])
	default:
		pool = concat(classicParticles, geometricParticles[:3], brailleParticles)
	}
	return pool[g.rng.Intn(len(pool))]
}

// effectParams samples continuous parameters for one effect, scaled by
// the emotion inputs rather than fixed ranges.
func (g *VisualGrammar) effectParams(effectName string, energy, structure float64) map[string]float64 {
	switch effectName {
	case "plasma":
		return map[string]float64{
			"frequency":   g.uniform(0.02, 0.08+energy*0.12),
			"speed":       g.uniform(0.3, 1.0+energy*4.0),
			"color_phase": g.uniform(0, 1),
		}
	case "wave":
		return map[string]float64{
			"wave_count": float64(g.randint(1, 3+int(energy*7))),
			"frequency":  g.uniform(0.02, 0.05+energy*0.15),
			"amplitude":  g.uniform(0.5, 1.0+energy*2.0),
			"speed":      g.uniform(0.3, 1.0+energy*4.0),
		}
	case "flame":
		return map[string]float64{
			"intensity": g.uniform(0.5, 1.0+energy*2.0),
		}
	case "moire":
		baseFreq := 2.0 + structure*10.0
		return map[string]float64{
			"freq_a":   g.uniform(baseFreq*0.5, baseFreq*1.5),
			"freq_b":   g.uniform(baseFreq*0.5, baseFreq*1.5),
			"speed_a":  g.uniform(-2, 2) * (0.5 + energy),
			"speed_b":  g.uniform(-2, 2) * (0.5 + energy),
			"offset_a": g.uniform(-0.5, 0.5),
			"offset_b": g.uniform(-0.5, 0.5),
		}
	case "noise_field":
		return map[string]float64{
			"scale":      g.uniform(0.02, 0.05+energy*0.15),
			"octaves":    float64(g.randint(2, 3+int(structure*5))),
			"lacunarity": g.uniform(1.5, 2.0+structure),
			"gain":       g.uniform(0.3, 0.5+structure*0.3),
			"animate":    boolParam(g.rng.Float64() < 0.5+energy*0.4),
			"speed":      g.uniform(0.3, 1.0+energy*4.0),
			"turbulence": boolParam(g.rng.Float64() < 0.3+energy*0.4),
		}
	case "sdf_shapes":
		shapeType := 0.0 // circle
		if g.rng.Intn(2) == 1 {
			shapeType = 1.0 // box
		}
		return map[string]float64{
			"shape_count": float64(g.randint(2, 3+int(energy*7))),
			"shape_type":  shapeType,
			"radius_min":  g.uniform(0.02, 0.05+structure*0.05),
			"radius_max":  g.uniform(0.1, 0.15+structure*0.15),
			"smoothness":  g.uniform(0.05, 0.1+structure*0.2),
			"animate":     boolParam(g.rng.Float64() < 0.5+energy*0.4),
			"speed":       g.uniform(0.3, 1.0+energy*4.0),
		}
	case "cppn":
		layerSizes := []float64{4, 6, 8, 10, 12}
		return map[string]float64{
			"num_hidden": float64(g.randint(2, 5)),
			"layer_size": layerSizes[g.rng.Intn(len(layerSizes))],
			"seed":       float64(g.rng.Intn(100001)),
		}
	case "donut":
		return map[string]float64{
			"R1":             g.uniform(0.7, 1.3),
			"R2":             g.uniform(1.6, 2.6),
			"rotation_speed": g.uniform(0.5, 1.0+energy*1.5),
			"surface_noise":  g.uniform(0, 0.2+energy*0.4),
			"twist":          g.uniform(0, 0.4+energy*0.8),
		}
	case "wireframe_cube":
		return map[string]float64{
			"scale":            g.uniform(0.2, 0.3+structure*0.2),
			"rotation_speed_x": g.uniform(0.3, 0.5+energy*1.0),
			"rotation_speed_y": g.uniform(0.3, 0.5+energy*1.2),
			"rotation_speed_z": g.uniform(0.1, 0.3+energy*0.6),
			"vertex_noise":     g.uniform(0, 0.3*energy),
			"morph":            g.uniform(0, 0.6),
		}
	case "mod_xor":
		return map[string]float64{
			"modulus": float64(g.randint(8, 32)),
			"layers":  float64(g.randint(1, 3)),
			"zoom":    g.uniform(0.6, 1.4),
			"speed":   g.uniform(0.2, 0.5+energy),
		}
	case "ten_print":
		return map[string]float64{
			"cell_size":   float64(g.randint(4, 10)),
			"probability": g.uniform(0.35, 0.65),
			"speed":       g.uniform(0.5, 1.0+energy*2.0),
		}
	case "wobbly":
		return map[string]float64{
			"warp_amount": g.uniform(0.2, 0.3+energy*0.5),
			"warp_freq":   g.uniform(0.015, 0.06),
			"iterations":  float64(g.randint(1, 3)),
			"speed":       g.uniform(0.3, 0.5+energy),
		}
	case "chroma_spiral":
		return map[string]float64{
			"arms":          float64(g.randint(2, 3+int(structure*4))),
			"tightness":     g.uniform(0.2, 0.5+structure*0.8),
			"speed":         g.uniform(0.3, 1.0+energy*2.0),
			"chroma_offset": g.uniform(0.05, 0.2),
		}
	case "slime_dish":
		return map[string]float64{
			"agent_count":     float64(g.randint(1000, 2000+int(energy*2000))),
			"decay_rate":      g.uniform(0.92, 0.98),
			"sensor_angle":    g.uniform(0.3, 0.8),
			"sensor_distance": float64(g.randint(5, 12)),
		}
	case "sand_game":
		return map[string]float64{
			"spawn_rate":     g.uniform(0.1, 0.3+energy*0.4),
			"gravity_speed":  float64(g.randint(1, 2+int(energy*3))),
			"particle_types": float64(g.randint(2, 3)),
		}
	case "game_of_life":
		return map[string]float64{
			"density": g.uniform(0.3, 0.55),
			"speed":   g.uniform(3, 5+energy*8),
			"wrap":    boolParam(g.rng.Float64() < 0.8),
		}
	case "dyna":
		return map[string]float64{
			"attractor_count": float64(g.randint(2, 3+int(energy*4))),
			"frequency":       g.uniform(0.2, 0.5+energy),
			"speed":           g.uniform(0.3, 0.5+energy*1.5),
		}
	}
	return map[string]float64{}
}

// Ambient word pools per valence/arousal region, mixed scripts and
// semigraphics included.
var (
	wordsPositiveHigh = []string{
		"RISE", "UP", "BULL", "GO", "YES", "MAX", "TOP",
		"涨", "牛", "冲", "↑", "▲", "━━▶", "╱╲╱", "◉", "█▀█", "⣿",
	}
	wordsPositiveLow = []string{
		"calm", "flow", "ease", "zen", "~",
		"静", "和", "润", "◎", "○", "╭─╮", "≈≈", "◌", "⠿", "·∙·",
	}
	wordsNeutral = []string{
		"...", "---", "===", "~", "○", "△",
		"等", "观", "守", "…", "─┄─", "┈┈┈", "╌╌╌", "◦◦◦",
	}
	wordsNegativeHigh = []string{
		"?!", "WARN", "ALERT", "!!",
		"慌", "急", "!", "⚠", "△", "╳╳╳", "┃┃┃", "▓▓▓", "╋╋╋",
	}
	wordsNegativeLow = []string{
		"...", "fade", "dim", "gray",
		"淡", "沉", "暗", "—", "┄┄┄", "░░░", "┆┆┆", "⠁⠂⠄",
	}
	wordsDespairHigh = []string{
		"SELL", "DOWN", "BEAR", "RUN", "NO", "STOP",
		"跌", "崩", "逃", "↓", "▼", "█▄█", "━━╋", "▓█▓", "╬╬╬",
	}
	wordsDespairLow = []string{
		"...", "___", "void", "null",
		"空", "无", "寂", "—", "░░░", "┈┈┈", "···",
	}
)

func (g *VisualGrammar) chooseTextElements(valence, arousal, energy float64) []TextElement {
	count := 0
	if g.rng.Float64() < 0.3+energy*0.4 {
		count = g.randint(1, 3)
	}
	if count == 0 {
		return nil
	}

	highA := arousal > 0.3
	var pool []string
	switch {
	case valence > 0.5:
		if highA {
			pool = wordsPositiveHigh
		} else {
			pool = wordsPositiveLow
		}
	case valence > 0.0:
		pool = wordsNeutral
	case valence > -0.5:
		if highA {
			pool = wordsNegativeHigh
		} else {
			pool = wordsNegativeLow
		}
	default:
		if highA {
			pool = wordsDespairHigh
		} else {
			pool = wordsDespairLow
		}
	}

	elements := make([]TextElement, 0, count)
	for i := 0; i < count; i++ {
		elements = append(elements, TextElement{
			Text:    pool[g.rng.Intn(len(pool))],
			X:       g.uniform(0.1, 0.9),
			Y:       g.uniform(0.1, 0.9),
			Size:    g.uniform(0.6, 1.5),
			Opacity: g.uniform(0.3, 0.8),
		})
	}
	return elements
}

// moodCentroids places each face mood in the valence/arousal plane.
// The slice is ordered so the nearest-centroid walk is deterministic
// when two centroids tie.
var moodCentroids = []struct {
	name             string
	valence, arousal float64
}{
	{"euphoria", +0.80, +0.75},
	{"happy", +0.75, -0.15},
	{"excitement", +0.35, +0.60},
	{"relaxed", +0.35, -0.25},
	{"confused", -0.10, +0.55},
	{"bored", -0.15, -0.35},
	{"anxiety", -0.50, +0.60},
	{"sad", -0.50, -0.25},
	{"panic", -0.85, +0.80},
	{"lonely", -0.80, -0.30},
}

// chooseKaomojiMood resolves the nearest mood centroid in the
// valence/arousal plane.
func chooseKaomojiMood(valence, arousal float64) string {
	best := moodCentroids[0].name
	bestDist := math.Inf(1)
	for _, c := range moodCentroids {
		dv := valence - c.valence
		da := arousal - c.arousal
		if d := dv*dv + da*da; d < bestDist {
			bestDist = d
			best = c.name
		}
	}
	return best
}

func boolParam(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func concat[T any](slices ...[]T) []T {
	var out []T
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}
