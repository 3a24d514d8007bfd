// Package emotion models affect as a continuous valence-arousal-
// dominance vector and maps it into the visual parameter space the
// grammar consumes. Continuous coordinates replace a discrete mood
// enum, so nearby feelings produce nearby imagery.
package emotion

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/san-kum/glyphgen/internal/mathx"
)

// Vector is a point in VAD space. Valence runs unpleasant to pleasant,
// arousal calm to agitated, dominance submissive to in-control. All
// components are clamped to [-1, 1].
type Vector struct {
	Valence   float64
	Arousal   float64
	Dominance float64
}

func New(valence, arousal, dominance float64) Vector {
	return Vector{
		Valence:   mathx.Clamp(valence, -1, 1),
		Arousal:   mathx.Clamp(arousal, -1, 1),
		Dominance: mathx.Clamp(dominance, -1, 1),
	}
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.Valence*v.Valence + v.Arousal*v.Arousal + v.Dominance*v.Dominance)
}

func (v Vector) Normalized() Vector {
	m := v.Magnitude()
	if m < 1e-10 {
		return Vector{}
	}
	return Vector{Valence: v.Valence / m, Arousal: v.Arousal / m, Dominance: v.Dominance / m}
}

func (v Vector) Lerp(other Vector, t float64) Vector {
	return New(
		mathx.Mix(v.Valence, other.Valence, t),
		mathx.Mix(v.Arousal, other.Arousal, t),
		mathx.Mix(v.Dominance, other.Dominance, t),
	)
}

// Slerp interpolates along the great circle between the two vectors,
// which preserves intensity better than a straight lerp.
func (v Vector) Slerp(other Vector, t float64) Vector {
	dot := v.Valence*other.Valence + v.Arousal*other.Arousal + v.Dominance*other.Dominance
	dot = mathx.Clamp(dot, -1, 1)

	omega := math.Acos(dot)
	if math.Abs(omega) < 1e-10 {
		return v.Lerp(other, t)
	}

	so := math.Sin(omega)
	s0 := math.Sin((1-t)*omega) / so
	s1 := math.Sin(t*omega) / so

	return New(
		s0*v.Valence+s1*other.Valence,
		s0*v.Arousal+s1*other.Arousal,
		s0*v.Dominance+s1*other.Dominance,
	)
}

func (v Vector) Distance(other Vector) float64 {
	dv := v.Valence - other.Valence
	da := v.Arousal - other.Arousal
	dd := v.Dominance - other.Dominance
	return math.Sqrt(dv*dv + da*da + dd*dd)
}

// VisualParams maps the vector into the continuous visual parameter
// space. Valence drives color warmth, arousal drives motion and
// frequency, dominance drives structure and contrast; cross terms add
// saturation and turbulence.
func (v Vector) VisualParams() map[string]float64 {
	val, ar, dom := v.Valence, v.Arousal, v.Dominance

	saturation := mathx.Clamp(math.Abs(val)*0.7+math.Abs(ar)*0.3, 0, 1)
	turbulence := mathx.Clamp(math.Abs(val-0.5)*0.6+ar*0.4, 0, 1)
	intensity := mathx.Clamp(v.Magnitude()/math.Sqrt(3), 0, 1)

	octaves := int(remap(dom, -1, 1, 1, 8))
	if octaves < 1 {
		octaves = 1
	}
	if octaves > 8 {
		octaves = 8
	}

	return map[string]float64{
		"warmth":     remap(val, -1, 1, 0, 1),
		"saturation": saturation,
		"brightness": remap(val*0.5+ar*0.3+dom*0.2, -1, 1, 0.3, 1.0),

		"frequency":  remap(ar, -1, 1, 0.01, 0.2),
		"speed":      remap(ar, -1, 1, 0.2, 5.0),
		"complexity": remap(dom, -1, 1, 0.2, 0.9),
		"octaves":    float64(octaves),
		"turbulence": turbulence,

		"float_amp":       remap(ar, -1, 1, 1.0, 8.0),
		"breath_amp":      remap(math.Abs(ar), 0, 1, 0.02, 0.15),
		"animation_speed": remap(ar, -1, 1, 0.5, 3.0),

		"density":   remap(dom, -1, 1, 0.2, 0.6),
		"contrast":  remap(math.Abs(dom), 0, 1, 1.0, 1.5),
		"structure": remap(dom, -1, 1, 0, 1),

		"energy":    remap(ar, -1, 1, 0, 1),
		"intensity": intensity,

		"valence":   val,
		"arousal":   ar,
		"dominance": dom,
	}
}

// Anchors places named moods in VAD space, following published
// affective-norm coordinates.
var Anchors = map[string]Vector{
	"joy":        {+0.76, +0.48, +0.35},
	"excitement": {+0.62, +0.75, +0.38},
	"euphoria":   {+0.90, +0.85, +0.60},
	"calm":       {+0.30, -0.60, +0.20},
	"serenity":   {+0.50, -0.40, +0.30},
	"surprise":   {+0.40, +0.67, -0.13},
	"awe":        {+0.50, +0.55, -0.30},
	"hope":       {+0.55, +0.20, +0.15},
	"nostalgia":  {+0.20, -0.20, -0.10},
	"melancholy": {-0.30, -0.30, -0.20},
	"anxiety":    {-0.51, +0.60, -0.33},
	"fear":       {-0.64, +0.60, -0.43},
	"panic":      {-0.80, +0.90, -0.60},
	"anger":      {-0.51, +0.59, +0.25},
	"sadness":    {-0.63, -0.27, -0.33},
	"despair":    {-0.80, -0.40, -0.70},
	"boredom":    {-0.20, -0.60, -0.20},
	"contempt":   {-0.40, +0.10, +0.50},
	"disgust":    {-0.60, +0.35, +0.20},
	"trust":      {+0.60, -0.10, +0.40},

	"bull":     {+0.70, +0.50, +0.40},
	"bear":     {-0.60, +0.40, -0.30},
	"neutral":  {+0.00, -0.10, +0.00},
	"volatile": {-0.10, +0.80, -0.20},
}

// FromName resolves a named mood, falling back to neutral.
func FromName(name string) Vector {
	if v, ok := Anchors[strings.ToLower(name)]; ok {
		return v
	}
	return Anchors["neutral"]
}

// wordVAD holds keyword offsets for text inference.
var wordVAD = map[string][3]float64{
	"surge": {+0.6, +0.7, +0.3}, "rally": {+0.6, +0.6, +0.3},
	"soar": {+0.7, +0.8, +0.4}, "boom": {+0.5, +0.8, +0.3},
	"rocket": {+0.7, +0.9, +0.4}, "moon": {+0.6, +0.7, +0.3},
	"bull": {+0.5, +0.4, +0.3}, "bullish": {+0.5, +0.4, +0.3},
	"gain": {+0.4, +0.3, +0.2}, "rise": {+0.3, +0.3, +0.1},
	"up": {+0.3, +0.2, +0.1}, "high": {+0.3, +0.3, +0.2},
	"record": {+0.5, +0.5, +0.3}, "breakthrough": {+0.6, +0.6, +0.4},
	"positive": {+0.4, +0.1, +0.2},

	"stable": {+0.3, -0.3, +0.3}, "steady": {+0.3, -0.3, +0.3},
	"calm": {+0.3, -0.6, +0.2}, "safe": {+0.4, -0.3, +0.3},
	"recover": {+0.3, -0.1, +0.2},

	"crash": {-0.8, +0.9, -0.5}, "panic": {-0.7, +0.9, -0.6},
	"plunge": {-0.7, +0.8, -0.4}, "collapse": {-0.8, +0.7, -0.5},
	"crisis": {-0.6, +0.7, -0.4}, "fear": {-0.6, +0.6, -0.4},
	"volatile": {-0.1, +0.8, -0.2}, "chaos": {-0.5, +0.9, -0.3},
	"shock": {-0.5, +0.8, -0.3}, "turmoil": {-0.5, +0.7, -0.3},
	"sell": {-0.3, +0.4, -0.1}, "dump": {-0.5, +0.6, -0.2},
	"bear": {-0.5, +0.3, -0.2}, "bearish": {-0.5, +0.3, -0.2},

	"decline": {-0.4, -0.1, -0.2}, "fall": {-0.3, +0.1, -0.1},
	"drop": {-0.3, +0.2, -0.1}, "loss": {-0.4, -0.1, -0.2},
	"down": {-0.3, +0.1, -0.1}, "low": {-0.2, -0.2, -0.1},
	"weak": {-0.3, -0.3, -0.3}, "stagnant": {-0.2, -0.5, -0.2},
	"negative": {-0.4, +0.1, -0.2}, "sad": {-0.6, -0.3, -0.3},

	"暴涨": {+0.7, +0.9, +0.4}, "暴跌": {-0.8, +0.9, -0.5},
	"上涨": {+0.4, +0.3, +0.2}, "下跌": {-0.4, +0.2, -0.2},
	"恐慌": {-0.7, +0.9, -0.6}, "稳定": {+0.3, -0.3, +0.3},
	"牛市": {+0.6, +0.5, +0.4}, "熊市": {-0.5, +0.3, -0.3},
	"崩盘": {-0.9, +0.9, -0.6}, "狂热": {+0.5, +0.9, +0.3},
	"焦虑": {-0.5, +0.6, -0.3}, "平静": {+0.3, -0.6, +0.2},
	"喜悦": {+0.7, +0.5, +0.3}, "悲伤": {-0.6, -0.3, -0.3},
	"愤怒": {-0.5, +0.6, +0.3}, "惊喜": {+0.5, +0.7, -0.1},
	"绝望": {-0.8, -0.4, -0.7}, "希望": {+0.5, +0.2, +0.2},
	"美丽": {+0.6, +0.2, +0.2}, "创新": {+0.5, +0.4, +0.3},
	"突破": {+0.6, +0.6, +0.4}, "震撼": {+0.3, +0.8, -0.2},
}

var wordPattern = regexp.MustCompile(`[a-z]+`)

// multiByteKeywords lists the non-ASCII lexicon entries in sorted
// order, so the substring scan sums hits deterministically.
var multiByteKeywords = func() []string {
	var keys []string
	for k := range wordVAD {
		for _, r := range k {
			if r > unicode.MaxASCII {
				keys = append(keys, k)
				break
			}
		}
	}
	sort.Strings(keys)
	return keys
}()

// FromText infers a vector from free text by keyword lookup: a word
// scan for the Latin entries plus a substring scan for the multi-byte
// ones, which have no word boundaries to tokenize on. Matched offsets
// sum, then tanh over sqrt(count) compresses extremes while keeping
// direction; with many matches each word counts for less. A nonzero
// base vector is blended in at 30%.
func FromText(text string, base Vector) Vector {
	lower := strings.ToLower(text)

	var totalV, totalA, totalD, weight float64
	for _, word := range wordPattern.FindAllString(lower, -1) {
		if vad, ok := wordVAD[word]; ok {
			totalV += vad[0]
			totalA += vad[1]
			totalD += vad[2]
			weight += 1.0
		}
	}
	for _, kw := range multiByteKeywords {
		if strings.Contains(lower, kw) {
			vad := wordVAD[kw]
			totalV += vad[0]
			totalA += vad[1]
			totalD += vad[2]
			weight += 1.0
		}
	}

	var detected Vector
	if weight > 0 {
		scale := 1.0 / math.Sqrt(weight)
		detected = New(
			math.Tanh(totalV*scale),
			math.Tanh(totalA*scale),
			math.Tanh(totalD*scale),
		)
	}

	if base.Magnitude() > 0.01 {
		return detected.Lerp(base, 0.3)
	}
	return detected
}

// Blend mixes several vectors by weight; nil or degenerate weights
// fall back to a uniform average.
func Blend(vectors []Vector, weights []float64) Vector {
	if len(vectors) == 0 {
		return Vector{}
	}

	if len(weights) != len(vectors) {
		weights = nil
	}
	if weights == nil {
		weights = make([]float64, len(vectors))
		for i := range weights {
			weights[i] = 1.0 / float64(len(vectors))
		}
	} else {
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if sum <= 0 {
			for i := range weights {
				weights[i] = 1.0 / float64(len(weights))
			}
		} else {
			normalized := make([]float64, len(weights))
			for i, w := range weights {
				normalized[i] = w / sum
			}
			weights = normalized
		}
	}

	var v, a, d float64
	for i, e := range vectors {
		v += e.Valence * weights[i]
		a += e.Arousal * weights[i]
		d += e.Dominance * weights[i]
	}
	return New(v, a, d)
}

func remap(value, inMin, inMax, outMin, outMax float64) float64 {
	t := mathx.Clamp01((value - inMin) / (inMax - inMin))
	return outMin + t*(outMax-outMin)
}
