package noise

import (
	"math"
	"math/rand"

	"github.com/san-kum/glyphgen/internal/mathx"
)

// ValueNoise is a 2D value noise generator backed by a permutation
// table. Grid values are interpolated with smoothstep weights, so
// samples vary smoothly and stay in [0, 1].
type ValueNoise struct {
	size   int
	mask   int
	perm   []int
	values []float64
}

const defaultTableSize = 256

func New(seed int64) *ValueNoise {
	return NewWithSize(seed, defaultTableSize)
}

// NewWithSize builds a generator with a custom table size. Size must be
// a power of two.
func NewWithSize(seed int64, size int) *ValueNoise {
	rng := rand.New(rand.NewSource(seed))

	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(size, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	// Doubled so hash lookups never wrap mid-table.
	perm = append(perm, perm...)

	values := make([]float64, size)
	for i := range values {
		values[i] = rng.Float64()
	}

	return &ValueNoise{
		size:   size,
		mask:   size - 1,
		perm:   perm,
		values: values,
	}
}

func (n *ValueNoise) hash(ix, iy int) int {
	return n.perm[(n.perm[ix&n.mask]+iy)&n.mask] & n.mask
}

// Sample returns smooth noise in [0, 1].
func (n *ValueNoise) Sample(x, y float64) float64 {
	ix := int(math.Floor(x))
	iy := int(math.Floor(y))

	fx := x - float64(ix)
	fy := y - float64(iy)

	sx := mathx.Smoothstep(0.0, 1.0, fx)
	sy := mathx.Smoothstep(0.0, 1.0, fy)

	v00 := n.values[n.hash(ix, iy)]
	v10 := n.values[n.hash(ix+1, iy)]
	v01 := n.values[n.hash(ix, iy+1)]
	v11 := n.values[n.hash(ix+1, iy+1)]

	top := mathx.Mix(v00, v10, sx)
	bottom := mathx.Mix(v01, v11, sx)
	return mathx.Mix(top, bottom, sy)
}

// FBM stacks octaves of noise at increasing frequency and decaying
// amplitude, normalized back to [0, 1].
func (n *ValueNoise) FBM(x, y float64, octaves int, lacunarity, gain float64) float64 {
	value := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		value += amplitude * n.Sample(x*frequency, y*frequency)
		maxAmplitude += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}

	if maxAmplitude <= 0 {
		return 0.0
	}
	return value / maxAmplitude
}

// Turbulence folds each octave around its midpoint before stacking,
// giving sharper creases than FBM.
func (n *ValueNoise) Turbulence(x, y float64, octaves int, lacunarity, gain float64) float64 {
	value := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		s := n.Sample(x*frequency, y*frequency)*2.0 - 1.0
		value += amplitude * math.Abs(s)
		maxAmplitude += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}

	if maxAmplitude <= 0 {
		return 0.0
	}
	return value / maxAmplitude
}
