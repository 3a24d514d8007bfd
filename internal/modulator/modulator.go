// Package modulator drifts parameters over time with value noise so no
// two frames of an animation are exactly alike.
package modulator

import (
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
)

// NoiseModulator wraps one parameter: output is the base value plus an
// fbm deviation scaled by amplitude, optionally clamped.
type NoiseModulator struct {
	Base      float64
	Amplitude float64
	Frequency float64

	hasMin, hasMax bool
	minVal, maxVal float64

	noise  *noise.ValueNoise
	offset float64
}

func New(base, amplitude, frequency float64, seed int64) *NoiseModulator {
	return &NoiseModulator{
		Base:      base,
		Amplitude: amplitude,
		Frequency: frequency,
		noise:     noise.New(seed),
		offset:    rand.New(rand.NewSource(seed)).Float64() * 1000.0,
	}
}

// WithRange clamps the modulated output.
func (m *NoiseModulator) WithRange(min, max float64) *NoiseModulator {
	m.hasMin, m.minVal = true, min
	m.hasMax, m.maxVal = true, max
	return m
}

// Sample returns the modulated value at time t.
func (m *NoiseModulator) Sample(t float64) float64 {
	n := m.noise.FBM((t+m.offset)*m.Frequency, m.offset, 3, 2.0, 0.5)
	result := m.Base + (n*2.0-1.0)*m.Amplitude
	return m.clamp(result)
}

// Sample2D adds spatial variation with a domain warp: one noise layer
// bends the coordinates another samples through.
func (m *NoiseModulator) Sample2D(x, y, t float64) float64 {
	warpX := m.noise.Sample(x*0.3+m.offset, t*0.05) * 2.0
	warpY := m.noise.Sample(y*0.3+m.offset+100, t*0.05) * 2.0

	n := m.noise.FBM(
		(x+warpX)*m.Frequency,
		(y+warpY)*m.Frequency+t*0.1,
		4, 2.0, 0.5,
	)
	result := m.Base + (n*2.0-1.0)*m.Amplitude
	return m.clamp(result)
}

func (m *NoiseModulator) clamp(v float64) float64 {
	if m.hasMin && v < m.minVal {
		v = m.minVal
	}
	if m.hasMax && v > m.maxVal {
		v = m.maxVal
	}
	return v
}

// ModulatedParams manages a set of named modulators, each seeded from
// the next slot so parameters drift independently.
type ModulatedParams struct {
	mods     map[string]*NoiseModulator
	nextSeed int64
}

func NewParams(seed int64) *ModulatedParams {
	return &ModulatedParams{
		mods:     make(map[string]*NoiseModulator),
		nextSeed: seed,
	}
}

func (p *ModulatedParams) Add(name string, base, amplitude, speed float64) *ModulatedParams {
	p.nextSeed++
	p.mods[name] = New(base, amplitude, speed, p.nextSeed)
	return p
}

func (p *ModulatedParams) AddClamped(name string, base, amplitude, speed, min, max float64) *ModulatedParams {
	p.nextSeed++
	p.mods[name] = New(base, amplitude, speed, p.nextSeed).WithRange(min, max)
	return p
}

// Sample returns every parameter's modulated value at time t.
func (p *ModulatedParams) Sample(t float64) map[string]float64 {
	out := make(map[string]float64, len(p.mods))
	for name, mod := range p.mods {
		out[name] = mod.Sample(t)
	}
	return out
}

// SampleStatic returns every parameter's base value.
func (p *ModulatedParams) SampleStatic() map[string]float64 {
	out := make(map[string]float64, len(p.mods))
	for name, mod := range p.mods {
		out[name] = mod.Base
	}
	return out
}

// integer-valued visual parameters round instead of drifting
// fractionally.
var intParams = map[string]bool{"octaves": true}

// ModulateVisualParams drifts a visual parameter map over time. Each
// key gets its own noise track, keyed by sorted position so the drift
// is deterministic per (seed, key set). Parameters in [0,1] stay
// clamped there; nonnegative ones stay nonnegative.
func ModulateVisualParams(params map[string]float64, t, driftAmount float64, seed int64) map[string]float64 {
	n := noise.New(seed)
	result := make(map[string]float64, len(params))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	offset := 0
	for _, key := range keys {
		value := params[key]
		offset++
		sample := n.FBM(t*0.1+float64(offset)*7.3, float64(offset)*13.7, 2, 2.0, 0.5)
		deviation := (sample*2.0 - 1.0) * driftAmount

		if intParams[key] {
			modulated := value + deviation*math.Max(1, math.Abs(value)*0.3)
			rounded := math.Round(modulated)
			if rounded < 1 {
				rounded = 1
			}
			result[key] = rounded
			continue
		}

		modulated := value + deviation*math.Abs(value)*0.5
		switch {
		case value >= 0 && value <= 1:
			modulated = mathx.Clamp01(modulated)
		case value >= 0:
			modulated = math.Max(0, modulated)
		}
		result[key] = modulated
	}
	return result
}
