package effects

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/palette"
)

// CPPN maps (x, y) through a small random-weight network to character
// density and color. No training involved: each seed's weights produce
// a distinct abstract pattern, and two networks with the same shape can
// be interpolated for morphing transitions.
//
// See Stanley (2007), "Compositional Pattern Producing Networks".
type CPPN struct {
	Seed      int64
	NumHidden int
	LayerSize int
	UseRadial bool
	UseTime   bool
	ColorMode string

	layers        []cppnLayer
	outputWeights [][]float64
}

type cppnLayer struct {
	weights    [][]float64
	activation func(float64) float64
}

var cppnActivations = []func(float64) float64{
	math.Sin,
	math.Cos,
	math.Tanh,
	math.Abs,
	func(x float64) float64 { return x },
	func(x float64) float64 { return math.Exp(-x * x) },
	func(x float64) float64 { return 1.0 / (1.0 + math.Exp(-mathx.Clamp(x, -10, 10))) },
	func(x float64) float64 { return math.Sin(math.Abs(x)) },
}

// CPPNConfig holds the architecture knobs. Zero values fall back to
// the defaults used by the registry.
type CPPNConfig struct {
	Seed      int64
	NumHidden int
	LayerSize int
	UseRadial bool
	UseTime   bool
	ColorMode string
}

func NewCPPN(seed int64) *CPPN {
	return NewCPPNWith(CPPNConfig{
		Seed:      seed,
		NumHidden: 3,
		LayerSize: 8,
		UseRadial: true,
		UseTime:   true,
		ColorMode: "hsv",
	})
}

func NewCPPNWith(cfg CPPNConfig) *CPPN {
	if cfg.NumHidden <= 0 {
		cfg.NumHidden = 3
	}
	if cfg.LayerSize <= 0 {
		cfg.LayerSize = 8
	}
	if cfg.ColorMode == "" {
		cfg.ColorMode = "hsv"
	}

	e := &CPPN{
		Seed:      cfg.Seed,
		NumHidden: cfg.NumHidden,
		LayerSize: cfg.LayerSize,
		UseRadial: cfg.UseRadial,
		UseTime:   cfg.UseTime,
		ColorMode: cfg.ColorMode,
	}
	e.buildNetwork(cfg.Seed)
	return e
}

func (e *CPPN) buildNetwork(seed int64) {
	rng := rand.New(rand.NewSource(seed))

	inSize := 2 + 1 // x, y, bias
	if e.UseRadial {
		inSize++
	}
	if e.UseTime {
		inSize += 2
	}

	e.layers = make([]cppnLayer, e.NumHidden)
	for l := range e.layers {
		outSize := e.LayerSize
		// Xavier init keeps the pre-activation variance stable.
		scale := math.Sqrt(2.0 / float64(inSize+outSize))
		weights := make([][]float64, outSize)
		for i := range weights {
			weights[i] = make([]float64, inSize)
			for j := range weights[i] {
				weights[i][j] = rng.NormFloat64() * scale
			}
		}
		e.layers[l] = cppnLayer{
			weights:    weights,
			activation: cppnActivations[rng.Intn(len(cppnActivations))],
		}
		inSize = outSize
	}

	scale := math.Sqrt(2.0 / float64(inSize+4))
	e.outputWeights = make([][]float64, 4)
	for i := range e.outputWeights {
		e.outputWeights[i] = make([]float64, inSize)
		for j := range e.outputWeights[i] {
			e.outputWeights[i][j] = rng.NormFloat64() * scale
		}
	}
}

func (e *CPPN) forward(inputs []float64) [4]float64 {
	x := inputs
	for _, layer := range e.layers {
		next := make([]float64, len(layer.weights))
		for i, row := range layer.weights {
			sum := 0.0
			for j, w := range row {
				sum += w * x[j]
			}
			next[i] = layer.activation(sum)
		}
		x = next
	}

	var out [4]float64
	for i, row := range e.outputWeights {
		sum := 0.0
		for j, w := range row {
			sum += w * x[j]
		}
		out[i] = math.Tanh(sum)
	}
	return out
}

type cppnState struct {
	warmth     float64
	saturation float64
}

func (e *CPPN) Pre(ctx *core.Context, buf core.Buffer) any {
	return &cppnState{
		warmth:     ctx.Param("warmth", 0.5),
		saturation: ctx.Param("saturation", 1.0),
	}
}

func (e *CPPN) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*cppnState)

	nx := float64(x)/float64(ctx.Width)*2.0 - 1.0
	ny := float64(y)/float64(ctx.Height)*2.0 - 1.0

	inputs := make([]float64, 0, 6)
	inputs = append(inputs, nx, ny)
	if e.UseRadial {
		inputs = append(inputs, math.Sqrt(nx*nx+ny*ny))
	}
	inputs = append(inputs, 1.0)
	if e.UseTime {
		inputs = append(inputs, math.Sin(ctx.Time*0.5), math.Cos(ctx.Time*0.3))
	}

	out := e.forward(inputs)

	charIdx := int((out[0] + 1.0) * 0.5 * 9)
	if charIdx < 0 {
		charIdx = 0
	} else if charIdx > 9 {
		charIdx = 9
	}

	var color core.RGB
	if e.ColorMode == "hsv" {
		hue := (out[1] + 1.0) * 0.5
		// High warmth pulls hue toward red/yellow, low toward blue.
		hue = mathx.Mod(hue*0.6+s.warmth*0.4, 1.0)
		sat := mathx.Clamp01((out[2] + 1.0) * 0.5 * s.saturation)
		val := mathx.Clamp((out[3]+1.0)*0.5, 0.1, 1.0)
		color = palette.HSV(hue, sat, val)
	} else {
		color = core.RGB{
			R: uint8(mathx.Clamp((out[1]+1.0)*0.5*255, 0, 255)),
			G: uint8(mathx.Clamp((out[2]+1.0)*0.5*255, 0, 255)),
			B: uint8(mathx.Clamp((out[3]+1.0)*0.5*255, 0, 255)),
		}
	}

	return &core.Cell{CharIdx: charIdx, Fg: color}
}

func (e *CPPN) Post(ctx *core.Context, buf core.Buffer, state any) {}

// InterpolateCPPNs lerps the weights of two same-shaped networks,
// giving a smooth morph between their patterns. Activations switch
// from a's to b's at t=0.5.
func InterpolateCPPNs(a, b *CPPN, t float64) (*CPPN, error) {
	if len(a.layers) != len(b.layers) || a.LayerSize != b.LayerSize {
		return nil, fmt.Errorf("cppn architectures differ: %dx%d vs %dx%d",
			a.NumHidden, a.LayerSize, b.NumHidden, b.LayerSize)
	}

	result := NewCPPNWith(CPPNConfig{
		Seed:      a.Seed,
		NumHidden: a.NumHidden,
		LayerSize: a.LayerSize,
		UseRadial: a.UseRadial,
		UseTime:   a.UseTime,
		ColorMode: a.ColorMode,
	})

	for l := range a.layers {
		la, lb := a.layers[l], b.layers[l]
		weights := make([][]float64, len(la.weights))
		for i := range weights {
			weights[i] = make([]float64, len(la.weights[i]))
			for j := range weights[i] {
				weights[i][j] = la.weights[i][j]*(1-t) + lb.weights[i][j]*t
			}
		}
		act := la.activation
		if t >= 0.5 {
			act = lb.activation
		}
		result.layers[l] = cppnLayer{weights: weights, activation: act}
	}

	for i := range a.outputWeights {
		for j := range a.outputWeights[i] {
			result.outputWeights[i][j] = a.outputWeights[i][j]*(1-t) + b.outputWeights[i][j]*t
		}
	}

	return result, nil
}
