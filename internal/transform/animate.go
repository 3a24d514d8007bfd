package transform

import (
	"math"

	"github.com/san-kum/glyphgen/internal/mathx"
)

// Value is a transform keyword argument: either a static scalar or an
// animated spec resolved against frame time.
type Value struct {
	Static   float64
	Animated bool
	Base     float64
	Speed    float64
	Amp      float64
	Mode     string // "linear", "oscillate" (default), "ping_pong"
}

func Static(v float64) Value { return Value{Static: v} }

func Animated(base, speed, amp float64, mode string) Value {
	return Value{Animated: true, Base: base, Speed: speed, Amp: amp, Mode: mode}
}

// At resolves the value at the given time.
func (v Value) At(t float64) float64 {
	if !v.Animated {
		return v.Static
	}
	switch v.Mode {
	case "linear":
		return v.Base + v.Speed*t
	case "ping_pong":
		// Triangle wave with period 2/speed.
		phase := mathx.Mod(t*v.Speed, 2.0)
		if phase > 1.0 {
			phase = 2.0 - phase
		}
		return v.Base + v.Amp*phase
	default: // oscillate
		return v.Base + v.Amp*math.Sin(t*v.Speed*mathx.Tau)
	}
}

// ResolveArgs evaluates a set of possibly animated kwargs at a time.
func ResolveArgs(args map[string]Value, t float64) Args {
	if args == nil {
		return nil
	}
	resolved := make(Args, len(args))
	for name, v := range args {
		resolved[name] = v.At(t)
	}
	return resolved
}
