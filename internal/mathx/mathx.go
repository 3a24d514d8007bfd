package mathx

import "math"

const (
	Pi     = math.Pi
	Tau    = math.Pi * 2.0
	HalfPi = math.Pi * 0.5
)

func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0.0, 1.0)
}

func Mix(a, b, t float64) float64 {
	return a*(1.0-t) + b*t
}

func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0.0, 1.0)
	return t * t * (3.0 - 2.0*t)
}

func Smootherstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0.0, 1.0)
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}

func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (value-inMin)*(outMax-outMin)/(inMax-inMin)
}

func Fract(x float64) float64 {
	return x - math.Floor(x)
}

func Sign(x float64) float64 {
	if x > 0 {
		return 1.0
	}
	if x < 0 {
		return -1.0
	}
	return 0.0
}

func Step(edge, x float64) float64 {
	if x >= edge {
		return 1.0
	}
	return 0.0
}

func Pulse(edge0, edge1, x float64) float64 {
	return Step(edge0, x) - Step(edge1, x)
}

// Mod matches GLSL mod: the result carries the sign of y.
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}
