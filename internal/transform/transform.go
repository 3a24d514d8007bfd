package transform

import (
	"math"

	"github.com/san-kum/glyphgen/internal/mathx"
)

// Func remaps normalized [0,1] coordinates. Args carries the resolved
// per-frame keyword arguments; missing keys fall back to each
// transform's defaults.
type Func func(u, v float64, args Args) (float64, float64)

// Args is a resolved keyword-argument set for one transform step.
type Args map[string]float64

func (a Args) get(name string, def float64) float64 {
	if v, ok := a[name]; ok {
		return v
	}
	return def
}

// MirrorX folds the right half onto the left.
func MirrorX(u, v float64, args Args) (float64, float64) {
	if u > 0.5 {
		u = 1.0 - u
	}
	return u * 2.0, v
}

// MirrorY folds the bottom half onto the top.
func MirrorY(u, v float64, args Args) (float64, float64) {
	if v > 0.5 {
		v = 1.0 - v
	}
	return u, v * 2.0
}

// MirrorQuad gives four-fold symmetry.
func MirrorQuad(u, v float64, args Args) (float64, float64) {
	if u > 0.5 {
		u = 1.0 - u
	}
	if v > 0.5 {
		v = 1.0 - v
	}
	return u * 2.0, v * 2.0
}

// Kaleidoscope folds the plane into n rotational segments around a
// center, mirroring alternate segments for seamless joins.
func Kaleidoscope(u, v float64, args Args) (float64, float64) {
	segments := args.get("segments", 6)
	cx := args.get("cx", 0.5)
	cy := args.get("cy", 0.5)
	if segments < 1 {
		segments = 1
	}

	dx := u - cx
	dy := v - cy
	r := math.Sqrt(dx*dx + dy*dy)
	theta := math.Atan2(dy, dx)

	segAngle := mathx.Tau / segments
	wrapped := mathx.Mod(theta, mathx.Tau)
	segIdx := int(math.Floor(wrapped / segAngle))
	theta = mathx.Mod(wrapped, segAngle)
	if segIdx%2 == 1 {
		theta = segAngle - theta
	}

	return cx + r*math.Cos(theta), cy + r*math.Sin(theta)
}

// Tile repeats the unit square cols x rows times.
func Tile(u, v float64, args Args) (float64, float64) {
	cols := args.get("cols", 2)
	rows := args.get("rows", 2)
	return mathx.Fract(u * cols), mathx.Fract(v * rows)
}

// Rotate spins coordinates around a center.
func Rotate(u, v float64, args Args) (float64, float64) {
	angle := args.get("angle", 0.0)
	cx := args.get("cx", 0.5)
	cy := args.get("cy", 0.5)

	dx := u - cx
	dy := v - cy
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	return cx + dx*cosA - dy*sinA, cy + dx*sinA + dy*cosA
}

// Zoom scales coordinates toward or away from a center.
func Zoom(u, v float64, args Args) (float64, float64) {
	factor := args.get("factor", 2.0)
	cx := args.get("cx", 0.5)
	cy := args.get("cy", 0.5)
	if factor == 0 {
		return cx, cy
	}
	return cx + (u-cx)/factor, cy + (v-cy)/factor
}

// SpiralWarp twists coordinates by an angle proportional to radius.
func SpiralWarp(u, v float64, args Args) (float64, float64) {
	twist := args.get("twist", 1.0)
	cx := args.get("cx", 0.5)
	cy := args.get("cy", 0.5)

	dx := u - cx
	dy := v - cy
	r := math.Sqrt(dx*dx + dy*dy)
	theta := math.Atan2(dy, dx)
	theta += r * twist * mathx.Tau
	return cx + r*math.Cos(theta), cy + r*math.Sin(theta)
}

// PolarRemap maps Cartesian coordinates into (angle, radius) space.
func PolarRemap(u, v float64, args Args) (float64, float64) {
	cx := args.get("cx", 0.5)
	cy := args.get("cy", 0.5)

	dx := u - cx
	dy := v - cy
	r := math.Sqrt(dx*dx+dy*dy) * 2.0
	theta := mathx.Mod(math.Atan2(dy, dx)/mathx.Tau+0.5, 1.0)
	return theta, r
}

// Registry maps transform names to their functions.
var Registry = map[string]Func{
	"mirror_x":     MirrorX,
	"mirror_y":     MirrorY,
	"mirror_quad":  MirrorQuad,
	"kaleidoscope": Kaleidoscope,
	"tile":         Tile,
	"rotate":       Rotate,
	"zoom":         Zoom,
	"spiral_warp":  SpiralWarp,
	"polar_remap":  PolarRemap,
}
