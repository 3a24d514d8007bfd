// Package sdf implements 2D signed distance functions. Negative means
// inside the shape, positive outside, zero on the boundary.
package sdf

import (
	"math"

	"github.com/san-kum/glyphgen/internal/vec"
)

func Circle(p, center vec.Vec2, radius float64) float64 {
	return p.Sub(center).Length() - radius
}

func Box(p, center, halfSize vec.Vec2) float64 {
	d := p.Sub(center).Abs().Sub(halfSize)
	outside := vec.V2(math.Max(d.X, 0.0), math.Max(d.Y, 0.0)).Length()
	inside := math.Min(math.Max(d.X, d.Y), 0.0)
	return outside + inside
}

// Line returns the unsigned distance from p to segment a-b.
func Line(p, a, b vec.Vec2) float64 {
	pa := p.Sub(a)
	ba := b.Sub(a)
	baLenSq := ba.LengthSq()
	if baLenSq < 1e-10 {
		return pa.Length()
	}
	t := math.Max(0.0, math.Min(1.0, vec.Dot(pa, ba)/baLenSq))
	closest := a.Add(ba.Scale(t))
	return p.Sub(closest).Length()
}

func Ring(p, center vec.Vec2, radius, thickness float64) float64 {
	return math.Abs(p.Sub(center).Length()-radius) - thickness
}

func Union(d1, d2 float64) float64 {
	return math.Min(d1, d2)
}

func Intersection(d1, d2 float64) float64 {
	return math.Max(d1, d2)
}

func Subtraction(d1, d2 float64) float64 {
	return math.Max(d1, -d2)
}

// SmoothUnion blends the seam between two shapes; k <= 0 degenerates
// to the hard union.
func SmoothUnion(d1, d2, k float64) float64 {
	if k <= 0.0 {
		return math.Min(d1, d2)
	}
	h := clamp01(0.5 + 0.5*(d2-d1)/k)
	return d2*(1.0-h) + d1*h - k*h*(1.0-h)
}

func SmoothSubtraction(d1, d2, k float64) float64 {
	if k <= 0.0 {
		return math.Max(d1, -d2)
	}
	h := clamp01(0.5 - 0.5*(d1+d2)/k)
	return d1*(1.0-h) + (-d2)*h + k*h*(1.0-h)
}

func SmoothIntersection(d1, d2, k float64) float64 {
	if k <= 0.0 {
		return math.Max(d1, d2)
	}
	h := clamp01(0.5 - 0.5*(d2-d1)/k)
	return d2*(1.0-h) + d1*h + k*h*(1.0-h)
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
