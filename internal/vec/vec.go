package vec

import "math"

type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{x, y} }

func (a Vec2) Add(b Vec2) Vec2    { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2    { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Mul(b Vec2) Vec2    { return Vec2{a.X * b.X, a.Y * b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Neg() Vec2          { return Vec2{-a.X, -a.Y} }
func (a Vec2) Abs() Vec2          { return Vec2{math.Abs(a.X), math.Abs(a.Y)} }

func (a Vec2) Length() float64   { return math.Sqrt(a.X*a.X + a.Y*a.Y) }
func (a Vec2) LengthSq() float64 { return a.X*a.X + a.Y*a.Y }

func (a Vec2) Normalize() Vec2 {
	ln := a.Length()
	if ln < 1e-10 {
		return Vec2{}
	}
	return Vec2{a.X / ln, a.Y / ln}
}

func (a Vec2) Rotate(angle float64) Vec2 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

func Dot(a, b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func Cross(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }
func Dist(a, b Vec2) float64  { return a.Sub(b).Length() }

// Reflect mirrors v across the unit normal n.
func Reflect(v, n Vec2) Vec2 {
	d := Dot(v, n)
	return Vec2{v.X - 2.0*d*n.X, v.Y - 2.0*d*n.Y}
}

func Mix(a, b Vec2, t float64) Vec2 {
	return Vec2{
		a.X*(1.0-t) + b.X*t,
		a.Y*(1.0-t) + b.Y*t,
	}
}
