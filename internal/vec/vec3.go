package vec

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Neg() Vec3            { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Length() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

func (a Vec3) Normalize() Vec3 {
	ln := a.Length()
	if ln < 1e-10 {
		return Vec3{}
	}
	return Vec3{a.X / ln, a.Y / ln, a.Z / ln}
}

func Dot3(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross3(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) RotateX(angle float64) Vec3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Vec3{a.X, a.Y*c - a.Z*s, a.Y*s + a.Z*c}
}

func (a Vec3) RotateY(angle float64) Vec3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Vec3{a.X*c + a.Z*s, a.Y, -a.X*s + a.Z*c}
}

func (a Vec3) RotateZ(angle float64) Vec3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Vec3{a.X*c - a.Y*s, a.X*s + a.Y*c, a.Z}
}

// ProjectPerspective maps a camera-space point (camera looking down +Z)
// to screen coordinates in roughly [-1, 1]. Returns (sx, sy, depth).
func ProjectPerspective(v Vec3, fovDeg, aspect float64) (float64, float64, float64) {
	f := 1.0 / math.Tan(fovDeg*math.Pi/180.0*0.5)
	z := v.Z
	if math.Abs(z) < 1e-10 {
		z = 1e-10
	}
	sx := (f * v.X) / (z * aspect)
	sy := (f * v.Y) / z
	return sx, sy, v.Z
}
