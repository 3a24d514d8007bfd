package vec

import (
	"math"
	"testing"
)

func TestLength(t *testing.T) {
	if got := V2(3, 4).Length(); got != 5.0 {
		t.Errorf("expected 5.0, got %f", got)
	}
	if got := V3(1, 2, 2).Length(); got != 3.0 {
		t.Errorf("expected 3.0, got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	n := V2(3, 4).Normalize()
	if math.Abs(n.X-0.6) > 1e-9 || math.Abs(n.Y-0.8) > 1e-9 {
		t.Errorf("expected (0.6, 0.8), got (%f, %f)", n.X, n.Y)
	}
	z := V2(0, 0).Normalize()
	if z.X != 0 || z.Y != 0 {
		t.Error("zero vector should normalize to zero")
	}
}

func TestRotate(t *testing.T) {
	r := V2(1, 0).Rotate(math.Pi / 2)
	if math.Abs(r.X) > 1e-9 || math.Abs(r.Y-1.0) > 1e-9 {
		t.Errorf("expected (0, 1), got (%f, %f)", r.X, r.Y)
	}
}

func TestDotCross(t *testing.T) {
	if Dot(V2(1, 0), V2(0, 1)) != 0.0 {
		t.Error("orthogonal vectors should have zero dot product")
	}
	if Cross(V2(1, 0), V2(0, 1)) != 1.0 {
		t.Error("expected counterclockwise cross 1.0")
	}
}

func TestReflect(t *testing.T) {
	r := Reflect(V2(1, -1), V2(0, 1))
	if r.X != 1.0 || r.Y != 1.0 {
		t.Errorf("expected (1, 1), got (%f, %f)", r.X, r.Y)
	}
}

func TestCross3(t *testing.T) {
	c := Cross3(V3(1, 0, 0), V3(0, 1, 0))
	if c.X != 0 || c.Y != 0 || c.Z != 1 {
		t.Errorf("expected (0, 0, 1), got %+v", c)
	}
}

func TestRotateY(t *testing.T) {
	r := V3(1, 0, 0).RotateY(math.Pi / 2)
	if math.Abs(r.X) > 1e-9 || math.Abs(r.Z+1.0) > 1e-9 {
		t.Errorf("expected (0, 0, -1), got %+v", r)
	}
}

func TestProjectPerspective(t *testing.T) {
	sx, sy, depth := ProjectPerspective(V3(0, 0, 5), 60, 1.0)
	if sx != 0 || sy != 0 {
		t.Errorf("center point should project to origin, got (%f, %f)", sx, sy)
	}
	if depth != 5.0 {
		t.Errorf("expected depth 5.0, got %f", depth)
	}

	// Points farther to the side project farther from center.
	sx1, _, _ := ProjectPerspective(V3(1, 0, 5), 60, 1.0)
	sx2, _, _ := ProjectPerspective(V3(2, 0, 5), 60, 1.0)
	if sx2 <= sx1 {
		t.Errorf("expected increasing screen x, got %f then %f", sx1, sx2)
	}
}
