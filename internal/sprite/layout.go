package sprite

import (
	"math"
	"math/rand"

	"github.com/san-kum/glyphgen/internal/vec"
)

// Point is a sprite anchor produced by a layout.
type Point struct {
	X, Y float64
}

// RandomScatter spreads points uniformly inside a 5% margin.
func RandomScatter(width, height float64, count int, rng *rand.Rand) []Point {
	margin := math.Min(width, height) * 0.05
	pts := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		pts = append(pts, Point{
			X: margin + rng.Float64()*(width-2*margin),
			Y: margin + rng.Float64()*(height-2*margin),
		})
	}
	return pts
}

// GridWithJitter places points on a near-square grid, nudged by up to
// jitter pixels on each axis.
func GridWithJitter(width, height float64, count int, rng *rand.Rand, jitter float64) []Point {
	if count <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := int(math.Ceil(float64(count) / float64(cols)))
	cellW := width / float64(cols)
	cellH := height / float64(rows)

	pts := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		r := i / cols
		c := i % cols
		cx := float64(c)*cellW + cellW/2
		cy := float64(r)*cellH + cellH/2
		pts = append(pts, Point{
			X: cx + (rng.Float64()*2-1)*jitter,
			Y: cy + (rng.Float64()*2-1)*jitter,
		})
	}
	return pts
}

// SpiralLayout walks a Fermat spiral out from the center at the golden
// angle. A zero spacing picks one from the canvas area.
func SpiralLayout(width, height float64, count int, spacing float64) []Point {
	cx, cy := width/2, height/2
	if spacing <= 0 {
		spacing = math.Sqrt(width * height / (float64(count) * 3))
	}
	goldenAngle := math.Pi * (3 - math.Sqrt(5))

	pts := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		theta := float64(i) * goldenAngle
		r := spacing * math.Sqrt(float64(i))
		pts = append(pts, Point{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)})
	}
	return pts
}

// ForceDirectedLayout relaxes randomly seeded points with pairwise
// repulsion and a weak pull to the center, 50 iterations by default.
func ForceDirectedLayout(width, height float64, count int, rng *rand.Rand, iterations int) []Point {
	if count <= 0 {
		return nil
	}
	if iterations <= 0 {
		iterations = 50
	}
	nodes := make([]vec.Vec2, count)
	for i := range nodes {
		nodes[i] = vec.V2(rng.Float64()*width, rng.Float64()*height)
	}

	k := math.Sqrt(width * height / float64(count))
	center := vec.V2(width/2, height/2)

	for iter := 0; iter < iterations; iter++ {
		disp := make([]vec.Vec2, count)

		for i := 0; i < count; i++ {
			for j := 0; j < count; j++ {
				if i == j {
					continue
				}
				delta := nodes[i].Sub(nodes[j])
				d := delta.Length()
				if d < 0.01 {
					d = 0.01
					delta = vec.V2(rng.Float64()*2-1, rng.Float64()*2-1)
				}
				force := (k * k) / d
				disp[i] = disp[i].Add(delta.Normalize().Scale(force))
			}
		}

		for i := 0; i < count; i++ {
			delta := nodes[i].Sub(center)
			if d := delta.Length(); d > 0 {
				force := (d * d) / k
				disp[i] = disp[i].Sub(delta.Normalize().Scale(force * 0.1))
			}
		}

		for i := 0; i < count; i++ {
			d := disp[i]
			if l := d.Length(); l > k {
				d = d.Normalize().Scale(k)
			}
			nodes[i] = nodes[i].Add(d)
			nodes[i].X = math.Min(width-20, math.Max(20, nodes[i].X))
			nodes[i].Y = math.Min(height-20, math.Max(20, nodes[i].Y))
		}
	}

	pts := make([]Point, count)
	for i, n := range nodes {
		pts[i] = Point{X: n.X, Y: n.Y}
	}
	return pts
}

// PresetPosition is a fixed anchor with a suggested sprite size.
type PresetPosition struct {
	X, Y float64
	Size int
}

// PresetDecoration is a fixed glyph placement in a preset layout.
type PresetDecoration struct {
	X, Y float64
	Text string
}

// LayoutPreset is one of the hand-tuned 1080x1080 arrangements.
type LayoutPreset struct {
	Positions   []PresetPosition
	Central     Point
	TitleY      float64
	InfoY       float64
	TimestampY  float64
	Decorations []PresetDecoration
}

// LayoutPresets holds the fixed arrangements, indexed 0-7.
var LayoutPresets = []LayoutPreset{
	{ // classic grid-like
		Positions: []PresetPosition{
			{100, 100, 120}, {300, 120, 100}, {500, 100, 120}, {700, 120, 100},
			{120, 300, 110}, {320, 320, 130}, {520, 300, 110}, {720, 320, 130},
			{200, 500, 140}, {600, 500, 140},
		},
		Central: Point{540, 540}, TitleY: 40, InfoY: 900, TimestampY: 960,
		Decorations: []PresetDecoration{
			{40, 40, "+"}, {1040, 40, "+"}, {40, 1040, "+"}, {1040, 1040, "+"},
		},
	},
	{ // circular ring
		Positions: []PresetPosition{
			{540, 150, 130}, {800, 250, 110}, {930, 540, 120}, {800, 830, 110},
			{540, 930, 130}, {280, 830, 110}, {150, 540, 120}, {280, 250, 110},
		},
		Central: Point{540, 540}, TitleY: 40, InfoY: 1000, TimestampY: 1040,
		Decorations: []PresetDecoration{
			{40, 40, "."}, {1040, 40, "."}, {40, 1040, "."}, {1040, 1040, "."},
		},
	},
	{ // asymmetric scatter
		Positions: []PresetPosition{
			{100, 150, 140}, {250, 300, 100}, {150, 500, 120}, {300, 700, 110},
			{800, 150, 130}, {900, 350, 100}, {850, 600, 120}, {950, 800, 110},
			{540, 850, 150},
		},
		Central: Point{540, 450}, TitleY: 40, InfoY: 980, TimestampY: 1020,
		Decorations: []PresetDecoration{
			{20, 540, "-"}, {1060, 540, "-"}, {540, 20, "|"}, {540, 1060, "|"},
		},
	},
	{ // diagonal flow
		Positions: []PresetPosition{
			{80, 120, 110}, {240, 260, 120}, {400, 420, 130},
			{560, 580, 120}, {720, 740, 110}, {820, 820, 130},
		},
		Central: Point{400, 380}, TitleY: 40, InfoY: 940, TimestampY: 1010,
		Decorations: []PresetDecoration{
			{40, 100, "/"}, {1000, 920, "\\"}, {60, 960, "//"}, {940, 80, "\\\\"},
		},
	},
	{ // top banner
		Positions: []PresetPosition{
			{100, 220, 120}, {320, 240, 110}, {540, 260, 120}, {760, 280, 110},
			{120, 840, 140}, {780, 840, 140},
		},
		Central: Point{430, 620}, TitleY: 20, InfoY: 960, TimestampY: 1020,
		Decorations: []PresetDecoration{
			{40, 40, "===="}, {940, 40, "===="}, {40, 140, "----"}, {940, 140, "----"},
		},
	},
	{ // side columns
		Positions: []PresetPosition{
			{100, 200, 110}, {100, 400, 110}, {100, 600, 110}, {100, 800, 110},
			{980, 200, 110}, {980, 400, 110}, {980, 600, 110}, {980, 800, 110},
		},
		Central: Point{540, 540}, TitleY: 50, InfoY: 950, TimestampY: 1000,
		Decorations: []PresetDecoration{
			{200, 100, "|"}, {880, 100, "|"}, {200, 980, "|"}, {880, 980, "|"},
		},
	},
	{ // cross
		Positions: []PresetPosition{
			{540, 150, 120}, {540, 300, 110}, {540, 780, 110}, {540, 930, 120},
			{150, 540, 120}, {300, 540, 110}, {780, 540, 110}, {930, 540, 120},
		},
		Central: Point{540, 540}, TitleY: 40, InfoY: 1000, TimestampY: 1040,
		Decorations: []PresetDecoration{
			{40, 40, "x"}, {1040, 40, "x"}, {40, 1040, "x"}, {1040, 1040, "x"},
		},
	},
	{ // loose cloud
		Positions: []PresetPosition{
			{300, 300, 100}, {400, 250, 110}, {600, 280, 100}, {700, 350, 110},
			{350, 600, 100}, {450, 700, 110}, {650, 650, 100}, {750, 600, 110},
		},
		Central: Point{540, 540}, TitleY: 40, InfoY: 980, TimestampY: 1020,
		Decorations: []PresetDecoration{
			{540, 100, "^"}, {540, 980, "v"},
		},
	},
}

// PresetLayout returns the preset at index, wrapping out-of-range
// indexes back to the first.
func PresetLayout(index int) LayoutPreset {
	if index < 0 || index >= len(LayoutPresets) {
		return LayoutPresets[0]
	}
	return LayoutPresets[index]
}
