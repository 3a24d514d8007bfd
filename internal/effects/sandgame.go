package effects

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/palette"
)

// SandGame drops particles from the top of the grid and lets them pile
// up, sliding diagonally when blocked. The grid persists across frames.
type SandGame struct {
	grid        [][]int
	initialized bool
}

func NewSandGame() *SandGame { return &SandGame{} }

var sandColors = [][]core.RGB{
	{{R: 194, G: 178, B: 128}, {R: 210, G: 190, B: 140}, {R: 220, G: 200, B: 150}},
	{{R: 180, G: 100, B: 60}, {R: 200, G: 120, B: 70}, {R: 220, G: 140, B: 80}},
	{{R: 100, G: 120, B: 160}, {R: 120, G: 140, B: 180}, {R: 140, G: 160, B: 200}},
}

type sandState struct {
	grid [][]int
}

func (e *SandGame) spawn(ctx *core.Context, spawnRate float64, particleTypes int) {
	for x := 0; x < ctx.Width; x++ {
		if ctx.Rng.Float64() < spawnRate && e.grid[0][x] == 0 {
			e.grid[0][x] = 1 + ctx.Rng.Intn(particleTypes)
		}
	}
}

func (e *SandGame) physicsStep(ctx *core.Context) {
	w, h := ctx.Width, ctx.Height

	// Bottom-to-top scan; shuffle x order each row to avoid drift bias.
	for y := h - 2; y >= 0; y-- {
		xs := ctx.Rng.Perm(w)
		for _, x := range xs {
			particle := e.grid[y][x]
			if particle == 0 {
				continue
			}

			if e.grid[y+1][x] == 0 {
				e.grid[y+1][x] = particle
				e.grid[y][x] = 0
				continue
			}

			dirs := [2]int{-1, 1}
			if ctx.Rng.Float64() >= 0.5 {
				dirs = [2]int{1, -1}
			}
			for _, dx := range dirs {
				nx := x + dx
				if nx >= 0 && nx < w && e.grid[y+1][nx] == 0 {
					e.grid[y+1][nx] = particle
					e.grid[y][x] = 0
					break
				}
			}
		}
	}
}

func (e *SandGame) Pre(ctx *core.Context, buf core.Buffer) any {
	spawnRate := ctx.Param("spawn_rate", 0.3)
	gravitySpeed := int(ctx.Param("gravity_speed", 2))
	particleTypes := int(ctx.Param("particle_types", 2))
	if particleTypes < 1 {
		particleTypes = 1
	} else if particleTypes > len(sandColors) {
		particleTypes = len(sandColors)
	}

	if !e.initialized {
		e.grid = make([][]int, ctx.Height)
		for y := range e.grid {
			e.grid[y] = make([]int, ctx.Width)
		}
		e.initialized = true
	}

	e.spawn(ctx, spawnRate, particleTypes)
	for i := 0; i < gravitySpeed; i++ {
		e.physicsStep(ctx)
	}

	return &sandState{grid: e.grid}
}

func (e *SandGame) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*sandState)
	particle := s.grid[y][x]

	if particle == 0 {
		return &core.Cell{CharIdx: 0, Fg: core.RGB{R: 10, G: 10, B: 15}}
	}

	heightRatio := float64(y) / float64(ctx.Height)
	value := 0.5 + 0.5*heightRatio
	charIdx := int(mathx.Clamp(value*9, 0, 9))

	var color core.RGB
	if warmth, ok := ctx.Params["warmth"]; ok {
		shifted := mathx.Mod(value+float64(particle-1)*0.3, 1.0)
		color = palette.ValueToColorContinuous(shifted, warmth, ctx.Param("saturation", 1.0))
	} else {
		pal := sandColors[(particle-1)%len(sandColors)]
		idx := int(mathx.Clamp(heightRatio*float64(len(pal)-1), 0, float64(len(pal)-1)))
		color = pal[idx]
	}

	return &core.Cell{CharIdx: charIdx, Fg: color}
}

func (e *SandGame) Post(ctx *core.Context, buf core.Buffer, state any) {}
