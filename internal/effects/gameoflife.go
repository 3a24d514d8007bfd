package effects

import (
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/noise"
)

// GameOfLife runs Conway's B3/S23 automaton on a toroidal grid, seeded
// from value noise so the initial pattern has organic clumps. Cell age
// drives brightness.
type GameOfLife struct {
	grid        [][]int
	age         [][]int
	initialized bool
	lastTime    float64
	genAccum    float64
}

func NewGameOfLife() *GameOfLife { return &GameOfLife{} }

type lifeState struct {
	grid [][]int
	age  [][]int
}

func (e *GameOfLife) initState(ctx *core.Context) {
	w, h := ctx.Width, ctx.Height
	density := ctx.Param("density", 0.4)
	n := noise.New(ctx.Seed)
	const noiseScale = 0.08

	e.grid = make([][]int, h)
	e.age = make([][]int, h)
	for y := 0; y < h; y++ {
		e.grid[y] = make([]int, w)
		e.age[y] = make([]int, w)
		for x := 0; x < w; x++ {
			if n.Sample(float64(x)*noiseScale, float64(y)*noiseScale) < density {
				e.grid[y][x] = 1
				e.age[y][x] = 1
			}
		}
	}

	e.lastTime = ctx.Time
}

func (e *GameOfLife) countNeighbors(x, y, w, h int, wrap bool) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if wrap {
				nx = (nx + w) % w
				ny = (ny + h) % h
			} else if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			count += e.grid[ny][nx]
		}
	}
	return count
}

func (e *GameOfLife) step(w, h int, wrap bool) {
	newGrid := make([][]int, h)
	newAge := make([][]int, h)
	for y := 0; y < h; y++ {
		newGrid[y] = make([]int, w)
		newAge[y] = make([]int, w)
		for x := 0; x < w; x++ {
			neighbors := e.countNeighbors(x, y, w, h, wrap)

			survives := 0
			if e.grid[y][x] == 1 {
				if neighbors == 2 || neighbors == 3 {
					survives = 1
				}
			} else if neighbors == 3 {
				survives = 1
			}

			newGrid[y][x] = survives
			if survives == 1 {
				newAge[y][x] = e.age[y][x] + 1
			}
		}
	}
	e.grid = newGrid
	e.age = newAge
}

func (e *GameOfLife) Pre(ctx *core.Context, buf core.Buffer) any {
	speed := ctx.Param("speed", 5.0)
	wrap := ctx.Param("wrap", 1) != 0

	if !e.initialized {
		e.initState(ctx)
		e.initialized = true
	}

	dt := ctx.Time - e.lastTime
	if dt < 0 {
		dt = 0
	}
	e.lastTime = ctx.Time
	e.genAccum += dt * speed
	steps := int(e.genAccum)
	e.genAccum -= float64(steps)

	if steps > 10 {
		steps = 10
	}
	for i := 0; i < steps; i++ {
		e.step(ctx.Width, ctx.Height, wrap)
	}

	return &lifeState{grid: e.grid, age: e.age}
}

func (e *GameOfLife) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*lifeState)

	if s.grid[y][x] == 1 {
		ageVal := mathx.Clamp01(float64(s.age[y][x]) / 30.0)
		value := 0.4 + 0.6*ageVal
		return &core.Cell{
			CharIdx: core.QuantizeChar(value),
			Fg:      colorFor(value, ctx, "matrix"),
		}
	}

	// Dead cells pick up a faint glow from live neighbors.
	glow := 0
	w, h := ctx.Width, ctx.Height
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			glow += s.grid[(y+dy+h)%h][(x+dx+w)%w]
		}
	}

	if glow > 0 {
		glowVal := mathx.Clamp(float64(glow)/8.0, 0.0, 0.15)
		return &core.Cell{CharIdx: 0, Fg: colorFor(glowVal, ctx, "matrix")}
	}
	return &core.Cell{CharIdx: 0, Fg: core.RGB{}}
}

func (e *GameOfLife) Post(ctx *core.Context, buf core.Buffer, state any) {}
