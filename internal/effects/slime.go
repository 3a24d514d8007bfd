package effects

import (
	"math"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/mathx"
)

// SlimeDish is an agent-based physarum simulation. Agents steer toward
// the strongest chemical trail ahead of them and deposit trail as they
// move; the trail map blurs and decays each step, leaving branching
// organic networks.
type SlimeDish struct {
	trailMap    [][]float64
	agents      [][3]float64 // x, y, heading
	initialized bool
}

func NewSlimeDish() *SlimeDish { return &SlimeDish{} }

const slimeTurnSpeed = 0.3

type slimeState struct {
	trailMap [][]float64
}

func (e *SlimeDish) initState(ctx *core.Context) {
	w, h := ctx.Width, ctx.Height
	agentCount := int(ctx.Param("agent_count", 2000))

	e.trailMap = make([][]float64, h)
	for y := range e.trailMap {
		e.trailMap[y] = make([]float64, w)
	}

	e.agents = make([][3]float64, agentCount)
	for i := range e.agents {
		e.agents[i] = [3]float64{
			ctx.Rng.Float64() * float64(w),
			ctx.Rng.Float64() * float64(h),
			ctx.Rng.Float64() * mathx.Tau,
		}
	}
}

func (e *SlimeDish) sense(agent [3]float64, offsetAngle, sensorDist float64, w, h int) float64 {
	senseAngle := agent[2] + offsetAngle
	sx := ((int(agent[0]+math.Cos(senseAngle)*sensorDist) % w) + w) % w
	sy := ((int(agent[1]+math.Sin(senseAngle)*sensorDist) % h) + h) % h
	return e.trailMap[sy][sx]
}

func (e *SlimeDish) stepAgents(ctx *core.Context, sensorDist, sensorAngle float64) {
	w, h := ctx.Width, ctx.Height

	for i := range e.agents {
		agent := &e.agents[i]

		f := e.sense(*agent, 0, sensorDist, w, h)
		fl := e.sense(*agent, -sensorAngle, sensorDist, w, h)
		fr := e.sense(*agent, sensorAngle, sensorDist, w, h)

		switch {
		case f >= fl && f >= fr:
			// Keep heading.
		case fl > fr:
			agent[2] -= slimeTurnSpeed
		case fr > fl:
			agent[2] += slimeTurnSpeed
		default:
			agent[2] += (ctx.Rng.Float64() - 0.5) * slimeTurnSpeed
		}

		agent[0] = mathx.Mod(agent[0]+math.Cos(agent[2]), float64(w))
		agent[1] = mathx.Mod(agent[1]+math.Sin(agent[2]), float64(h))

		ix := int(agent[0]) % w
		iy := int(agent[1]) % h
		e.trailMap[iy][ix] = math.Min(e.trailMap[iy][ix]+1.0, 5.0)
	}
}

func (e *SlimeDish) diffuseAndDecay(w, h int, decayRate float64) {
	old := e.trailMap
	newMap := make([][]float64, h)
	for y := 0; y < h; y++ {
		newMap[y] = make([]float64, w)
		ym := (y - 1 + h) % h
		yp := (y + 1) % h
		for x := 0; x < w; x++ {
			xm := (x - 1 + w) % w
			xp := (x + 1) % w
			avg := (old[ym][xm] + old[ym][x] + old[ym][xp] +
				old[y][xm] + old[y][x] + old[y][xp] +
				old[yp][xm] + old[yp][x] + old[yp][xp]) / 9.0
			newMap[y][x] = avg * decayRate
		}
	}
	e.trailMap = newMap
}

func (e *SlimeDish) Pre(ctx *core.Context, buf core.Buffer) any {
	sensorDistance := ctx.Param("sensor_distance", 9)
	sensorAngle := ctx.Param("sensor_angle", 0.4)
	decayRate := ctx.Param("decay_rate", 0.95)
	speed := int(ctx.Param("speed", 3))

	if !e.initialized {
		e.initState(ctx)
		e.initialized = true
	}

	for i := 0; i < speed; i++ {
		e.stepAgents(ctx, sensorDistance, sensorAngle)
		e.diffuseAndDecay(ctx.Width, ctx.Height, decayRate)
	}

	return &slimeState{trailMap: e.trailMap}
}

func (e *SlimeDish) Main(x, y int, ctx *core.Context, state any) *core.Cell {
	s := state.(*slimeState)

	// Max observed trail after diffusion sits around 2.5.
	value := mathx.Clamp01(s.trailMap[y][x] / 2.5)

	return &core.Cell{
		CharIdx: core.QuantizeChar(value),
		Fg:      colorFor(value, ctx, "cool"),
	}
}

func (e *SlimeDish) Post(ctx *core.Context, buf core.Buffer, state any) {}
