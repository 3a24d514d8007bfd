package core

import "math/rand"

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Cell is one character cell of the render buffer. CharIdx indexes the
// active ASCII gradient (0 = empty, 9 = densest). Bg nil means the
// cell keeps the image background.
type Cell struct {
	CharIdx int
	Fg      RGB
	Bg      *RGB
}

// Buffer is a row-major grid of cells.
type Buffer [][]Cell

func NewBuffer(width, height int) Buffer {
	buf := make(Buffer, height)
	for y := range buf {
		buf[y] = make([]Cell, width)
	}
	return buf
}

func (b Buffer) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

func (b Buffer) Height() int {
	return len(b)
}

// Context carries per-frame render state into effects.
type Context struct {
	Width, Height int
	Time          float64
	Frame         int
	Seed          int64
	Rng           *rand.Rand
	Params        map[string]float64
	StrParams     map[string]string
}

// Param returns a numeric parameter or the given default.
func (c *Context) Param(name string, def float64) float64 {
	if v, ok := c.Params[name]; ok {
		return v
	}
	return def
}

// StrParam returns a string parameter or the given default.
func (c *Context) StrParam(name string, def string) string {
	if v, ok := c.StrParams[name]; ok {
		return v
	}
	return def
}

func NewContext(width, height int, time float64, frame int, seed int64, params map[string]float64) *Context {
	if params == nil {
		params = map[string]float64{}
	}
	return &Context{
		Width:     width,
		Height:    height,
		Time:      time,
		Frame:     frame,
		Seed:      seed,
		Rng:       rand.New(rand.NewSource(seed)),
		Params:    params,
		StrParams: map[string]string{},
	}
}

// Effect is the three-phase render protocol. Pre runs once per frame
// and returns shared state. Main runs per cell; a nil return leaves
// the buffer cell untouched. Post runs once after the sweep and may
// rewrite the buffer in place.
type Effect interface {
	Pre(ctx *Context, buf Buffer) any
	Main(x, y int, ctx *Context, state any) *Cell
	Post(ctx *Context, buf Buffer, state any)
}

// QuantizeChar maps a [0,1] value to a gradient index 0..9.
func QuantizeChar(v float64) int {
	idx := int(v * 9)
	if idx < 0 {
		return 0
	}
	if idx > 9 {
		return 9
	}
	return idx
}
