package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/palette"
)

const (
	liveCols    = 70
	liveRows    = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer mirrors a long render in the terminal: each frame's
// buffer is sampled down to a small glyph grid and reprinted in place,
// capped at frameRate so it never slows the render itself.
type LiveRenderer struct {
	gradient  string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
}

func NewLiveRenderer(gradient string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, liveRows)
	for i := range canvas {
		canvas[i] = make([]rune, liveCols)
	}
	return &LiveRenderer{
		gradient:  gradient,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

// OnFrame is called once per rendered frame with the effect buffer.
func (r *LiveRenderer) OnFrame(buf core.Buffer, t float64, frame, total int) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.sample(buf)
	r.render(t, frame, total)
}

func (r *LiveRenderer) sample(buf core.Buffer) {
	bw, bh := buf.Width(), buf.Height()
	if bw == 0 || bh == 0 {
		return
	}
	for y := 0; y < liveRows; y++ {
		for x := 0; x < liveCols; x++ {
			cell := buf[y*bh/liveRows][x*bw/liveCols]
			r.canvas[y][x] = palette.CharAtValue(float64(cell.CharIdx)/9.0, r.gradient)
		}
	}
}

func (r *LiveRenderer) render(t float64, frame, total int) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  frame %d/%d\n", r.gradient, t, frame+1, total))
	b.WriteString("  " + strings.Repeat("-", liveCols) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", liveCols) + "\n")
	fmt.Print(b.String())
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }
