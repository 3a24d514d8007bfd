// Package engine orchestrates the render pipeline: effect sweep over
// an internal cell grid, background fill, rasterization, sprite layer
// and image post-processing.
package engine

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/postfx"
)

// Sprite draws itself onto a frame at output resolution.
type Sprite interface {
	Draw(img *image.RGBA, t float64)
}

// Engine renders effects on a small internal grid and upscales the
// result with nearest-neighbor so the cell structure stays crisp.
type Engine struct {
	InternalWidth  int
	InternalHeight int
	OutputWidth    int
	OutputHeight   int
	CharSize       int
	GradientName   string
	Sharpen        bool
	Contrast       float64

	workers int
	pool    *bufferPool
}

func New() *Engine {
	e := &Engine{
		InternalWidth:  160,
		InternalHeight: 160,
		OutputWidth:    1080,
		OutputHeight:   1080,
		CharSize:       1,
		GradientName:   "default",
		Sharpen:        true,
		Contrast:       1.2,
		workers:        runtime.NumCPU(),
	}
	e.pool = newBufferPool(e.InternalWidth, e.InternalHeight)
	return e
}

// FrameOpts carries the per-frame render inputs.
type FrameOpts struct {
	Time    float64
	Frame   int
	Seed    int64
	Params  map[string]float64
	Strs    map[string]string
	PostFX  []postfx.Spec
	Sprites []Sprite
	BgFill  *BgSpec
}

// RenderBuffer runs one effect sweep into a fresh buffer: Pre once,
// Main per cell with rows split across workers, then Post. Main must
// be pure per (x, y); all mutable effect state lives in Pre/Post.
func (e *Engine) RenderBuffer(effect core.Effect, ctx *core.Context) core.Buffer {
	buf := core.NewBuffer(ctx.Width, ctx.Height)
	e.sweep(effect, ctx, buf)
	return buf
}

func (e *Engine) sweep(effect core.Effect, ctx *core.Context, buf core.Buffer) {
	state := effect.Pre(ctx, buf)

	h := ctx.Height
	w := ctx.Width
	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	if h < workers {
		workers = h
	}

	var wg sync.WaitGroup
	chunkSize := (h + workers - 1) / workers

	for wk := 0; wk < workers; wk++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > h {
				end = h
			}

			for y := start; y < end; y++ {
				for x := 0; x < w; x++ {
					if cell := effect.Main(x, y, ctx, state); cell != nil {
						buf[y][x] = *cell
					}
				}
			}
		}(wk)
	}
	wg.Wait()

	effect.Post(ctx, buf, state)
}

// RenderFrame produces one finished frame: effect sweep, postfx
// chain, optional background fill, rasterize, nearest-neighbor
// upscale, sprites, then sharpen and contrast.
func (e *Engine) RenderFrame(effect core.Effect, opts FrameOpts) *image.RGBA {
	ctx := core.NewContext(e.InternalWidth, e.InternalHeight, opts.Time, opts.Frame, opts.Seed, opts.Params)
	for k, v := range opts.Strs {
		ctx.StrParams[k] = v
	}

	buf := e.pool.get(e.InternalWidth, e.InternalHeight)
	defer e.pool.put(buf)
	e.sweep(effect, ctx, buf)

	if len(opts.PostFX) > 0 {
		postfx.Apply(buf, opts.PostFX, opts.Time)
	}

	if opts.BgFill != nil {
		spec := *opts.BgFill
		spec.Time = opts.Time
		BgFill(buf, e.InternalWidth, e.InternalHeight, opts.Seed, &spec)
	}

	img := BufferToImage(buf, e.CharSize, e.GradientName)
	img = UpscaleNearest(img, e.OutputWidth, e.OutputHeight)

	for _, sp := range opts.Sprites {
		sp.Draw(img, opts.Time)
	}

	if e.Sharpen {
		img = sharpen3x3(img)
	}
	if e.Contrast != 1.0 {
		adjustContrast(img, e.Contrast)
	}
	return img
}

// RenderVideo renders duration*fps frames sequentially with one
// long-lived effect instance, so stateful simulations accumulate from
// frame to frame. The context cancels between frames.
func (e *Engine) RenderVideo(ctx context.Context, effect core.Effect, duration float64, fps int, opts FrameOpts) ([]*image.RGBA, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	totalFrames := int(duration * float64(fps))
	if totalFrames < 1 {
		totalFrames = 1
	}

	frames := make([]*image.RGBA, 0, totalFrames)
	fmt.Printf("rendering %d frames (%.1fs @ %dfps)...\n", totalFrames, duration, fps)
	start := time.Now()

	for i := 0; i < totalFrames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		frameOpts := opts
		frameOpts.Time = float64(i) / float64(fps)
		frameOpts.Frame = i
		frames = append(frames, e.RenderFrame(effect, frameOpts))

		if (i+1)%30 == 0 || i+1 == totalFrames {
			elapsed := time.Since(start).Seconds()
			rate := 0.0
			if elapsed > 0 {
				rate = float64(i+1) / elapsed
			}
			fmt.Printf("  %d/%d frames (%.1fs, %.1f fps)\n", i+1, totalFrames, elapsed, rate)
		}
	}

	return frames, nil
}

// bufferPool recycles internal-resolution buffers across frames of a
// video render.
type bufferPool struct {
	pool sync.Pool
	w, h int
}

func newBufferPool(w, h int) *bufferPool {
	return &bufferPool{
		w: w,
		h: h,
		pool: sync.Pool{
			New: func() any {
				return core.NewBuffer(w, h)
			},
		},
	}
}

func (p *bufferPool) get(w, h int) core.Buffer {
	if w != p.w || h != p.h {
		return core.NewBuffer(w, h)
	}
	buf := p.pool.Get().(core.Buffer)
	for y := range buf {
		for x := range buf[y] {
			buf[y][x] = core.Cell{}
		}
	}
	return buf
}

func (p *bufferPool) put(buf core.Buffer) {
	if buf.Width() == p.w && buf.Height() == p.h {
		p.pool.Put(buf)
	}
}
