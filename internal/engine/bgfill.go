package engine

import (
	"math/rand"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/effects"
	"github.com/san-kum/glyphgen/internal/mask"
	"github.com/san-kum/glyphgen/internal/mathx"
	"github.com/san-kum/glyphgen/internal/palette"
	"github.com/san-kum/glyphgen/internal/postfx"
	"github.com/san-kum/glyphgen/internal/transform"
)

// TransformSpec names one coordinate transform with static arguments.
type TransformSpec struct {
	Type string
	Args map[string]float64
}

// MaskSpec names a mask effect plus its parameters; the keys are
// injected into the mask context prefixed with "mask_".
type MaskSpec struct {
	Type   string
	Params map[string]float64
	Shape  string
}

// BgSpec configures the background fill pass.
type BgSpec struct {
	Effect       string
	EffectParams map[string]float64
	Transforms   []TransformSpec
	PostFX       []postfx.Spec
	Mask         *MaskSpec
	ColorMode    string
	ColorScheme  string
	Warmth       float64
	Saturation   float64
	Dim          float64
	Time         float64
}

// lightweight effects are pure per-pixel math; the fill pool excludes
// the simulation effects whose Pre runs a whole sim step.
var bgHeavyEffects = map[string]bool{
	"game_of_life": true,
	"sand_game":    true,
	"slime_dish":   true,
	"dyna":         true,
}

// BgFillEffectPool lists effect names the grammar may pick for
// background fills.
func BgFillEffectPool() []string {
	var pool []string
	for _, name := range effects.Default.List() {
		if !bgHeavyEffects[name] {
			pool = append(pool, name)
		}
	}
	return pool
}

// BgFill runs a second effect on a temporary buffer, reads its char
// indices as intensity, tints and dims them, and writes the result
// into the background of every main-buffer cell that has none. The
// fill seed is derived from the frame seed so foreground and
// background stay decorrelated but reproducible.
func BgFill(buffer core.Buffer, w, h int, seed int64, spec *BgSpec) {
	if spec == nil {
		return
	}

	effectName := spec.Effect
	if effectName == "" {
		effectName = "noise_field"
	}

	bgEffect := bgCreateEffect(effectName, seed)
	if bgEffect == nil {
		return
	}
	if len(spec.Transforms) > 0 {
		bgEffect = bgWrapTransforms(bgEffect, spec.Transforms)
	}

	bgSeed := seed ^ 0xBF11
	ctx := core.NewContext(w, h, spec.Time, 0, bgSeed, spec.EffectParams)

	tmp := core.NewBuffer(w, h)
	state := bgEffect.Pre(ctx, tmp)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cell := bgEffect.Main(x, y, ctx, state); cell != nil {
				tmp[y][x] = *cell
			}
		}
	}
	bgEffect.Post(ctx, tmp, state)

	if len(spec.PostFX) > 0 {
		postfx.Apply(tmp, spec.PostFX, spec.Time)
	}

	var maskBuf core.Buffer
	if spec.Mask != nil {
		maskBuf = bgGenerateMask(spec.Mask, w, h, ctx)
	}

	dim := spec.Dim
	if dim == 0 {
		dim = 0.30
	}
	saturation := spec.Saturation
	if saturation == 0 {
		saturation = 0.9
	}
	colorScheme := spec.ColorScheme
	if colorScheme == "" {
		colorScheme = "heat"
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := &buffer[y][x]
			if cell.Bg != nil {
				continue
			}

			value := mathx.Clamp01(float64(tmp[y][x].CharIdx) / 9.0)
			if maskBuf != nil {
				maskVal := float64(maskBuf[y][x].CharIdx) / 9.0
				value *= 0.3 + 0.7*maskVal
			}

			var rgb core.RGB
			if spec.ColorMode == "continuous" {
				rgb = palette.ValueToColorContinuous(value, spec.Warmth, saturation)
			} else {
				rgb = palette.ValueToColor(value, colorScheme)
			}

			r := int(float64(rgb.R) * dim)
			g := int(float64(rgb.G) * dim)
			b := int(float64(rgb.B) * dim)

			// Pull the fill slightly toward the foreground tone.
			r = int(float64(r)*0.8 + float64(cell.Fg.R>>3)*0.2)
			g = int(float64(g)*0.8 + float64(cell.Fg.G>>3)*0.2)
			b = int(float64(b)*0.8 + float64(cell.Fg.B>>3)*0.2)

			// Keep the background off pure black.
			if r+g+b < 15 {
				r = max(r, 5)
				g = max(g, 5)
				b = max(b, 5)
			}

			cell.Bg = &core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
		}
	}
}

func bgCreateEffect(name string, seed int64) core.Effect {
	if name == "cppn" {
		return effects.NewCPPNWith(effects.CPPNConfig{
			Seed:      seed ^ 0xCE,
			NumHidden: 3,
			LayerSize: 8,
		})
	}
	if eff, err := effects.Default.Get(name); err == nil {
		return eff
	}
	eff, err := effects.Default.Get("noise_field")
	if err != nil {
		return nil
	}
	return eff
}

func bgWrapTransforms(eff core.Effect, specs []TransformSpec) core.Effect {
	var chain []transform.Step
	for _, ts := range specs {
		fn, ok := transform.Registry[ts.Type]
		if !ok {
			continue
		}
		args := make(map[string]transform.Value, len(ts.Args))
		for k, v := range ts.Args {
			args[k] = transform.Static(v)
		}
		chain = append(chain, transform.Step{Fn: fn, Args: args})
	}
	if len(chain) == 0 {
		return eff
	}
	return transform.Wrap(eff, chain)
}

func bgGenerateMask(spec *MaskSpec, w, h int, ctx *core.Context) core.Buffer {
	ctor, ok := mask.Registry[spec.Type]
	if !ok {
		return nil
	}

	params := make(map[string]float64, len(ctx.Params)+len(spec.Params))
	for k, v := range ctx.Params {
		params[k] = v
	}
	for k, v := range spec.Params {
		params["mask_"+k] = v
	}

	maskCtx := &core.Context{
		Width:     w,
		Height:    h,
		Time:      ctx.Time,
		Frame:     ctx.Frame,
		Seed:      ctx.Seed,
		Rng:       rand.New(rand.NewSource(ctx.Seed ^ 0xAA)),
		Params:    params,
		StrParams: map[string]string{},
	}
	if spec.Shape != "" {
		maskCtx.StrParams["mask_sdf_shape"] = spec.Shape
	}

	m := ctor()
	maskBuf := core.NewBuffer(w, h)
	state := m.Pre(maskCtx, maskBuf)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cell := m.Main(x, y, maskCtx, state); cell != nil {
				maskBuf[y][x] = *cell
			}
		}
	}
	m.Post(maskCtx, maskBuf, state)
	return maskBuf
}
