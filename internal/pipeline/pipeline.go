// Package pipeline orchestrates the full path from an emotional input
// to a rendered image: emotion vector, visual parameters, noise drift,
// grammar expansion, effect and sprite construction, rendering.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/san-kum/glyphgen/internal/compose"
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/effects"
	"github.com/san-kum/glyphgen/internal/emotion"
	"github.com/san-kum/glyphgen/internal/engine"
	"github.com/san-kum/glyphgen/internal/grammar"
	"github.com/san-kum/glyphgen/internal/mask"
	"github.com/san-kum/glyphgen/internal/modulator"
	"github.com/san-kum/glyphgen/internal/palette"
	"github.com/san-kum/glyphgen/internal/postfx"
	"github.com/san-kum/glyphgen/internal/sprite"
	"github.com/san-kum/glyphgen/internal/transform"
)

// Request selects the emotional input for one generation. Exactly one
// of Vector, Emotion or Text is used, in that order of precedence; an
// empty request renders the neutral vector.
type Request struct {
	Text    string
	Emotion string
	Vector  *emotion.Vector

	// Effect forces the background effect, bypassing the grammar's
	// choice. The rest of the scene is still derived as usual.
	Effect string

	// Seed overrides the per-call seed; nil draws one from the
	// pipeline stream so repeated calls vary.
	Seed  *int64
	Title string
}

// Pipeline wires the generative stages together.
type Pipeline struct {
	Seed        int64
	DriftAmount float64

	InternalWidth  int
	InternalHeight int
	OutputWidth    int
	OutputHeight   int

	rng        *rand.Rand
	colorSpace palette.ColorSpace
}

func New(seed int64) *Pipeline {
	return &Pipeline{
		Seed:           seed,
		DriftAmount:    0.2,
		InternalWidth:  160,
		InternalHeight: 160,
		OutputWidth:    1080,
		OutputHeight:   1080,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

func (p *Pipeline) resolveSeed(req Request) int64 {
	if req.Seed != nil {
		return *req.Seed
	}
	return p.rng.Int63n(1000000)
}

func resolveEmotion(req Request) emotion.Vector {
	switch {
	case req.Vector != nil:
		return *req.Vector
	case req.Emotion != "":
		return emotion.FromName(req.Emotion)
	case req.Text != "":
		return emotion.FromText(req.Text, emotion.Vector{})
	}
	return emotion.Vector{}
}

func paramOr(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

// expand runs the shared front half: emotion, drift, grammar.
func (p *Pipeline) expand(req Request, seed int64, driftT float64) (grammar.SceneSpec, map[string]float64) {
	ev := resolveEmotion(req)
	vp := ev.VisualParams()
	if p.DriftAmount > 0 {
		vp = modulator.ModulateVisualParams(vp, driftT, p.DriftAmount, seed)
	}

	spec := grammar.New(seed).Generate(grammar.Params{
		Energy:    paramOr(vp, "energy", 0.5),
		Warmth:    paramOr(vp, "warmth", 0.5),
		Structure: paramOr(vp, "structure", 0.5),
		Intensity: paramOr(vp, "intensity", 0.5),
		Valence:   paramOr(vp, "valence", 0),
		Arousal:   paramOr(vp, "arousal", 0),
	})

	if req.Effect != "" {
		spec.BgEffect = req.Effect
		spec.BgParams = nil
		spec.OverlayEffect = ""
		spec.CompositionMode = ""
		spec.Mask = nil
	}
	return spec, vp
}

// applyVariant folds a structural variant of the background effect
// into the scene's params. Grammar choices win over variant samples;
// any string params (shape type, color mode) are returned for the
// render context.
func applyVariant(spec *grammar.SceneSpec, seed int64) map[string]string {
	rng := rand.New(rand.NewSource(seed ^ 0x5EED))
	v, ok := effects.PickVariant(spec.BgEffect, rng)
	if !ok {
		return nil
	}
	sampled := v.SampleParams(rng)
	if len(sampled) > 0 && spec.BgParams == nil {
		spec.BgParams = make(map[string]float64, len(sampled))
	}
	for k, val := range sampled {
		if _, exists := spec.BgParams[k]; !exists {
			spec.BgParams[k] = val
		}
	}
	return v.StrParams
}

func (p *Pipeline) newEngine(spec grammar.SceneSpec) *engine.Engine {
	eng := engine.New()
	eng.InternalWidth = p.InternalWidth
	eng.InternalHeight = p.InternalHeight
	eng.OutputWidth = p.OutputWidth
	eng.OutputHeight = p.OutputHeight
	eng.GradientName = spec.GradientName
	eng.Sharpen = spec.Sharpen
	eng.Contrast = spec.Contrast
	return eng
}

func renderParams(spec grammar.SceneSpec, vp map[string]float64) map[string]float64 {
	params := make(map[string]float64, len(spec.BgParams)+2)
	for k, v := range spec.BgParams {
		params[k] = v
	}
	if spec.Mask != nil {
		for k, v := range spec.Mask.Params {
			params["mask_"+k] = v
		}
	}
	params["warmth"] = paramOr(vp, "warmth", 0.5)
	params["saturation"] = paramOr(vp, "saturation", 0.9)
	return params
}

// sceneStrs merges the variant string params with the mask shape.
func sceneStrs(spec grammar.SceneSpec, strs map[string]string) map[string]string {
	if spec.Mask != nil && spec.Mask.Shape != "" {
		if strs == nil {
			strs = make(map[string]string, 1)
		}
		strs["mask_sdf_shape"] = spec.Mask.Shape
	}
	return strs
}

// Generate renders a single frame for the request and returns the
// image; GenerateToFile handles the write.
func (p *Pipeline) Generate(req Request) (*image.RGBA, error) {
	seed := p.resolveSeed(req)
	spec, vp := p.expand(req, seed, 0)
	strs := applyVariant(&spec, seed)

	effect, err := p.buildEffect(spec, seed)
	if err != nil {
		return nil, err
	}
	sprites := p.buildSprites(spec, vp, seed, req.Title)

	eng := p.newEngine(spec)
	img := eng.RenderFrame(effect, engine.FrameOpts{
		Seed:    seed,
		Params:  renderParams(spec, vp),
		Strs:    sceneStrs(spec, strs),
		PostFX:  postFXChain(spec),
		Sprites: sprites,
		BgFill:  bgFill(spec, seed),
	})
	return img, nil
}

// GenerateToFile renders one frame and writes it as PNG.
func (p *Pipeline) GenerateToFile(req Request, path string) error {
	img, err := p.Generate(req)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return engine.SavePNG(img, path)
}

// GenerateVideo renders an animation. The scene is derived once so the
// composition holds, then visual parameters drift per frame at half
// the configured amount.
func (p *Pipeline) GenerateVideo(ctx context.Context, req Request, duration float64, fps int) ([]*image.RGBA, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	seed := p.resolveSeed(req)
	spec, vp := p.expand(req, seed, 0)
	strs := applyVariant(&spec, seed)

	effect, err := p.buildEffect(spec, seed)
	if err != nil {
		return nil, err
	}
	sprites := p.buildSprites(spec, vp, seed, req.Title)
	eng := p.newEngine(spec)
	base := renderParams(spec, vp)
	fill := bgFill(spec, seed)

	totalFrames := int(duration * float64(fps))
	if totalFrames < 1 {
		totalFrames = 1
	}
	frames := make([]*image.RGBA, 0, totalFrames)

	for i := 0; i < totalFrames; i++ {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		default:
		}
		t := float64(i) / float64(fps)

		params := base
		if p.DriftAmount > 0 {
			params = modulator.ModulateVisualParams(base, t, p.DriftAmount*0.5, seed)
		}

		frames = append(frames, eng.RenderFrame(effect, engine.FrameOpts{
			Time:    t,
			Frame:   i,
			Seed:    seed,
			Params:  params,
			Strs:    sceneStrs(spec, strs),
			PostFX:  postFXChain(spec),
			Sprites: sprites,
			BgFill:  fill,
		}))
	}
	return frames, nil
}

// RenderScene replays a saved scene spec with the given seed, skipping
// the emotion and grammar stages.
func (p *Pipeline) RenderScene(spec grammar.SceneSpec, seed int64, title string) (*image.RGBA, error) {
	strs := applyVariant(&spec, seed)
	effect, err := p.buildEffect(spec, seed)
	if err != nil {
		return nil, err
	}
	vp := map[string]float64{
		"warmth":     spec.Warmth,
		"saturation": spec.Saturation,
	}
	sprites := p.buildSprites(spec, vp, seed, title)

	eng := p.newEngine(spec)
	return eng.RenderFrame(effect, engine.FrameOpts{
		Seed:    seed,
		Params:  renderParams(spec, vp),
		Strs:    sceneStrs(spec, strs),
		PostFX:  postFXChain(spec),
		Sprites: sprites,
		BgFill:  bgFill(spec, seed),
	}), nil
}

// GenerateVariants renders count takes on the same emotional input
// with consecutive seeds, one goroutine per variant.
func (p *Pipeline) GenerateVariants(req Request, count int, baseSeed int64) ([]*image.RGBA, error) {
	if count <= 0 {
		return nil, fmt.Errorf("variant count must be positive, got %d", count)
	}

	variants := make([]*image.RGBA, count)
	errs := make([]error, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seed := baseSeed + int64(i)
			r := req
			r.Seed = &seed
			variants[i], errs[i] = p.Generate(r)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return variants, nil
}

// buildEffect assembles the scene's effect: background, optional
// overlay composition (plain or masked), then the domain transform
// chain wrapped around the whole stack.
func (p *Pipeline) buildEffect(spec grammar.SceneSpec, seed int64) (core.Effect, error) {
	bg := createEffect(spec.BgEffect, spec.BgParams, seed)

	eff := bg
	if overlay := p.overlayEffect(spec, seed); overlay != nil {
		mode, err := compose.ParseBlendMode(spec.OverlayBlend)
		if err != nil {
			mode = compose.Add
		}

		var comp core.Effect
		if m := maskEffect(spec.Mask); m != nil {
			comp, err = compose.NewMaskedComposite(bg, overlay, m, mode)
		} else {
			comp, err = compose.NewComposite(bg, overlay, mode, spec.OverlayMix)
		}
		if err != nil {
			return nil, fmt.Errorf("compose %s over %s: %w", spec.OverlayEffect, spec.BgEffect, err)
		}
		eff = comp
	}

	return wrapTransforms(eff, spec.Transforms), nil
}

func (p *Pipeline) overlayEffect(spec grammar.SceneSpec, seed int64) core.Effect {
	if spec.OverlayEffect == "" {
		return nil
	}
	if spec.OverlayEffect == "cppn" {
		return effects.NewCPPNWith(effects.CPPNConfig{
			Seed:      seed + 1000,
			NumHidden: int(paramOr(spec.OverlayParams, "num_hidden", 2)),
			LayerSize: int(paramOr(spec.OverlayParams, "layer_size", 6)),
		})
	}
	if eff, err := effects.Default.Get(spec.OverlayEffect); err == nil {
		return eff
	}
	return nil
}

// maskEffect instantiates the scene's mask; its parameters travel
// through the render params under the "mask_" prefix.
func maskEffect(m *grammar.MaskSpec) core.Effect {
	if m == nil {
		return nil
	}
	ctor, ok := mask.Registry[m.Type]
	if !ok {
		return nil
	}
	return ctor()
}

// wrapTransforms folds the scene's transform chain around an effect.
func wrapTransforms(eff core.Effect, specs []grammar.TransformSpec) core.Effect {
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

// postFXChain converts the scene's filter chain for the engine.
func postFXChain(spec grammar.SceneSpec) []postfx.Spec {
	if len(spec.PostFX) == 0 {
		return nil
	}
	chain := make([]postfx.Spec, 0, len(spec.PostFX))
	for _, fx := range spec.PostFX {
		chain = append(chain, postfx.Spec{Type: fx.Type, Args: postfx.Args(fx.Args)})
	}
	return chain
}

func createEffect(name string, params map[string]float64, seed int64) core.Effect {
	if name == "cppn" {
		return effects.NewCPPNWith(effects.CPPNConfig{
			Seed:      int64(paramOr(params, "seed", float64(seed))),
			NumHidden: int(paramOr(params, "num_hidden", 3)),
			LayerSize: int(paramOr(params, "layer_size", 8)),
			UseRadial: paramOr(params, "use_radial", 1) != 0,
			UseTime:   paramOr(params, "use_time", 1) != 0,
		})
	}
	if eff, err := effects.Default.Get(name); err == nil {
		return eff
	}
	eff, _ := effects.Default.Get("plasma")
	return eff
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// moodOptions maps continuous valence to a band of kaomoji moods.
func moodOptions(valence float64) []string {
	switch {
	case valence > 0.5:
		return []string{"bull", "happy", "excitement", "euphoria", "love"}
	case valence > 0.1:
		return []string{"bull", "happy", "relaxed", "excitement"}
	case valence > -0.1:
		return []string{"neutral", "thinking", "bored", "confused"}
	case valence > -0.5:
		return []string{"bear", "sad", "anxiety", "thinking"}
	default:
		return []string{"bear", "sad", "panic", "fear", "lonely"}
	}
}

type position struct {
	x, y float64
	size int
}

func (p *Pipeline) layoutPositions(layoutType string, count int, rng *rand.Rand) []position {
	w, h := float64(p.OutputWidth), float64(p.OutputHeight)
	fromPoints := func(pts []sprite.Point) []position {
		out := make([]position, len(pts))
		for i, pt := range pts {
			out[i] = position{x: pt.X, y: pt.Y}
		}
		return out
	}

	switch layoutType {
	case "grid_jitter":
		return fromPoints(sprite.GridWithJitter(w, h, count, rng, 30))
	case "spiral":
		return fromPoints(sprite.SpiralLayout(w, h, count, 0))
	case "force_directed":
		return fromPoints(sprite.ForceDirectedLayout(w, h, count, rng, 30))
	case "preset":
		preset := sprite.LayoutPresets[rng.Intn(len(sprite.LayoutPresets))]
		n := count
		if n > len(preset.Positions) {
			n = len(preset.Positions)
		}
		out := make([]position, n)
		for i := 0; i < n; i++ {
			pos := preset.Positions[i]
			out[i] = position{x: pos.X, y: pos.Y, size: pos.Size}
		}
		return out
	default: // random_scatter and anything unknown
		return fromPoints(sprite.RandomScatter(w, h, count, rng))
	}
}

// bgFill derives the background fill pass from the scene. The fill
// effect is drawn from the lightweight pool and never repeats the
// scene's own background, so the two layers stay visually distinct.
func bgFill(spec grammar.SceneSpec, seed int64) *engine.BgSpec {
	var pool []string
	for _, name := range engine.BgFillEffectPool() {
		if name != spec.BgEffect {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed ^ 0xB611))

	return &engine.BgSpec{
		Effect:     pool[rng.Intn(len(pool))],
		ColorMode:  "continuous",
		Warmth:     spec.Warmth,
		Saturation: spec.Saturation,
		Dim:        0.2 + 0.15*spec.Brightness,
	}
}

// spriteAnims instantiates the scene's animation specs for one
// sprite, jittering each speed so sprites stay out of phase. Scenes
// without an animation list get the default float+breath pair.
func spriteAnims(spec grammar.SceneSpec, rng *rand.Rand, phase float64) []sprite.Anim {
	if len(spec.Animations) == 0 {
		return []sprite.Anim{
			{Type: "floating", Amp: spec.FloatAmp, Speed: 0.5 + rng.Float64()*1.5, Phase: phase},
			{Type: "breathing", Amp: spec.BreathAmp, Speed: 1.0 + rng.Float64()*2.0},
		}
	}

	anims := make([]sprite.Anim, 0, len(spec.Animations))
	for _, a := range spec.Animations {
		anims = append(anims, sprite.Anim{
			Type:       a.Type,
			Amp:        a.Amp,
			Speed:      a.Speed * (0.75 + rng.Float64()*0.5),
			Saturation: a.Saturation,
			Phase:      phase,
		})
	}
	return anims
}

func (p *Pipeline) buildSprites(spec grammar.SceneSpec, vp map[string]float64, seed int64, title string) []engine.Sprite {
	rng := rand.New(rand.NewSource(seed))
	scheme := p.colorSpace.Generate(spec.Warmth, spec.Saturation, spec.Brightness, 0.7)

	var sprites []engine.Sprite
	w, h := p.OutputWidth, p.OutputHeight

	positions := p.layoutPositions(spec.LayoutType, spec.LayoutCount, rng)
	moods := moodOptions(paramOr(vp, "valence", 0))

	n := spec.KaomojiCount
	if n > len(positions) {
		n = len(positions)
	}
	for i := 0; i < n; i++ {
		pos := positions[i]
		size := pos.size
		if size == 0 {
			size = spec.KaomojiSizeMin + rng.Intn(spec.KaomojiSizeMax-spec.KaomojiSizeMin+1)
		}
		mood := moods[rng.Intn(len(moods))]

		k := sprite.NewKaomojiSprite(sprite.KaomojiForMood(mood), pos.x, pos.y, max(1, size/100), scheme.Primary)
		k.OutlineColor = &scheme.Outline
		k.Anims = spriteAnims(spec, rng, float64(i)*0.5)
		sprites = append(sprites, k)
	}

	if spec.HasCentral {
		// The central face carries the scene's chosen mood; the
		// scattered faces vary within the valence band.
		mood := spec.KaomojiMood
		if mood == "" {
			mood = moods[rng.Intn(len(moods))]
		}
		k := sprite.NewKaomojiSprite(
			sprite.KaomojiForMood(mood),
			float64(w/2-spec.CentralSize/2),
			float64(h/2-spec.CentralSize/2),
			max(1, spec.CentralSize/80),
			scheme.Accent,
		)
		k.OutlineColor = &scheme.Outline
		k.Anims = []sprite.Anim{
			{Type: "breathing", Amp: spec.BreathAmp * 1.5, Speed: 1.5},
		}
		sprites = append(sprites, k)
	}

	for _, el := range spec.TextElements {
		size := int(el.Size)
		if size < 1 {
			size = 1
		}
		ts := sprite.NewTextSprite(el.Text, el.X*float64(w), el.Y*float64(h), size, scheme.Secondary)
		sprites = append(sprites, ts)
	}

	chars := spec.DecorationChars
	if spec.DecorationStyle == "scattered" && spec.ParticleChars != "" {
		chars = append(append([]string(nil), chars...), splitRunes(spec.ParticleChars)...)
	}
	decos, err := sprite.BuildDecorations(spec.DecorationStyle, sprite.DecoParams{
		Chars:  chars,
		Warmth: spec.Warmth,
		Color:  scheme.Dim,
		Width:  w,
		Height: h,
	}, rng)
	if err == nil {
		for _, d := range decos {
			sprites = append(sprites, d)
		}
	}

	if title != "" {
		ts := sprite.NewTextSprite(title, float64(w/2-len(title)*4), 30, 1, scheme.Primary)
		ts.WithGlow(scheme.Glow)
		ts.Anims = []sprite.Anim{{Type: "breathing", Amp: 0.03, Speed: 1.0}}
		sprites = append(sprites, ts)
	}

	return sprites
}
