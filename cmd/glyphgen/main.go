package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/glyphgen/internal/config"
	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/effects"
	"github.com/san-kum/glyphgen/internal/emotion"
	"github.com/san-kum/glyphgen/internal/engine"
	"github.com/san-kum/glyphgen/internal/export"
	"github.com/san-kum/glyphgen/internal/grammar"
	"github.com/san-kum/glyphgen/internal/modulator"
	"github.com/san-kum/glyphgen/internal/pipeline"
	"github.com/san-kum/glyphgen/internal/storage"
	"github.com/san-kum/glyphgen/internal/tui"
	"github.com/san-kum/glyphgen/internal/viz"
)

var (
	emotionName string
	inputText   string
	seed        int64
	title       string
	outPath     string
	drift       float64
	configFile  string
	preset      string

	duration float64
	fps      int
	asMP4    bool

	variantCount int
	baseSeed     int64
	outDir       string

	gradient  string
	frameRate int
	driftAmp  float64
	paramName string

	effectName string
	schemeName string
	atTime     float64
	asBraille  bool
	svgOut     string
	runsDir    string
	noRecord   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glyphgen",
		Short: "procedural ascii pixel-art generator",
		Run: func(cmd *cobra.Command, args []string) {
			if err := tui.Run(seed); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano()%1000000, "random seed")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a single frame",
		RunE:  renderFrame,
	}
	renderCmd.Flags().StringVar(&emotionName, "emotion", "", "emotion name (joy, fear, bull, ...)")
	renderCmd.Flags().StringVar(&inputText, "text", "", "free text, emotion inferred")
	renderCmd.Flags().StringVar(&effectName, "effect", "", "force the background effect")
	renderCmd.Flags().StringVar(&title, "title", "", "title text drawn with glow")
	renderCmd.Flags().StringVar(&outPath, "out", "out.png", "output path")
	renderCmd.Flags().Float64Var(&drift, "drift", 0.2, "parameter drift amount")
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "preset as group/name, e.g. still/calm")

	videoCmd := &cobra.Command{
		Use:   "video",
		Short: "render an animation",
		RunE:  renderVideo,
	}
	videoCmd.Flags().StringVar(&emotionName, "emotion", "", "emotion name")
	videoCmd.Flags().StringVar(&inputText, "text", "", "free text, emotion inferred")
	videoCmd.Flags().StringVar(&effectName, "effect", "", "force the background effect")
	videoCmd.Flags().StringVar(&title, "title", "", "title text")
	videoCmd.Flags().StringVar(&outPath, "out", "out.gif", "output path")
	videoCmd.Flags().Float64Var(&duration, "time", 3.0, "duration in seconds")
	videoCmd.Flags().IntVar(&fps, "fps", 15, "frame rate")
	videoCmd.Flags().Float64Var(&drift, "drift", 0.2, "parameter drift amount")
	videoCmd.Flags().BoolVar(&asMP4, "mp4", false, "encode mp4 via ffmpeg, falls back to gif")
	videoCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	videoCmd.Flags().StringVar(&preset, "preset", "", "preset as group/name, e.g. video/loop")

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "render several takes on the same input",
		RunE:  renderVariants,
	}
	variantsCmd.Flags().StringVar(&emotionName, "emotion", "", "emotion name")
	variantsCmd.Flags().StringVar(&inputText, "text", "", "free text")
	variantsCmd.Flags().IntVar(&variantCount, "count", 5, "number of variants")
	variantsCmd.Flags().Int64Var(&baseSeed, "base-seed", 0, "first seed, others are consecutive")
	variantsCmd.Flags().StringVar(&outDir, "dir", "variants", "output directory")
	variantsCmd.Flags().Float64Var(&drift, "drift", 0.2, "parameter drift amount")

	sceneCmd := &cobra.Command{
		Use:   "scene [out.yaml]",
		Short: "expand an emotion into a scene spec and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  saveScene,
	}
	sceneCmd.Flags().StringVar(&emotionName, "emotion", "neutral", "emotion name")
	sceneCmd.Flags().StringVar(&inputText, "text", "", "free text")

	replayCmd := &cobra.Command{
		Use:   "replay [scene.yaml]",
		Short: "render a saved scene spec",
		Args:  cobra.ExactArgs(1),
		RunE:  replayScene,
	}
	replayCmd.Flags().StringVar(&outPath, "out", "out.png", "output path")
	replayCmd.Flags().StringVar(&title, "title", "", "title text")

	effectsCmd := &cobra.Command{
		Use:   "effects",
		Short: "list available effects",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range effects.Default.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	emotionsCmd := &cobra.Command{
		Use:   "emotions",
		Short: "list emotion anchors with their VAD coordinates",
		RunE:  listEmotions,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live [effect]",
		Short: "animate an effect in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	liveCmd.Flags().StringVar(&gradient, "gradient", "default", "glyph gradient")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	driftCmd := &cobra.Command{
		Use:   "drift",
		Short: "chart how a visual parameter drifts over time",
		RunE:  chartDrift,
	}
	driftCmd.Flags().StringVar(&emotionName, "emotion", "neutral", "emotion name")
	driftCmd.Flags().StringVar(&paramName, "param", "warmth", "parameter to chart")
	driftCmd.Flags().Float64Var(&driftAmp, "amount", 0.3, "drift amount")
	driftCmd.Flags().Float64Var(&duration, "time", 30.0, "seconds to chart")
	driftCmd.Flags().StringVar(&svgOut, "svg", "", "also write the chart as svg")

	svgCmd := &cobra.Command{
		Use:   "svg [effect]",
		Short: "export one effect frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&outPath, "out", "out.svg", "output path")
	svgCmd.Flags().StringVar(&gradient, "gradient", "classic", "glyph gradient")
	svgCmd.Flags().StringVar(&schemeName, "scheme", "heat", "color scheme for uncolored cells")
	svgCmd.Flags().Float64Var(&atTime, "at", 0, "time to sample the effect at")
	svgCmd.Flags().BoolVar(&asBraille, "braille", false, "braille dot cloud instead of glyphs")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded render runs",
		RunE:  listRuns,
	}
	runsCmd.Flags().StringVar(&runsDir, "dir", storage.DefaultDir(), "run history directory")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "interactive effect previewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(seed)
		},
	}

	for _, c := range []*cobra.Command{renderCmd, videoCmd, variantsCmd} {
		c.Flags().BoolVar(&noRecord, "no-record", false, "skip the run history entry")
	}

	rootCmd.AddCommand(renderCmd, videoCmd, variantsCmd, sceneCmd, replayCmd,
		effectsCmd, emotionsCmd, presetsCmd, liveCmd, driftCmd, svgCmd, runsCmd, previewCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyConfig folds preset and config file values into the pipeline,
// config file winning over preset, flags winning over both.
func applyConfig(cmd *cobra.Command, p *pipeline.Pipeline) error {
	var cfg *config.Config

	if preset != "" {
		group, name, ok := strings.Cut(preset, "/")
		if !ok {
			return fmt.Errorf("preset must be group/name, got %q", preset)
		}
		cfg = config.GetPreset(group, name)
		if cfg == nil {
			return fmt.Errorf("unknown preset %q (groups: still, video, draft)", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if cfg == nil {
		return nil
	}

	if emotionName == "" && inputText == "" {
		emotionName = cfg.Emotion
		inputText = cfg.Text
	}
	if cfg.Seed != 0 && !cmd.Flags().Changed("seed") && !cmd.InheritedFlags().Changed("seed") {
		seed = cfg.Seed
	}
	if !cmd.Flags().Changed("drift") {
		p.DriftAmount = cfg.Drift
	}
	if cfg.Duration > 0 && !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if cfg.FPS > 0 && !cmd.Flags().Changed("fps") {
		fps = cfg.FPS
	}
	if cfg.Output.Width > 0 {
		p.OutputWidth = cfg.Output.Width
		p.OutputHeight = cfg.Output.Height
	}
	if cfg.Output.InternalWidth > 0 {
		p.InternalWidth = cfg.Output.InternalWidth
		p.InternalHeight = cfg.Output.InternalHeight
	}
	return nil
}

func newRequest() pipeline.Request {
	s := seed
	return pipeline.Request{
		Text:    inputText,
		Emotion: emotionName,
		Effect:  effectName,
		Seed:    &s,
		Title:   title,
	}
}

func renderFrame(cmd *cobra.Command, args []string) error {
	p := pipeline.New(seed)
	p.DriftAmount = drift
	if err := applyConfig(cmd, p); err != nil {
		return err
	}

	start := time.Now()
	if err := p.GenerateToFile(newRequest(), outPath); err != nil {
		return err
	}
	fmt.Printf("rendered %s in %.2fs\n", outPath, time.Since(start).Seconds())
	recordRun(storage.RunMetadata{Kind: "still", Output: outPath})
	return nil
}

// recordRun appends an entry to the per-user run history. History is
// best effort: a failure warns but never fails the render.
func recordRun(meta storage.RunMetadata) {
	if noRecord {
		return
	}
	meta.Emotion = emotionName
	meta.Text = inputText
	meta.Seed = seed

	ev := emotion.FromName(emotionName)
	if inputText != "" {
		ev = emotion.FromText(inputText, emotion.Vector{})
	}
	meta.Params = ev.VisualParams()

	st := storage.New(runsDir)
	if runsDir == "" {
		st = storage.New(storage.DefaultDir())
	}
	if err := st.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not recorded: %v\n", err)
		return
	}
	if _, err := st.Save(meta); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run not recorded: %v\n", err)
	}
}

func renderVideo(cmd *cobra.Command, args []string) error {
	p := pipeline.New(seed)
	p.DriftAmount = drift
	if err := applyConfig(cmd, p); err != nil {
		return err
	}

	start := time.Now()
	frames, err := p.GenerateVideo(context.Background(), newRequest(), duration, fps)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if asMP4 {
		ok, err := engine.SaveMP4(frames, outPath, fps)
		if err != nil {
			return err
		}
		if !ok {
			gifPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".gif"
			fmt.Printf("ffmpeg not found, writing %s instead\n", gifPath)
			if err := engine.SaveGIF(frames, gifPath, fps); err != nil {
				return err
			}
			outPath = gifPath
		}
	} else {
		if err := engine.SaveGIF(frames, outPath, fps); err != nil {
			return err
		}
	}

	fmt.Printf("rendered %d frames to %s in %.2fs\n", len(frames), outPath, time.Since(start).Seconds())
	recordRun(storage.RunMetadata{
		Kind:     "video",
		Output:   outPath,
		Duration: duration,
		FPS:      fps,
		Frames:   len(frames),
	})
	return nil
}

func renderVariants(cmd *cobra.Command, args []string) error {
	p := pipeline.New(seed)
	p.DriftAmount = drift

	if baseSeed == 0 {
		baseSeed = seed
	}
	req := pipeline.Request{Text: inputText, Emotion: emotionName}

	start := time.Now()
	variants, err := p.GenerateVariants(req, variantCount, baseSeed)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for i, img := range variants {
		path := filepath.Join(outDir, fmt.Sprintf("variant_%03d.png", i))
		if err := engine.SavePNG(img, path); err != nil {
			return err
		}
	}
	fmt.Printf("rendered %d variants to %s in %.2fs\n", len(variants), outDir, time.Since(start).Seconds())
	recordRun(storage.RunMetadata{Kind: "variants", Output: outDir, Frames: len(variants)})
	return nil
}

func saveScene(cmd *cobra.Command, args []string) error {
	ev := emotion.FromName(emotionName)
	if inputText != "" {
		ev = emotion.FromText(inputText, emotion.Vector{})
	}
	vp := ev.VisualParams()

	spec := grammar.New(seed).Generate(grammar.Params{
		Energy:    vp["energy"],
		Warmth:    vp["warmth"],
		Structure: vp["structure"],
		Intensity: vp["intensity"],
		Valence:   vp["valence"],
		Arousal:   vp["arousal"],
	})
	if err := spec.Save(args[0]); err != nil {
		return err
	}
	fmt.Printf("scene saved to %s (bg=%s layout=%s)\n", args[0], spec.BgEffect, spec.LayoutType)
	return nil
}

func replayScene(cmd *cobra.Command, args []string) error {
	spec, err := grammar.LoadSceneSpec(args[0])
	if err != nil {
		return err
	}
	p := pipeline.New(seed)
	img, err := p.RenderScene(*spec, seed, title)
	if err != nil {
		return err
	}
	if err := engine.SavePNG(img, outPath); err != nil {
		return err
	}
	fmt.Printf("rendered %s from %s\n", outPath, args[0])
	return nil
}

func listEmotions(cmd *cobra.Command, args []string) error {
	names := make([]string, 0, len(emotion.Anchors))
	for name := range emotion.Anchors {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "name\tvalence\tarousal\tdominance")
	for _, name := range names {
		v := emotion.Anchors[name]
		fmt.Fprintf(w, "%s\t%+.2f\t%+.2f\t%+.2f\n", name, v.Valence, v.Arousal, v.Dominance)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	groups := make([]string, 0, len(config.Presets))
	for g := range config.Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	if len(args) == 1 {
		names := config.ListPresets(args[0])
		if names == nil {
			return fmt.Errorf("unknown group %q (available: %v)", args[0], groups)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("%s/%s\n", args[0], n)
		}
		return nil
	}

	for _, g := range groups {
		names := config.ListPresets(g)
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("%s/%s\n", g, n)
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	eff, err := effects.Default.Get(args[0])
	if err != nil {
		return fmt.Errorf("unknown effect %q (run 'glyphgen effects')", args[0])
	}

	eng := engine.New()
	renderer := tui.NewLiveRenderer(gradient, frameRate)
	renderer.Start()
	defer renderer.Stop()

	const gridW, gridH = 140, 80
	total := int(duration * float64(frameRate))
	step := time.Second / time.Duration(frameRate)

	for i := 0; i < total; i++ {
		t := float64(i) / float64(frameRate)
		ctx := core.NewContext(gridW, gridH, t, i, seed, nil)
		buf := eng.RenderBuffer(eff, ctx)
		renderer.OnFrame(buf, t, i, total)
		time.Sleep(step)
	}
	return nil
}

func chartDrift(cmd *cobra.Command, args []string) error {
	ev := emotion.FromName(emotionName)
	vp := ev.VisualParams()
	if _, ok := vp[paramName]; !ok {
		keys := make([]string, 0, len(vp))
		for k := range vp {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown parameter %q (available: %v)", paramName, keys)
	}

	series := make([]float64, 0, int(duration))
	for t := 0.0; t < duration; t += 0.5 {
		drifted := modulator.ModulateVisualParams(vp, t, driftAmp, seed)
		series = append(series, drifted[paramName])
	}

	fmt.Println(viz.DriftChart(paramName+" / "+emotionName, series, 70, 12))

	if svgOut != "" {
		svg := export.DriftToSVG(series, 700, 240, "")
		if err := os.WriteFile(svgOut, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", svgOut)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	eff, err := effects.Default.Get(args[0])
	if err != nil {
		return fmt.Errorf("unknown effect %q (run 'glyphgen effects')", args[0])
	}

	eng := engine.New()
	const gridW, gridH = 120, 68
	ctx := core.NewContext(gridW, gridH, atTime, 0, seed, nil)
	buf := eng.RenderBuffer(eff, ctx)

	var svg string
	if asBraille {
		canvas := viz.NewCanvas(gridW/2, gridH/4)
		canvas.DrawBuffer(buf, 0.4)
		svg = export.CanvasToSVG(canvas, 4, "")
	} else {
		svg = export.BufferToSVG(buf, gradient, schemeName, 10)
	}

	if err := os.WriteFile(outPath, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outPath)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "when\tkind\temotion\tseed\toutput")
	for _, run := range runs {
		label := run.Emotion
		if label == "" {
			label = run.Text
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			run.Timestamp.Format("2006-01-02 15:04"), run.Kind, label, run.Seed, run.Output)
	}
	return w.Flush()
}
