package config

// Presets are ready-made render setups grouped by use case.
var Presets = map[string]map[string]*Config{
	"still": {
		"calm": {
			Emotion: "calm", Drift: 0.1,
			Output: OutputConfig{Width: 1080, Height: 1080, InternalWidth: 160, InternalHeight: 160},
			Render: RenderConfig{Gradient: "smooth", Sharpen: false, Contrast: 1.1, CharSize: 1},
		},
		"intense": {
			Emotion: "anger", Drift: 0.4,
			Output: OutputConfig{Width: 1080, Height: 1080, InternalWidth: 160, InternalHeight: 160},
			Render: RenderConfig{Gradient: "glitch", Sharpen: true, Contrast: 1.4, CharSize: 1},
		},
		"dreamy": {
			Emotion: "serenity", Drift: 0.25,
			Output: OutputConfig{Width: 1080, Height: 1080, InternalWidth: 160, InternalHeight: 160},
			Render: RenderConfig{Gradient: "organic", Sharpen: false, Contrast: 1.0, CharSize: 1},
		},
	},
	"video": {
		"loop": {
			Emotion: "joy", Duration: 3.0, FPS: 15, Drift: 0.2,
			Output: OutputConfig{Width: 1080, Height: 1080, InternalWidth: 160, InternalHeight: 160},
			Render: RenderConfig{Gradient: "default", Sharpen: true, Contrast: 1.2, CharSize: 1},
		},
		"slow": {
			Emotion: "melancholy", Duration: 6.0, FPS: 10, Drift: 0.15,
			Output: OutputConfig{Width: 1080, Height: 1080, InternalWidth: 160, InternalHeight: 160},
			Render: RenderConfig{Gradient: "matrix", Sharpen: true, Contrast: 1.15, CharSize: 1},
		},
		"frantic": {
			Emotion: "panic", Duration: 2.0, FPS: 24, Drift: 0.5,
			Output: OutputConfig{Width: 1080, Height: 1080, InternalWidth: 160, InternalHeight: 160},
			Render: RenderConfig{Gradient: "tech", Sharpen: true, Contrast: 1.5, CharSize: 1},
		},
	},
	"draft": {
		"quick": {
			Emotion: "neutral", Drift: 0.2,
			Output: OutputConfig{Width: 256, Height: 256, InternalWidth: 64, InternalHeight: 64},
			Render: RenderConfig{Gradient: "default", Sharpen: false, Contrast: 1.2, CharSize: 1},
		},
		"preview": {
			Emotion: "neutral", Duration: 1.0, FPS: 8, Drift: 0.2,
			Output: OutputConfig{Width: 256, Height: 256, InternalWidth: 64, InternalHeight: 64},
			Render: RenderConfig{Gradient: "default", Sharpen: false, Contrast: 1.2, CharSize: 1},
		},
	},
}

func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	return names
}
