package grammar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TextElement is one piece of ambient text scattered over the image.
// Position is relative (0-1), size is a scale factor, opacity 0-1.
type TextElement struct {
	Text    string  `yaml:"text"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Size    float64 `yaml:"size"`
	Opacity float64 `yaml:"opacity"`
}

// AnimSpec configures one sprite animation.
type AnimSpec struct {
	Type       string  `yaml:"type"`
	Amp        float64 `yaml:"amp,omitempty"`
	Speed      float64 `yaml:"speed"`
	Saturation float64 `yaml:"saturation,omitempty"`
}

// TransformSpec is one step of the domain transform chain wrapped
// around the scene's effect.
type TransformSpec struct {
	Type string             `yaml:"type"`
	Args map[string]float64 `yaml:"args,omitempty"`
}

// PostFXSpec is one buffer filter of the post-processing chain.
type PostFXSpec struct {
	Type string             `yaml:"type"`
	Args map[string]float64 `yaml:"args,omitempty"`
}

// MaskSpec configures the mask effect of a masked composition. Params
// are un-prefixed; the pipeline namespaces them for the render context.
type MaskSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Shape  string             `yaml:"shape,omitempty"`
}

// SceneSpec is a complete render specification, the expansion of one
// grammar derivation. It is plain data: the pipeline executes it, and
// it round-trips through YAML so scenes can be saved and replayed.
type SceneSpec struct {
	BgEffect string             `yaml:"bg_effect"`
	BgParams map[string]float64 `yaml:"bg_params,omitempty"`

	OverlayEffect string             `yaml:"overlay_effect,omitempty"`
	OverlayParams map[string]float64 `yaml:"overlay_params,omitempty"`
	OverlayBlend  string             `yaml:"overlay_blend"`
	OverlayMix    float64            `yaml:"overlay_mix"`

	CompositionMode string    `yaml:"composition_mode,omitempty"`
	Mask            *MaskSpec `yaml:"mask,omitempty"`

	Transforms []TransformSpec `yaml:"transforms,omitempty"`
	PostFX     []PostFXSpec    `yaml:"postfx,omitempty"`

	LayoutType  string `yaml:"layout_type"`
	LayoutCount int    `yaml:"layout_count"`

	KaomojiCount    int    `yaml:"kaomoji_count"`
	KaomojiMood     string `yaml:"kaomoji_mood"`
	KaomojiSizeMin  int    `yaml:"kaomoji_size_min"`
	KaomojiSizeMax  int    `yaml:"kaomoji_size_max"`
	HasCentral      bool   `yaml:"has_central_kaomoji"`
	CentralSize     int    `yaml:"central_size"`

	TextElements []TextElement `yaml:"text_elements,omitempty"`

	Animations []AnimSpec `yaml:"animations,omitempty"`
	FloatAmp   float64    `yaml:"float_amp"`
	BreathAmp  float64    `yaml:"breath_amp"`

	DecorationStyle string   `yaml:"decoration_style"`
	DecorationChars []string `yaml:"decoration_chars,omitempty"`

	Sharpen      bool    `yaml:"sharpen"`
	Contrast     float64 `yaml:"contrast"`
	GradientName string  `yaml:"gradient_name"`

	ParticleChars string `yaml:"particle_chars"`

	Warmth     float64 `yaml:"warmth"`
	Saturation float64 `yaml:"saturation"`
	Brightness float64 `yaml:"brightness"`
}

// DefaultSceneSpec mirrors the zero-derivation scene.
func DefaultSceneSpec() SceneSpec {
	return SceneSpec{
		BgEffect:        "plasma",
		OverlayBlend:    "ADD",
		OverlayMix:      0.3,
		LayoutType:      "random_scatter",
		LayoutCount:     6,
		KaomojiCount:    6,
		KaomojiMood:     "neutral",
		KaomojiSizeMin:  80,
		KaomojiSizeMax:  150,
		HasCentral:      true,
		CentralSize:     200,
		FloatAmp:        3.0,
		BreathAmp:       0.08,
		DecorationStyle: "corners",
		DecorationChars: []string{"+", "+", "+", "+"},
		Sharpen:         true,
		Contrast:        1.2,
		GradientName:    "classic",
		ParticleChars:   "01·",
		Warmth:          0.5,
		Saturation:      0.9,
		Brightness:      0.8,
	}
}

// Save writes the spec as YAML.
func (s *SceneSpec) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadSceneSpec reads a YAML scene back, starting from defaults so
// missing keys keep sane values.
func LoadSceneSpec(path string) (*SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	spec := DefaultSceneSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &spec, nil
}
