package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration = 3.0
	DefaultFPS      = 15
	DefaultDrift    = 0.2
	DefaultWidth    = 1080
	DefaultHeight   = 1080
	DefaultInternal = 160
	DefaultContrast = 1.2
)

type Config struct {
	Emotion  string  `yaml:"emotion"`
	Text     string  `yaml:"text"`
	Seed     int64   `yaml:"seed"`
	Duration float64 `yaml:"duration"`
	FPS      int     `yaml:"fps"`
	Drift    float64 `yaml:"drift"`

	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
}

type OutputConfig struct {
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	InternalWidth  int    `yaml:"internal_width"`
	InternalHeight int    `yaml:"internal_height"`
	Dir            string `yaml:"dir"`
}

type RenderConfig struct {
	Gradient string  `yaml:"gradient"`
	Sharpen  bool    `yaml:"sharpen"`
	Contrast float64 `yaml:"contrast"`
	CharSize int     `yaml:"char_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Emotion:  "neutral",
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Drift:    DefaultDrift,
		Output: OutputConfig{
			Width:          DefaultWidth,
			Height:         DefaultHeight,
			InternalWidth:  DefaultInternal,
			InternalHeight: DefaultInternal,
			Dir:            "out",
		},
		Render: RenderConfig{
			Gradient: "default",
			Sharpen:  true,
			Contrast: DefaultContrast,
			CharSize: 1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
