package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Emotion != "neutral" {
		t.Errorf("expected emotion neutral, got %s", cfg.Emotion)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Output.Width <= 0 || cfg.Output.InternalWidth <= 0 {
		t.Error("output sizes should be positive")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Emotion = "panic"
	cfg.FPS = 24
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Emotion != "panic" || loaded.FPS != 24 {
		t.Errorf("loaded config lost values: %+v", loaded)
	}
	if loaded.Render.Gradient != "default" {
		t.Errorf("defaults should survive the round trip, got %q", loaded.Render.Gradient)
	}
}

func TestLoad_NotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("still", "calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Emotion != "calm" {
		t.Errorf("expected emotion calm, got %s", cfg.Emotion)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("still", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "calm") != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("video")
	if len(presets) == 0 {
		t.Error("expected presets for video")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent group")
	}
}
