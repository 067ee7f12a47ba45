package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/bubblepop/internal/game"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "free" {
		t.Errorf("expected mode free, got %s", cfg.Mode)
	}
	if cfg.Board.Radius <= 0 {
		t.Error("radius should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	cfg := GetPreset("classic")
	cfg.Board.Colors[0] = "black"
	cfg.Board.Tries = 99

	again := GetPreset("classic")
	if again.Board.Colors[0] == "black" || again.Board.Tries == 99 {
		t.Error("preset table was mutated through a returned copy")
	}
}

func TestPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := Preset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestParseUsesModeDefaults(t *testing.T) {
	cfg, err := Parse([]byte("mode: grid\nboard:\n  filled_rows: 3\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Board.Rows != 12 || cfg.Board.Cols != 8 {
		t.Errorf("expected grid defaults, got %dx%d", cfg.Board.Rows, cfg.Board.Cols)
	}
	if cfg.Board.FilledRows != 3 {
		t.Errorf("expected filled_rows 3, got %d", cfg.Board.FilledRows)
	}

	r, err := cfg.Rules()
	if err != nil {
		t.Fatalf("rules failed: %v", err)
	}
	if r.Mode != game.ModeGrid {
		t.Errorf("expected grid rules, got %s", r.Mode)
	}
}

func TestParseRejectsUnknownMode(t *testing.T) {
	_, err := Parse([]byte("mode: hex\n"))
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, game.ErrUnknownMode) {
		t.Errorf("expected invalid config wrapping unknown mode, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no colours", func(c *Config) { c.Board.Colors = nil }},
		{"zero frames", func(c *Config) { c.MaxFrames = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative radius", func(c *Config) { c.Board.Radius = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	cfg := GetPreset("rainbow")
	cfg.Seed = 1234

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 1234 || !loaded.Cluster.Wildcard || loaded.Mode != "grid" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}
