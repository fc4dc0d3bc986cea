package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parsePlatformer(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if expected := DefaultPlatformerConfig(); !reflect.DeepEqual(cfg, expected) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, expected)
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 1.2\ngameplay:\n  lives: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() failed: %v", err)
	}
	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("Gravity = %v, expected 1.2", cfg.Physics.Gravity)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Gameplay.Lives)
	}
	// Unset keys keep defaults.
	if cfg.Physics.JumpForce != -15 {
		t.Errorf("JumpForce = %v, expected default -15", cfg.Physics.JumpForce)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("viewport:\n  height: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(invalid); err == nil {
		t.Error("zero viewport height should fail validation")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		lives     int
		tolerance float64
	}{
		{DifficultyEasy, 5, 5},
		{DifficultyNormal, 3, 10},
		{DifficultyHard, 1, 20},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tc.preset)
			if cfg.Gameplay.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Gameplay.Lives, tc.lives)
			}
			if cfg.Physics.StompTolerance != tc.tolerance {
				t.Errorf("StompTolerance = %v, expected %v", cfg.Physics.StompTolerance, tc.tolerance)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(\"hard\") = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should be rejected")
	}
}

func TestEngineConversion(t *testing.T) {
	cfg := DefaultPlatformerConfig()

	phys := cfg.EnginePhysics()
	if phys.Gravity != 0.8 || phys.PlayerWidth != 50 || phys.SupportTolerance != 5 {
		t.Errorf("EnginePhysics() = %+v", phys)
	}
	if vp := cfg.EngineViewport(); vp.Width != 800 || vp.Height != 600 {
		t.Errorf("EngineViewport() = %+v", vp)
	}
	if cfg.Interval() != 16*time.Millisecond {
		t.Errorf("Interval() = %v, expected 16ms", cfg.Interval())
	}

	cfg.Loop.IntervalMS = 0
	if cfg.Interval() <= 0 {
		t.Error("non-positive interval should fall back to the default")
	}
}
