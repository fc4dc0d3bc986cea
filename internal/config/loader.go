package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
//
// Keys missing from a file keep their default values.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePlatformer(data)
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("platformer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePlatformer(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "platformer.yaml")); err == nil {
		if cfg, err := parsePlatformer(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePlatformer(defaultPlatformerYAML)
	if err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parsePlatformer decodes data over the hardcoded defaults and validates the
// result.
func parsePlatformer(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player size %vx%v must be positive", c.Player.Width, c.Player.Height)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("viewport %vx%v must be positive", c.Viewport.Width, c.Viewport.Height)
	case c.Physics.MaxFallSpeed <= 0:
		return fmt.Errorf("max_fall_speed %v must be positive", c.Physics.MaxFallSpeed)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("lives %d must be positive", c.Gameplay.Lives)
	case c.Controls.HoldTicks < 0 || c.Controls.JumpBufferTicks < 0 || c.Gameplay.InvulnerableTicks < 0:
		return fmt.Errorf("tick counts must not be negative")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Physics.StompTolerance = 5
	case DifficultyHard:
		cfg.Gameplay.Lives = 1
		cfg.Physics.StompTolerance = 20
	}
}
