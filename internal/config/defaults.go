package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:          0.8,
			JumpForce:        -15,
			MoveSpeed:        5,
			MaxFallSpeed:     12,
			StompTolerance:   10,
			SupportTolerance: 5,
		},
		Player: PlayerConfig{
			Width:  50,
			Height: 50,
			SpawnX: 50,
			SpawnY: 300,
		},
		Viewport: ViewportConfig{
			Width:  800,
			Height: 600,
		},
		Loop: LoopConfig{
			IntervalMS: 16,
		},
		Controls: ControlsConfig{
			HoldTicks:       8,
			JumpBufferTicks: 4,
		},
		Gameplay: GameplayConfig{
			Lives:             3,
			CollectiblePoints: 100,
			PowerUpPoints:     200,
			StompPoints:       0,
			BarkPoints:        10,
			SpinPoints:        50,
			InvulnerableTicks: 60,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPlatformerYAML
}
