// Package config provides YAML-based configuration loading and difficulty
// presets for the platformer.
package config

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Player   PlayerConfig   `yaml:"player"`
	Viewport ViewportConfig `yaml:"viewport"`
	Loop     LoopConfig     `yaml:"loop"`
	Controls ControlsConfig `yaml:"controls"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// PhysicsConfig defines the simulation tuning constants.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpForce        float64 `yaml:"jump_force"` // Negative = up
	MoveSpeed        float64 `yaml:"move_speed"`
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`
	StompTolerance   float64 `yaml:"stomp_tolerance"`
	SupportTolerance float64 `yaml:"support_tolerance"`
}

// PlayerConfig defines the player's box and the fallback spawn point used by
// levels that do not declare one.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
}

// ViewportConfig defines the visible world area in world units.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoopConfig defines the fixed-step timing.
type LoopConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

// ControlsConfig defines terminal input handling.
type ControlsConfig struct {
	// HoldTicks is how long one key press keeps the player walking.
	// Terminals report presses only, never releases.
	HoldTicks int `yaml:"hold_ticks"`
	// JumpBufferTicks is how long a jump press waits for ground contact.
	JumpBufferTicks int `yaml:"jump_buffer_ticks"`
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives             int `yaml:"lives"`
	CollectiblePoints int `yaml:"collectible_points"`
	PowerUpPoints     int `yaml:"powerup_points"`
	StompPoints       int `yaml:"stomp_points"`
	BarkPoints        int `yaml:"bark_points"`
	SpinPoints        int `yaml:"spin_points"`
	// InvulnerableTicks is the grace period after losing a life.
	InvulnerableTicks int `yaml:"invulnerable_ticks"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset returns the preset with the given name, or false if unknown.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}

// EnginePhysics converts the config into engine tuning.
func (c PlatformerConfig) EnginePhysics() engine.Physics {
	return engine.Physics{
		Gravity:          c.Physics.Gravity,
		JumpForce:        c.Physics.JumpForce,
		MoveSpeed:        c.Physics.MoveSpeed,
		MaxFallSpeed:     c.Physics.MaxFallSpeed,
		StompTolerance:   c.Physics.StompTolerance,
		SupportTolerance: c.Physics.SupportTolerance,
		PlayerWidth:      c.Player.Width,
		PlayerHeight:     c.Player.Height,
	}
}

// EngineViewport converts the config into an engine viewport.
func (c PlatformerConfig) EngineViewport() engine.Viewport {
	return engine.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// Interval returns the tick period. Non-positive values select the engine
// default.
func (c PlatformerConfig) Interval() time.Duration {
	if c.Loop.IntervalMS <= 0 {
		return engine.DefaultInterval
	}
	return time.Duration(c.Loop.IntervalMS) * time.Millisecond
}
