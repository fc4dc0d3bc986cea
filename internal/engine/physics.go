package engine

import (
	"fmt"
	"time"
)

// Physics holds the tunable constants of the simulation.
type Physics struct {
	Gravity          float64 // Added to VelocityY each airborne tick
	JumpForce        float64 // Initial VelocityY of a jump (negative = up)
	MoveSpeed        float64 // |VelocityX| while walking
	MaxFallSpeed     float64 // Ceiling on downward VelocityY
	StompTolerance   float64 // Player top must be this far above enemy top to stomp
	SupportTolerance float64 // Slack below a platform's bottom still counted as standing on it
	PlayerWidth      float64
	PlayerHeight     float64
}

// DefaultPhysics returns the stock tuning.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:          0.8,
		JumpForce:        -15,
		MoveSpeed:        5,
		MaxFallSpeed:     12,
		StompTolerance:   10,
		SupportTolerance: 5,
		PlayerWidth:      50,
		PlayerHeight:     50,
	}
}

// Viewport is the visible world area. Height doubles as the kill plane.
type Viewport struct {
	Width  float64
	Height float64
}

// DefaultViewport returns the reference viewport.
func DefaultViewport() Viewport {
	return Viewport{Width: 800, Height: 600}
}

// DefaultInterval is the fixed tick period (~60 ticks per second).
const DefaultInterval = 16 * time.Millisecond

func (p Physics) validate() error {
	if p.PlayerWidth <= 0 || p.PlayerHeight <= 0 {
		return fmt.Errorf("%w: player size %vx%v must be positive", ErrInvalidLevel, p.PlayerWidth, p.PlayerHeight)
	}
	if p.MaxFallSpeed <= 0 {
		return fmt.Errorf("%w: max fall speed %v must be positive", ErrInvalidLevel, p.MaxFallSpeed)
	}
	return nil
}

func (v Viewport) validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: viewport %vx%v must be positive", ErrInvalidLevel, v.Width, v.Height)
	}
	return nil
}
