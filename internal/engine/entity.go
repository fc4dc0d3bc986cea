// Package engine implements the fixed-step platformer simulation: player
// kinematics, platform collision, enemy patrols, pickups and enemy contact.
// It has no I/O and no timing of its own besides the optional Scheduler.
package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Kind tags the variant of a level entity.
type Kind int

const (
	KindPlatform    Kind = iota // Static solid block
	KindEnemy                   // Patrolling enemy, stompable
	KindCollectible             // Score pickup (bones)
	KindPowerUp                 // Power-up pickup
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindEnemy:
		return "enemy"
	case KindCollectible:
		return "collectible"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// ParseKind converts a wire name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "platform":
		return KindPlatform, true
	case "enemy":
		return KindEnemy, true
	case "collectible":
		return KindCollectible, true
	case "powerup", "power-up":
		return KindPowerUp, true
	default:
		return 0, false
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k < KindPlatform || k > KindPowerUp {
		return nil, fmt.Errorf("engine: unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("engine: unknown kind %q", string(text))
	}
	*k = parsed
	return nil
}

// Entity is a single level object. Only enemies move; only enemies,
// collectibles and power-ups can become Collected.
type Entity struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
	Sprite string  `json:"sprite,omitempty"`

	VelocityX float64 `json:"vx,omitempty"`
	Direction int     `json:"dir,omitempty"`
	Collected bool    `json:"collected,omitempty"`
}

// Rect returns the entity's bounding box.
func (e Entity) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.Width, e.Height)
}

// IsPickup reports whether the entity is a collectible or power-up.
func (e Entity) IsPickup() bool {
	return e.Kind == KindCollectible || e.Kind == KindPowerUp
}

// Player is the avatar state. It is not part of the entity collection.
type Player struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	VelocityX float64 `json:"vx"`
	VelocityY float64 `json:"vy"`
	OnGround  bool    `json:"on_ground"`
	Direction int     `json:"dir"`
}

// Rect returns the player's bounding box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}
