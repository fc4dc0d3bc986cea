package pup

import "strings"

// PowerUp is an item held in the player's inventory.
type PowerUp int

const (
	PowerJump     PowerUp = iota // Default for unrecognized sprites
	PowerFireball                // 🔥
	PowerSpin                    // 🌪️, all spent by one spin attack
)

// String returns the power-up name.
func (p PowerUp) String() string {
	switch p {
	case PowerFireball:
		return "fireball"
	case PowerSpin:
		return "spin"
	default:
		return "jump"
	}
}

// Glyph returns the HUD symbol for the power-up.
func (p PowerUp) Glyph() rune {
	switch p {
	case PowerFireball:
		return 'F'
	case PowerSpin:
		return 'T'
	default:
		return 'J'
	}
}

// PowerUpFromSprite classifies a power-up pickup by its sprite.
func PowerUpFromSprite(sprite string) PowerUp {
	switch strings.TrimSuffix(sprite, "\ufe0f") {
	case "🔥":
		return PowerFireball
	case "🌪":
		return PowerSpin
	default:
		return PowerJump
	}
}

// inventory holds collected power-ups in pickup order.
type inventory []PowerUp

func (inv inventory) has(p PowerUp) bool {
	for _, held := range inv {
		if held == p {
			return true
		}
	}
	return false
}

// takeAll removes every power-up of the given type and returns how many
// were held.
func (inv *inventory) takeAll(p PowerUp) int {
	kept := (*inv)[:0]
	taken := 0
	for _, held := range *inv {
		if held == p {
			taken++
			continue
		}
		kept = append(kept, held)
	}
	*inv = kept
	return taken
}
