package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrInvalidLevel is wrapped by every level or tuning validation failure.
var ErrInvalidLevel = errors.New("engine: invalid level")

// Level is an immutable level definition injected into a Simulation.
type Level struct {
	ID       string
	Name     string
	SpawnX   float64
	SpawnY   float64
	Entities []Entity
}

// Validate checks the level for degenerate geometry and inconsistent data.
func (l Level) Validate() error {
	if math.IsNaN(l.SpawnX) || math.IsInf(l.SpawnX, 0) || math.IsNaN(l.SpawnY) || math.IsInf(l.SpawnY, 0) {
		return fmt.Errorf("%w: spawn (%v, %v) is not finite", ErrInvalidLevel, l.SpawnX, l.SpawnY)
	}

	seen := make(map[string]struct{}, len(l.Entities))
	for i, e := range l.Entities {
		if e.ID == "" {
			return fmt.Errorf("%w: entity #%d has no id", ErrInvalidLevel, i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate entity id %q", ErrInvalidLevel, e.ID)
		}
		seen[e.ID] = struct{}{}

		if e.Kind < KindPlatform || e.Kind > KindPowerUp {
			return fmt.Errorf("%w: entity %q has unknown kind %d", ErrInvalidLevel, e.ID, int(e.Kind))
		}
		if !e.Rect().Valid() {
			return fmt.Errorf("%w: entity %q has degenerate geometry %vx%v at (%v, %v)",
				ErrInvalidLevel, e.ID, e.Width, e.Height, e.X, e.Y)
		}
		if math.IsNaN(e.VelocityX) || math.IsInf(e.VelocityX, 0) {
			return fmt.Errorf("%w: entity %q has non-finite velocity", ErrInvalidLevel, e.ID)
		}

		switch e.Kind {
		case KindPlatform:
			if e.VelocityX != 0 || e.Collected {
				return fmt.Errorf("%w: platform %q must be static", ErrInvalidLevel, e.ID)
			}
		case KindEnemy:
			if e.VelocityX != 0 && e.Direction != 0 && e.Direction != core.Sign(e.VelocityX) {
				return fmt.Errorf("%w: enemy %q direction %d does not match velocity %v",
					ErrInvalidLevel, e.ID, e.Direction, e.VelocityX)
			}
		default:
			if e.VelocityX != 0 {
				return fmt.Errorf("%w: %s %q cannot move", ErrInvalidLevel, e.Kind, e.ID)
			}
		}
	}
	return nil
}

// normalized returns a deep copy with enemy directions filled in
// and every Collected flag cleared.
func (l Level) normalized() Level {
	out := l
	out.Entities = make([]Entity, len(l.Entities))
	copy(out.Entities, l.Entities)
	for i := range out.Entities {
		e := &out.Entities[i]
		e.Collected = false
		if e.Kind == KindEnemy && e.Direction == 0 {
			e.Direction = core.Sign(e.VelocityX)
			if e.Direction == 0 {
				e.Direction = 1
			}
		}
	}
	return out
}
