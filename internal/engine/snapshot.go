package engine

import "math"

// Snapshot is an immutable copy of the simulation state between ticks.
type Snapshot struct {
	LevelID  string   `json:"level"`
	Tick     uint64   `json:"tick"`
	Player   Player   `json:"player"`
	CameraX  float64  `json:"camera_x"`
	Entities []Entity `json:"entities"`
}

// Snapshot returns a deep copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		LevelID:  s.level.ID,
		Tick:     s.tick,
		Player:   s.player,
		CameraX:  s.cameraX,
		Entities: s.Entities(),
	}
}

// Visible returns the entities that are still in play.
func (snap Snapshot) Visible() []Entity {
	out := make([]Entity, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		if !e.Collected {
			out = append(out, e)
		}
	}
	return out
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(f float64) {
		h = h*31 + math.Float64bits(f)
	}

	p := snap.Player
	mix(p.X)
	mix(p.Y)
	mix(p.VelocityX)
	mix(p.VelocityY)
	mix(snap.CameraX)
	if p.OnGround {
		h = h*31 + 1
	}

	for _, e := range snap.Entities {
		mix(e.X)
		mix(e.VelocityX)
		if e.Collected {
			h = h*31 + 1
		} else {
			h = h*31 + 2
		}
	}
	return h
}
