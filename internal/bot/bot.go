// Package bot drives a simulation without a player at the keyboard. It is
// used by headless runs and demos.
package bot

import "github.com/vovakirdan/tui-platformer/internal/engine"

// Controller accepts movement intents. Both *engine.Simulation and
// *engine.Scheduler satisfy it.
type Controller interface {
	MoveLeft()
	MoveRight()
	StopMoving()
	Jump()
}

// Lookahead distances in world units.
const (
	wallLookahead  = 20
	enemyLookahead = 120
	gapLookahead   = 30
	supportSlack   = 5
)

// Decision is what the autopilot chose for one tick.
type Decision struct {
	Jump   bool
	Reason string
}

// Drive walks the player right and jumps over walls, enemies and gaps.
// It issues intents for the next tick and returns its decision.
func Drive(c Controller, snap engine.Snapshot) Decision {
	c.MoveRight()

	d := Decide(snap)
	if d.Jump {
		c.Jump()
	}
	return d
}

// Decide inspects the snapshot and reports whether the player should jump.
func Decide(snap engine.Snapshot) Decision {
	p := snap.Player
	if !p.OnGround {
		return Decision{}
	}

	right := p.X + p.Width
	top := p.Y
	bottom := p.Y + p.Height

	supported := false
	for _, e := range snap.Entities {
		if e.Collected {
			continue
		}
		switch e.Kind {
		case engine.KindPlatform:
			// Wall ahead overlapping the player's body
			if e.X >= right && e.X-right <= wallLookahead && e.Y < bottom && e.Y+e.Height > top {
				return Decision{Jump: true, Reason: "wall"}
			}
			// Floor beneath a point just past the player's leading edge
			ahead := right + gapLookahead
			if ahead > e.X && ahead < e.X+e.Width && e.Y >= bottom-supportSlack && e.Y <= bottom+supportSlack {
				supported = true
			}
		case engine.KindEnemy:
			if e.X+e.Width > p.X && e.X-right <= enemyLookahead && e.Y < bottom && e.Y+e.Height > top {
				return Decision{Jump: true, Reason: "enemy"}
			}
		}
	}

	if !supported {
		return Decision{Jump: true, Reason: "gap"}
	}
	return Decision{}
}
