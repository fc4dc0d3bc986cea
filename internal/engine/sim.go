package engine

import "fmt"

type moveIntent int

const (
	moveNone moveIntent = iota
	moveLeft
	moveRight
	moveStop
)

// Simulation owns the mutable state of one level: the player, the entity
// collection and the camera. It is not safe for concurrent use; Scheduler
// adds the locking needed to drive it from a timer.
type Simulation struct {
	level    Level // pristine copy used by Reset
	phys     Physics
	viewport Viewport

	player   Player
	entities []Entity
	cameraX  float64
	tick     uint64

	// Indices into entities, by kind, in level order.
	platforms []int
	enemies   []int
	pickups   []int

	pendingMove moveIntent
	pendingJump bool
}

// New validates the level and tuning and builds a simulation at its initial
// state.
func New(level Level, phys Physics, viewport Viewport) (*Simulation, error) {
	if err := phys.validate(); err != nil {
		return nil, err
	}
	if err := viewport.validate(); err != nil {
		return nil, err
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", level.ID, err)
	}

	s := &Simulation{
		level:    level.normalized(),
		phys:     phys,
		viewport: viewport,
	}
	s.entities = make([]Entity, len(s.level.Entities))
	copy(s.entities, s.level.Entities)

	for i, e := range s.entities {
		switch {
		case e.Kind == KindPlatform:
			s.platforms = append(s.platforms, i)
		case e.Kind == KindEnemy:
			s.enemies = append(s.enemies, i)
		case e.IsPickup():
			s.pickups = append(s.pickups, i)
		}
	}

	s.player = s.initialPlayer()
	return s, nil
}

func (s *Simulation) initialPlayer() Player {
	return Player{
		X:         s.level.SpawnX,
		Y:         s.level.SpawnY,
		Width:     s.phys.PlayerWidth,
		Height:    s.phys.PlayerHeight,
		Direction: 1,
	}
}

// MoveLeft requests walking left from the next tick on.
func (s *Simulation) MoveLeft() { s.pendingMove = moveLeft }

// MoveRight requests walking right from the next tick on.
func (s *Simulation) MoveRight() { s.pendingMove = moveRight }

// StopMoving requests zero horizontal speed from the next tick on.
func (s *Simulation) StopMoving() { s.pendingMove = moveStop }

// Jump requests a jump at the start of the next tick. It is dropped if the
// player is not on the ground by then.
func (s *Simulation) Jump() { s.pendingJump = true }

func (s *Simulation) applyIntents() {
	p := &s.player
	switch s.pendingMove {
	case moveLeft:
		p.VelocityX = -s.phys.MoveSpeed
		p.Direction = -1
	case moveRight:
		p.VelocityX = s.phys.MoveSpeed
		p.Direction = 1
	case moveStop:
		p.VelocityX = 0
	}
	if s.pendingJump && p.OnGround {
		p.VelocityY = s.phys.JumpForce
		p.OnGround = false
	}
	s.pendingMove = moveNone
	s.pendingJump = false
}

// Tick runs one full pipeline step and returns the events it produced, in
// order. The returned slice is owned by the caller.
func (s *Simulation) Tick() []Event {
	s.applyIntents()
	s.stepPlayer()
	s.stepEnemies()

	var events []Event
	events = s.resolvePickups(events)
	events = s.resolveEnemyContacts(events)

	s.cameraX = CameraX(s.player.X, s.viewport.Width)
	s.tick++
	return events
}

// Reset restores the player to its initial record, zeroes the camera and
// clears every Collected flag. Enemy positions are left where they are.
func (s *Simulation) Reset() {
	s.player = s.initialPlayer()
	s.cameraX = 0
	s.tick = 0
	s.pendingMove = moveNone
	s.pendingJump = false
	for i := range s.entities {
		s.entities[i].Collected = false
	}
}

// Respawn moves the player back to the spawn point with no velocity,
// keeping the rest of the level as is. Callers use it to end a life.
func (s *Simulation) Respawn() {
	s.respawn()
	s.player.OnGround = false
	s.cameraX = CameraX(s.player.X, s.viewport.Width)
}

// Player returns a copy of the player state.
func (s *Simulation) Player() Player { return s.player }

// CameraX returns the current scroll offset.
func (s *Simulation) CameraX() float64 { return s.cameraX }

// TickCount returns how many ticks ran since construction or the last Reset.
func (s *Simulation) TickCount() uint64 { return s.tick }

// Level returns the level definition the simulation was built from.
func (s *Simulation) Level() Level {
	lvl := s.level
	lvl.Entities = make([]Entity, len(s.level.Entities))
	copy(lvl.Entities, s.level.Entities)
	return lvl
}

// Physics returns the tuning in use.
func (s *Simulation) Physics() Physics { return s.phys }

// Viewport returns the viewport in use.
func (s *Simulation) Viewport() Viewport { return s.viewport }

// Entities returns a copy of the entity collection.
func (s *Simulation) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}
