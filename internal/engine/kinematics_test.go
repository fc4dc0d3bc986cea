package engine

import (
	"errors"
	"testing"
)

func platform(id string, x, y, w, h float64) Entity {
	return Entity{ID: id, Kind: KindPlatform, X: x, Y: y, Width: w, Height: h}
}

func newTestSim(t *testing.T, entities ...Entity) *Simulation {
	t.Helper()
	level := Level{ID: "test", SpawnX: 50, SpawnY: 300, Entities: entities}
	sim, err := New(level, DefaultPhysics(), DefaultViewport())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return sim
}

func TestPlayerLandsOnGround(t *testing.T) {
	sim := newTestSim(t, platform("ground", 0, 400, 2000, 50))

	landedAt := 0
	for i := 1; i <= 60; i++ {
		sim.Tick()
		if sim.Player().OnGround {
			landedAt = i
			break
		}
	}

	if landedAt == 0 {
		t.Fatal("player never landed")
	}
	if landedAt != 11 {
		t.Errorf("landed on tick %d, expected 11", landedAt)
	}

	p := sim.Player()
	if p.Y != 350 {
		t.Errorf("player Y = %v, expected 350", p.Y)
	}
	if p.VelocityY != 0 {
		t.Errorf("player VelocityY = %v, expected 0", p.VelocityY)
	}

	// Resolution is exact: no positive overlap on the resolved axis.
	_, dy := p.Rect().Overlap(sim.Entities()[0].Rect())
	if dy > 0 {
		t.Errorf("player still overlaps ground by %v", dy)
	}
}

func TestGroundContactAlternates(t *testing.T) {
	sim := newTestSim(t, platform("ground", 0, 400, 2000, 50))
	for !sim.Player().OnGround {
		sim.Tick()
	}

	// Standing still, the player is touching but not overlapping, so the
	// next tick clears OnGround and the one after re-lands.
	sim.Tick()
	if sim.Player().OnGround {
		t.Error("OnGround should clear on the tick after landing")
	}
	sim.Tick()
	p := sim.Player()
	if !p.OnGround || p.Y != 350 {
		t.Errorf("expected re-landing at Y=350, got OnGround=%v Y=%v", p.OnGround, p.Y)
	}
}

func TestFallSpeedClamped(t *testing.T) {
	sim := newTestSim(t)
	for i := 0; i < 12; i++ {
		sim.Tick()
		if vy := sim.Player().VelocityY; vy > sim.Physics().MaxFallSpeed {
			t.Fatalf("tick %d: VelocityY = %v exceeds max fall speed", i, vy)
		}
	}
}

func TestCeilingHit(t *testing.T) {
	sim := newTestSim(t, platform("ceiling", 0, 280, 200, 20))
	sim.player.VelocityY = -10

	sim.Tick()

	p := sim.Player()
	if p.Y != 300 {
		t.Errorf("player Y = %v, expected 300 (underside of ceiling)", p.Y)
	}
	if p.VelocityY != 0 {
		t.Errorf("player VelocityY = %v, expected 0", p.VelocityY)
	}
}

func TestSideCollisions(t *testing.T) {
	tests := []struct {
		name      string
		startX    float64
		velocityX float64
		wall      Entity
		expectedX float64
	}{
		{
			name:      "moving right into wall",
			startX:    50,
			velocityX: 5,
			wall:      platform("wall", 100, 200, 50, 200),
			expectedX: 50,
		},
		{
			name:      "moving left into wall",
			startX:    52,
			velocityX: -5,
			wall:      platform("wall", 0, 200, 50, 200),
			expectedX: 50,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sim := newTestSim(t, tc.wall)
			sim.player.X = tc.startX
			sim.player.VelocityX = tc.velocityX

			sim.Tick()

			p := sim.Player()
			if p.X != tc.expectedX {
				t.Errorf("player X = %v, expected %v", p.X, tc.expectedX)
			}
			if p.VelocityX != 0 {
				t.Errorf("player VelocityX = %v, expected 0", p.VelocityX)
			}
		})
	}
}

func TestOverlappingPlatformsResolveInOrder(t *testing.T) {
	floor := platform("floor", 0, 400, 800, 50)
	wall := platform("wall", 300, 200, 50, 200)
	slab := platform("slab", 0, 380, 800, 30)

	tests := []struct {
		name      string
		entities  []Entity
		x, y      float64
		vx, vy    float64
		expectX   float64
		expectY   float64
		expectVX  float64
		expectVY  float64
		expectGnd bool
	}{
		{
			// Lands on the floor, then the corrected box still touches the wall.
			name:      "inside corner, floor first",
			entities:  []Entity{floor, wall},
			x:         255,
			y:         350,
			vx:        5,
			vy:        4,
			expectX:   250,
			expectY:   350,
			expectGnd: true,
		},
		{
			name:      "inside corner, wall first",
			entities:  []Entity{wall, floor},
			x:         255,
			y:         350,
			vx:        5,
			vy:        4,
			expectX:   250,
			expectY:   350,
			expectGnd: true,
		},
		{
			// Above the floor line only the wall overlaps.
			name:     "corner approach above floor",
			entities: []Entity{floor, wall},
			x:        255,
			y:        345,
			vx:       5,
			vy:       4,
			expectX:  250,
			expectY:  349.8,
			expectVY: 4.8,
		},
		{
			// The floor lands the player; the slab then overlaps with no
			// vertical or horizontal motion left, so it changes nothing.
			name:      "stacked, floor first",
			entities:  []Entity{floor, slab},
			x:         100,
			y:         345,
			vy:        10,
			expectX:   100,
			expectY:   350,
			expectGnd: true,
		},
		{
			// Landing on the slab lifts the player clear of the floor.
			name:      "stacked, slab first",
			entities:  []Entity{slab, floor},
			x:         100,
			y:         345,
			vy:        10,
			expectX:   100,
			expectY:   330,
			expectGnd: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sim := newTestSim(t, tc.entities...)
			sim.player.X = tc.x
			sim.player.Y = tc.y
			sim.player.VelocityX = tc.vx
			sim.player.VelocityY = tc.vy
			sim.player.OnGround = false

			sim.Tick()

			p := sim.Player()
			if p.X != tc.expectX || p.Y != tc.expectY {
				t.Errorf("position = (%v, %v), expected (%v, %v)", p.X, p.Y, tc.expectX, tc.expectY)
			}
			if p.VelocityX != tc.expectVX || p.VelocityY != tc.expectVY {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", p.VelocityX, p.VelocityY, tc.expectVX, tc.expectVY)
			}
			if p.OnGround != tc.expectGnd {
				t.Errorf("OnGround = %v, expected %v", p.OnGround, tc.expectGnd)
			}
		})
	}
}

func TestLeftWorldBound(t *testing.T) {
	sim := newTestSim(t)
	sim.player.X = 2
	sim.player.VelocityX = -5

	sim.Tick()

	p := sim.Player()
	if p.X != 0 || p.VelocityX != 0 {
		t.Errorf("expected clamp to X=0 with no velocity, got X=%v VelocityX=%v", p.X, p.VelocityX)
	}
}

func TestFallRecovery(t *testing.T) {
	sim := newTestSim(t)
	sim.player.X = 700
	sim.player.Y = sim.Viewport().Height + 1
	sim.player.VelocityX = 3

	sim.Tick()

	p := sim.Player()
	if p.X != 50 || p.Y != 300 {
		t.Errorf("player at (%v, %v), expected spawn (50, 300)", p.X, p.Y)
	}
	if p.VelocityX != 0 || p.VelocityY != 0 {
		t.Errorf("velocity = (%v, %v), expected zero", p.VelocityX, p.VelocityY)
	}
}

func TestIntentsApplyOnNextTick(t *testing.T) {
	sim := newTestSim(t, platform("ground", 0, 400, 2000, 50))

	sim.MoveRight()
	if sim.Player().VelocityX != 0 {
		t.Fatal("MoveRight should not take effect before the next tick")
	}
	sim.Tick()
	if p := sim.Player(); p.VelocityX != 5 || p.X != 55 || p.Direction != 1 {
		t.Errorf("after MoveRight tick: X=%v VelocityX=%v Direction=%d", p.X, p.VelocityX, p.Direction)
	}

	// Latest call wins.
	sim.MoveRight()
	sim.MoveLeft()
	sim.Tick()
	if p := sim.Player(); p.VelocityX != -5 || p.Direction != -1 {
		t.Errorf("expected last intent (left) to win, got VelocityX=%v Direction=%d", p.VelocityX, p.Direction)
	}

	sim.StopMoving()
	sim.Tick()
	if p := sim.Player(); p.VelocityX != 0 || p.Direction != -1 {
		t.Errorf("StopMoving should zero speed and keep direction, got VelocityX=%v Direction=%d", p.VelocityX, p.Direction)
	}
}

func TestJumpRequiresGround(t *testing.T) {
	sim := newTestSim(t, platform("ground", 0, 400, 2000, 50))

	// Airborne jump is dropped.
	sim.Jump()
	sim.Tick()
	if vy := sim.Player().VelocityY; vy < 0 {
		t.Fatalf("airborne jump should be ignored, VelocityY = %v", vy)
	}

	for !sim.Player().OnGround {
		sim.Tick()
	}

	phys := sim.Physics()
	sim.Jump()
	sim.Tick()

	p := sim.Player()
	expected := phys.JumpForce + phys.Gravity
	if p.VelocityY != expected {
		t.Errorf("VelocityY after jump = %v, expected %v", p.VelocityY, expected)
	}
	if p.OnGround {
		t.Error("player should be airborne after jumping")
	}
	if p.Y >= 350 {
		t.Errorf("player should have risen, Y = %v", p.Y)
	}
}

func TestNewRejectsInvalidLevels(t *testing.T) {
	tests := []struct {
		name     string
		entities []Entity
	}{
		{"zero width", []Entity{platform("p", 0, 0, 0, 10)}},
		{"negative height", []Entity{platform("p", 0, 0, 10, -1)}},
		{"empty id", []Entity{platform("", 0, 0, 10, 10)}},
		{"duplicate id", []Entity{platform("p", 0, 0, 10, 10), platform("p", 20, 0, 10, 10)}},
		{"moving platform", []Entity{{ID: "p", Kind: KindPlatform, Width: 10, Height: 10, VelocityX: 1}}},
		{"moving collectible", []Entity{{ID: "c", Kind: KindCollectible, Width: 10, Height: 10, VelocityX: 1}}},
		{"unknown kind", []Entity{{ID: "x", Kind: Kind(42), Width: 10, Height: 10}}},
		{"direction mismatch", []Entity{{ID: "e", Kind: KindEnemy, Width: 10, Height: 10, VelocityX: 1, Direction: -1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Level{ID: "bad", Entities: tc.entities}, DefaultPhysics(), DefaultViewport())
			if err == nil {
				t.Fatal("New() should fail")
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v should wrap ErrInvalidLevel", err)
			}
		})
	}
}

func TestNewRejectsBadTuning(t *testing.T) {
	if _, err := New(Level{ID: "ok"}, DefaultPhysics(), Viewport{Width: 0, Height: 600}); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("zero viewport width: err = %v", err)
	}

	phys := DefaultPhysics()
	phys.PlayerHeight = 0
	if _, err := New(Level{ID: "ok"}, phys, DefaultViewport()); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("zero player height: err = %v", err)
	}
}

func TestNewFillsEnemyDirection(t *testing.T) {
	sim := newTestSim(t,
		Entity{ID: "left", Kind: KindEnemy, Width: 10, Height: 10, VelocityX: -2},
		Entity{ID: "idle", Kind: KindEnemy, Width: 10, Height: 10},
	)

	entities := sim.Entities()
	if entities[0].Direction != -1 {
		t.Errorf("left-moving enemy Direction = %d, expected -1", entities[0].Direction)
	}
	if entities[1].Direction != 1 {
		t.Errorf("idle enemy Direction = %d, expected 1", entities[1].Direction)
	}
}
