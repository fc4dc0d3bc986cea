package bot

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

type recorder struct {
	right, left, stop, jump int
}

func (r *recorder) MoveLeft()   { r.left++ }
func (r *recorder) MoveRight()  { r.right++ }
func (r *recorder) StopMoving() { r.stop++ }
func (r *recorder) Jump()       { r.jump++ }

func ground(x, w float64) engine.Entity {
	return engine.Entity{ID: "ground", Kind: engine.KindPlatform, X: x, Y: 400, Width: w, Height: 50}
}

// standing player at X=100 on the ground at Y=400.
func snapshot(entities ...engine.Entity) engine.Snapshot {
	return engine.Snapshot{
		Player:   engine.Player{X: 100, Y: 350, Width: 50, Height: 50, OnGround: true, Direction: 1},
		Entities: entities,
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		snap     engine.Snapshot
		jump     bool
		reason   string
		airborne bool
	}{
		{"flat ground", snapshot(ground(0, 800)), false, "", false},
		{"wall ahead", snapshot(ground(0, 800), engine.Entity{ID: "wall", Kind: engine.KindPlatform, X: 160, Y: 300, Width: 20, Height: 100}), true, "wall", false},
		{"wall far away", snapshot(ground(0, 800), engine.Entity{ID: "wall", Kind: engine.KindPlatform, X: 400, Y: 300, Width: 20, Height: 100}), false, "", false},
		{"platform overhead", snapshot(ground(0, 800), engine.Entity{ID: "ledge", Kind: engine.KindPlatform, X: 160, Y: 200, Width: 100, Height: 20}), false, "", false},
		{"enemy ahead", snapshot(ground(0, 800), engine.Entity{ID: "cat", Kind: engine.KindEnemy, X: 250, Y: 360, Width: 40, Height: 40}), true, "enemy", false},
		{"enemy behind", snapshot(ground(0, 800), engine.Entity{ID: "cat", Kind: engine.KindEnemy, X: 20, Y: 360, Width: 40, Height: 40}), false, "", false},
		{"defeated enemy", snapshot(ground(0, 800), engine.Entity{ID: "cat", Kind: engine.KindEnemy, X: 250, Y: 360, Width: 40, Height: 40, Collected: true}), false, "", false},
		{"gap ahead", snapshot(ground(0, 170)), true, "gap", false},
		{"airborne", snapshot(), false, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := tc.snap
			if tc.airborne {
				snap.Player.OnGround = false
			}
			d := Decide(snap)
			if d.Jump != tc.jump || d.Reason != tc.reason {
				t.Errorf("Decide() = %+v, expected jump=%v reason=%q", d, tc.jump, tc.reason)
			}
		})
	}
}

func TestDriveIssuesIntents(t *testing.T) {
	rec := &recorder{}
	Drive(rec, snapshot(ground(0, 800)))
	if rec.right != 1 || rec.jump != 0 {
		t.Errorf("flat ground: right=%d jump=%d", rec.right, rec.jump)
	}

	Drive(rec, snapshot(ground(0, 170)))
	if rec.right != 2 || rec.jump != 1 {
		t.Errorf("gap: right=%d jump=%d", rec.right, rec.jump)
	}
}

func TestBotMakesProgress(t *testing.T) {
	level := engine.Level{
		ID:     "course",
		SpawnX: 50,
		SpawnY: 300,
		Entities: []engine.Entity{
			{ID: "g1", Kind: engine.KindPlatform, X: 0, Y: 400, Width: 600, Height: 50},
			{ID: "g2", Kind: engine.KindPlatform, X: 680, Y: 400, Width: 1000, Height: 50},
			{ID: "block", Kind: engine.KindPlatform, X: 1000, Y: 360, Width: 40, Height: 40},
		},
	}
	sim, err := engine.New(level, engine.DefaultPhysics(), engine.DefaultViewport())
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}

	var _ Controller = sim
	for i := 0; i < 600; i++ {
		Drive(sim, sim.Snapshot())
		sim.Tick()
	}

	if x := sim.Player().X; x < 1100 {
		t.Errorf("bot stalled at X=%v", x)
	}
}
