package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/pup"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func testSessionConfig() SessionConfig {
	return SessionConfig{GameID: pup.GameID, Runtime: core.DefaultConfig()}
}

func update(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestNewSessionModelErrors(t *testing.T) {
	cfg := testSessionConfig()
	cfg.GameID = "nope"
	if _, err := NewSessionModel(nil, cfg); err == nil {
		t.Error("unknown game should fail")
	}

	cfg = testSessionConfig()
	cfg.LevelID = "missing"
	if _, err := NewSessionModel(nil, cfg); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestSessionStartsInLevel(t *testing.T) {
	cfg := testSessionConfig()
	cfg.LevelID = "meadow"

	m, err := NewSessionModel(nil, cfg)
	if err != nil {
		t.Fatalf("NewSessionModel() failed: %v", err)
	}
	if m.view != viewGame || m.game == nil {
		t.Fatal("session should start in the game")
	}
}

func TestSessionMenuFlow(t *testing.T) {
	m, err := NewSessionModel(nil, testSessionConfig())
	if err != nil {
		t.Fatalf("NewSessionModel() failed: %v", err)
	}
	if m.view != viewMenu {
		t.Fatal("session should start in the menu")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScores {
		t.Fatal("tab should open the scoreboard")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.view != viewMenu {
		t.Fatal("esc should return to the menu")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame {
		t.Fatal("enter should start the selected level")
	}

	// Pause, then back to the menu.
	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg(time.Now()))
	if !m.game.GameState().Paused {
		t.Fatal("game should be paused")
	}
	m = update(t, m, runeKey('b'))
	if m.view != viewMenu {
		t.Error("b while paused should return to the menu")
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultPlatformerConfig()
	cfg.Gameplay.Lives = 1
	level := levels.Level{
		ID:       "trap",
		HasSpawn: true,
		SpawnX:   50,
		SpawnY:   300,
		Entities: []engine.Entity{
			{ID: "bone", Kind: engine.KindCollectible, X: 60, Y: 310, Width: 30, Height: 30},
			{ID: "cat", Kind: engine.KindEnemy, X: 90, Y: 300, Width: 40, Height: 40},
		},
	}

	m := NewModel(pup.NewWith(cfg, level), store, core.DefaultConfig())
	m.Init()

	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	if !m.GameState().GameOver {
		t.Fatal("expected game over")
	}

	runs, err := store.TopRuns(pup.GameID, "trap", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	if runs[0].Score != 100 || runs[0].Coins != 1 {
		t.Errorf("saved run = %+v", runs[0])
	}

	// Restart and lose again: a second run is saved.
	m.inputFrame.Set(core.ActionRestart)
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	runs, _ = store.TopRuns(pup.GameID, "trap", 10)
	if len(runs) != 2 {
		t.Errorf("saved %d runs after restart, expected 2", len(runs))
	}
}
