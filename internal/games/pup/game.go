// Package pup provides the side-scrolling platformer game for the platform:
// a dog runs through a level collecting bones and power-ups while dodging or
// stomping patrolling enemies.
package pup

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "pup"

// Effect durations, in ticks.
const (
	barkTicks = 30
	spinTicks = 30
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

func init() {
	registry.Register(GameID, func() registry.Game { return New() })
}

// Game implements the platformer game session.
type Game struct {
	// Fixed inputs; when set, Reset skips loading from disk.
	fixedCfg   *config.PlatformerConfig
	fixedLevel *levels.Level

	runtime core.RuntimeConfig
	cfg     config.PlatformerConfig
	level   levels.Level
	sim     *engine.Simulation
	handler engine.HandlerFuncs
	loadErr error

	// Progress
	score    int
	coins    int
	stomps   int
	lives    int
	ticks    int
	powerUps inventory
	gameOver bool
	paused   bool

	// Controls
	moveDir   int // -1, 0, 1
	holdLeft  int // Ticks of movement left from the last key press
	jumpQueue int // Ticks a buffered jump keeps waiting for ground

	// Effects
	invulnerable int
	hitThisTick  bool
	barkTimer    int
	spinTimer    int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game that loads its config and level on Reset.
func New() *Game {
	return &Game{}
}

// NewWith creates a game with a fixed config and level.
func NewWith(cfg config.PlatformerConfig, level levels.Level) *Game {
	return &Game{fixedCfg: &cfg, fixedLevel: &level}
}

// UseLevel fixes the level played from the next Reset on.
func (g *Game) UseLevel(level levels.Level) {
	g.fixedLevel = &level
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pup Platformer"
}

// Reset initializes or restarts the game from the level's initial state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	g.minScreenW = 40
	g.minScreenH = 12
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.score = 0
	g.coins = 0
	g.stomps = 0
	g.lives = g.cfg.Gameplay.Lives
	g.ticks = 0
	g.powerUps = nil
	g.gameOver = false
	g.paused = false
	g.moveDir = 0
	g.holdLeft = 0
	g.jumpQueue = 0
	g.invulnerable = 0
	g.barkTimer = 0
	g.spinTimer = 0

	g.sim = nil
	g.loadErr = nil

	level, err := g.loadLevel()
	if err != nil {
		g.loadErr = err
		return
	}
	g.level = level.WithSpawn(g.cfg.Player.SpawnX, g.cfg.Player.SpawnY)

	el, err := g.level.ToEngine()
	if err != nil {
		g.loadErr = err
		return
	}
	sim, err := engine.New(el, g.cfg.EnginePhysics(), g.cfg.EngineViewport())
	if err != nil {
		g.loadErr = err
		return
	}
	g.sim = sim

	g.handler = engine.HandlerFuncs{
		Collect: g.onCollect,
		Hit:     g.onHit,
		Stomp:   g.onStomp,
	}
}

// Resize adapts to a new terminal size without restarting the run.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH
}

func (g *Game) loadConfig() config.PlatformerConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}
	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) loadLevel() (levels.Level, error) {
	if g.fixedLevel != nil {
		return *g.fixedLevel, nil
	}
	return levels.Default(), nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	// Don't update if paused or game over
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	g.ticks++
	g.hitThisTick = false
	engine.Dispatch(g.handler, g.sim.Tick())

	if g.invulnerable > 0 {
		g.invulnerable--
	}
	if g.barkTimer > 0 {
		g.barkTimer--
	}
	if g.spinTimer > 0 {
		g.spinTimer--
	}

	return core.StepResult{State: g.State()}
}

// handleInput turns this frame's actions into simulation intents.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.moveDir = -1
		g.holdLeft = g.cfg.Controls.HoldTicks
	case in.Has(core.ActionRight):
		g.moveDir = 1
		g.holdLeft = g.cfg.Controls.HoldTicks
	case in.Has(core.ActionStop):
		g.moveDir = 0
		g.holdLeft = 0
		g.sim.StopMoving()
	}

	// Terminals never report key releases, so movement runs out on its own.
	// Intents are re-issued every tick because a wall zeroes the velocity.
	if g.moveDir != 0 {
		if g.cfg.Controls.HoldTicks > 0 && g.holdLeft == 0 {
			g.moveDir = 0
			g.sim.StopMoving()
		} else {
			if g.moveDir < 0 {
				g.sim.MoveLeft()
			} else {
				g.sim.MoveRight()
			}
			if g.holdLeft > 0 {
				g.holdLeft--
			}
		}
	}

	// Ground contact flickers while standing, so a jump press waits a few
	// ticks for it instead of being dropped.
	if in.Has(core.ActionJump) {
		g.jumpQueue = g.cfg.Controls.JumpBufferTicks + 1
	}
	if g.jumpQueue > 0 {
		if g.sim.Player().OnGround {
			g.sim.Jump()
			g.jumpQueue = 0
		} else {
			g.jumpQueue--
		}
	}

	if in.Has(core.ActionBark) {
		g.score += g.cfg.Gameplay.BarkPoints
		g.barkTimer = barkTicks
	}
	if in.Has(core.ActionSpin) && g.powerUps.takeAll(PowerSpin) > 0 {
		g.score += g.cfg.Gameplay.SpinPoints
		g.spinTimer = spinTicks
	}
}

func (g *Game) onCollect(kind engine.Kind, _, sprite string) {
	switch kind {
	case engine.KindCollectible:
		g.score += g.cfg.Gameplay.CollectiblePoints
		g.coins++
	case engine.KindPowerUp:
		g.score += g.cfg.Gameplay.PowerUpPoints
		g.powerUps = append(g.powerUps, PowerUpFromSprite(sprite))
	}
}

func (g *Game) onStomp(string) {
	g.stomps++
	g.score += g.cfg.Gameplay.StompPoints
}

// onHit costs a life and sends the player back to spawn. One hit per tick
// counts, and none during the grace period after a hit.
func (g *Game) onHit() {
	if g.hitThisTick || g.invulnerable > 0 || g.gameOver {
		return
	}
	g.hitThisTick = true
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
		return
	}
	g.invulnerable = g.cfg.Gameplay.InvulnerableTicks
	g.sim.Respawn()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Summary describes the run for score storage.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		GameID:  GameID,
		LevelID: g.level.ID,
		Score:   g.score,
		Coins:   g.coins,
		Stomps:  g.stomps,
		Ticks:   g.ticks,
	}
}

// Simulation exposes the running simulation, or nil if the level failed
// to load.
func (g *Game) Simulation() *engine.Simulation {
	return g.sim
}

// Err returns the level or config error from the last Reset, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Coins returns the number of collectibles picked up.
func (g *Game) Coins() int {
	return g.coins
}

// PowerUps returns a copy of the inventory.
func (g *Game) PowerUps() []PowerUp {
	out := make([]PowerUp, len(g.powerUps))
	copy(out, g.powerUps)
	return out
}
