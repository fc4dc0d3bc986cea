package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// SessionConfig selects what a session plays.
type SessionConfig struct {
	GameID   string // Registry ID of the game
	LevelDir string // Extra level directory; built-in levels are always offered
	LevelID  string // Start this level directly, skipping the menu
	Runtime  core.RuntimeConfig
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard reachable from the menu. Used locally and over SSH.
type SessionModel struct {
	cfg      SessionConfig
	store    *storage.Store
	catalog  []levels.Level
	issues   []levels.Issue
	view     sessionView
	menu     MenuModel
	game     *Model
	scores   *ScoreboardModel
	quitting bool
}

// NewSessionModel loads the level catalog and builds the session. When
// cfg.LevelID is set, the session starts in that level.
func NewSessionModel(store *storage.Store, cfg SessionConfig) (SessionModel, error) {
	if !registry.Exists(cfg.GameID) {
		return SessionModel{}, fmt.Errorf("unknown game %q", cfg.GameID)
	}

	catalog, issues, err := levels.NewLoader(cfg.LevelDir).Catalog()
	if err != nil {
		return SessionModel{}, err
	}

	m := SessionModel{
		cfg:     cfg,
		store:   store,
		catalog: catalog,
		issues:  issues,
	}
	m.menu = NewMenuModel(cfg.GameID, catalog, issues, store, cfg.Runtime)

	if cfg.LevelID != "" {
		lvl, ok := m.findLevel(cfg.LevelID)
		if !ok {
			return SessionModel{}, fmt.Errorf("level not found: %s", cfg.LevelID)
		}
		if err := m.startGame(lvl); err != nil {
			return SessionModel{}, err
		}
	}

	return m, nil
}

func (m SessionModel) findLevel(id string) (levels.Level, bool) {
	for _, lvl := range m.catalog {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return levels.Level{}, false
}

// startGame creates a fresh game on the given level. Init or the caller
// must run the returned model's Init.
func (m *SessionModel) startGame(lvl levels.Level) error {
	game, err := registry.Create(m.cfg.GameID)
	if err != nil {
		return err
	}
	if la, ok := game.(registry.LevelAware); ok {
		la.UseLevel(lvl)
	}

	model := NewModel(game, m.store, m.cfg.Runtime)
	m.game = &model
	m.view = viewGame
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.store, m.cfg.GameID, m.catalog, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
		m.scores = &sb
		m.view = viewScores
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		m.cfg.Runtime = m.menu.Config()
		if err := m.startGame(selected.Level); err != nil {
			// Only registered games reach here
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = &sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.scores = nil
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

// backToMenu rebuilds the menu so high scores are fresh.
func (m *SessionModel) backToMenu() {
	m.menu = NewMenuModel(m.cfg.GameID, m.catalog, m.issues, m.store, m.cfg.Runtime)
	m.view = viewMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Run starts a local session in the terminal.
func Run(store *storage.Store, cfg SessionConfig) error {
	model, err := NewSessionModel(store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
