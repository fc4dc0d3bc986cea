package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/pup"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagPlayLevel string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the platformer",
	Long: `Open the level menu, or jump straight into a level with --level.

Controls:
  A/Left, D/Right  - Walk (keeps walking briefly after the key)
  S/Down           - Stop
  Space/W/Up       - Jump
  X                - Bark
  C                - Spin attack (needs a tornado power-up)
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back to menu (paused or game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives
  normal - Config values as-is
  hard   - One life, more points per stomp

Examples:
  platformer play
  platformer play --level meadow
  platformer play --levels ./my-levels --difficulty hard
  platformer play --config ./my-physics.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayLevel, "level", "", "Level ID to start directly (skips the menu)")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := tui.SessionConfig{
		GameID:   pup.GameID,
		LevelDir: flagLevelDir,
		LevelID:  flagPlayLevel,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
