// platformer is a side-scrolling platformer for the terminal.
//
// Usage:
//
//	platformer play              - Pick a level and play
//	platformer levels list       - List available levels
//	platformer levels validate   - Check level files for errors
//	platformer scores            - Show best runs
//	platformer serve             - Start SSH server for remote play
//	platformer sim               - Run a headless simulation with the autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.platformer/runs.db)
//	--levels <dir>        - Extra level directory
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/pup"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagLevelDir   string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Pup Platformer - run, jump and stomp in your terminal",
	Long: `Pup Platformer is a side-scrolling platformer played in the terminal.
A dog runs through a level collecting bones and power-ups while dodging or
stomping patrolling cats and squirrels.

Available commands:
  play     - Pick a level and play
  levels   - List and validate level files
  scores   - View best runs
  serve    - Start SSH server for remote play
  sim      - Headless simulation driven by the autopilot

Examples:
  platformer play
  platformer play --level meadow --difficulty easy
  platformer levels validate --levels ./levels
  platformer serve --ssh :2222
  platformer sim --ticks 3600 --http :8080`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		pup.SetConfigPath(flagConfig)
		pup.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig returns the game config with the difficulty preset applied.
func loadConfig() (config.PlatformerConfig, error) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		config.ApplyPlatformerPreset(&cfg, preset)
	}
	return cfg, nil
}
