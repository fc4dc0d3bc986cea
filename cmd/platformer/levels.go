package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List and validate levels",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available levels",
	Long:  `Shows the built-in level and every valid level under --levels.`,
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check level files for errors",
	Long: `Validates the given level files, or every file under --levels.
Exits with status 1 if any file is invalid.

Examples:
  platformer levels validate ./levels/cave.yaml
  platformer levels validate --levels ./levels`,
	Run: runLevelsValidate,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a level as YAML",
	Long: `Writes a level in the level file format, to stdout or to --out.
Exporting the built-in level is a quick way to start a new one.

Examples:
  platformer levels export meadow
  platformer levels export meadow --out ./levels/cave.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runLevelsExport,
}

var flagExportOut string

func init() {
	levelsExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default stdout)")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsExportCmd)
}

func runLevelsList(cmd *cobra.Command, args []string) {
	lvls, issues, err := levels.NewLoader(flagLevelDir).Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxIDLen, "ID", "Enemies", "Pickups", "Name")
	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxIDLen, "--", "-------", "-------", "----")

	for _, l := range lvls {
		enemies, pickups := 0, 0
		for _, e := range l.Entities {
			switch {
			case e.Kind == engine.KindEnemy:
				enemies++
			case e.IsPickup():
				pickups++
			}
		}
		fmt.Printf("  %-*s  %-8d  %-8d  %s\n", maxIDLen, l.ID, enemies, pickups, l.Name)
	}

	if len(issues) > 0 {
		fmt.Println()
		fmt.Printf("%d file(s) skipped; run 'platformer levels validate' for details.\n", len(issues))
	}

	fmt.Println()
	fmt.Println("Run 'platformer play --level <id>' to play a level.")
}

func runLevelsValidate(cmd *cobra.Command, args []string) {
	loader := levels.NewLoader(flagLevelDir)

	var valid []levels.Level
	var issues []levels.Issue

	if len(args) > 0 {
		for _, path := range args {
			lvl, err := loader.LoadFile(path)
			if err != nil {
				issues = append(issues, levels.Issue{Path: path, Err: err})
				continue
			}
			valid = append(valid, lvl)
		}
	} else {
		if flagLevelDir == "" {
			fmt.Fprintln(os.Stderr, "Error: pass level files or --levels <dir>")
			os.Exit(1)
		}
		var err error
		valid, issues, err = loader.Scan()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	for _, l := range valid {
		fmt.Printf("ok    %s (%s)\n", l.FilePath, l.ID)
	}
	for _, issue := range issues {
		fmt.Printf("FAIL  %v\n", issue)
	}

	fmt.Println()
	fmt.Printf("%d valid, %d invalid\n", len(valid), len(issues))
	if len(issues) > 0 {
		os.Exit(1)
	}
}

func runLevelsExport(cmd *cobra.Command, args []string) {
	lvl, err := levels.NewLoader(flagLevelDir).LoadByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := lvl.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagExportOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s to %s\n", lvl.ID, flagExportOut)
}
