// Package levels provides level loading for the platformer.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels/formats"
)

//go:embed builtin/meadow.yaml
var meadowYAML []byte

// DefaultID is the ID of the built-in level.
const DefaultID = "meadow"

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	HasSpawn bool
	SpawnX   float64
	SpawnY   float64
	Entities []engine.Entity
	Metadata map[string]string
	FilePath string // Empty for built-in levels
}

// ToEngine converts the level into the engine's representation and
// validates it.
func (l Level) ToEngine() (engine.Level, error) {
	lvl := engine.Level{
		ID:       l.ID,
		Name:     l.Name,
		SpawnX:   l.SpawnX,
		SpawnY:   l.SpawnY,
		Entities: make([]engine.Entity, len(l.Entities)),
	}
	copy(lvl.Entities, l.Entities)
	if err := lvl.Validate(); err != nil {
		return engine.Level{}, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return lvl, nil
}

// WithSpawn returns a copy that spawns at (x, y) unless the level declares
// its own spawn point.
func (l Level) WithSpawn(x, y float64) Level {
	if l.HasSpawn {
		return l
	}
	l.SpawnX, l.SpawnY = x, y
	l.HasSpawn = true
	return l
}

// Marshal encodes the level in the YAML file format.
func (l Level) Marshal() ([]byte, error) {
	return formats.MarshalYAML(formats.Level{
		ID:       l.ID,
		Name:     l.Name,
		HasSpawn: l.HasSpawn,
		SpawnX:   l.SpawnX,
		SpawnY:   l.SpawnY,
		Entities: l.Entities,
		Metadata: l.Metadata,
	})
}

// Default returns the built-in level.
func Default() Level {
	parsed, err := formats.ParseYAML(meadowYAML)
	if err != nil {
		panic(fmt.Sprintf("levels: built-in level is broken: %v", err))
	}
	return fromParsed(parsed, "")
}

// Issue describes a level file that failed to load.
type Issue struct {
	Path string
	Err  error
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %v", i.Path, i.Err)
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.Scan()
	return levels, err
}

// Scan loads every level file under Root. Files that fail to parse or
// validate are reported as issues instead of aborting the scan.
func (l *Loader) Scan() ([]Level, []Issue, error) {
	var levels []Level
	var issues []Issue

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			issues = append(issues, Issue{Path: path, Err: err})
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, issues, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	level := fromParsed(parsed, path)
	if _, err := level.ToEngine(); err != nil {
		return Level{}, err
	}
	return level, nil
}

// LoadByID loads a specific level by ID. The built-in level is found even
// when Root does not contain it; a file with the same ID takes precedence.
func (l *Loader) LoadByID(id string) (Level, error) {
	if l.Root != "" {
		levels, err := l.LoadAll()
		if err != nil && id != DefaultID {
			return Level{}, err
		}
		for _, lvl := range levels {
			if lvl.ID == id {
				return lvl, nil
			}
		}
	}

	if id == DefaultID {
		return Default(), nil
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// Catalog returns the playable levels: everything under Root plus the
// built-in level unless a file overrides its ID.
func (l *Loader) Catalog() ([]Level, []Issue, error) {
	var found []Level
	var issues []Issue
	if l.Root != "" {
		var err error
		found, issues, err = l.Scan()
		if err != nil {
			return nil, nil, err
		}
	}

	for _, lvl := range found {
		if lvl.ID == DefaultID {
			return found, issues, nil
		}
	}

	all := append([]Level{Default()}, found...)
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all, issues, nil
}

func fromParsed(parsed formats.Level, path string) Level {
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		HasSpawn: parsed.HasSpawn,
		SpawnX:   parsed.SpawnX,
		SpawnY:   parsed.SpawnY,
		Entities: parsed.Entities,
		Metadata: parsed.Metadata,
		FilePath: path,
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
