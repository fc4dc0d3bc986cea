// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Spawn    *YAMLPoint        `yaml:"spawn,omitempty"`
	Entities []YAMLEntity      `yaml:"entities"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPoint is a world position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLEntity represents a single entity in YAML format.
type YAMLEntity struct {
	ID     string  `yaml:"id"`
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Sprite string  `yaml:"sprite,omitempty"`
	VX     float64 `yaml:"vx,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	HasSpawn bool
	SpawnX   float64
	SpawnY   float64
	Entities []engine.Entity
	Metadata map[string]string
}

// ParseYAML parses a YAML level file. Geometry is checked later, when the
// level is handed to the engine; unknown kinds fail here.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Entities: make([]engine.Entity, 0, len(yl.Entities)),
		Metadata: yl.Metadata,
	}
	if yl.Spawn != nil {
		level.HasSpawn = true
		level.SpawnX, level.SpawnY = yl.Spawn.X, yl.Spawn.Y
	}

	for i, ye := range yl.Entities {
		kind, ok := engine.ParseKind(ye.Kind)
		if !ok {
			return Level{}, fmt.Errorf("entity #%d (%s): unknown kind %q", i, ye.ID, ye.Kind)
		}
		level.Entities = append(level.Entities, engine.Entity{
			ID:        ye.ID,
			Kind:      kind,
			X:         ye.X,
			Y:         ye.Y,
			Width:     ye.W,
			Height:    ye.H,
			Sprite:    ye.Sprite,
			VelocityX: ye.VX,
		})
	}

	return level, nil
}

// MarshalYAML encodes a level back into the file format.
func MarshalYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Metadata: l.Metadata,
		Entities: make([]YAMLEntity, len(l.Entities)),
	}
	if l.HasSpawn {
		yl.Spawn = &YAMLPoint{X: l.SpawnX, Y: l.SpawnY}
	}
	for i, e := range l.Entities {
		yl.Entities[i] = YAMLEntity{
			ID:     e.ID,
			Kind:   e.Kind.String(),
			X:      e.X,
			Y:      e.Y,
			W:      e.Width,
			H:      e.Height,
			Sprite: e.Sprite,
			VX:     e.VelocityX,
		}
	}
	return yaml.Marshal(yl)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
