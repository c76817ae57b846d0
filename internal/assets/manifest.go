// Package assets loads the glyph sprites the terminal renderer draws. It
// implements crossing.ResourceLoader on top of an embedded YAML manifest.
package assets

import (
	_ "embed"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-crossing/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed sprites.yaml
var defaultManifest []byte

// DefaultManifest returns the embedded sprite manifest.
func DefaultManifest() []byte {
	return defaultManifest
}

// YAMLManifest is the on-disk shape of a sprite manifest.
type YAMLManifest struct {
	Sprites []YAMLSprite `yaml:"sprites"`
}

// YAMLSprite is one manifest entry.
type YAMLSprite struct {
	Key     string   `yaml:"key"`
	Color   string   `yaml:"color"`
	OffsetY float64  `yaml:"offset_y,omitempty"`
	Glyphs  []string `yaml:"glyphs"`
}

// Sprite is a loaded image: rows of glyphs in one colour.
type Sprite struct {
	Key     string
	Color   core.Color
	OffsetY float64 // map pixels added to y before scaling
	Glyphs  [][]rune
}

// Width returns the widest glyph row in cells.
func (s *Sprite) Width() int {
	w := 0
	for _, row := range s.Glyphs {
		w = max(w, len(row))
	}
	return w
}

// Height returns the number of glyph rows.
func (s *Sprite) Height() int {
	return len(s.Glyphs)
}

// ParseManifest decodes a manifest into sprites keyed by name.
func ParseManifest(data []byte) (map[string]*Sprite, error) {
	var m YAMLManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: yaml unmarshal: %w", err)
	}

	sprites := make(map[string]*Sprite, len(m.Sprites))
	for i, ys := range m.Sprites {
		if ys.Key == "" {
			return nil, fmt.Errorf("assets: sprite %d has no key", i)
		}
		if _, dup := sprites[ys.Key]; dup {
			return nil, fmt.Errorf("assets: duplicate sprite %q", ys.Key)
		}
		if len(ys.Glyphs) == 0 {
			return nil, fmt.Errorf("assets: sprite %q has no glyphs", ys.Key)
		}
		color, ok := core.ParseColor(ys.Color)
		if !ok {
			return nil, fmt.Errorf("assets: sprite %q has unknown color %q", ys.Key, ys.Color)
		}

		s := &Sprite{Key: ys.Key, Color: color, OffsetY: ys.OffsetY}
		for _, row := range ys.Glyphs {
			if !utf8.ValidString(row) {
				return nil, fmt.Errorf("assets: sprite %q has invalid utf-8", ys.Key)
			}
			s.Glyphs = append(s.Glyphs, []rune(row))
		}
		sprites[ys.Key] = s
	}
	return sprites, nil
}
