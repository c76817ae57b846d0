// Package config provides YAML-based game configuration loading and
// difficulty management for the crossing game.
package config

import (
	"time"

	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

// CrossingConfig contains all configuration for the game.
type CrossingConfig struct {
	Map        MapConfig        `yaml:"map"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Player     PlayerConfig     `yaml:"player"`
	Collision  CollisionConfig  `yaml:"collision"`
	Timing     TimingConfig     `yaml:"timing"`
	Sprites    SpriteConfig     `yaml:"sprites"`
	HUD        HUDConfig        `yaml:"hud"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MapConfig defines the tile grid.
type MapConfig struct {
	TileWidth     int     `yaml:"tile_width"`
	TileHeight    int     `yaml:"tile_height"`
	Columns       int     `yaml:"columns"`
	Rows          int     `yaml:"rows"`
	MinEnemyRows  int     `yaml:"min_enemy_rows"`
	SpriteOffsetY float64 `yaml:"sprite_offset_y"` // lifts entities inside their lane
}

// EnemyConfig defines enemy spawn draws. Ranges are half-open [min, max).
type EnemyConfig struct {
	MinSpeed       int `yaml:"min_speed"`
	MaxSpeed       int `yaml:"max_speed"`
	MinSpawnOffset int `yaml:"min_spawn_offset"`
	MaxSpawnOffset int `yaml:"max_spawn_offset"`
}

// PlayerConfig defines player movement.
type PlayerConfig struct {
	MinY         float64    `yaml:"min_y"`
	BottomMargin float64    `yaml:"bottom_margin"`
	Moves        MoveConfig `yaml:"moves"`
}

// MoveConfig is the signed pixel offset of one step per direction.
type MoveConfig struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
	Up    float64 `yaml:"up"`
	Down  float64 `yaml:"down"`
}

// CollisionConfig defines hit boxes and the goal line.
type CollisionConfig struct {
	BoxSize  float64 `yaml:"box_size"`
	GoalLine float64 `yaml:"goal_line"`
}

// TimingConfig defines loop timing.
type TimingConfig struct {
	ResetDelay time.Duration `yaml:"reset_delay"`
}

// SpriteConfig names the image of every row kind and entity.
type SpriteConfig struct {
	Arrival string `yaml:"arrival"`
	Enemy   string `yaml:"enemy"`
	Ally    string `yaml:"ally"`
	Bug     string `yaml:"bug"`
	Player  string `yaml:"player"`
}

// HUDConfig places and styles the score line.
type HUDConfig struct {
	X       float64 `yaml:"x"`
	OffsetY float64 `yaml:"offset_y"`
	Height  float64 `yaml:"height"`
	Font    string  `yaml:"font"`
	Size    int     `yaml:"size"`
	Color   string  `yaml:"color"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty grows with score.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // score after which the bonus stops growing, 0 = never
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedPerGoal float64 `yaml:"speed_per_goal"` // px/s added to new enemies per point
	Multiplier   float64 `yaml:"multiplier"`     // set by the difficulty preset
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// MultiplierForPreset returns the speed bonus multiplier for a preset.
func MultiplierForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 1.5
	case DifficultyFixed:
		return 0
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Settings converts the config into engine settings.
func (c CrossingConfig) Settings() crossing.Settings {
	return crossing.Settings{
		Dimensions: crossing.Dimensions{
			TileWidth:  c.Map.TileWidth,
			TileHeight: c.Map.TileHeight,
			Columns:    c.Map.Columns,
			Rows:       c.Map.Rows,
		},
		MinEnemyRows:       c.Map.MinEnemyRows,
		Tiles:              crossing.NewTileset(c.Sprites.Arrival, c.Sprites.Enemy, c.Sprites.Ally),
		EnemySprite:        c.Sprites.Bug,
		PlayerSprite:       c.Sprites.Player,
		SpriteOffsetY:      c.Map.SpriteOffsetY,
		EnemySpeedMin:      c.Enemies.MinSpeed,
		EnemySpeedMax:      c.Enemies.MaxSpeed,
		SpawnOffsetMin:     c.Enemies.MinSpawnOffset,
		SpawnOffsetMax:     c.Enemies.MaxSpawnOffset,
		PlayerMinY:         c.Player.MinY,
		PlayerBottomMargin: c.Player.BottomMargin,
		Moves: map[core.Direction]float64{
			core.DirLeft:  c.Player.Moves.Left,
			core.DirRight: c.Player.Moves.Right,
			core.DirUp:    c.Player.Moves.Up,
			core.DirDown:  c.Player.Moves.Down,
		},
		Collision: crossing.CollisionRules{
			BoxSize:  c.Collision.BoxSize,
			GoalLine: c.Collision.GoalLine,
		},
		ResetDelay: c.Timing.ResetDelay,
		Difficulty: NewDifficultyManager(c.Difficulty),
		HUD: crossing.HUD{
			X:       c.HUD.X,
			OffsetY: c.HUD.OffsetY,
			Height:  c.HUD.Height,
			Style: crossing.TextStyle{
				Font:  c.HUD.Font,
				Size:  c.HUD.Size,
				Color: c.HUD.Color,
			},
		},
	}
}
