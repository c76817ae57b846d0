package crossing

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-crossing/internal/core"
)

// Difficulty turns the current score into extra enemy speed for the next
// spawn.
type Difficulty interface {
	SpeedBonus(score int) float64
}

// LinearDifficulty adds a fixed number of pixels per second per point.
type LinearDifficulty float64

// SpeedBonus implements Difficulty.
func (l LinearDifficulty) SpeedBonus(score int) float64 {
	return float64(l) * float64(score)
}

// HUD places the score line under the map.
type HUD struct {
	X       float64 // left edge of the text
	OffsetY float64 // distance below the map's bottom edge
	Height  float64 // height of the strip cleared every frame
	Style   TextStyle
}

// Settings holds every tunable of a game. Values mirror the YAML config.
type Settings struct {
	Dimensions   Dimensions
	MinEnemyRows int
	Tiles        Tileset
	EnemySprite  string
	PlayerSprite string

	// SpriteOffsetY lifts entities so they stand inside their lane art.
	SpriteOffsetY float64

	// Enemy spawn draws, all half-open [min, max).
	EnemySpeedMin  int
	EnemySpeedMax  int
	SpawnOffsetMin int
	SpawnOffsetMax int

	PlayerMinY         float64
	PlayerBottomMargin float64
	Moves              map[core.Direction]float64

	Collision  CollisionRules
	ResetDelay time.Duration
	Difficulty Difficulty
	HUD        HUD
}

// DefaultSettings returns the classic board: 5x9 tiles of 101x83 pixels.
func DefaultSettings() Settings {
	return Settings{
		Dimensions: Dimensions{
			TileWidth:  101,
			TileHeight: 83,
			Columns:    5,
			Rows:       9,
		},
		MinEnemyRows:       5,
		Tiles:              NewTileset("water-block", "stone-block", "grass-block"),
		EnemySprite:        "enemy-bug",
		PlayerSprite:       "char-boy",
		SpriteOffsetY:      17,
		EnemySpeedMin:      75,
		EnemySpeedMax:      200,
		SpawnOffsetMin:     20,
		SpawnOffsetMax:     50,
		PlayerMinY:         -31,
		PlayerBottomMargin: 83,
		Moves: map[core.Direction]float64{
			core.DirLeft:  -101,
			core.DirRight: 101,
			core.DirUp:    -83,
			core.DirDown:  83,
		},
		Collision: CollisionRules{
			BoxSize:  80,
			GoalLine: 50,
		},
		ResetDelay: 200 * time.Millisecond,
		Difficulty: LinearDifficulty(4),
		HUD: HUD{
			X:       10,
			OffsetY: 20,
			Height:  60,
			Style:   TextStyle{Font: "Permanent Marker", Size: 24, Color: "bright-white"},
		},
	}
}

// Validate checks the settings for values the engine cannot run with.
func (s Settings) Validate() error {
	d := s.Dimensions
	if d.TileWidth <= 0 || d.TileHeight <= 0 || d.Columns <= 0 {
		return fmt.Errorf("crossing: tile size and columns must be positive, got %dx%d, %d columns",
			d.TileWidth, d.TileHeight, d.Columns)
	}
	if err := CheckFeasible(d.Rows, s.MinEnemyRows); err != nil {
		return err
	}
	if s.EnemySpeedMin <= 0 || s.EnemySpeedMax <= s.EnemySpeedMin {
		return fmt.Errorf("crossing: enemy speed range [%d, %d) is empty", s.EnemySpeedMin, s.EnemySpeedMax)
	}
	if s.SpawnOffsetMin < 0 || s.SpawnOffsetMax <= s.SpawnOffsetMin {
		return fmt.Errorf("crossing: spawn offset range [%d, %d) is empty", s.SpawnOffsetMin, s.SpawnOffsetMax)
	}
	if s.Collision.BoxSize <= 0 {
		return fmt.Errorf("crossing: collision box must be positive, got %v", s.Collision.BoxSize)
	}
	if s.ResetDelay < 0 {
		return fmt.Errorf("crossing: negative reset delay %v", s.ResetDelay)
	}
	if _, ok := core.ParseColor(s.HUD.Style.Color); !ok {
		return fmt.Errorf("crossing: unknown HUD colour %q", s.HUD.Style.Color)
	}
	return nil
}

// SpriteKeys lists every image the game draws.
func (s Settings) SpriteKeys() []string {
	return append(s.Tiles.Keys(), s.EnemySprite, s.PlayerSprite)
}

// PlayerStart returns the start position: middle column, bottom lane.
func (s Settings) PlayerStart() (float64, float64) {
	d := s.Dimensions
	x := float64((d.Columns / 2) * d.TileWidth)
	return x, s.laneY(d.Rows - 1)
}

// PlayerBounds returns the area the player may occupy.
func (s Settings) PlayerBounds() Bounds {
	d := s.Dimensions
	return Bounds{
		MinX: 0,
		MaxX: d.PixelWidth(),
		MinY: s.PlayerMinY,
		MaxY: d.PixelHeight() - s.PlayerBottomMargin,
	}
}

// FrameHeight is the pixel height of a full frame: map plus HUD strip.
func (s Settings) FrameHeight() float64 {
	return s.Dimensions.PixelHeight() + s.HUD.Height
}

func (s Settings) laneY(row int) float64 {
	return float64(row*s.Dimensions.TileHeight) - s.SpriteOffsetY
}

// sameBoard reports whether two settings describe the same grid and tiles.
func (s Settings) sameBoard(o Settings) bool {
	return s.Dimensions == o.Dimensions && slices.Equal(s.SpriteKeys(), o.SpriteKeys())
}
