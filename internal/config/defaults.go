package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/crossing.yaml
var defaultCrossingYAML []byte

// DefaultCrossingConfig returns the built-in configuration. It matches the
// embedded defaults/crossing.yaml and backs it up if that fails to parse.
func DefaultCrossingConfig() CrossingConfig {
	return CrossingConfig{
		Map: MapConfig{
			TileWidth:     101,
			TileHeight:    83,
			Columns:       5,
			Rows:          9,
			MinEnemyRows:  5,
			SpriteOffsetY: 17,
		},
		Enemies: EnemyConfig{
			MinSpeed:       75,
			MaxSpeed:       200,
			MinSpawnOffset: 20,
			MaxSpawnOffset: 50,
		},
		Player: PlayerConfig{
			MinY:         -31,
			BottomMargin: 83,
			Moves: MoveConfig{
				Left:  -101,
				Right: 101,
				Up:    -83,
				Down:  83,
			},
		},
		Collision: CollisionConfig{
			BoxSize:  80,
			GoalLine: 50,
		},
		Timing: TimingConfig{
			ResetDelay: 200 * time.Millisecond,
		},
		Sprites: SpriteConfig{
			Arrival: "water-block",
			Enemy:   "stone-block",
			Ally:    "grass-block",
			Bug:     "enemy-bug",
			Player:  "char-boy",
		},
		HUD: HUDConfig{
			X:       10,
			OffsetY: 20,
			Height:  60,
			Font:    "Permanent Marker",
			Size:    24,
			Color:   "bright-white",
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 0,
			},
			Scaling: ScalingConfig{
				SpeedPerGoal: 4,
				Multiplier:   1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultCrossingYAML
}
