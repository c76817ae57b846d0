package crossing

import "math/rand"

// SpawnEnemies creates one enemy per enemy lane of layout. Each starts a
// little off-screen to the left so lanes enter staggered, and moves at a
// base speed drawn from the settings plus the difficulty bonus for score.
func SpawnEnemies(layout Layout, s Settings, score int, rng *rand.Rand) ([]Enemy, error) {
	if layout.Empty() {
		return nil, ErrMapNotInitialized
	}

	bonus := 0.0
	if s.Difficulty != nil {
		bonus = s.Difficulty.SpeedBonus(score)
	}

	lanes := layout.EnemyRows()
	enemies := make([]Enemy, 0, len(lanes))
	for _, row := range lanes {
		speed := float64(s.EnemySpeedMin+rng.Intn(s.EnemySpeedMax-s.EnemySpeedMin)) + bonus
		offset := s.SpawnOffsetMin + rng.Intn(s.SpawnOffsetMax-s.SpawnOffsetMin)
		enemies = append(enemies, Enemy{
			Sprite: Sprite{
				X:   -float64(offset),
				Y:   s.laneY(row),
				Key: s.EnemySprite,
			},
			BaseSpeed: speed,
		})
	}
	return enemies, nil
}
