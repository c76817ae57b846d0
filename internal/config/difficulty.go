package config

// DifficultyManager turns the score into extra enemy speed. It implements
// crossing.Difficulty.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// SpeedBonus returns the px/s added to enemies spawned at this score.
func (d *DifficultyManager) SpeedBonus(score int) float64 {
	if !d.IsEnabled() || score <= 0 {
		return 0
	}
	if maxAt := d.cfg.Progression.MaxAt; maxAt > 0 && score > maxAt {
		score = maxAt
	}
	return float64(score) * d.cfg.Scaling.SpeedPerGoal * d.multiplier()
}

func (d *DifficultyManager) multiplier() float64 {
	if d.cfg.Scaling.Multiplier <= 0 {
		return 1.0
	}
	return d.cfg.Scaling.Multiplier
}
