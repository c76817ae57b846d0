package crossing

import "time"

// RoundOutcome is how a round ended.
type RoundOutcome int

const (
	OutcomeNone      RoundOutcome = iota // still playing
	OutcomeCollision                     // hit by an enemy, score reset
	OutcomeGoal                          // reached the goal row, score +1
)

// String returns a human-readable name for the outcome.
func (o RoundOutcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCollision:
		return "collision"
	case OutcomeGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// RoundReport summarises a finished round. Observers receive it when the
// engine leaves the playing phase.
type RoundReport struct {
	Round    int           `json:"round"`
	Seed     int64         `json:"seed"`
	Outcome  RoundOutcome  `json:"-"`
	Result   string        `json:"outcome"`
	Score    int           `json:"score"`
	Layout   string        `json:"layout"`
	Enemies  int           `json:"enemies"`
	Duration time.Duration `json:"duration_ns"`
}
