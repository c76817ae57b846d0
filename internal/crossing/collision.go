package crossing

// Outcome is what the collision detector saw in one tick.
type Outcome struct {
	Collided    bool // the player box overlaps at least one enemy box
	ReachedGoal bool // the player stands above the goal line while playing
}

// Result folds the two facts into a single round outcome. A collision wins
// over a goal reached in the same tick.
func (o Outcome) Result() RoundOutcome {
	switch {
	case o.Collided:
		return OutcomeCollision
	case o.ReachedGoal:
		return OutcomeGoal
	default:
		return OutcomeNone
	}
}

// CollisionRules sizes the boxes and places the goal line.
type CollisionRules struct {
	BoxSize  float64 // side of every entity box
	GoalLine float64 // player y strictly below this value has arrived
}

// Detect tests the player against every enemy. The goal test depends only
// on the player, so it is evaluated once per call rather than per enemy.
func Detect(p Player, enemies []Enemy, phase Phase, rules CollisionRules) Outcome {
	out := Outcome{
		ReachedGoal: phase == PhasePlaying && p.Y < rules.GoalLine,
	}

	box := p.Box(rules.BoxSize)
	for i := range enemies {
		if box.Intersects(enemies[i].Box(rules.BoxSize)) {
			out.Collided = true
			break
		}
	}
	return out
}
