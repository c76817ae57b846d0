package crossing

import "testing"

func TestDetectCollision(t *testing.T) {
	rules := DefaultSettings().Collision

	tests := []struct {
		name     string
		ex, ey   float64
		expected bool
	}{
		{"same position", 0, 300, true},
		{"touching right edge", 80, 300, false},
		{"touching bottom edge", 0, 380, false},
		{"one pixel overlap", 79, 300, true},
		{"diagonal overlap", 40, 340, true},
		{"corner touch", 80, 380, false},
		{"far away", 300, 300, false},
		{"overlap from the left", -79.5, 300, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testPlayer(0, 300)
			enemies := []Enemy{{Sprite: Sprite{X: tc.ex, Y: tc.ey}, BaseSpeed: 100}}
			out := Detect(p, enemies, PhasePlaying, rules)
			if out.Collided != tc.expected {
				t.Errorf("Collided = %v, expected %v", out.Collided, tc.expected)
			}
		})
	}
}

func TestDetectAnyEnemy(t *testing.T) {
	rules := DefaultSettings().Collision
	p := testPlayer(202, 315)
	enemies := []Enemy{
		{Sprite: Sprite{X: -40, Y: 66}},
		{Sprite: Sprite{X: 400, Y: 149}},
		{Sprite: Sprite{X: 190, Y: 315}},
	}
	if out := Detect(p, enemies, PhasePlaying, rules); !out.Collided {
		t.Error("expected collision with the third enemy")
	}
	if out := Detect(p, nil, PhasePlaying, rules); out.Collided {
		t.Error("no enemies should mean no collision")
	}
}

func TestDetectGoal(t *testing.T) {
	rules := DefaultSettings().Collision

	tests := []struct {
		name     string
		y        float64
		phase    Phase
		expected bool
	}{
		{"above goal line", -31, PhasePlaying, true},
		{"just above", 49.9, PhasePlaying, true},
		{"on goal line", 50, PhasePlaying, false},
		{"below", 232, PhasePlaying, false},
		{"while resetting", -31, PhaseResetting, false},
		{"while loading", -31, PhaseLoading, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Detect(testPlayer(202, tc.y), nil, tc.phase, rules)
			if out.ReachedGoal != tc.expected {
				t.Errorf("ReachedGoal = %v, expected %v", out.ReachedGoal, tc.expected)
			}
		})
	}
}

func TestOutcomePrecedence(t *testing.T) {
	rules := DefaultSettings().Collision
	p := testPlayer(202, -31)
	enemies := []Enemy{{Sprite: Sprite{X: 210, Y: -17}}}

	out := Detect(p, enemies, PhasePlaying, rules)
	if !out.Collided || !out.ReachedGoal {
		t.Fatalf("expected both flags, got %+v", out)
	}
	if out.Result() != OutcomeCollision {
		t.Errorf("Result() = %s, collision should win", out.Result())
	}
	if (Outcome{ReachedGoal: true}).Result() != OutcomeGoal {
		t.Error("goal alone should be OutcomeGoal")
	}
	if (Outcome{}).Result() != OutcomeNone {
		t.Error("empty outcome should be OutcomeNone")
	}
}
