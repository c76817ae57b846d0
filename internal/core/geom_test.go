package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{"touching right edge", Square(0, 0, 80), Square(80, 0, 80), false},
		{"touching bottom edge", Square(0, 0, 80), Square(0, 80, 80), false},
		{"touching corner", Square(0, 0, 80), Square(80, 80, 80), false},
		{"one unit overlap", Square(0, 0, 80), Square(79, 79, 80), true},
		{"half overlap", Square(100, 200, 80), Square(140, 240, 80), true},
		{"fractional overlap", Square(0, 0, 80), Square(79.5, 0, 80), true},
		{"overlap on x only", Square(0, 0, 80), Square(40, 83, 80), false},
		{"negative coordinates", Square(-30, -17, 80), Square(0, 0, 80), true},
		{"mixed sizes", NewRectF(0, 0, 10, 200), NewRectF(5, 190, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	f := NewRectF(-20, 30.5, 80, 80)
	if f.Right() != 60 {
		t.Errorf("RectF Right() = %f, expected 60", f.Right())
	}
	if f.Bottom() != 110.5 {
		t.Errorf("RectF Bottom() = %f, expected 110.5", f.Bottom())
	}
}
