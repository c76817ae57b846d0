package crossing

import "github.com/vovakirdan/tui-crossing/internal/core"

// Sprite is the shape shared by everything that moves on the map:
// a pixel position and the image drawn there.
type Sprite struct {
	X, Y float64
	Key  string
}

// Box returns the collision box of the sprite, anchored at its position.
func (s Sprite) Box(side float64) core.RectF {
	return core.Square(s.X, s.Y, side)
}

// Enemy crosses its lane left to right at a speed fixed at spawn.
type Enemy struct {
	Sprite
	BaseSpeed float64 // pixels per second
}

// Update advances the enemy by elapsed seconds. Once it has fully crossed
// maxX it re-enters from the left at a negative x.
func (e *Enemy) Update(elapsed, maxX float64) {
	step := elapsed * e.BaseSpeed
	if e.X > maxX {
		e.X = -(e.BaseSpeed + step)
		return
	}
	e.X += step
}

// Bounds limits where the player may stand. A coordinate is accepted when
// Min <= v < Max on its axis.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (b Bounds) acceptsX(x float64) bool { return x >= b.MinX && x < b.MaxX }
func (b Bounds) acceptsY(y float64) bool { return y >= b.MinY && y < b.MaxY }

// Player is the single character steered by input.
type Player struct {
	Sprite
	Moves map[core.Direction]float64 // signed pixel offset per direction
}

// MoveTo requests a new position. Each axis is checked on its own: an
// out-of-bounds coordinate is dropped and that axis keeps its value.
// Passing the current position is a valid no-op.
func (p *Player) MoveTo(x, y float64, b Bounds) {
	if b.acceptsX(x) {
		p.X = x
	}
	if b.acceptsY(y) {
		p.Y = y
	}
}

// HandleInput applies the delta for dir on its axis. Unknown directions
// leave the player where it is.
func (p *Player) HandleInput(dir core.Direction, b Bounds) {
	delta, ok := p.Moves[dir]
	if !ok {
		return
	}
	if dir.Horizontal() {
		p.MoveTo(p.X+delta, p.Y, b)
	} else {
		p.MoveTo(p.X, p.Y+delta, b)
	}
}

// Reset places the player back at (x, y) without bounds checks.
func (p *Player) Reset(x, y float64) {
	p.X = x
	p.Y = y
}
