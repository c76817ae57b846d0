package core

// Direction is a discrete movement request emitted by an input source.
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

// Directions lists every valid direction in a stable order.
var Directions = []Direction{DirLeft, DirRight, DirUp, DirDown}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirLeft, DirRight, DirUp, DirDown:
		return true
	}
	return false
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // A, H, Left arrow
	ActionRight        // D, L, Right arrow
	ActionUp           // W, K, Up arrow
	ActionDown         // S, J, Down arrow
	ActionHelp         // ? - toggle full help
	ActionQuit         // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the movement direction carried by a, if any.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	}
	return "", false
}
