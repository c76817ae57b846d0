package crossing

import (
	"fmt"
	"math/rand"
	"strings"
)

// TileKind is the semantic category of a map row.
type TileKind int

const (
	TileArrival TileKind = iota // goal strip at the top
	TileEnemy                   // hazard lane with one enemy
	TileAlly                    // safe lane
)

// String returns a human-readable name for the kind.
func (k TileKind) String() string {
	switch k {
	case TileArrival:
		return "arrival"
	case TileEnemy:
		return "enemy"
	case TileAlly:
		return "ally"
	default:
		return "unknown"
	}
}

// Letter returns the single-character code used in layout strings.
func (k TileKind) Letter() byte {
	switch k {
	case TileArrival:
		return 'A'
	case TileEnemy:
		return 'E'
	default:
		return '.'
	}
}

// TileSpec pairs a row kind with the image drawn for it.
// Specs are immutable and shared by every row of the same kind.
type TileSpec struct {
	ImageKey string
	Kind     TileKind
}

// Tileset holds the three shared row specs a layout is built from.
type Tileset struct {
	Arrival *TileSpec
	Enemy   *TileSpec
	Ally    *TileSpec
}

// NewTileset builds a tileset from the image keys of each kind.
func NewTileset(arrival, enemy, ally string) Tileset {
	return Tileset{
		Arrival: &TileSpec{ImageKey: arrival, Kind: TileArrival},
		Enemy:   &TileSpec{ImageKey: enemy, Kind: TileEnemy},
		Ally:    &TileSpec{ImageKey: ally, Kind: TileAlly},
	}
}

// Keys returns the image keys of the tileset.
func (t Tileset) Keys() []string {
	return []string{t.Arrival.ImageKey, t.Enemy.ImageKey, t.Ally.ImageKey}
}

// Dimensions describes the map grid. Pixel sizes are derived on every call
// so they can never go stale.
type Dimensions struct {
	TileWidth  int
	TileHeight int
	Columns    int
	Rows       int
}

// PixelWidth returns the map width in pixels.
func (d Dimensions) PixelWidth() float64 {
	return float64(d.Columns * d.TileWidth)
}

// PixelHeight returns the map height in pixels.
func (d Dimensions) PixelHeight() float64 {
	return float64(d.Rows * d.TileHeight)
}

// InteriorRows returns the number of rows between the goal and the start strip.
func (d Dimensions) InteriorRows() int {
	return d.Rows - 2
}

// Layout is the ordered row sequence of one round, top row first.
// It is immutable once generated.
type Layout struct {
	rows []*TileSpec
}

// NewLayout wraps an explicit row sequence. It is meant for fixtures and
// replays; GenerateLayout is the normal source of layouts.
func NewLayout(rows ...*TileSpec) Layout {
	return Layout{rows: append([]*TileSpec(nil), rows...)}
}

// Len returns the number of rows.
func (l Layout) Len() int {
	return len(l.rows)
}

// Empty reports whether the layout holds no rows (not yet generated).
func (l Layout) Empty() bool {
	return len(l.rows) == 0
}

// Row returns the tile of row i.
func (l Layout) Row(i int) *TileSpec {
	return l.rows[i]
}

// EnemyRows returns the indices of all enemy lanes, top to bottom.
func (l Layout) EnemyRows() []int {
	var idx []int
	for i, r := range l.rows {
		if r.Kind == TileEnemy {
			idx = append(idx, i)
		}
	}
	return idx
}

// String encodes the layout one letter per row, e.g. "AEE.EE.E.".
func (l Layout) String() string {
	var sb strings.Builder
	sb.Grow(len(l.rows))
	for _, r := range l.rows {
		sb.WriteByte(r.Kind.Letter())
	}
	return sb.String()
}

// CheckFeasible reports ErrInfeasibleMap when rows cannot hold minEnemyRows
// interior enemy lanes.
func CheckFeasible(rows, minEnemyRows int) error {
	if rows < 2 {
		return fmt.Errorf("%w: need at least 2 rows, got %d", ErrInfeasibleMap, rows)
	}
	if minEnemyRows > rows-2 {
		return fmt.Errorf("%w: %d enemy rows requested but only %d interior rows", ErrInfeasibleMap, minEnemyRows, rows-2)
	}
	return nil
}

// GenerateLayout builds a fresh layout: the goal row on top, the start strip
// at the bottom, and interior rows drawn uniformly from {ally, enemy}.
// Draws are rejected and repeated until at least minEnemyRows lanes are
// enemies. Feasibility is checked before the first draw, so an impossible
// request fails without touching rng.
func GenerateLayout(dims Dimensions, minEnemyRows int, tiles Tileset, rng *rand.Rand) (Layout, error) {
	if err := CheckFeasible(dims.Rows, minEnemyRows); err != nil {
		return Layout{}, err
	}

	interior := dims.InteriorRows()
	draw := make([]bool, interior)
	for {
		enemies := 0
		for i := range draw {
			draw[i] = rng.Intn(2) == 1
			if draw[i] {
				enemies++
			}
		}
		if enemies >= minEnemyRows {
			break
		}
	}

	rows := make([]*TileSpec, 0, dims.Rows)
	rows = append(rows, tiles.Arrival)
	for _, enemy := range draw {
		if enemy {
			rows = append(rows, tiles.Enemy)
		} else {
			rows = append(rows, tiles.Ally)
		}
	}
	rows = append(rows, tiles.Ally)

	return Layout{rows: rows}, nil
}
