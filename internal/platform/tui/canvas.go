package tui

import (
	"math"

	"github.com/vovakirdan/tui-crossing/internal/assets"
	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

// Cells one map tile occupies on screen.
const (
	TileCellsX = 8
	TileCellsY = 2
)

// Canvas implements crossing.Renderer on a core.Screen. Pixel coordinates
// are scaled to cells and the board is centered on the screen. Sprites are
// clipped to the board; text may use the whole screen.
type Canvas struct {
	screen  *core.Screen
	dims    crossing.Dimensions
	hud     float64 // pixel height of the HUD strip
	originX int
	originY int
}

// NewCanvas creates a canvas for a board of the given dimensions.
func NewCanvas(screen *core.Screen, s crossing.Settings) *Canvas {
	c := &Canvas{
		screen: screen,
		dims:   s.Dimensions,
		hud:    s.HUD.Height,
	}
	c.Layout()
	return c
}

// Layout re-centers the board, e.g. after the screen was resized.
func (c *Canvas) Layout() {
	w, h := c.FrameSize()
	c.originX = max(0, (c.screen.Width()-w)/2)
	c.originY = max(0, (c.screen.Height()-h)/2)
}

// BoardSize returns the board size in cells.
func (c *Canvas) BoardSize() (int, int) {
	return c.dims.Columns * TileCellsX, c.dims.Rows * TileCellsY
}

// FrameSize returns the board plus HUD size in cells.
func (c *Canvas) FrameSize() (int, int) {
	w, h := c.BoardSize()
	return w, h + c.rowsFor(c.hud)
}

// Screen returns the underlying screen.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// DrawSprite implements crossing.Renderer. Images that are not glyph
// sprites are ignored.
func (c *Canvas) DrawSprite(img crossing.Image, x, y float64) {
	s, ok := img.(*assets.Sprite)
	if !ok {
		return
	}
	board := c.board()
	cx := c.cellX(x)
	cy := c.cellY(y + s.OffsetY)
	area := core.NewRect(cx, cy, s.Width(), s.Height())
	if !area.Intersects(board) || !area.Intersects(c.screen.Bounds()) {
		return
	}
	for dy, row := range s.Glyphs {
		for dx, r := range row {
			if r == ' ' {
				continue
			}
			px, py := cx+dx, cy+dy
			if px < board.X || px >= board.Right() || py < board.Y || py >= board.Bottom() {
				continue
			}
			c.screen.SetCell(px, py, core.Cell{Rune: r, Color: s.Color})
		}
	}
}

// ClearRegion implements crossing.Renderer.
func (c *Canvas) ClearRegion(x, y, w, h float64) {
	x0, y0 := c.cellX(x), c.cellY(y)
	x1 := c.originX + int(math.Ceil((x+w)*TileCellsX/float64(c.dims.TileWidth)))
	y1 := c.originY + int(math.Ceil((y+h)*TileCellsY/float64(c.dims.TileHeight)))
	c.screen.FillRect(core.NewRect(x0, y0, x1-x0, y1-y0), core.Cell{Rune: ' '})
}

// DrawText implements crossing.Renderer. Only the colour of the style
// applies; terminals have one font. Unknown colours draw in the default.
func (c *Canvas) DrawText(text string, x, y float64, style crossing.TextStyle) {
	color, ok := core.ParseColor(style.Color)
	if !ok {
		color = core.ColorDefault
	}
	c.screen.DrawTextColored(c.cellX(x), c.cellY(y), text, color)
}

// ShowMessage draws a boxed message over the board.
func (c *Canvas) ShowMessage(lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW, boxH := width+4, len(lines)+2
	bw, bh := c.BoardSize()
	box := core.NewRect(
		c.originX+max(0, (bw-boxW)/2),
		c.originY+max(0, (bh-boxH)/2),
		boxW, boxH,
	)
	c.screen.FillRect(box, core.Cell{Rune: ' '})
	c.screen.DrawBox(box)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		c.screen.DrawText(x, box.Y+1+i, l)
	}
}

func (c *Canvas) board() core.Rect {
	w, h := c.BoardSize()
	return core.NewRect(c.originX, c.originY, w, h)
}

func (c *Canvas) cellX(x float64) int {
	return c.originX + int(math.Floor(x*TileCellsX/float64(c.dims.TileWidth)))
}

// cellY rounds so that a sprite lifted a few pixels inside its lane still
// lands on the lane's rows.
func (c *Canvas) cellY(y float64) int {
	return c.originY + int(math.Round(y*TileCellsY/float64(c.dims.TileHeight)))
}

func (c *Canvas) rowsFor(px float64) int {
	return int(math.Ceil(px * TileCellsY / float64(c.dims.TileHeight)))
}
