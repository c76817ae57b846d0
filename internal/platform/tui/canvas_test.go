package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-crossing/internal/assets"
	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

func testSprite(offsetY float64, rows ...string) *assets.Sprite {
	s := &assets.Sprite{Key: "test", Color: core.ColorRed, OffsetY: offsetY}
	for _, r := range rows {
		s.Glyphs = append(s.Glyphs, []rune(r))
	}
	return s
}

func TestCanvasFrameSize(t *testing.T) {
	c := NewCanvas(core.NewScreen(40, 20), crossing.DefaultSettings())
	if w, h := c.BoardSize(); w != 40 || h != 18 {
		t.Errorf("BoardSize() = %dx%d, expected 40x18", w, h)
	}
	if w, h := c.FrameSize(); w != 40 || h != 20 {
		t.Errorf("FrameSize() = %dx%d, expected 40x20", w, h)
	}
}

func TestCanvasCentersBoard(t *testing.T) {
	c := NewCanvas(core.NewScreen(80, 24), crossing.DefaultSettings())
	c.DrawSprite(testSprite(0, "x"), 0, 0)
	if got := c.Screen().Get(20, 2); got != 'x' {
		t.Errorf("expected board origin at (20, 2), got %q there", got)
	}

	c.Screen().Resize(40, 20)
	c.Screen().Clear()
	c.Layout()
	c.DrawSprite(testSprite(0, "x"), 0, 0)
	if got := c.Screen().Get(0, 0); got != 'x' {
		t.Errorf("expected board origin at (0, 0) after resize, got %q", got)
	}
}

func TestCanvasDrawSpriteScaling(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		offsetY float64
		cellX   int
		cellY   int
	}{
		{"origin", 0, 0, 0, 0, 0},
		{"one tile over", 101, 83, 0, 8, 2},
		{"lane sprite", 202, 647, 17, 16, 16},
		{"enemy lane", 0, 83 - 17, 17, 0, 2},
		{"goal row", 202, -31, 17, 16, 0},
		{"fractional x", 50.5, 0, 0, 4, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCanvas(core.NewScreen(40, 20), crossing.DefaultSettings())
			c.DrawSprite(testSprite(tc.offsetY, "@"), tc.x, tc.y)
			cell := c.Screen().GetCell(tc.cellX, tc.cellY)
			if cell.Rune != '@' || cell.Color != core.ColorRed {
				t.Errorf("expected red @ at (%d, %d), screen:\n%s", tc.cellX, tc.cellY, c.Screen().String())
			}
		})
	}
}

func TestCanvasSpriteTransparencyAndClipping(t *testing.T) {
	c := NewCanvas(core.NewScreen(60, 20), crossing.DefaultSettings())
	// Board spans columns 10..49.
	c.Screen().SetCell(11, 0, core.Cell{Rune: 'o'})
	c.DrawSprite(testSprite(0, "a b"), 0, 0)

	row := c.Screen().Row(0)
	if row[10:13] != "aob" {
		t.Errorf("spaces should be transparent, got %q", row[10:13])
	}

	c.DrawSprite(testSprite(0, "<(##)>"), -30, 83)
	row = c.Screen().Row(2)
	if strings.ContainsAny(row[:10], "<(#)>") {
		t.Errorf("sprite leaked left of the board: %q", row)
	}
	if row[10:13] != "#)>" {
		t.Errorf("expected the visible part of the sprite, got %q", row[10:13])
	}

	// Unknown image types are ignored.
	c.DrawSprite("not a sprite", 0, 0)
}

func TestCanvasSkipsSpritesOffBoard(t *testing.T) {
	c := NewCanvas(core.NewScreen(60, 20), crossing.DefaultSettings())
	blank := c.Screen().String()

	for _, pos := range [][2]float64{{800, 83}, {-500, 83}, {101, 900}, {101, -400}} {
		c.DrawSprite(testSprite(0, "<(##)>"), pos[0], pos[1])
		if c.Screen().String() != blank {
			t.Errorf("sprite at (%v, %v) drew outside the board:\n%s", pos[0], pos[1], c.Screen().String())
		}
	}
}

func TestCanvasClearRegion(t *testing.T) {
	s := crossing.DefaultSettings()
	c := NewCanvas(core.NewScreen(40, 20), s)
	for y := 0; y < 20; y++ {
		c.Screen().DrawText(0, y, strings.Repeat("#", 40))
	}

	c.ClearRegion(0, 0, s.Dimensions.PixelWidth(), s.FrameHeight())
	if got := strings.TrimSpace(c.Screen().String()); got != "" {
		t.Errorf("full clear left content:\n%s", got)
	}

	c.Screen().DrawText(0, 0, strings.Repeat("#", 40))
	c.ClearRegion(101, 0, 101, 83)
	if row := c.Screen().Row(0); row != strings.Repeat("#", 8)+strings.Repeat(" ", 8)+strings.Repeat("#", 24) {
		t.Errorf("partial clear gave %q", row)
	}
}

func TestCanvasDrawText(t *testing.T) {
	s := crossing.DefaultSettings()
	c := NewCanvas(core.NewScreen(40, 20), s)
	c.DrawText("Score: 3", s.HUD.X, s.Dimensions.PixelHeight()+s.HUD.OffsetY, s.HUD.Style)

	if row := c.Screen().Row(18); !strings.HasPrefix(row, "Score: 3") {
		t.Errorf("HUD row = %q", row)
	}
	if cell := c.Screen().GetCell(0, 18); cell.Color != core.ColorBrightWhite {
		t.Errorf("HUD colour = %v, expected bright white", cell.Color)
	}
}

func TestCanvasDrawTextUnknownColour(t *testing.T) {
	c := NewCanvas(core.NewScreen(40, 20), crossing.DefaultSettings())
	c.DrawText("Score: 1", 0, 0, crossing.TextStyle{Color: "chartreuse"})

	if cell := c.Screen().GetCell(0, 0); cell.Rune != 'S' || cell.Color != core.ColorDefault {
		t.Errorf("got %q in colour %v, expected default colour", cell.Rune, cell.Color)
	}
}

func TestCanvasShowMessage(t *testing.T) {
	c := NewCanvas(core.NewScreen(40, 20), crossing.DefaultSettings())
	c.ShowMessage("CROSSING", "loading")
	out := c.Screen().String()
	for _, want := range []string{"CROSSING", "loading", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("message box lacks %q:\n%s", want, out)
		}
	}
}

func TestCanvasDrawsFullFrame(t *testing.T) {
	s := crossing.DefaultSettings()
	screen := core.NewScreen(40, 20)
	loader := assets.NewLoader()
	loader.Load(s.SpriteKeys())
	<-loader.Done()

	sched := crossing.NewStepScheduler(epochForTests)
	e, err := crossing.New(s, sched, NewCanvas(screen, s), loader, crossing.WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	out := screen.String()
	if !strings.Contains(screen.Row(0), "~") {
		t.Errorf("top row should be water, got %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(16), "(o)") {
		t.Errorf("player should stand on the bottom strip, got %q", screen.Row(16))
	}
	if !strings.Contains(out, "Score: 0") {
		t.Errorf("frame lacks the score:\n%s", out)
	}
}
