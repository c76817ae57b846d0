package crossing

import (
	"fmt"
)

// Image is an opaque handle produced by a ResourceLoader and consumed by a
// Renderer. The core never looks inside it.
type Image any

// ResourceLoader fetches named assets asynchronously.
type ResourceLoader interface {
	// Load begins fetching every key.
	Load(keys []string)
	// OnReady runs fn exactly once, after every requested asset is
	// available. It may be registered before or after Load.
	OnReady(fn func())
	// Get returns the handle of a loaded key, or an error wrapping
	// ErrAssetNotFound.
	Get(key string) (Image, error)
}

// TextStyle describes how HUD text is drawn.
type TextStyle struct {
	Font  string
	Size  int
	Color string
}

// Renderer draws on the output surface. It has no return values: draw
// failures are the renderer's own business.
type Renderer interface {
	DrawSprite(img Image, x, y float64)
	ClearRegion(x, y, w, h float64)
	DrawText(text string, x, y float64, style TextStyle)
}

// render redraws the full frame: clear, tiles, enemies, player, score.
func (e *Engine) render() error {
	st := &e.state
	if st.Layout.Empty() {
		return ErrMapNotInitialized
	}

	dims := e.settings.Dimensions
	e.renderer.ClearRegion(0, 0, dims.PixelWidth(), e.settings.FrameHeight())

	for row := 0; row < st.Layout.Len(); row++ {
		img, err := e.resources.Get(st.Layout.Row(row).ImageKey)
		if err != nil {
			return err
		}
		y := float64(row * dims.TileHeight)
		for col := 0; col < dims.Columns; col++ {
			e.renderer.DrawSprite(img, float64(col*dims.TileWidth), y)
		}
	}

	for i := range st.Enemies {
		if err := e.drawSprite(st.Enemies[i].Sprite); err != nil {
			return err
		}
	}
	if err := e.drawSprite(st.Player.Sprite); err != nil {
		return err
	}

	hud := e.settings.HUD
	e.renderer.DrawText(fmt.Sprintf("Score: %d", st.Score), hud.X, dims.PixelHeight()+hud.OffsetY, hud.Style)
	return nil
}

func (e *Engine) drawSprite(s Sprite) error {
	img, err := e.resources.Get(s.Key)
	if err != nil {
		return err
	}
	e.renderer.DrawSprite(img, s.X, s.Y)
	return nil
}
