package assets

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

func waitDone(t *testing.T, l *Loader) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loader never finished")
	}
}

func TestDefaultManifestCoversGame(t *testing.T) {
	sprites, err := ParseManifest(DefaultManifest())
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}
	for _, key := range crossing.DefaultSettings().SpriteKeys() {
		if _, ok := sprites[key]; !ok {
			t.Errorf("default manifest lacks %q", key)
		}
	}
	for _, key := range crossing.DefaultSettings().Tiles.Keys() {
		s := sprites[key]
		if s.Width() != 8 || s.Height() != 2 {
			t.Errorf("tile %q is %dx%d, expected 8x2", key, s.Width(), s.Height())
		}
	}
	if bug := sprites["enemy-bug"]; bug.Color != core.ColorBrightRed || bug.OffsetY != 17 {
		t.Errorf("enemy-bug decoded as %+v", bug)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "sprites: [\n"},
		{"missing key", "sprites:\n  - color: red\n    glyphs: [\"x\"]\n"},
		{"duplicate", "sprites:\n  - key: a\n    glyphs: [\"x\"]\n  - key: a\n    glyphs: [\"y\"]\n"},
		{"no glyphs", "sprites:\n  - key: a\n"},
		{"unknown color", "sprites:\n  - key: a\n    color: ultraviolet\n    glyphs: [\"x\"]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tc.yaml)); err == nil {
				t.Errorf("expected error for %q", tc.yaml)
			}
		})
	}
}

func TestLoaderReadyAfterLoad(t *testing.T) {
	l := NewLoader()
	calls := 0
	var mu sync.Mutex
	l.OnReady(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	l.Load([]string{"water-block", "char-boy"})
	waitDone(t, l)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("ready callback ran %d times, expected 1", calls)
	}

	img, err := l.Get("char-boy")
	if err != nil {
		t.Fatalf("Get(char-boy) failed: %v", err)
	}
	if s, ok := img.(*Sprite); !ok || s.Key != "char-boy" {
		t.Errorf("Get returned %#v", img)
	}
}

func TestLoaderReadyRegisteredLate(t *testing.T) {
	l := NewLoader()
	l.Load([]string{"grass-block"})
	waitDone(t, l)

	ran := make(chan struct{}, 2)
	l.OnReady(func() { ran <- struct{}{} })
	select {
	case <-ran:
	default:
		t.Fatal("callback registered after loading should run immediately")
	}
	if len(ran) != 0 {
		t.Error("callback ran more than once")
	}
}

func TestLoaderNotReadyBeforeLoad(t *testing.T) {
	l := NewLoader()
	ran := false
	l.OnReady(func() { ran = true })
	if ran {
		t.Error("callback ran before Load was called")
	}
	select {
	case <-l.Done():
		t.Error("Done closed before Load")
	default:
	}
}

func TestLoaderDispatch(t *testing.T) {
	posted := make(chan func(), 4)
	l := NewLoader(WithDispatch(func(fn func()) { posted <- fn }))

	ran := false
	l.OnReady(func() { ran = true })
	l.Load(crossing.DefaultSettings().SpriteKeys())
	waitDone(t, l)

	if ran {
		t.Fatal("callback should wait for the dispatcher")
	}
	select {
	case fn := <-posted:
		fn()
	default:
		t.Fatal("nothing was dispatched")
	}
	if !ran {
		t.Error("dispatched function was not the ready callback")
	}
}

func TestLoaderUnknownKey(t *testing.T) {
	l := NewLoader()
	l.Load([]string{"water-block", "gem-blue"})
	waitDone(t, l)

	if _, err := l.Get("water-block"); err != nil {
		t.Errorf("known key failed: %v", err)
	}
	if _, err := l.Get("gem-blue"); !errors.Is(err, crossing.ErrAssetNotFound) {
		t.Errorf("Get(gem-blue) = %v, expected ErrAssetNotFound", err)
	}
	if _, err := l.Get("stone-block"); !errors.Is(err, crossing.ErrAssetNotFound) {
		t.Errorf("key never requested should be missing, got %v", err)
	}
}

func TestLoaderBadManifest(t *testing.T) {
	l := NewLoader(WithManifest([]byte("sprites: {")))
	l.Load([]string{"char-boy"})
	waitDone(t, l)

	if _, err := l.Get("char-boy"); !errors.Is(err, crossing.ErrAssetNotFound) {
		t.Errorf("Get with broken manifest = %v, expected ErrAssetNotFound", err)
	}
}

func TestLoaderDrivesEngine(t *testing.T) {
	sched := crossing.NewStepScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewLoader(WithDispatch(sched.Post))
	e, err := crossing.New(crossing.DefaultSettings(), sched, nopRenderer{}, l, crossing.WithSeed(9))
	if err != nil {
		t.Fatal(err)
	}

	e.Start()
	waitDone(t, l)
	if e.Phase() != crossing.PhaseLoading {
		t.Fatalf("engine should wait for the loop, got %s", e.Phase())
	}

	sched.Step(0)
	if e.Phase() != crossing.PhasePlaying || e.Err() != nil {
		t.Errorf("engine phase %s err %v after ready", e.Phase(), e.Err())
	}
}

type nopRenderer struct{}

func (nopRenderer) DrawSprite(crossing.Image, float64, float64)           {}
func (nopRenderer) ClearRegion(float64, float64, float64, float64)        {}
func (nopRenderer) DrawText(string, float64, float64, crossing.TextStyle) {}
