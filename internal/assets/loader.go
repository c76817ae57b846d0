package assets

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

// Loader resolves sprite keys against a manifest in the background.
// It implements crossing.ResourceLoader. All methods are safe for
// concurrent use.
type Loader struct {
	manifest []byte
	dispatch func(func())
	logger   *log.Logger

	mu        sync.Mutex
	sprites   map[string]*Sprite
	failed    map[string]error
	inflight  int
	started   bool
	callbacks []func()

	done     chan struct{}
	doneOnce sync.Once
}

// Option configures a Loader.
type Option func(*Loader)

// WithManifest replaces the embedded manifest.
func WithManifest(data []byte) Option {
	return func(l *Loader) {
		l.manifest = data
	}
}

// WithDispatch sets how ready callbacks are delivered, e.g. by posting
// them onto the game loop. By default they run on the loading goroutine.
func WithDispatch(dispatch func(func())) Option {
	return func(l *Loader) {
		if dispatch != nil {
			l.dispatch = dispatch
		}
	}
}

// WithLogger sets the logger used for keys that fail to resolve.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader. Nothing is read until Load.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		manifest: defaultManifest,
		dispatch: func(fn func()) { fn() },
		logger:   log.New(io.Discard),
		sprites:  make(map[string]*Sprite),
		failed:   make(map[string]error),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts resolving keys. Several batches may be in flight; ready
// callbacks fire once all of them are resolved.
func (l *Loader) Load(keys []string) {
	l.mu.Lock()
	l.started = true
	l.inflight++
	l.mu.Unlock()

	keys = append([]string(nil), keys...)
	go l.resolve(keys)
}

func (l *Loader) resolve(keys []string) {
	sprites, parseErr := ParseManifest(l.manifest)

	l.mu.Lock()
	for _, key := range keys {
		switch s, ok := sprites[key]; {
		case parseErr != nil:
			l.failed[key] = parseErr
		case !ok:
			l.failed[key] = fmt.Errorf("no sprite %q in manifest", key)
		default:
			l.sprites[key] = s
			delete(l.failed, key)
		}
		if err := l.failed[key]; err != nil {
			l.logger.Warn("sprite unavailable", "key", key, "error", err)
		}
	}
	l.inflight--
	if l.inflight > 0 {
		l.mu.Unlock()
		return
	}
	ready := l.callbacks
	l.callbacks = nil
	l.mu.Unlock()

	for _, fn := range ready {
		l.dispatch(fn)
	}
	l.doneOnce.Do(func() { close(l.done) })
}

// OnReady runs fn exactly once, as soon as every requested batch is
// resolved. If that is already the case it is dispatched immediately.
func (l *Loader) OnReady(fn func()) {
	l.mu.Lock()
	if !l.started || l.inflight > 0 {
		l.callbacks = append(l.callbacks, fn)
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()
	l.dispatch(fn)
}

// Get returns the sprite for key as a crossing.Image. Keys that were never
// requested, or failed to resolve, give an error wrapping
// crossing.ErrAssetNotFound.
func (l *Loader) Get(key string) (crossing.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.sprites[key]; ok {
		return s, nil
	}
	if err, ok := l.failed[key]; ok {
		return nil, fmt.Errorf("%w: %s: %v", crossing.ErrAssetNotFound, key, err)
	}
	return nil, fmt.Errorf("%w: %s", crossing.ErrAssetNotFound, key)
}

// Done is closed the first time every requested batch has resolved.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}
