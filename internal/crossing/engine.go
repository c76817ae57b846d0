// Package crossing implements the core of a lane-crossing arcade game: the
// player walks from the bottom strip to the goal row while enemies cross
// their lanes. It owns the map generator, the entity rules, collision
// detection and the playing/resetting loop. Drawing, assets and timing are
// reached only through the Renderer, ResourceLoader and Scheduler contracts.
package crossing

import (
	"fmt"
	"io"
	"maps"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-crossing/internal/core"
)

// Phase is the engine's top-level mode.
type Phase int

const (
	PhaseLoading   Phase = iota // assets not ready, no layout yet
	PhasePlaying                // ticking
	PhaseResetting              // waiting out the reset delay
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// GameState is everything the loop mutates. Only the Engine writes to it;
// others get copies through Snapshot.
type GameState struct {
	Layout  Layout
	Score   int
	Enemies []Enemy
	Player  Player
	Phase   Phase
	Round   int
}

// Engine is the loop controller. All of its methods must be called from the
// scheduler's loop.
type Engine struct {
	settings  Settings
	pending   *Settings
	sched     Scheduler
	renderer  Renderer
	resources ResourceLoader
	rng       *rand.Rand
	logger    *log.Logger
	observers []func(RoundReport)

	state      GameState
	inputs     []core.Direction
	tick       TickHandle
	lastTick   time.Time
	roundStart time.Time
	roundSeed  int64
	err        error
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes every round reproducible from seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRoundObserver registers fn to receive a report whenever a round ends.
func WithRoundObserver(fn func(RoundReport)) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, fn)
	}
}

// New creates an engine in the loading phase. Invalid settings, including
// an infeasible map, are rejected here rather than at the first round.
func New(s Settings, sched Scheduler, r Renderer, res ResourceLoader, opts ...Option) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		settings:  s,
		sched:     sched,
		renderer:  r,
		resources: res,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	x, y := s.PlayerStart()
	e.state.Player = Player{
		Sprite: Sprite{X: x, Y: y, Key: s.PlayerSprite},
		Moves:  maps.Clone(s.Moves),
	}
	return e, nil
}

// Start requests every sprite and enters the first round once they are
// loaded.
func (e *Engine) Start() {
	e.resources.Load(e.settings.SpriteKeys())
	e.resources.OnReady(func() {
		if err := e.Init(); err != nil {
			e.fail(err)
		}
	})
}

// Init begins a round: fresh layout and enemies, player back at the start,
// full redraw, loop armed. Enemy speeds use the current score.
func (e *Engine) Init() error {
	if e.err != nil {
		return e.err
	}
	if e.pending != nil {
		e.settings = *e.pending
		e.pending = nil
		e.state.Player.Key = e.settings.PlayerSprite
		e.state.Player.Moves = maps.Clone(e.settings.Moves)
	}

	seed := e.rng.Int63()
	rng := rand.New(rand.NewSource(seed))

	layout, err := GenerateLayout(e.settings.Dimensions, e.settings.MinEnemyRows, e.settings.Tiles, rng)
	if err != nil {
		return err
	}
	enemies, err := SpawnEnemies(layout, e.settings, e.state.Score, rng)
	if err != nil {
		return err
	}

	e.cancelTick()
	e.state.Layout = layout
	e.state.Enemies = enemies
	e.state.Player.Reset(e.settings.PlayerStart())
	e.state.Phase = PhasePlaying
	e.state.Round++
	e.inputs = e.inputs[:0]
	e.roundSeed = seed
	now := e.sched.Now()
	e.lastTick = now
	e.roundStart = now

	e.logger.Debug("round started",
		"round", e.state.Round,
		"seed", seed,
		"layout", layout.String(),
		"enemies", len(enemies),
		"score", e.state.Score,
	)

	if err := e.render(); err != nil {
		return err
	}
	e.tick = e.sched.ScheduleTick(e.Tick)
	return nil
}

// Tick is the frame callback: move enemies, apply queued input, detect,
// score, render, re-arm. It does nothing outside the playing phase.
func (e *Engine) Tick(now time.Time) {
	e.cancelTick()
	if e.state.Phase != PhasePlaying || e.err != nil {
		return
	}

	elapsed := now.Sub(e.lastTick).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	e.lastTick = now

	maxX := e.settings.Dimensions.PixelWidth()
	for i := range e.state.Enemies {
		e.state.Enemies[i].Update(elapsed, maxX)
	}

	bounds := e.settings.PlayerBounds()
	for _, dir := range e.inputs {
		e.state.Player.HandleInput(dir, bounds)
	}
	e.inputs = e.inputs[:0]

	out := Detect(e.state.Player, e.state.Enemies, e.state.Phase, e.settings.Collision)
	switch out.Result() {
	case OutcomeCollision:
		e.state.Score = 0
		e.beginReset(OutcomeCollision, now)
	case OutcomeGoal:
		e.state.Score++
		e.beginReset(OutcomeGoal, now)
	}

	if err := e.render(); err != nil {
		e.fail(err)
		return
	}
	if e.state.Phase == PhasePlaying {
		e.tick = e.sched.ScheduleTick(e.Tick)
	}
}

// HandleInput queues a move for the next tick. Input outside the playing
// phase, or with an unknown direction, is dropped.
func (e *Engine) HandleInput(dir core.Direction) {
	if e.state.Phase != PhasePlaying || !dir.Valid() {
		return
	}
	e.inputs = append(e.inputs, dir)
}

// Render redraws the current frame, e.g. after the output surface changed.
func (e *Engine) Render() error {
	return e.render()
}

// Reconfigure swaps in new settings at the next round boundary. The board
// itself (grid and sprites) cannot change once the engine exists.
func (e *Engine) Reconfigure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !e.settings.sameBoard(s) {
		return fmt.Errorf("crossing: board dimensions and sprites cannot change while running")
	}
	e.pending = &s
	e.logger.Info("settings updated, applying next round")
	return nil
}

// Snapshot returns a copy of the state that shares nothing mutable with
// the engine.
func (e *Engine) Snapshot() GameState {
	st := e.state
	st.Enemies = append([]Enemy(nil), e.state.Enemies...)
	st.Player.Moves = maps.Clone(e.state.Player.Moves)
	return st
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// Settings returns the settings of the current round.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Err returns the fatal error that stopped the loop, if any.
func (e *Engine) Err() error {
	return e.err
}

// beginReset leaves the playing phase and schedules the next round. Only
// one reset can be in flight.
func (e *Engine) beginReset(outcome RoundOutcome, now time.Time) {
	if e.state.Phase != PhasePlaying {
		return
	}
	e.cancelTick()
	e.state.Phase = PhaseResetting
	e.inputs = e.inputs[:0]

	report := RoundReport{
		Round:    e.state.Round,
		Seed:     e.roundSeed,
		Outcome:  outcome,
		Result:   outcome.String(),
		Score:    e.state.Score,
		Layout:   e.state.Layout.String(),
		Enemies:  len(e.state.Enemies),
		Duration: now.Sub(e.roundStart),
	}
	e.logger.Info("round over",
		"round", report.Round,
		"outcome", report.Result,
		"score", report.Score,
		"duration", report.Duration,
	)
	for _, fn := range e.observers {
		fn(report)
	}

	e.sched.ScheduleDelayed(e.reenter, e.settings.ResetDelay)
}

func (e *Engine) reenter() {
	if e.state.Phase != PhaseResetting {
		return
	}
	if err := e.Init(); err != nil {
		e.fail(err)
	}
}

func (e *Engine) cancelTick() {
	if e.tick != 0 {
		e.sched.CancelTick(e.tick)
		e.tick = 0
	}
}

func (e *Engine) fail(err error) {
	e.cancelTick()
	if e.err == nil {
		e.err = err
		e.logger.Error("game stopped", "error", err)
	}
}
