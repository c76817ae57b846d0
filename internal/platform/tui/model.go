package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-crossing/internal/assets"
	"github.com/vovakirdan/tui-crossing/internal/core"
	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

// Journal records finished rounds. *storage.Store implements it.
type Journal interface {
	RecordRound(session string, r crossing.RoundReport) (int64, error)
}

// Publisher broadcasts finished rounds. *feed.Hub implements it.
type Publisher interface {
	Publish(session string, r crossing.RoundReport)
}

// Options configures a game model.
type Options struct {
	Session   string
	Runtime   core.RuntimeConfig
	Journal   Journal
	Publisher Publisher
	Logger    *log.Logger
	Manifest  []byte // sprite manifest, embedded default when nil
}

// Model is the Bubble Tea model running one crossing game.
type Model struct {
	engine  *crossing.Engine
	sched   *loopScheduler
	canvas  *Canvas
	screen  *core.Screen
	keys    KeyMap
	help    help.Model
	session string
	logger  *log.Logger

	journal   Journal
	publisher Publisher

	quitting bool
	err      error
}

// NewModel wires an engine to the Bubble Tea loop. The game starts when
// the program calls Init.
func NewModel(s crossing.Settings, opts Options) (*Model, error) {
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		sched:     newLoopScheduler(cfg.TickRate),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		session:   opts.Session,
		logger:    logger,
		journal:   opts.Journal,
		publisher: opts.Publisher,
	}
	m.help.Width = cfg.ScreenW
	m.canvas = NewCanvas(m.screen, s)

	loaderOpts := []assets.Option{assets.WithDispatch(m.sched.Post), assets.WithLogger(logger)}
	if opts.Manifest != nil {
		loaderOpts = append(loaderOpts, assets.WithManifest(opts.Manifest))
	}

	engineOpts := []crossing.Option{
		crossing.WithLogger(logger),
		crossing.WithRoundObserver(m.roundOver),
	}
	if cfg.Seed != 0 {
		engineOpts = append(engineOpts, crossing.WithSeed(cfg.Seed))
	}

	engine, err := crossing.New(s, m.sched, m.canvas, assets.NewLoader(loaderOpts...), engineOpts...)
	if err != nil {
		return nil, err
	}
	m.engine = engine
	return m, nil
}

// Init starts loading sprites; the first round begins once they are ready.
func (m *Model) Init() tea.Cmd {
	m.engine.Start()
	return tea.Batch(m.sched.listen(), m.sched.drain())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)

	default:
		m.sched.handle(msg)
	}

	if err := m.engine.Err(); err != nil && m.err == nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, m.sched.drain()
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	if dir, ok := action.Direction(); ok {
		m.engine.HandleInput(dir)
	}
	return nil
}

// handleResize re-centers the board and redraws the current frame.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	helpRows := 1
	m.screen.Resize(msg.Width, max(1, msg.Height-helpRows))
	m.screen.Clear()
	m.canvas.Layout()
	m.help.Width = msg.Width

	if err := m.engine.Render(); err != nil && !errors.Is(err, crossing.ErrMapNotInitialized) {
		m.logger.Warn("redraw failed", "error", err)
	}
}

// roundOver journals and publishes every finished round, best effort.
func (m *Model) roundOver(r crossing.RoundReport) {
	if m.journal != nil {
		if _, err := m.journal.RecordRound(m.session, r); err != nil {
			m.logger.Warn("journal write failed", "error", err)
		}
	}
	if m.publisher != nil {
		m.publisher.Publish(m.session, r)
	}
}

// Reconfigure hands new settings to the engine; they apply from the next
// round. Safe to call from any goroutine.
func (m *Model) Reconfigure(s crossing.Settings) {
	m.sched.Post(func() {
		if err := m.engine.Reconfigure(s); err != nil {
			m.logger.Warn("config reload rejected", "error", err)
		}
	})
}

// Err returns the error that ended the game, if any.
func (m *Model) Err() error {
	return m.err
}

// Engine exposes the engine for inspection.
func (m *Model) Engine() *crossing.Engine {
	return m.engine
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.engine.Phase() == crossing.PhaseLoading {
		m.canvas.ShowMessage("CROSSING", "", "loading sprites...")
	}
	if w, h := m.canvas.FrameSize(); m.screen.Width() < w || m.screen.Height() < h {
		return tooSmall(w, h+1)
	}

	helpView := m.help.View(m.keys)
	board := RenderScreen(m.screen)
	// Full help is taller than the one row reserved for it; give up the
	// bottom screen rows instead of scrolling.
	if extra := strings.Count(helpView, "\n"); extra > 0 {
		lines := strings.Split(board, "\n")
		board = strings.Join(lines[:max(0, len(lines)-extra)], "\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return board + "\n" + helpStyle.Render(helpView)
}

func tooSmall(w, h int) string {
	var b strings.Builder
	b.WriteString("Terminal too small.\n")
	fmt.Fprintf(&b, "Need at least %dx%d.", w, h)
	return b.String()
}

// Run starts the Bubble Tea program in the current terminal and returns
// once the player quits or the game fails.
func Run(model *Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
