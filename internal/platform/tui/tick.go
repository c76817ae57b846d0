// Package tui provides the Bubble Tea front-end for the crossing game.
// It drives the engine from the Bubble Tea loop, draws it onto a cell
// screen, and serves the same game over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

// frameMsg fires when a frame is due.
type frameMsg time.Time

// timerMsg fires when a delayed callback is due.
type timerMsg struct{ id uint64 }

// postedMsg carries a callback handed over from another goroutine.
type postedMsg struct{ fn func() }

// loopScheduler implements crossing.Scheduler on top of Bubble Tea
// commands. Everything except Post runs inside Update, so callbacks never
// overlap. Commands created while handling a message are collected and
// returned by drain.
type loopScheduler struct {
	interval time.Duration

	next     crossing.TickHandle
	frames   map[crossing.TickHandle]func(time.Time)
	frameDue bool
	timerSeq uint64
	timers   map[uint64]func()
	posted   chan func()
	cmds     []tea.Cmd
}

func newLoopScheduler(fps int) *loopScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &loopScheduler{
		interval: time.Second / time.Duration(fps),
		frames:   make(map[crossing.TickHandle]func(time.Time)),
		timers:   make(map[uint64]func()),
		posted:   make(chan func(), 16),
	}
}

// Now implements crossing.Scheduler.
func (s *loopScheduler) Now() time.Time {
	return time.Now()
}

// ScheduleTick implements crossing.Scheduler. Frames armed between two
// ticks share one tea.Tick.
func (s *loopScheduler) ScheduleTick(fn func(time.Time)) crossing.TickHandle {
	s.next++
	s.frames[s.next] = fn
	if !s.frameDue {
		s.frameDue = true
		s.cmds = append(s.cmds, tea.Tick(s.interval, func(t time.Time) tea.Msg {
			return frameMsg(t)
		}))
	}
	return s.next
}

// CancelTick implements crossing.Scheduler. The pending tea.Tick still
// arrives but finds nothing to run.
func (s *loopScheduler) CancelTick(h crossing.TickHandle) {
	delete(s.frames, h)
}

// ScheduleDelayed implements crossing.Scheduler.
func (s *loopScheduler) ScheduleDelayed(fn func(), d time.Duration) {
	s.timerSeq++
	id := s.timerSeq
	s.timers[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
}

// Post hands fn to the loop. It is safe to call from any goroutine.
func (s *loopScheduler) Post(fn func()) {
	s.posted <- fn
}

// listen waits for the next posted callback.
func (s *loopScheduler) listen() tea.Cmd {
	return func() tea.Msg {
		return postedMsg{fn: <-s.posted}
	}
}

// drain returns the commands queued since the last drain.
func (s *loopScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// handle runs the callbacks msg is due for. It reports false for messages
// that are not the scheduler's.
func (s *loopScheduler) handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case frameMsg:
		s.frameDue = false
		frames := s.frames
		s.frames = make(map[crossing.TickHandle]func(time.Time))
		for _, fn := range frames {
			fn(time.Time(msg))
		}
	case timerMsg:
		fn, ok := s.timers[msg.id]
		if !ok {
			return true
		}
		delete(s.timers, msg.id)
		fn()
	case postedMsg:
		msg.fn()
		s.cmds = append(s.cmds, s.listen())
	default:
		return false
	}
	return true
}
