package crossing

import (
	"sort"
	"sync"
	"time"
)

// TickHandle identifies an armed frame callback. The zero handle is never
// issued and means "nothing armed".
type TickHandle uint64

// Scheduler drives the engine. Implementations run every callback on a
// single loop, one at a time.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// ScheduleTick arms fn for the next frame.
	ScheduleTick(fn func(now time.Time)) TickHandle
	// CancelTick disarms a frame callback that has not run yet.
	CancelTick(h TickHandle)
	// ScheduleDelayed runs fn once after d has elapsed.
	ScheduleDelayed(fn func(), d time.Duration)
}

// StepScheduler is a Scheduler whose clock only moves when Step is called.
// It lets tests and headless runs drive the engine frame by frame.
// Post is the only method safe to call from other goroutines.
type StepScheduler struct {
	now    time.Time
	next   TickHandle
	frames map[TickHandle]func(time.Time)
	timers []stepTimer
	seq    int

	mu     sync.Mutex
	posted []func()
}

type stepTimer struct {
	at  time.Time
	seq int
	fn  func()
}

// NewStepScheduler creates a scheduler whose clock starts at start.
func NewStepScheduler(start time.Time) *StepScheduler {
	return &StepScheduler{
		now:    start,
		frames: make(map[TickHandle]func(time.Time)),
	}
}

// Now returns the simulated time.
func (s *StepScheduler) Now() time.Time {
	return s.now
}

// ScheduleTick arms fn for the next Step.
func (s *StepScheduler) ScheduleTick(fn func(now time.Time)) TickHandle {
	s.next++
	s.frames[s.next] = fn
	return s.next
}

// CancelTick disarms h. Unknown or already-run handles are ignored.
func (s *StepScheduler) CancelTick(h TickHandle) {
	delete(s.frames, h)
}

// ScheduleDelayed queues fn to run once the clock has moved d past now.
func (s *StepScheduler) ScheduleDelayed(fn func(), d time.Duration) {
	s.seq++
	s.timers = append(s.timers, stepTimer{at: s.now.Add(d), seq: s.seq, fn: fn})
}

// Post queues fn to run at the start of the next Step.
func (s *StepScheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Armed reports how many frame callbacks are waiting.
func (s *StepScheduler) Armed() int {
	return len(s.frames)
}

// Pending reports how many delayed callbacks are waiting.
func (s *StepScheduler) Pending() int {
	return len(s.timers)
}

// Step advances the clock by d, then runs posted callbacks, due timers in
// deadline order, and finally the armed frames. Frames armed by posted
// callbacks or timers run in this step; frames armed by a frame wait for
// the next Step.
func (s *StepScheduler) Step(d time.Duration) {
	s.now = s.now.Add(d)

	s.mu.Lock()
	posted := s.posted
	s.posted = nil
	s.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	s.runTimers()

	if len(s.frames) == 0 {
		return
	}
	handles := make([]TickHandle, 0, len(s.frames))
	for h := range s.frames {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		// An earlier frame may have cancelled this one.
		fn, ok := s.frames[h]
		if !ok {
			continue
		}
		delete(s.frames, h)
		fn(s.now)
	}
}

func (s *StepScheduler) runTimers() {
	for {
		idx := -1
		for i, t := range s.timers {
			if t.at.After(s.now) {
				continue
			}
			if idx < 0 || t.at.Before(s.timers[idx].at) ||
				(t.at.Equal(s.timers[idx].at) && t.seq < s.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		t := s.timers[idx]
		s.timers = append(s.timers[:idx], s.timers[idx+1:]...)
		t.fn()
	}
}
