// Package counter animates a displayed number from zero up to a target value.
//
// An Engine is driven by a frame.Scheduler: every frame it recomputes
//
//	progress = min(elapsed/duration, 1)
//	display  = target * easing(progress)
//
// and requests the next frame until progress reaches 1, at which point the
// display is pinned to the target exactly. A new target cancels the running
// animation and starts over from zero.
//
// Engines are not safe for concurrent use; they share the scheduler's owner
// goroutine.
package counter

import (
	"math"
	"time"

	"github.com/jask/campusboard/internal/frame"
)

const (
	// CompactDuration suits small dashboard cards.
	CompactDuration = 1500 * time.Millisecond
	// HeroDuration suits headline metrics.
	HeroDuration = 2000 * time.Millisecond
)

// Options configure an Engine. Zero values fall back to CompactDuration,
// EaseOutQuart and English grouping.
type Options struct {
	Duration  time.Duration
	Easing    Easing
	Prefix    string
	Suffix    string
	Formatter *Formatter
}

// Cancel releases an animation run. It is safe to call more than once and
// never affects a run it was not issued for.
type Cancel func()

type state int

const (
	stateIdle state = iota
	stateRunning
	stateDone
	stateStopped
)

// Engine is one animated counter.
type Engine struct {
	sched frame.Scheduler
	opts  Options

	state   state
	run     uint64
	target  float64
	display float64
	start   time.Time
	started bool
	frameID frame.ID
	queued  bool
}

// New returns an idle engine showing zero.
func New(sched frame.Scheduler, opts Options) *Engine {
	if opts.Easing == nil {
		opts.Easing = EaseOutQuart
	}
	if opts.Formatter == nil {
		opts.Formatter = defaultFormatter
	}
	if opts.Duration == 0 {
		opts.Duration = CompactDuration
	}
	return &Engine{sched: sched, opts: opts}
}

// SetTarget starts animating toward raw (a number, or a string with a number
// embedded in it). Invalid input is ignored and leaves the engine as it was.
// A target numerically equal to the current one does not restart the run
// unless that run was stopped.
func (e *Engine) SetTarget(raw any) Cancel {
	v, ok := ParseTarget(raw)
	if !ok {
		return e.cancelFor(e.run)
	}
	if (e.state == stateRunning || e.state == stateDone) && v == e.target {
		return e.cancelFor(e.run)
	}

	e.dropFrame()
	e.run++
	e.target = v
	e.display = 0
	e.started = false
	e.state = stateRunning
	e.requestFrame()
	return e.cancelFor(e.run)
}

// Stop cancels the running animation and freezes the display where it is.
func (e *Engine) Stop() {
	if e.state != stateRunning {
		return
	}
	e.dropFrame()
	e.state = stateStopped
}

// Settle cancels any pending frame and shows the target immediately.
func (e *Engine) Settle() {
	if e.state == stateIdle {
		return
	}
	e.dropFrame()
	e.display = e.target
	e.state = stateDone
}

// Display is the value currently shown.
func (e *Engine) Display() float64 { return e.display }

// Target returns the current target and whether one was ever accepted.
func (e *Engine) Target() (float64, bool) { return e.target, e.state != stateIdle }

// Running reports whether a run is waiting on frames.
func (e *Engine) Running() bool { return e.state == stateRunning }

// Done reports whether the last run reached its target.
func (e *Engine) Done() bool { return e.state == stateDone }

// Text renders prefix + formatted display + suffix.
func (e *Engine) Text() string {
	return e.opts.Prefix + e.opts.Formatter.Format(e.display) + e.opts.Suffix
}

func (e *Engine) cancelFor(run uint64) Cancel {
	return func() {
		if e.run == run {
			e.Stop()
		}
	}
}

func (e *Engine) requestFrame() {
	e.frameID = e.sched.Request(e.tick)
	e.queued = true
}

func (e *Engine) dropFrame() {
	if e.queued {
		e.sched.Cancel(e.frameID)
		e.queued = false
	}
}

func (e *Engine) tick(now time.Time) {
	e.queued = false
	if !e.started {
		e.start = now
		e.started = true
	}
	progress := 1.0
	if e.opts.Duration > 0 {
		elapsed := now.Sub(e.start)
		if elapsed < 0 {
			elapsed = 0
		}
		progress = math.Min(float64(elapsed)/float64(e.opts.Duration), 1)
	}
	if progress >= 1 {
		e.display = e.target
		e.state = stateDone
		return
	}
	e.display = e.target * e.opts.Easing(progress)
	e.requestFrame()
}
