// Package frame provides a cooperative per-frame callback queue, the terminal
// equivalent of requestAnimationFrame / cancelAnimationFrame.
//
// A Loop is not safe for concurrent use. It is owned by the goroutine that
// drives the UI (the bubbletea update loop) and every Request, Cancel and
// Flush call must come from there.
package frame

import "time"

// ID identifies a queued callback.
type ID uint64

// Callback receives the timestamp of the frame it runs in.
type Callback func(now time.Time)

// Scheduler is the host primitive animations are driven by.
type Scheduler interface {
	Request(cb Callback) ID
	Cancel(id ID)
}

type entry struct {
	id ID
	cb Callback
}

// Loop queues callbacks until the host flushes the next frame.
type Loop struct {
	nextID   ID
	queue    []*entry
	flushing []*entry
}

// NewLoop returns an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Request queues cb for the next Flush.
func (l *Loop) Request(cb Callback) ID {
	l.nextID++
	l.queue = append(l.queue, &entry{id: l.nextID, cb: cb})
	return l.nextID
}

// Cancel drops a queued callback. Cancelling an unknown or already-run ID is a
// no-op. A callback cancelled while its batch is being flushed does not run.
func (l *Loop) Cancel(id ID) {
	for i, e := range l.queue {
		if e.id == id {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
	for _, e := range l.flushing {
		if e.id == id {
			e.cb = nil
			return
		}
	}
}

// Pending reports how many callbacks wait for the next frame.
func (l *Loop) Pending() int {
	return len(l.queue)
}

// Flush runs every callback queued before the call, in request order, with the
// same timestamp. Callbacks requested while flushing wait for the next frame.
// It returns the number of callbacks run.
func (l *Loop) Flush(now time.Time) int {
	if len(l.queue) == 0 {
		return 0
	}
	l.flushing = l.queue
	l.queue = nil
	ran := 0
	for _, e := range l.flushing {
		if e.cb == nil {
			continue
		}
		cb := e.cb
		e.cb = nil
		cb(now)
		ran++
	}
	l.flushing = nil
	return ran
}
