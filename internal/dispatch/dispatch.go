// Package dispatch marshals background completions onto the single
// context allowed to touch presentation state.
//
// Search and thumbnail work finishes on background goroutines. Before a
// completion may change anything the user sees, it is handed to a
// Dispatcher, which runs it where the presentation layer wants:
//
//   - Inline runs the callback on the calling goroutine (CLI, simple tests)
//   - Queue collects callbacks for an owner loop that drains them
//   - Func adapts any function, e.g. one that forwards into a Bubble Tea
//     program as a message
package dispatch

import (
	"context"
	"sync"
)

// Dispatcher runs fn on the designated UI-update context.
type Dispatcher interface {
	Dispatch(fn func())
}

// Inline runs callbacks immediately on the calling goroutine.
type Inline struct{}

// Dispatch calls fn.
func (Inline) Dispatch(fn func()) { fn() }

// Func adapts an ordinary function to the Dispatcher interface.
type Func func(fn func())

// Dispatch calls f(fn).
func (f Func) Dispatch(fn func()) { f(fn) }

// Queue buffers callbacks in FIFO order until the owning goroutine runs
// them. Dispatch never blocks.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	ready   chan struct{}
	closed  bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Dispatch appends fn. Callbacks dispatched after Close are dropped.
func (q *Queue) Dispatch(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Drain runs every callback queued so far and returns how many ran.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// RunOne blocks until a callback is available, runs it and returns true.
// It returns false when ctx is done first.
func (q *Queue) RunOne(ctx context.Context) bool {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			fn := q.pending[0]
			q.pending = q.pending[1:]
			q.mu.Unlock()
			fn()
			return true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return false
		case <-q.ready:
		}
	}
}

// Run drains callbacks until ctx is done.
func (q *Queue) Run(ctx context.Context) {
	for q.RunOne(ctx) {
	}
}

// Len returns the number of callbacks waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close drops pending callbacks and refuses new ones.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.pending = nil
	q.mu.Unlock()
}
