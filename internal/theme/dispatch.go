package theme

import "sync"

// Dispatcher runs work on the UI goroutine. Dispatch must not block waiting
// for fn, and work must run in the order it was dispatched.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) { f(fn) }

// Immediate runs work inline on the calling goroutine.
var Immediate Dispatcher = DispatchFunc(func(fn func()) { fn() })

// Queue is a FIFO Dispatcher drained by the UI loop.
// Dispatch is safe from any goroutine; Drain must only be called on the UI goroutine.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    func()
}

// NewQueue creates a queue. wake, if non-nil, is called after every Dispatch
// and should schedule a Drain on the UI goroutine without blocking.
func NewQueue(wake func()) *Queue {
	return &Queue{wake: wake}
}

// SetWake replaces the wake callback.
func (q *Queue) SetWake(wake func()) {
	q.mu.Lock()
	q.wake = wake
	q.mu.Unlock()
}

// Dispatch enqueues fn.
func (q *Queue) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	wake := q.wake
	q.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// Drain runs queued work until the queue is empty, including work queued
// while draining. It returns the number of functions run.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return ran
		}
		for _, fn := range batch {
			fn()
			ran++
		}
	}
}

// Len returns the number of queued functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
