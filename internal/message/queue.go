package message

import (
	"sync"

	"github.com/grindlemire/go-scene/internal/property"
)

// Queue is the FIFO of deferred operations for one scene.
type Queue struct {
	mu      sync.Mutex
	pending *ingress

	// draining is owned by the update goroutine.
	draining *ingress

	observe func(Kind)
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithApplyObserver registers fn to be called with the kind of every message
// after it is applied. It runs on the update goroutine.
func WithApplyObserver(fn func(Kind)) QueueOption {
	return func(q *Queue) {
		q.observe = fn
	}
}

// NewQueue returns an empty queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		pending:  &ingress{},
		draining: &ingress{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends m to the queue. Safe to call from any goroutine, including
// from inside a message being applied; such messages run on the next drain.
func (q *Queue) Enqueue(m Message) {
	if m.Apply == nil {
		panic("scene: message with nil Apply")
	}
	q.mu.Lock()
	q.pending.push(m)
	q.mu.Unlock()
}

// Len returns the number of messages waiting for the next drain.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.len()
}

// DrainAndApply applies every message enqueued before the call, in FIFO
// order, and returns how many were applied. Update goroutine only.
//
// The pending list is swapped out under the lock and applied without holding
// it, so producers never wait on message application.
func (q *Queue) DrainAndApply(idx property.BufferIndex) int {
	q.mu.Lock()
	q.pending, q.draining = q.draining, q.pending
	q.mu.Unlock()

	n := 0
	for {
		m, ok := q.draining.pop()
		if !ok {
			break
		}
		m.Apply(idx)
		n++
		if q.observe != nil {
			q.observe(m.Kind)
		}
	}
	return n
}
