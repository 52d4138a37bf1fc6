// Package mailbox provides an unbounded FIFO queue with channel-based delivery.
//
// Senders never block on a slow consumer: values are buffered until the
// receiver drains them. Closing the mailbox stops accepting new values; the
// values already queued are still delivered before the output channel closes.
package mailbox

import "sync"

// Mailbox is an unbounded, ordered, multi-producer single-consumer queue.
type Mailbox[T any] struct {
	mu     sync.Mutex
	closed bool
	in     chan T
	out    chan T
}

// New creates a mailbox and starts its delivery goroutine.
func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go m.pump()
	return m
}

// Send enqueues v. It returns false if the mailbox is closed.
func (m *Mailbox[T]) Send(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	// pump is always ready to receive, so this only waits for a hand-off.
	m.in <- v
	return true
}

// Recv returns the delivery channel. It is closed once the mailbox is closed
// and every queued value has been received.
func (m *Mailbox[T]) Recv() <-chan T {
	return m.out
}

// Close stops accepting values. Safe to call more than once.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.in)
}

// Closed reports whether Close has been called.
func (m *Mailbox[T]) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mailbox[T]) pump() {
	defer close(m.out)

	var pending []T
	in := m.in
	for in != nil || len(pending) > 0 {
		var (
			out  chan T
			next T
		)
		if len(pending) > 0 {
			out = m.out
			next = pending[0]
		}

		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, v)
		case out <- next:
			var zero T
			pending[0] = zero
			pending = pending[1:]
		}
	}
}
