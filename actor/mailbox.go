/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"context"
	"sync"

	gerrors "github.com/tochemey/faultline/errors"
	"github.com/tochemey/faultline/future"
)

// Mailbox is the FIFO queue of envelopes owned by one actor.
//
// Concurrency
//   - Send is safe for any number of concurrent producers and never blocks.
//   - Receive must have exactly one caller: the owning actor's loop.
//   - DrainMatching runs in the same critical section that guards Send, so an
//     envelope sent concurrently with a drain is either drained or left queued,
//     never lost.
//
// A capacity of zero or less makes the mailbox unbounded.
type Mailbox struct {
	mu       sync.Mutex
	queue    []*Envelope
	capacity int
	closed   bool
	// buffered so that a wake-up sent while the reader is busy is not lost
	signal chan struct{}
}

// NewMailbox creates a Mailbox holding at most capacity envelopes.
func NewMailbox(capacity int) *Mailbox {
	return &Mailbox{
		capacity: capacity,
		signal:   make(chan struct{}, 1),
	}
}

// Send enqueues envelope and returns its Handle. It fails synchronously with
// ErrMailboxFull when the mailbox is bounded and full, and with ErrMailboxClosed
// once the mailbox has been closed.
func (m *Mailbox) Send(envelope *Envelope) (future.Future[any], error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, gerrors.ErrMailboxClosed
	}

	if m.capacity > 0 && len(m.queue) >= m.capacity {
		m.mu.Unlock()
		return nil, gerrors.NewErrMailboxFull(envelope.Target(), m.capacity)
	}

	m.queue = append(m.queue, envelope)
	m.mu.Unlock()

	m.notify()
	return envelope.Handle(), nil
}

// Receive returns the oldest queued envelope, waiting until one is available,
// the context is done or the mailbox is closed and empty.
func (m *Mailbox) Receive(ctx context.Context) (*Envelope, error) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			envelope := m.queue[0]
			m.queue[0] = nil
			m.queue = m.queue[1:]
			if len(m.queue) == 0 {
				m.queue = nil
			}
			m.mu.Unlock()
			return envelope, nil
		}

		closed := m.closed
		m.mu.Unlock()

		if closed {
			return nil, gerrors.ErrMailboxClosed
		}

		select {
		case <-m.signal:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// DrainMatching removes every queued envelope addressed to target, or every
// envelope when target is empty, and returns them in arrival order. The
// remaining envelopes keep their relative order. When cancel is set, each
// removed envelope's Handle is cancelled before DrainMatching returns.
func (m *Mailbox) DrainMatching(target string, cancel bool) []*Envelope {
	m.mu.Lock()
	drained := make([]*Envelope, 0, len(m.queue))
	kept := m.queue[:0]
	for _, envelope := range m.queue {
		if target == "" || envelope.Target() == target {
			drained = append(drained, envelope)
			continue
		}
		kept = append(kept, envelope)
	}

	for i := len(kept); i < len(m.queue); i++ {
		m.queue[i] = nil
	}
	m.queue = kept
	m.mu.Unlock()

	if cancel {
		for _, envelope := range drained {
			envelope.cancel()
		}
	}
	return drained
}

// Close makes further sends fail. Queued envelopes remain available to Receive
// and DrainMatching.
func (m *Mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.notify()
}

// IsClosed reports whether the mailbox has been closed
func (m *Mailbox) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Len returns a snapshot of the number of queued envelopes
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// IsEmpty reports whether the mailbox currently holds no envelopes
func (m *Mailbox) IsEmpty() bool {
	return m.Len() == 0
}

// Capacity returns the mailbox bound; zero or less means unbounded
func (m *Mailbox) Capacity() int {
	return m.capacity
}

func (m *Mailbox) notify() {
	select {
	case m.signal <- struct{}{}:
	default:
	}
}
