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
	"time"

	"github.com/google/uuid"

	"github.com/tochemey/faultline/future"
)

// Envelope is the immutable record of one operation call addressed to an actor.
// It is created by a Ref, queued in the target's Mailbox and consumed exactly
// once by the target's processing loop, which resolves its Handle.
type Envelope struct {
	id        string
	target    string
	operation Operation
	args      Args
	sentAt    time.Time
	promise   *future.Promise[any]
}

// NewEnvelope creates an Envelope for target. The arguments are copied.
func NewEnvelope(target string, operation Operation, args Args) *Envelope {
	return &Envelope{
		id:        uuid.NewString(),
		target:    target,
		operation: operation,
		args:      args.clone(),
		sentAt:    time.Now(),
		promise:   future.NewPromise[any](),
	}
}

// ID returns the correlation identifier of the envelope
func (e *Envelope) ID() string {
	return e.id
}

// Target returns the identity of the actor the envelope is addressed to
func (e *Envelope) Target() string {
	return e.target
}

// Operation returns the operation name
func (e *Envelope) Operation() Operation {
	return e.operation
}

// Args returns a copy of the bound arguments
func (e *Envelope) Args() Args {
	return e.args.clone()
}

// SentAt returns the envelope creation time
func (e *Envelope) SentAt() time.Time {
	return e.sentAt
}

// Handle returns the correlation handle resolved by the target's loop
func (e *Envelope) Handle() future.Future[any] {
	return e.promise.Future()
}

func (e *Envelope) succeed(value any) bool {
	return e.promise.Success(value)
}

func (e *Envelope) fail(err error) bool {
	return e.promise.Failure(err)
}

func (e *Envelope) cancel() bool {
	return e.promise.Cancel()
}
