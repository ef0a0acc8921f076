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
	"errors"

	gerrors "github.com/tochemey/faultline/errors"
	"github.com/tochemey/faultline/future"
)

type binder interface {
	bind(op Operation, positional []any, named Args) (Args, error)
}

// Ref is the public handle of an actor. Calls made through a Ref are turned
// into envelopes sent to the actor's mailbox; the handler never runs on the
// caller's goroutine. A Ref holds the identity, the mailbox and the protocol
// binder only, so it is cheap to copy and never exposes actor state.
//
// Typed proxies wrap a Ref and forward each method to Invoke:
//
//	type GreeterRef struct{ *actor.Ref }
//
//	func (r GreeterRef) Greet(whom string) (future.Future[any], error) {
//	    return r.Invoke("greet", whom)
//	}
type Ref struct {
	id      string
	mailbox *Mailbox
	binder  binder
}

func newRef(id string, mailbox *Mailbox, binder binder) *Ref {
	return &Ref{
		id:      id,
		mailbox: mailbox,
		binder:  binder,
	}
}

// ID returns the actor identity
func (r *Ref) ID() string {
	return r.id
}

// Invoke calls op with positional arguments and returns its Handle.
// Binding failures, a full mailbox and a stopped actor are reported
// synchronously; everything else is delivered through the Handle.
func (r *Ref) Invoke(op Operation, positional ...any) (future.Future[any], error) {
	args, err := r.binder.bind(op, positional, nil)
	if err != nil {
		return nil, err
	}
	return r.send(op, args)
}

// InvokeNamed calls op with keyword arguments and returns its Handle.
func (r *Ref) InvokeNamed(op Operation, args Args) (future.Future[any], error) {
	bound, err := r.binder.bind(op, nil, args)
	if err != nil {
		return nil, err
	}
	return r.send(op, bound)
}

// Send enqueues op with args as given, without binding. Unknown operations are
// reported through the Handle.
func (r *Ref) Send(op Operation, args Args) (future.Future[any], error) {
	return r.send(op, args)
}

// Ask invokes op and waits for its result.
func (r *Ref) Ask(ctx context.Context, op Operation, positional ...any) (any, error) {
	handle, err := r.Invoke(op, positional...)
	if err != nil {
		return nil, err
	}
	return handle.Await(ctx)
}

// Ping sends the built-in ping operation and waits for data to come back.
func (r *Ref) Ping(ctx context.Context, data any) (any, error) {
	return r.Ask(ctx, PingOperation, data)
}

// Equals reports whether both refs address the same actor instance
func (r *Ref) Equals(other *Ref) bool {
	return other != nil && r.id == other.id && r.mailbox == other.mailbox
}

func (r *Ref) send(op Operation, args Args) (future.Future[any], error) {
	handle, err := r.mailbox.Send(NewEnvelope(r.id, op, args))
	if err != nil {
		if errors.Is(err, gerrors.ErrMailboxClosed) {
			return nil, gerrors.NewErrDead(r.id)
		}
		return nil, err
	}
	return handle, nil
}
