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

package future

import (
	"context"
	"fmt"
	"sync"

	gerrors "github.com/tochemey/faultline/errors"
)

// Future is the read side of a single-assignment result cell.
//
// A Future is resolved exactly once, either with a value, with a failure or by
// cancellation. Any number of goroutines may wait on it.
//
// Example usage:
//
//	promise := future.NewPromise[string]()
//	go func() { promise.Success("done") }()
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	value, err := promise.Future().Await(ctx)
type Future[T any] interface {
	// Await blocks until the Future is resolved or the context is done.
	// A context expiry abandons the wait only; the Future stays pending.
	Await(ctx context.Context) (T, error)
	// Done returns a channel closed once the Future is resolved.
	Done() <-chan struct{}
	// IsDone reports whether the Future has been resolved.
	IsDone() bool
	// IsCancelled reports whether the Future was resolved by cancellation.
	IsCancelled() bool
}

type future[T any] struct {
	done      chan struct{}
	value     T
	err       error
	cancelled bool
}

var _ Future[any] = (*future[any])(nil)

// Await blocks until the Future is resolved or the context is done.
func (x *future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	default:
	}

	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the Future is resolved.
func (x *future[T]) Done() <-chan struct{} {
	return x.done
}

// IsDone reports whether the Future has been resolved.
func (x *future[T]) IsDone() bool {
	select {
	case <-x.done:
		return true
	default:
		return false
	}
}

// IsCancelled reports whether the Future was resolved by cancellation.
func (x *future[T]) IsCancelled() bool {
	return x.IsDone() && x.cancelled
}

// Promise is the write side of a Future. Only the first of Success, Failure
// or Cancel takes effect; later calls return false.
type Promise[T any] struct {
	mu       sync.Mutex
	resolved bool
	future   *future[T]
}

// NewPromise creates an unresolved Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		future: &future[T]{done: make(chan struct{})},
	}
}

// Success resolves the Future with a value.
func (p *Promise[T]) Success(value T) bool {
	return p.complete(value, nil, false)
}

// Failure resolves the Future with an error.
func (p *Promise[T]) Failure(err error) bool {
	var zero T
	return p.complete(zero, err, false)
}

// Cancel resolves the Future with ErrCancelled and marks it cancelled.
func (p *Promise[T]) Cancel() bool {
	var zero T
	return p.complete(zero, gerrors.ErrCancelled, true)
}

// Future returns the read side of the Promise.
func (p *Promise[T]) Future() Future[T] {
	return p.future
}

func (p *Promise[T]) complete(value T, err error, cancelled bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolved {
		return false
	}

	p.resolved = true
	p.future.value = value
	p.future.err = err
	p.future.cancelled = cancelled
	close(p.future.done)
	return true
}

// New runs task in its own goroutine and returns a Future resolved with its
// outcome. A panic in task resolves the Future with a PanicError.
func New[T any](ctx context.Context, task func(context.Context) (T, error)) Future[T] {
	promise := NewPromise[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(gerrors.NewPanicError(fmt.Errorf("%v", r)))
			}
		}()

		value, err := task(ctx)
		if err != nil {
			promise.Failure(err)
			return
		}
		promise.Success(value)
	}()
	return promise.Future()
}
