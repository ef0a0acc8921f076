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
	"time"

	gerrors "github.com/tochemey/faultline/errors"
	"github.com/tochemey/faultline/fixture"
)

// Start returns the Ref of the actor described by props, creating the actor
// when no live instance with that identity exists. It never waits for the
// setup hook; use Setup for that.
//
// When the registered instance is being stopped, Start waits for it to be
// gone and creates a fresh one.
func Start[A Actor](ctx context.Context, sys *System, props *Props[A]) (*Ref, error) {
	proc, err := spawn(ctx, sys, props)
	if err != nil {
		return nil, err
	}
	return proc.ref(), nil
}

// Setup is like Start but waits up to timeout for the setup hook to complete.
// A live instance is never set up twice. ErrSetupTimeout only abandons the
// wait: the hook keeps running.
func Setup[A Actor](ctx context.Context, sys *System, props *Props[A], timeout time.Duration) (*Ref, error) {
	if timeout <= 0 {
		return nil, gerrors.ErrInvalidTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	proc, err := spawn(ctx, sys, props)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, gerrors.ErrSetupTimeout
		}
		return nil, err
	}

	ref, err := proc.setupHandle().Await(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !proc.setupHandle().IsDone() {
			return nil, gerrors.ErrSetupTimeout
		}
		return nil, err
	}
	return ref, nil
}

// Stop requests the actor identified by id to stop and returns at once.
// The in-flight operation completes; envelopes still queued are cancelled.
func Stop(_ context.Context, sys *System, id string) (*Ref, error) {
	proc, err := lookup(sys, id)
	if err != nil {
		return nil, err
	}

	proc.stop()
	return proc.ref(), nil
}

// Cleanup is like Stop but waits up to timeout for the cleanup hook to
// complete and every pending envelope to be resolved. It must not be called
// by the actor on itself from one of its handlers.
func Cleanup(ctx context.Context, sys *System, id string, timeout time.Duration) (*Ref, error) {
	if timeout <= 0 {
		return nil, gerrors.ErrInvalidTimeout
	}

	proc, err := lookup(sys, id)
	if err != nil {
		return nil, err
	}

	proc.stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ref, err := proc.cleanupHandle().Await(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !proc.cleanupHandle().IsDone() {
			return nil, gerrors.ErrCleanupTimeout
		}
		return nil, err
	}
	return ref, nil
}

// Lookup returns the Ref of the live actor identified by id
func Lookup(sys *System, id string) (*Ref, bool) {
	proc, err := lookup(sys, id)
	if err != nil {
		return nil, false
	}
	return proc.ref(), true
}

// StateOf returns the lifecycle state of the live actor identified by id
func StateOf(sys *System, id string) (State, bool) {
	proc, err := lookup(sys, id)
	if err != nil {
		return Stopped, false
	}
	return proc.state(), true
}

func lookup(sys *System, id string) (lifecycle, error) {
	value, ok := sys.registry.Get(id)
	if !ok {
		return nil, gerrors.NewErrActorNotFound(id)
	}

	proc, ok := value.(lifecycle)
	if !ok {
		return nil, gerrors.NewErrTypeMismatch(id, value)
	}
	return proc, nil
}

// spawn gets or creates the process of props and makes sure its loop runs.
func spawn[A Actor](ctx context.Context, sys *System, props *Props[A]) (*process[A], error) {
	for {
		var created bool
		value, err := sys.registry.Acquire(ctx, props.id, func() (fixture.Fixture, error) {
			created = true
			return newProcess(sys, props), nil
		})
		if err != nil {
			return nil, err
		}

		proc, ok := value.(*process[A])
		if !ok {
			return nil, gerrors.NewErrTypeMismatch(props.id, value)
		}

		proc.start()
		// an instance created here is returned even when its setup already
		// failed, so that the caller observes the failure
		if created || !proc.stopRequested() {
			return proc, nil
		}

		sys.logger.Debugf("actor=(%s) is stopping, waiting before creating a new instance", props.id)
		select {
		case <-proc.stopped():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
