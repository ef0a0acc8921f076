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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/faultline/errors"
)

func TestGreeter(t *testing.T) {
	t.Run("With greet", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("greeter", greeterProtocol, newGreeter)
		require.NoError(t, err)

		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		g := greeterRef{ref}

		greeting, err := g.Greet(ctx, "world")
		require.NoError(t, err)
		assert.Equal(t, "Hello world!", greeting)

		_, err = g.Greet(ctx, "")
		require.Error(t, err)
		assert.EqualError(t, err, "whom must not be empty")

		// the actor survives a failed operation
		greeting, err = g.Greet(ctx, "again")
		require.NoError(t, err)
		assert.Equal(t, "Hello again!", greeting)

		greeted, err := ref.Ask(ctx, "greeted")
		require.NoError(t, err)
		assert.Equal(t, 2, greeted)

		_, err = Cleanup(ctx, sys, "greeter", time.Second)
		require.NoError(t, err)
	})
	t.Run("With independent instances", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props1, err := NewProps("g1", greeterProtocol, newGreeter)
		require.NoError(t, err)
		props2, err := NewProps("g2", greeterProtocol, newGreeter)
		require.NoError(t, err)

		ref1, err := Setup(ctx, sys, props1, time.Second)
		require.NoError(t, err)
		ref2, err := Setup(ctx, sys, props2, time.Second)
		require.NoError(t, err)
		assert.False(t, ref1.Equals(ref2))

		for range 3 {
			_, err := greeterRef{ref1}.Greet(ctx, "world")
			require.NoError(t, err)
		}

		greeted1, err := ref1.Ask(ctx, "greeted")
		require.NoError(t, err)
		greeted2, err := ref2.Ask(ctx, "greeted")
		require.NoError(t, err)
		assert.Equal(t, 3, greeted1)
		assert.Equal(t, 0, greeted2)
		assert.ElementsMatch(t, []string{"g1", "g2"}, sys.Actors())

		_, err = Cleanup(ctx, sys, "g1", time.Second)
		require.NoError(t, err)

		// g2 keeps running
		greeting, err := greeterRef{ref2}.Greet(ctx, "g2")
		require.NoError(t, err)
		assert.Equal(t, "Hello g2!", greeting)
	})
	t.Run("With named arguments", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("greeter", greeterProtocol, newGreeter)
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		handle, err := ref.InvokeNamed("greet", Args{"whom": "named"})
		require.NoError(t, err)
		value, err := handle.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Hello named!", value)

		_, err = ref.InvokeNamed("greet", Args{"who": "named"})
		require.ErrorIs(t, err, gerrors.ErrInvalidArgument)

		_, err = ref.Invoke("greet", "a", "b")
		require.ErrorIs(t, err, gerrors.ErrInvalidArgument)

		_, err = ref.Invoke("shout", "a")
		require.ErrorIs(t, err, gerrors.ErrUnknownOperation)
	})
	t.Run("With ping", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("greeter", greeterProtocol, newGreeter)
		require.NoError(t, err)
		ref, err := Start(ctx, sys, props)
		require.NoError(t, err)

		pong, err := ref.Ping(ctx, "data")
		require.NoError(t, err)
		assert.Equal(t, "data", pong)
	})
}

func TestRef(t *testing.T) {
	t.Run("With unknown operation sent unbound", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("greeter", greeterProtocol, newGreeter)
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		handle, err := ref.Send("shout", Args{"whom": "world"})
		require.NoError(t, err)
		_, err = handle.Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrUnknownOperation)

		// unbound arguments are checked by the actor
		handle, err = ref.Send("greet", Args{"who": "world"})
		require.NoError(t, err)
		_, err = handle.Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrInvalidArgument)

		// only those envelopes failed
		greeting, err := greeterRef{ref}.Greet(ctx, "world")
		require.NoError(t, err)
		assert.Equal(t, "Hello world!", greeting)
	})
	t.Run("With dead actor", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("greeter", greeterProtocol, newGreeter)
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		_, err = Cleanup(ctx, sys, "greeter", time.Second)
		require.NoError(t, err)

		_, err = ref.Invoke("greet", "world")
		require.ErrorIs(t, err, gerrors.ErrDead)

		_, ok := Lookup(sys, "greeter")
		assert.False(t, ok)
	})
	t.Run("With full mailbox", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec }, WithActorMailboxCapacity(1))
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		blocked, err := ref.Invoke("block")
		require.NoError(t, err)
		<-rec.entered

		_, err = ref.Invoke("record", 1)
		require.NoError(t, err)

		_, err = ref.Invoke("record", 2)
		require.ErrorIs(t, err, gerrors.ErrMailboxFull)

		close(rec.gate)
		_, err = blocked.Await(ctx)
		require.NoError(t, err)
	})
	t.Run("With handler panic", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("recorder", recorderProtocol, newRecorder)
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		_, err = ref.Ask(ctx, "boom")
		require.Error(t, err)
		var pe *gerrors.PanicError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, err.Error(), "boom")

		// the loop keeps running
		value, err := ref.Ask(ctx, "record", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, value)
	})
}

func TestProcessingProperties(t *testing.T) {
	t.Run("With FIFO order per sender", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		const count = 200
		for i := range count {
			_, err := ref.Invoke("record", i)
			require.NoError(t, err)
		}

		// the last operation is processed after every earlier one
		_, err = ref.Ask(ctx, "record", count)
		require.NoError(t, err)

		seen := rec.snapshot()
		require.Len(t, seen, count+1)
		for i, n := range seen {
			assert.Equal(t, i, n)
		}
	})
	t.Run("With mutual exclusion", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for sender := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 50 {
					_, err := ref.Ask(ctx, "record", sender*1000+i)
					assert.NoError(t, err)
				}
			}()
		}
		wg.Wait()

		assert.Zero(t, rec.overlaps.Load())
		assert.Len(t, rec.snapshot(), 400)
	})
	t.Run("With every handle resolved exactly once", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		proc, err := lookup(sys, "recorder")
		require.NoError(t, err)

		var envelopes []*Envelope
		for i := range 100 {
			envelope := NewEnvelope(ref.ID(), "record", Args{"n": i})
			_, err := ref.mailbox.Send(envelope)
			require.NoError(t, err)
			envelopes = append(envelopes, envelope)
		}

		_, err = Stop(ctx, sys, "recorder")
		require.NoError(t, err)
		_, err = proc.cleanupHandle().Await(ctx)
		require.NoError(t, err)

		for _, envelope := range envelopes {
			require.True(t, envelope.Handle().IsDone())
			assert.False(t, envelope.cancel())
			assert.False(t, envelope.succeed(nil))
		}
	})
	t.Run("With drain on stop", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		proc, err := lookup(sys, "recorder")
		require.NoError(t, err)

		blocked, err := ref.Invoke("block")
		require.NoError(t, err)
		<-rec.entered

		var pending []func() bool
		for i := range 10 {
			handle, err := ref.Invoke("record", i)
			require.NoError(t, err)
			pending = append(pending, handle.IsCancelled)
		}

		_, err = Stop(ctx, sys, "recorder")
		require.NoError(t, err)
		close(rec.gate)

		_, err = proc.cleanupHandle().Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, Stopped, proc.state())

		// the in-flight operation completed
		value, err := blocked.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "unblocked", value)

		for _, cancelled := range pending {
			assert.True(t, cancelled())
		}
		assert.Empty(t, rec.snapshot())
	})
}

func TestLifecycle(t *testing.T) {
	t.Run("With idempotent setup", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		g := newGreeter()
		props, err := NewProps("greeter", greeterProtocol, func() *greeter { return g })
		require.NoError(t, err)

		ref1, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		ref2, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		ref3, err := Start(ctx, sys, props)
		require.NoError(t, err)

		assert.True(t, ref1.Equals(ref2))
		assert.True(t, ref1.Equals(ref3))
		assert.EqualValues(t, 1, g.setups.Load())

		state, ok := StateOf(sys, "greeter")
		require.True(t, ok)
		assert.Equal(t, Running, state)
	})
	t.Run("With concurrent setup", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		g := newGreeter()
		props, err := NewProps("greeter", greeterProtocol, func() *greeter { return g })
		require.NoError(t, err)

		var wg sync.WaitGroup
		refs := make([]*Ref, 10)
		for i := range refs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ref, err := Setup(ctx, sys, props, time.Second)
				assert.NoError(t, err)
				refs[i] = ref
			}()
		}
		wg.Wait()

		for _, ref := range refs {
			assert.True(t, refs[0].Equals(ref))
		}
		assert.EqualValues(t, 1, g.setups.Load())
	})
	t.Run("With cleanup running the hook once", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		g := newGreeter()
		props, err := NewProps("greeter", greeterProtocol, func() *greeter { return g })
		require.NoError(t, err)
		_, err = Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		_, err = Cleanup(ctx, sys, "greeter", time.Second)
		require.NoError(t, err)
		assert.EqualValues(t, 1, g.cleanups.Load())

		_, err = Cleanup(ctx, sys, "greeter", time.Second)
		require.ErrorIs(t, err, gerrors.ErrActorNotFound)
		_, err = Stop(ctx, sys, "greeter")
		require.ErrorIs(t, err, gerrors.ErrActorNotFound)
		assert.EqualValues(t, 1, g.cleanups.Load())
	})
	t.Run("With restart after cleanup", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("greeter", greeterProtocol, newGreeter)
		require.NoError(t, err)

		ref1, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		_, err = greeterRef{ref1}.Greet(ctx, "world")
		require.NoError(t, err)

		_, err = Cleanup(ctx, sys, "greeter", time.Second)
		require.NoError(t, err)

		ref2, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		assert.False(t, ref1.Equals(ref2))

		greeted, err := ref2.Ask(ctx, "greeted")
		require.NoError(t, err)
		assert.Equal(t, 0, greeted)
	})
	t.Run("With setup failure", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		rec.setupErr = errors.New("no database")
		rec.failSetups.Store(1)
		rec.setupDelay = 100 * time.Millisecond

		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)

		ref, err := Start(ctx, sys, props)
		require.NoError(t, err)

		// queued while the setup hook runs
		handle, err := ref.Invoke("record", 1)
		require.NoError(t, err)

		_, err = Setup(ctx, sys, props, time.Second)
		require.ErrorIs(t, err, gerrors.ErrSetupFailure)

		_, err = handle.Await(ctx)
		require.ErrorIs(t, err, gerrors.ErrSetupFailure)
		assert.ErrorContains(t, err, "no database")
		assert.Empty(t, rec.snapshot())

		// the next setup builds a fresh instance
		require.Eventually(t, func() bool {
			ref, err := Setup(ctx, sys, props, time.Second)
			return err == nil && ref != nil
		}, 2*time.Second, 10*time.Millisecond)
	})
	t.Run("With setup retries", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		rec.setupErr = errors.New("not yet")
		rec.failSetups.Store(2)

		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec },
			WithSetupRetries(3, 10*time.Millisecond))
		require.NoError(t, err)

		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		require.NotNil(t, ref)
	})
	t.Run("With setup timeout", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		rec.setupDelay = 300 * time.Millisecond
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)

		_, err = Setup(ctx, sys, props, 20*time.Millisecond)
		require.ErrorIs(t, err, gerrors.ErrSetupTimeout)

		// the hook kept running
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		require.NotNil(t, ref)
	})
	t.Run("With cleanup failure", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		rec.cleanupErr = errors.New("cannot close")
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)
		_, err = Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)

		_, err = Cleanup(ctx, sys, "recorder", time.Second)
		require.ErrorIs(t, err, gerrors.ErrCleanupFailure)

		// the instance is gone anyway
		_, ok := Lookup(sys, "recorder")
		assert.False(t, ok)
	})
	t.Run("With stop requested by the actor itself", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		rec := newRecorder()
		rec.sys = sys
		props, err := NewProps("recorder", recorderProtocol, func() *recorder { return rec })
		require.NoError(t, err)
		ref, err := Setup(ctx, sys, props, time.Second)
		require.NoError(t, err)
		proc, err := lookup(sys, "recorder")
		require.NoError(t, err)

		_, err = ref.Ask(ctx, "stop_self")
		require.NoError(t, err)

		_, err = proc.cleanupHandle().Await(ctx)
		require.NoError(t, err)
		_, ok := Lookup(sys, "recorder")
		assert.False(t, ok)
	})
	t.Run("With invalid timeouts", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		props, err := NewProps("greeter", greeterProtocol, newGreeter)
		require.NoError(t, err)

		_, err = Setup(ctx, sys, props, 0)
		require.ErrorIs(t, err, gerrors.ErrInvalidTimeout)
		_, err = Cleanup(ctx, sys, "greeter", -time.Second)
		require.ErrorIs(t, err, gerrors.ErrInvalidTimeout)
	})
	t.Run("With invalid props", func(t *testing.T) {
		_, err := NewProps("", greeterProtocol, newGreeter)
		require.ErrorIs(t, err, gerrors.ErrInvalidIdentity)

		_, err = NewProps("has space", greeterProtocol, newGreeter)
		require.ErrorIs(t, err, gerrors.ErrInvalidIdentity)

		_, err = NewProps[*greeter]("greeter", nil, nil)
		require.Error(t, err)
	})
	t.Run("With system shutdown", func(t *testing.T) {
		ctx := t.Context()
		sys := newTestSystem(t)

		greeters := make([]*greeter, 5)
		for i := range greeters {
			g := newGreeter()
			greeters[i] = g
			props, err := NewProps(string(rune('a'+i)), greeterProtocol, func() *greeter { return g })
			require.NoError(t, err)
			_, err = Setup(ctx, sys, props, time.Second)
			require.NoError(t, err)
		}
		assert.Len(t, sys.Actors(), 5)

		require.NoError(t, sys.Shutdown(ctx))
		assert.Empty(t, sys.Actors())
		for _, g := range greeters {
			assert.EqualValues(t, 1, g.cleanups.Load())
		}
	})
}
