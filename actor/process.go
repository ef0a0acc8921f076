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
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/faultline/errors"
	"github.com/tochemey/faultline/fixture"
	"github.com/tochemey/faultline/future"
	imetric "github.com/tochemey/faultline/internal/metric"
	"github.com/tochemey/faultline/log"
)

// lifecycle is the type-erased view of a process used by the launcher and
// the registry.
type lifecycle interface {
	fixture.Fixture
	ref() *Ref
	start()
	stop()
	stopRequested() bool
	setupHandle() future.Future[*Ref]
	cleanupHandle() future.Future[*Ref]
	stopped() <-chan struct{}
	state() State
}

// process runs one actor instance: setup, the receive loop and cleanup, all
// on a single goroutine.
type process[A Actor] struct {
	id       string
	actor    A
	protocol *Protocol[A]
	mailbox  *Mailbox
	self     *Ref
	config   *spawnConfig

	logger   log.Logger
	metric   *imetric.ActorMetric
	registry *fixture.Registry

	currentState *atomic.Uint32
	prepareOnce  sync.Once
	startOnce    sync.Once

	// baseCtx outlives every cancellation and carries metric recording
	baseCtx context.Context
	// stopCtx is cancelled when a stop is requested
	stopCtx    context.Context
	stopCancel context.CancelFunc
	// handlerCtx is cancelled once cleanup is over
	handlerCtx    context.Context
	handlerCancel context.CancelFunc

	setupPromise   *future.Promise[*Ref]
	cleanupPromise *future.Promise[*Ref]
	done           chan struct{}
}

var _ lifecycle = (*process[Actor])(nil)

func newProcess[A Actor](sys *System, props *Props[A]) *process[A] {
	capacity := sys.mailboxCapacity
	if props.config.mailboxCapacity != nil {
		capacity = *props.config.mailboxCapacity
	}

	mailbox := NewMailbox(capacity)
	stopCtx, stopCancel := context.WithCancel(context.Background())
	return &process[A]{
		id:             props.id,
		actor:          props.factory(),
		protocol:       props.protocol,
		mailbox:        mailbox,
		self:           newRef(props.id, mailbox, props.protocol),
		config:         props.config,
		logger:         sys.logger.With("actor", props.id),
		metric:         sys.metric,
		registry:       sys.registry,
		currentState:   atomic.NewUint32(uint32(Created)),
		baseCtx:        context.Background(),
		stopCtx:        stopCtx,
		stopCancel:     stopCancel,
		setupPromise:   future.NewPromise[*Ref](),
		cleanupPromise: future.NewPromise[*Ref](),
		done:           make(chan struct{}),
	}
}

// Setup binds the instance to ctx values. ctx cancellation is not
// inherited: an actor outlives the call that created it. The loop itself is
// launched by start once the instance is registered, so that its own release
// from the registry can never precede its registration.
func (p *process[A]) Setup(ctx context.Context) error {
	p.prepareOnce.Do(func() {
		p.baseCtx = context.WithoutCancel(ctx)
		p.handlerCtx, p.handlerCancel = context.WithCancel(p.baseCtx)
	})
	return nil
}

// start launches the processing loop. It does not wait for the setup hook.
func (p *process[A]) start() {
	p.startOnce.Do(func() {
		// Setup may have been skipped when the registry is bypassed
		_ = p.Setup(context.Background())
		go p.run()
	})
}

// Teardown requests a stop and waits for the cleanup to complete.
func (p *process[A]) Teardown(ctx context.Context) error {
	p.stop()
	_, err := p.cleanupPromise.Future().Await(ctx)
	return err
}

func (p *process[A]) ref() *Ref {
	return p.self
}

func (p *process[A]) stop() {
	p.stopCancel()
}

func (p *process[A]) stopRequested() bool {
	return p.stopCtx.Err() != nil
}

func (p *process[A]) setupHandle() future.Future[*Ref] {
	return p.setupPromise.Future()
}

func (p *process[A]) cleanupHandle() future.Future[*Ref] {
	return p.cleanupPromise.Future()
}

func (p *process[A]) stopped() <-chan struct{} {
	return p.done
}

func (p *process[A]) state() State {
	return State(p.currentState.Load())
}

func (p *process[A]) run() {
	defer close(p.done)
	p.metric.ActorStarted(p.baseCtx)

	actorContext := newContext(p.handlerCtx, p.id, p.self, p.logger)

	setupErr := p.setup()
	if setupErr != nil {
		p.logger.Errorf("actor=(%s) setup failed: %v", p.id, setupErr)
		p.setupPromise.Failure(setupErr)
		p.stopCancel()
	} else {
		p.currentState.Store(uint32(Running))
		p.setupPromise.Success(p.self)
		p.logger.Infof("actor=(%s) successfully set up", p.id)
		p.receiveLoop(actorContext)
	}

	p.cleanup(actorContext, setupErr)
}

func (p *process[A]) setup() error {
	p.currentState.Store(uint32(SettingUp))
	p.logger.Infof("setting up actor=(%s)...", p.id)

	ctx, cancel := p.handlerCtx, context.CancelFunc(func() {})
	if p.config.setupTimeout > 0 {
		ctx, cancel = context.WithTimeout(p.handlerCtx, p.config.setupTimeout)
	}
	defer cancel()

	hook := func(ctx context.Context) error {
		return p.runHook(p.actor.Setup, newContext(ctx, p.id, p.self, p.logger))
	}

	var err error
	if p.config.setupRetries > 1 {
		retrier := retry.NewRetrier(p.config.setupRetries, time.Millisecond, p.config.setupMaxDelay)
		err = retrier.RunContext(ctx, hook)
	} else {
		err = hook(ctx)
	}

	if err != nil {
		return gerrors.NewErrSetupFailure(err)
	}
	return nil
}

func (p *process[A]) receiveLoop(actorContext *Context) {
	for {
		if p.stopRequested() {
			return
		}

		envelope, err := p.mailbox.Receive(p.stopCtx)
		if err != nil {
			return
		}

		// a stop may have landed while waiting
		if p.stopRequested() {
			if envelope.cancel() {
				p.metric.RecordCancelled(p.baseCtx, p.id, 1)
			}
			return
		}

		p.handle(actorContext, envelope)
	}
}

func (p *process[A]) handle(actorContext *Context, envelope *Envelope) {
	method, ok := p.protocol.lookup(envelope.Operation())
	if !ok {
		p.logger.Warnf("actor=(%s) received unknown operation=(%s)", p.id, envelope.Operation())
		envelope.fail(gerrors.NewErrUnknownOperation(p.id, envelope.Operation().String()))
		p.metric.RecordFailure(p.baseCtx, p.id)
		return
	}

	// envelopes sent without binding are checked here
	args, err := p.protocol.BindNamed(envelope.Operation(), envelope.args)
	if err != nil {
		envelope.fail(err)
		p.metric.RecordFailure(p.baseCtx, p.id)
		return
	}

	start := time.Now()
	value, err := p.invoke(method, actorContext, args)
	if err != nil {
		p.logger.Debugf("actor=(%s) operation=(%s) failed: %v", p.id, envelope.Operation(), err)
		p.metric.RecordFailure(p.baseCtx, p.id)
		envelope.fail(err)
		return
	}

	p.metric.RecordProcessed(p.baseCtx, p.id, time.Since(start))
	envelope.succeed(value)
}

func (p *process[A]) invoke(method Method[A], actorContext *Context, args Args) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toPanicError(r)
		}
	}()
	return method.handler(p.actor, actorContext, args)
}

func (p *process[A]) runHook(hook func(*Context) error, actorContext *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toPanicError(r)
		}
	}()
	return hook(actorContext)
}

// cleanup runs the cleanup hook and resolves whatever is left in the mailbox.
// The cleanup handle is resolved last so that awaiting it guarantees every
// envelope sent to this instance has been resolved.
func (p *process[A]) cleanup(actorContext *Context, setupErr error) {
	p.currentState.Store(uint32(CleaningUp))
	p.logger.Infof("cleaning up actor=(%s)...", p.id)

	p.mailbox.Close()
	cleanupErr := p.runHook(p.actor.Cleanup, actorContext)

	drained := p.mailbox.DrainMatching(p.id, setupErr == nil)
	if setupErr != nil {
		for _, envelope := range drained {
			envelope.fail(setupErr)
		}
	} else if len(drained) > 0 {
		p.metric.RecordCancelled(p.baseCtx, p.id, len(drained))
	}

	if len(drained) > 0 {
		p.logger.Debugf("actor=(%s) dropped %d pending envelopes", p.id, len(drained))
	}

	p.registry.Release(p.id, p)
	p.handlerCancel()
	p.currentState.Store(uint32(Stopped))
	p.metric.ActorStopped(p.baseCtx)

	if cleanupErr != nil {
		p.logger.Errorf("actor=(%s) cleanup failed: %v", p.id, cleanupErr)
		p.cleanupPromise.Failure(gerrors.NewErrCleanupFailure(cleanupErr))
		return
	}

	p.logger.Infof("actor=(%s) successfully cleaned up", p.id)
	p.cleanupPromise.Success(p.self)
}

// toPanicError turns a recovered value into a PanicError carrying the
// location of the panic.
func toPanicError(r any) error {
	pc, fn, line, _ := runtime.Caller(3)
	location := fmt.Sprintf("%s[%s:%d]", runtime.FuncForPC(pc).Name(), fn, line)

	if err, ok := r.(error); ok {
		var pe *gerrors.PanicError
		if errors.As(err, &pe) {
			return pe
		}
		return gerrors.NewPanicError(fmt.Errorf("%w at %s", err, location))
	}
	return gerrors.NewPanicError(fmt.Errorf("%#v at %s", r, location))
}
