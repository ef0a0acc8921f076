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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"

	"github.com/tochemey/faultline/log"
)

// greeter is the actor used across the tests
type greeter struct {
	setups   *atomic.Int32
	cleanups *atomic.Int32
	greeted  int
}

func newGreeter() *greeter {
	return &greeter{
		setups:   atomic.NewInt32(0),
		cleanups: atomic.NewInt32(0),
	}
}

func (g *greeter) Setup(*Context) error {
	g.setups.Inc()
	return nil
}

func (g *greeter) Cleanup(*Context) error {
	g.cleanups.Inc()
	return nil
}

func (g *greeter) Greet(_ *Context, args Args) (any, error) {
	whom, err := ArgOf[string](args, "whom")
	if err != nil {
		return nil, err
	}

	if whom == "" {
		return nil, errors.New("whom must not be empty")
	}

	g.greeted++
	return "Hello " + whom + "!", nil
}

func (g *greeter) Greeted(*Context, Args) (any, error) {
	return g.greeted, nil
}

var greeterProtocol = MustProtocol("greeter",
	Declare("greet", []string{"whom"}, (*greeter).Greet),
	Declare("greeted", nil, (*greeter).Greeted),
)

// greeterRef is a typed proxy over a greeter Ref
type greeterRef struct {
	*Ref
}

func (r greeterRef) Greet(ctx context.Context, whom string) (string, error) {
	handle, err := r.Invoke("greet", whom)
	if err != nil {
		return "", err
	}

	value, err := handle.Await(ctx)
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// recorder keeps track of what its handlers observe
type recorder struct {
	mu       sync.Mutex
	seen     []int
	inFlight *atomic.Int32
	overlaps *atomic.Int32

	// gate blocks the "block" operation until closed
	gate    chan struct{}
	entered chan struct{}

	sys        *System
	setupErr   error
	failSetups *atomic.Int32
	setupDelay time.Duration
	cleanupErr error
}

func newRecorder() *recorder {
	return &recorder{
		inFlight: atomic.NewInt32(0),
		overlaps: atomic.NewInt32(0),
		gate:     make(chan struct{}),
		entered:  make(chan struct{}, 1),

		failSetups: atomic.NewInt32(0),
	}
}

func (r *recorder) Setup(*Context) error {
	if r.setupDelay > 0 {
		time.Sleep(r.setupDelay)
	}

	if r.setupErr != nil && r.failSetups.Dec() >= 0 {
		return r.setupErr
	}
	return nil
}

func (r *recorder) Cleanup(*Context) error {
	return r.cleanupErr
}

func (r *recorder) Record(_ *Context, args Args) (any, error) {
	if r.inFlight.Inc() > 1 {
		r.overlaps.Inc()
	}
	defer r.inFlight.Dec()

	n, err := ArgOf[int](args, "n")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.seen = append(r.seen, n)
	r.mu.Unlock()
	return n, nil
}

func (r *recorder) Block(*Context, Args) (any, error) {
	select {
	case r.entered <- struct{}{}:
	default:
	}
	<-r.gate
	return "unblocked", nil
}

func (r *recorder) Boom(*Context, Args) (any, error) {
	panic("boom")
}

func (r *recorder) StopSelf(ctx *Context, _ Args) (any, error) {
	_, err := Stop(ctx.Context(), r.sys, ctx.ID())
	return nil, err
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.seen...)
}

var recorderProtocol = MustProtocol("recorder",
	Declare("record", []string{"n"}, (*recorder).Record),
	Declare("block", nil, (*recorder).Block),
	Declare("boom", nil, (*recorder).Boom),
	Declare("stop_self", nil, (*recorder).StopSelf),
)

func newTestSystem(t *testing.T, opts ...Option) *System {
	t.Helper()
	opts = append([]Option{
		WithLogger(log.DiscardLogger),
		WithMeterProvider(noop.NewMeterProvider()),
	}, opts...)

	sys, err := NewSystem("test", opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, sys.Shutdown(context.Background()))
	})
	return sys
}
