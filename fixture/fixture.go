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

// Package fixture provides a get-or-create-by-name store for long-lived test
// collaborators. Each fixture is set up once when it is first acquired and
// torn down explicitly, either on its own or together with every other
// fixture of the registry.
package fixture

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	gerrors "github.com/tochemey/faultline/errors"
	"github.com/tochemey/faultline/internal/xsync"
	"github.com/tochemey/faultline/log"
)

// Fixture is a named collaborator managed by a Registry.
type Fixture interface {
	// Setup is called once, right after the fixture has been created.
	Setup(ctx context.Context) error
	// Teardown releases the fixture.
	Teardown(ctx context.Context) error
}

// Registry stores fixtures by name.
type Registry struct {
	fixtures *xsync.Map[string, Fixture]
	group    singleflight.Group
	logger   log.Logger
	// bounds concurrent teardowns in TeardownAll; zero means unbounded
	teardownConcurrency int
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithTeardownConcurrency bounds the number of fixtures torn down concurrently by TeardownAll.
func WithTeardownConcurrency(limit int) Option {
	return func(r *Registry) {
		r.teardownConcurrency = limit
	}
}

// NewRegistry creates an empty Registry
func NewRegistry(opts ...Option) *Registry {
	registry := &Registry{
		fixtures: xsync.NewMap[string, Fixture](),
		logger:   log.DefaultLogger,
	}

	for _, opt := range opts {
		opt(registry)
	}
	return registry
}

// Acquire returns the fixture registered under name, creating and setting it up
// when absent. Concurrent callers asking for the same name share a single
// creation. A fixture whose setup fails is not registered.
func (r *Registry) Acquire(ctx context.Context, name string, create func() (Fixture, error)) (Fixture, error) {
	if fixture, ok := r.Get(name); ok {
		return fixture, nil
	}

	value, err, _ := r.group.Do(name, func() (any, error) {
		if fixture, ok := r.Get(name); ok {
			return fixture, nil
		}

		fixture, err := create()
		if err != nil {
			return nil, err
		}

		if err := fixture.Setup(ctx); err != nil {
			r.logger.Warnf("fixture=(%s) setup failed: %v", name, err)
			return nil, err
		}

		r.fixtures.Set(name, fixture)

		r.logger.Debugf("fixture=(%s) registered", name)
		return fixture, nil
	})

	if err != nil {
		return nil, err
	}
	return value.(Fixture), nil
}

// Get returns the fixture registered under name
func (r *Registry) Get(name string) (Fixture, bool) {
	return r.fixtures.Get(name)
}

// Release removes name from the registry only if it still maps to fixture.
// It does not call Teardown.
func (r *Registry) Release(name string, fixture Fixture) bool {
	return r.fixtures.CompareAndDelete(name, fixture)
}

// Teardown tears the named fixture down and removes it from the registry.
func (r *Registry) Teardown(ctx context.Context, name string) error {
	fixture, ok := r.Get(name)
	if !ok {
		return gerrors.NewErrFixtureNotFound(name)
	}

	err := fixture.Teardown(ctx)
	r.Release(name, fixture)
	if err != nil {
		r.logger.Warnf("fixture=(%s) teardown failed: %v", name, err)
		return err
	}

	r.logger.Debugf("fixture=(%s) torn down", name)
	return nil
}

// TeardownAll tears down every registered fixture concurrently and returns
// the combined failures.
func (r *Registry) TeardownAll(ctx context.Context) error {
	var (
		group errgroup.Group
		mu    sync.Mutex
		errs  error
	)

	if r.teardownConcurrency > 0 {
		group.SetLimit(r.teardownConcurrency)
	}

	for _, name := range r.Names() {
		group.Go(func() error {
			if err := r.Teardown(ctx, name); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = group.Wait()
	return errs
}

// Names returns the registered names in lexical order
func (r *Registry) Names() []string {
	return r.fixtures.SortedKeys(func(a, b string) bool { return a < b })
}

// Len returns the number of registered fixtures
func (r *Registry) Len() int {
	return r.fixtures.Len()
}

// Lookup returns the fixture registered under name as a T.
func Lookup[T Fixture](r *Registry, name string) (T, error) {
	var zero T
	fixture, ok := r.Get(name)
	if !ok {
		return zero, gerrors.NewErrFixtureNotFound(name)
	}

	typed, ok := fixture.(T)
	if !ok {
		return zero, gerrors.NewErrTypeMismatch(name, fixture)
	}
	return typed, nil
}
