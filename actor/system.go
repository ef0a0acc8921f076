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
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/faultline/fixture"
	"github.com/tochemey/faultline/internal/validation"
	imetric "github.com/tochemey/faultline/internal/metric"
	"github.com/tochemey/faultline/log"
)

const instrumentationName = "github.com/tochemey/faultline/actor"

// System holds what actors share: the registry they live in, the logger,
// the default mailbox capacity and timeout, and the metric instruments.
// It is passed explicitly to the lifecycle functions.
type System struct {
	name            string
	registry        *fixture.Registry
	logger          log.Logger
	mailboxCapacity int
	defaultTimeout  time.Duration
	meterProvider   metric.MeterProvider
	metric          *imetric.ActorMetric
}

// NewSystem creates a System
func NewSystem(name string, opts ...Option) (*System, error) {
	if err := validation.NewIdentifierValidator("system", name).Validate(); err != nil {
		return nil, err
	}

	sys := &System{
		name:            name,
		logger:          log.DefaultLogger,
		mailboxCapacity: DefaultMailboxCapacity,
		defaultTimeout:  DefaultTimeout,
		meterProvider:   otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt.Apply(sys)
	}

	if sys.registry == nil {
		sys.registry = fixture.NewRegistry(fixture.WithLogger(sys.logger))
	}

	actorMetric, err := imetric.NewActorMetric(sys.meterProvider.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	sys.metric = actorMetric
	return sys, nil
}

// Name returns the system name
func (s *System) Name() string {
	return s.name
}

// Logger returns the system logger
func (s *System) Logger() log.Logger {
	return s.logger
}

// Registry returns the registry actors are stored in
func (s *System) Registry() *fixture.Registry {
	return s.registry
}

// DefaultTimeout returns the timeout callers use when they have none of their own
func (s *System) DefaultTimeout() time.Duration {
	return s.defaultTimeout
}

// Actors returns the identities of the live actors
func (s *System) Actors() []string {
	return s.registry.Names()
}

// Shutdown stops every registered actor and waits for their cleanup.
func (s *System) Shutdown(ctx context.Context) error {
	s.logger.Infof("shutting down system=(%s) with %d actors...", s.name, s.registry.Len())
	if err := s.registry.TeardownAll(ctx); err != nil {
		s.logger.Errorf("system=(%s) shutdown failed: %v", s.name, err)
		return err
	}
	s.logger.Infof("system=(%s) successfully shut down", s.name)
	return nil
}
