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

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/faultline/fixture"
	"github.com/tochemey/faultline/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(sys *System)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*System)

func (f OptionFunc) Apply(c *System) {
	f(c)
}

// WithLogger sets the system logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(s *System) {
		s.logger = logger
	})
}

// WithRegistry sets the registry actors are stored in. Systems sharing a
// registry share their actors.
func WithRegistry(registry *fixture.Registry) Option {
	return OptionFunc(func(s *System) {
		s.registry = registry
	})
}

// WithMailboxCapacity sets the default mailbox capacity of the system actors.
// Zero or less makes mailboxes unbounded.
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(s *System) {
		s.mailboxCapacity = capacity
	})
}

// WithDefaultTimeout sets the timeout returned by System.DefaultTimeout
func WithDefaultTimeout(timeout time.Duration) Option {
	return OptionFunc(func(s *System) {
		s.defaultTimeout = timeout
	})
}

// WithMeterProvider sets the OpenTelemetry meter provider used for actor metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(s *System) {
		s.meterProvider = provider
	})
}
