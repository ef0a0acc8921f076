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

import "time"

// spawnConfig defines the per-actor configuration
type spawnConfig struct {
	// overrides the system mailbox capacity when set
	mailboxCapacity *int
	// number of setup attempts
	setupRetries int
	// maximum delay between two setup attempts
	setupMaxDelay time.Duration
	// bounds the setup hook context; zero means no bound
	setupTimeout time.Duration
}

func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := &spawnConfig{
		setupRetries:  DefaultSetupRetries,
		setupMaxDelay: DefaultSetupMaxDelay,
	}

	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// SpawnOption is the interface that applies a per-actor configuration option.
type SpawnOption interface {
	// Apply sets the Option value of a config.
	Apply(config *spawnConfig)
}

var _ SpawnOption = spawnOption(nil)

// spawnOption implements the SpawnOption interface.
type spawnOption func(config *spawnConfig)

// Apply sets the Option value of a config.
func (f spawnOption) Apply(c *spawnConfig) {
	f(c)
}

// WithActorMailboxCapacity overrides the system mailbox capacity for one actor.
func WithActorMailboxCapacity(capacity int) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.mailboxCapacity = &capacity
	})
}

// WithSetupRetries makes the setup hook run up to attempts times, backing off
// up to maxDelay between attempts, before the setup is reported as failed.
func WithSetupRetries(attempts int, maxDelay time.Duration) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.setupRetries = attempts
		config.setupMaxDelay = maxDelay
	})
}

// WithSetupTimeout bounds the context handed to the setup hook. A hook
// ignoring its context still runs to completion.
func WithSetupTimeout(timeout time.Duration) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.setupTimeout = timeout
	})
}
