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
	gerrors "github.com/tochemey/faultline/errors"
	"github.com/tochemey/faultline/internal/validation"
)

// Props describes how to create an actor: its identity, its protocol, the
// factory building a fresh state value and per-actor options.
type Props[A Actor] struct {
	id       string
	protocol *Protocol[A]
	factory  func() A
	config   *spawnConfig
}

// NewProps validates and creates a Props.
func NewProps[A Actor](id string, protocol *Protocol[A], factory func() A, opts ...SpawnOption) (*Props[A], error) {
	if err := validation.NewIDValidator(id).Validate(); err != nil {
		return nil, gerrors.NewErrInvalidIdentity(err)
	}

	err := validation.New(validation.AllErrors()).
		AddAssertion(protocol != nil, "the [protocol] is required").
		AddAssertion(factory != nil, "the [factory] is required").
		Validate()
	if err != nil {
		return nil, err
	}

	return &Props[A]{
		id:       id,
		protocol: protocol,
		factory:  factory,
		config:   newSpawnConfig(opts...),
	}, nil
}

// ID returns the actor identity
func (p *Props[A]) ID() string {
	return p.id
}

// Protocol returns the actor protocol
func (p *Props[A]) Protocol() *Protocol[A] {
	return p.protocol
}
