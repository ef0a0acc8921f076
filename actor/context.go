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

	"github.com/tochemey/faultline/log"
)

// Context is handed to lifecycle hooks and handlers. It is only valid on the
// actor's own loop.
type Context struct {
	ctx    context.Context
	id     string
	self   *Ref
	logger log.Logger
}

func newContext(ctx context.Context, id string, self *Ref, logger log.Logger) *Context {
	return &Context{
		ctx:    ctx,
		id:     id,
		self:   self,
		logger: logger,
	}
}

// Context returns the actor's context.Context. It is cancelled once the actor
// has been cleaned up, not when a stop is requested, so an in-flight handler
// always runs to completion.
func (c *Context) Context() context.Context {
	return c.ctx
}

// ID returns the actor identity
func (c *Context) ID() string {
	return c.id
}

// Self returns the actor's own Ref
func (c *Context) Self() *Ref {
	return c.self
}

// Logger returns the actor logger
func (c *Context) Logger() log.Logger {
	return c.logger
}
