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
	"fmt"

	gerrors "github.com/tochemey/faultline/errors"
)

// Operation names an operation of an actor protocol.
type Operation string

// String returns the operation name
func (o Operation) String() string {
	return string(o)
}

// Args holds the named arguments of an operation call once bound against
// the operation's formal parameters.
type Args map[string]any

// Get returns the argument bound to name
func (a Args) Get(name string) (any, bool) {
	value, ok := a[name]
	return value, ok
}

// Len returns the number of arguments
func (a Args) Len() int {
	return len(a)
}

func (a Args) clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ArgOf reads the argument bound to name as a T. It fails with
// ErrInvalidArgument when the argument is missing or holds another type.
func ArgOf[T any](args Args, name string) (T, error) {
	var zero T
	value, ok := args[name]
	if !ok {
		return zero, fmt.Errorf("%w: missing argument %q", gerrors.ErrInvalidArgument, name)
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: argument %q is %T, expected %T", gerrors.ErrInvalidArgument, name, value, zero)
	}
	return typed, nil
}
