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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/tochemey/faultline/errors"
	"github.com/tochemey/faultline/internal/validation"
)

// PingOperation is the built-in liveness operation present on every protocol.
// It takes a single "data" argument and returns it unchanged.
const PingOperation Operation = "ping"

const pingParam = "data"

// operation names owned by the runtime
var reservedOperations = mapset.NewSet[Operation](
	PingOperation,
	"setup",
	"cleanup",
	"start",
	"stop",
	"invoke",
)

// Handler implements an operation. It is invoked on the actor's own loop with
// the actor as receiver, so a method expression such as (*Greeter).Greet can be
// used directly. Handlers must not Ask their own actor: the loop is busy
// running them.
type Handler[A Actor] func(actor A, ctx *Context, args Args) (any, error)

// Method declares one operation of a protocol: its name, its formal parameters
// and its handler.
type Method[A Actor] struct {
	name    Operation
	params  []string
	handler Handler[A]
}

// Declare marks handler as the public operation name taking params.
// Declarations are validated when the Protocol is built.
func Declare[A Actor](name Operation, params []string, handler Handler[A]) Method[A] {
	return Method[A]{
		name:    name,
		params:  append([]string(nil), params...),
		handler: handler,
	}
}

// Name returns the operation name
func (m Method[A]) Name() Operation {
	return m.name
}

// Params returns the formal parameter names
func (m Method[A]) Params() []string {
	return append([]string(nil), m.params...)
}

func (m Method[A]) validate() error {
	chain := validation.New(validation.FailFast()).
		AddValidator(validation.NewIdentifierValidator("operation", string(m.name))).
		AddValidator(reservedValidator(m.name)).
		AddAssertion(m.handler != nil, "handler is not callable")

	seen := mapset.NewThreadUnsafeSet[string]()
	for _, param := range m.params {
		chain.AddValidator(validation.NewIdentifierValidator("parameter", param)).
			AddAssertion(seen.Add(param), fmt.Sprintf("duplicate parameter %q", param))
	}
	return chain.Validate()
}

type reservedValidator Operation

func (name reservedValidator) Validate() error {
	if reservedOperations.Contains(Operation(name)) {
		return gerrors.NewErrReservedName(string(name))
	}
	return nil
}

// Protocol is the dispatch table of an actor type: the declared operations
// keyed by name. It is built once per actor type, typically as a package-level
// variable, and shared by every instance of that type.
type Protocol[A Actor] struct {
	name    string
	order   []Operation
	methods map[Operation]Method[A]
}

// NewProtocol validates the declared methods and builds the dispatch table.
// The built-in ping operation is added to every protocol.
func NewProtocol[A Actor](name string, methods ...Method[A]) (*Protocol[A], error) {
	if err := validation.NewEmptyStringValidator("protocol", name).Validate(); err != nil {
		return nil, err
	}

	protocol := &Protocol[A]{
		name:    name,
		order:   make([]Operation, 0, len(methods)+1),
		methods: make(map[Operation]Method[A], len(methods)+1),
	}

	for _, method := range methods {
		if err := method.validate(); err != nil {
			return nil, gerrors.NewErrInvalidDeclaration(string(method.name), err)
		}

		if _, ok := protocol.methods[method.name]; ok {
			return nil, gerrors.NewErrInvalidDeclaration(string(method.name), errors.New("operation declared twice"))
		}

		protocol.order = append(protocol.order, method.name)
		protocol.methods[method.name] = method
	}

	protocol.order = append(protocol.order, PingOperation)
	protocol.methods[PingOperation] = Method[A]{
		name:   PingOperation,
		params: []string{pingParam},
		handler: func(_ A, _ *Context, args Args) (any, error) {
			return args[pingParam], nil
		},
	}

	return protocol, nil
}

// MustProtocol is like NewProtocol but panics on an invalid declaration.
// It is meant for package-level protocol variables so that invalid
// declarations fail when the program loads.
func MustProtocol[A Actor](name string, methods ...Method[A]) *Protocol[A] {
	protocol, err := NewProtocol(name, methods...)
	if err != nil {
		panic(err)
	}
	return protocol
}

// Name returns the protocol name
func (p *Protocol[A]) Name() string {
	return p.name
}

// Operations returns the operation names in declaration order, ping last.
func (p *Protocol[A]) Operations() []Operation {
	return append([]Operation(nil), p.order...)
}

// Has reports whether the protocol declares op
func (p *Protocol[A]) Has(op Operation) bool {
	_, ok := p.methods[op]
	return ok
}

// Bind binds positional arguments to the formal parameters of op.
func (p *Protocol[A]) Bind(op Operation, positional ...any) (Args, error) {
	return p.bind(op, positional, nil)
}

// BindNamed binds keyword arguments to the formal parameters of op.
func (p *Protocol[A]) BindNamed(op Operation, named Args) (Args, error) {
	return p.bind(op, nil, named)
}

func (p *Protocol[A]) lookup(op Operation) (Method[A], bool) {
	method, ok := p.methods[op]
	return method, ok
}

// bind fills the formal parameters of op from positional arguments first and
// keyword arguments next. Every parameter must receive exactly one value.
func (p *Protocol[A]) bind(op Operation, positional []any, named Args) (Args, error) {
	method, ok := p.methods[op]
	if !ok {
		return nil, fmt.Errorf("(protocol=%s, operation=%s) %w", p.name, op, gerrors.ErrUnknownOperation)
	}

	if len(positional) > len(method.params) {
		return nil, gerrors.NewErrInvalidArgument(string(op),
			fmt.Sprintf("takes %d arguments but %d were given", len(method.params), len(positional)))
	}

	bound := make(Args, len(method.params))
	for i, value := range positional {
		bound[method.params[i]] = value
	}

	params := mapset.NewThreadUnsafeSet(method.params...)
	for name, value := range named {
		if !params.Contains(name) {
			return nil, gerrors.NewErrInvalidArgument(string(op), fmt.Sprintf("unexpected argument %q", name))
		}

		if _, ok := bound[name]; ok {
			return nil, gerrors.NewErrInvalidArgument(string(op), fmt.Sprintf("multiple values for argument %q", name))
		}
		bound[name] = value
	}

	for _, param := range method.params {
		if _, ok := bound[param]; !ok {
			return nil, gerrors.NewErrInvalidArgument(string(op), fmt.Sprintf("missing argument %q", param))
		}
	}
	return bound, nil
}
