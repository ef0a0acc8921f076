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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDeclaration is returned when a protocol operation is malformed,
	// reserved, duplicated or has no handler. It is raised when the protocol is
	// built, before any actor instance exists.
	ErrInvalidDeclaration = errors.New("invalid operation declaration")

	// ErrReservedName is returned when an operation uses a name owned by the runtime.
	ErrReservedName = errors.New("operation name is reserved")

	// ErrUnknownOperation is delivered to the Handle of an envelope whose operation
	// is absent from the actor's dispatch table.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidArgument is returned when call arguments cannot be bound to the
	// formal parameters of an operation, or when a handler reads an argument of
	// the wrong type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMailboxFull is returned synchronously by a bounded mailbox that has reached capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrMailboxClosed is returned when sending to, or receiving from, a closed mailbox.
	ErrMailboxClosed = errors.New("mailbox is closed")

	// ErrCancelled resolves the Handle of an envelope that was drained before being processed.
	ErrCancelled = errors.New("request cancelled")

	// ErrSetupFailure is returned when the actor setup hook fails.
	ErrSetupFailure = errors.New("actor setup failed")

	// ErrCleanupFailure is returned when the actor cleanup hook fails.
	ErrCleanupFailure = errors.New("actor cleanup failed")

	// ErrSetupTimeout is returned to callers of Setup when the setup handle does
	// not resolve in time. The setup hook itself keeps running.
	ErrSetupTimeout = errors.New("timed out waiting for actor setup")

	// ErrCleanupTimeout is returned to callers of Cleanup when the cleanup handle
	// does not resolve in time. The cleanup hook itself keeps running.
	ErrCleanupTimeout = errors.New("timed out waiting for actor cleanup")

	// ErrActorNotFound is returned when no live actor exists for an identity.
	ErrActorNotFound = errors.New("actor not found")

	// ErrDead is returned when an operation targets an actor that is stopping or stopped.
	ErrDead = errors.New("actor is not alive")

	// ErrInvalidIdentity is returned when an actor identity is empty or malformed.
	ErrInvalidIdentity = errors.New("invalid actor identity")

	// ErrInvalidTimeout is returned when a timeout value is less than or equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrFixtureNotFound is returned when the registry holds no fixture for a name.
	ErrFixtureNotFound = errors.New("fixture not found")

	// ErrTypeMismatch is returned when a registry entry exists under a name but
	// holds a different kind of fixture than the caller expects.
	ErrTypeMismatch = errors.New("fixture type mismatch")
)

// NewErrInvalidDeclaration formats an ErrInvalidDeclaration for the given operation.
func NewErrInvalidDeclaration(operation string, err error) error {
	return fmt.Errorf("operation=(%s) %w: %w", operation, ErrInvalidDeclaration, err)
}

// NewErrReservedName formats an ErrReservedName with the given name.
func NewErrReservedName(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrReservedName)
}

// NewErrUnknownOperation formats an ErrUnknownOperation for the given actor and operation.
func NewErrUnknownOperation(actorID, operation string) error {
	return fmt.Errorf("(actor=%s, operation=%s) %w", actorID, operation, ErrUnknownOperation)
}

// NewErrInvalidArgument formats an ErrInvalidArgument with a reason.
func NewErrInvalidArgument(operation, reason string) error {
	return fmt.Errorf("operation=(%s) %w: %s", operation, ErrInvalidArgument, reason)
}

// NewErrMailboxFull formats an ErrMailboxFull for the given actor and capacity.
func NewErrMailboxFull(actorID string, capacity int) error {
	return fmt.Errorf("(actor=%s, capacity=%d) %w", actorID, capacity, ErrMailboxFull)
}

// NewErrActorNotFound formats an ErrActorNotFound with the given identity.
func NewErrActorNotFound(actorID string) error {
	return fmt.Errorf("(actor=%s) %w", actorID, ErrActorNotFound)
}

// NewErrDead formats an ErrDead with the given identity.
func NewErrDead(actorID string) error {
	return fmt.Errorf("(actor=%s) %w", actorID, ErrDead)
}

// NewErrInvalidIdentity wraps a validation failure with ErrInvalidIdentity.
func NewErrInvalidIdentity(err error) error {
	return errors.Join(ErrInvalidIdentity, err)
}

// NewErrSetupFailure wraps a base error with ErrSetupFailure.
func NewErrSetupFailure(err error) error {
	return errors.Join(ErrSetupFailure, err)
}

// NewErrCleanupFailure wraps a base error with ErrCleanupFailure.
func NewErrCleanupFailure(err error) error {
	return errors.Join(ErrCleanupFailure, err)
}

// NewErrFixtureNotFound formats an ErrFixtureNotFound with the given name.
func NewErrFixtureNotFound(name string) error {
	return fmt.Errorf("(fixture=%s) %w", name, ErrFixtureNotFound)
}

// NewErrTypeMismatch formats an ErrTypeMismatch with the given name and the found type.
func NewErrTypeMismatch(name string, found any) error {
	return fmt.Errorf("(fixture=%s, found=%T) %w", name, found, ErrTypeMismatch)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
