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

package validation

import (
	"fmt"
	"regexp"
)

const maxIDLength = 255

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	idPattern         = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:/-]*$`)
)

type identifierValidator struct {
	kind string
	name string
}

var _ Validator = (*identifierValidator)(nil)

// NewIdentifierValidator returns a Validator that accepts names made of letters,
// digits and underscores that do not start with a digit. kind is used in the
// error message (e.g. "operation", "parameter").
func NewIdentifierValidator(kind, name string) Validator {
	return &identifierValidator{kind: kind, name: name}
}

// Validate checks the identifier
func (v *identifierValidator) Validate() error {
	if !identifierPattern.MatchString(v.name) {
		return fmt.Errorf("%s name=(%s) is not a valid identifier", v.kind, v.name)
	}
	return nil
}

type idValidator struct {
	id string
}

var _ Validator = (*idValidator)(nil)

// NewIDValidator returns a Validator for actor identities: at most 255
// characters, starting with a letter or a digit, followed by letters, digits
// or one of "_.:/-".
func NewIDValidator(id string) Validator {
	return &idValidator{id: id}
}

// Validate checks the identity
func (v *idValidator) Validate() error {
	if len(v.id) > maxIDLength {
		return fmt.Errorf("id=(%s) exceeds %d characters", v.id, maxIDLength)
	}

	if !idPattern.MatchString(v.id) {
		return fmt.Errorf("id=(%s) contains invalid characters", v.id)
	}
	return nil
}
