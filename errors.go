/*
 * errors.go, part of goRED.
 *
 * Copyright 2026 The goRED authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package red

import (
	"errors"
	"fmt"
	"strings"
)

// The kinds of failure reported by goRED. Every error produced by the
// packages in this module wraps one of these, so callers can use errors.Is.
var (
	//An atom name contains no resolvable element symbol.
	ErrInvalidAtomName = errors.New("invalid atom name")
	//An atom could not be classified while building a molecule, or a bond
	//makes no chemical sense.
	ErrChemistry = errors.New("chemistry error")
	//A constraint or equivalence names an atom or molecule that does not exist,
	//or is malformed.
	ErrInvalidConstraintReference = errors.New("invalid constraint reference")
	//A molecule referenced by name is not unique, or not found.
	ErrAmbiguousMoleculeReference = errors.New("ambiguous molecule reference")
	//The fitting program produced no charge, a NaN or an overflow marker.
	ErrFitJobFailed = errors.New("fit job failed")
	//An input file can't be parsed.
	ErrMalformedInput = errors.New("malformed input")
	//Unknown charge fit mode.
	ErrUnknownFitMode = errors.New("unknown charge fit mode")
)

// Decorator is implemented by the errors of this module. Decorate adds
// information to the error as it is passed up, without changing its type
// or wrapping it in something else. Each call returns the decoration slice
// after the call. An empty string adds nothing.
type Decorator interface {
	error
	Decorate(string) []string
}

// Error is the concrete error type of goRED. It carries one of the Err*
// kinds above, a message with enough context (molecule, atom, line) to
// find the offending input, an optional cause, and the trail of functions
// it went through.
type Error struct {
	kind  error
	msg   string
	cause error
	deco  []string
}

// NewError returns an *Error of the given kind. caller is the first element
// of the decoration trail.
func NewError(kind error, caller string, format string, args ...interface{}) *Error {
	E := &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
	if caller != "" {
		E.deco = []string{caller}
	}
	return E
}

// WrapError is NewError with an underlying cause.
func WrapError(kind, cause error, caller string, format string, args ...interface{}) *Error {
	E := NewError(kind, caller, format, args...)
	E.cause = cause
	return E
}

func (E *Error) Error() string {
	if E.cause != nil {
		return fmt.Sprintf("%v: %s: %v", E.kind, E.msg, E.cause)
	}
	return fmt.Sprintf("%v: %s", E.kind, E.msg)
}

// Unwrap gives both the kind and the cause, so errors.Is matches either.
func (E *Error) Unwrap() []error {
	if E.cause != nil {
		return []error{E.kind, E.cause}
	}
	return []error{E.kind}
}

// Kind returns the sentinel this error belongs to.
func (E *Error) Kind() error { return E.kind }

// Decorate adds deco to the trail and returns it.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Trail returns the functions the error went through, innermost first.
func (E *Error) Trail() string {
	return strings.Join(E.deco, " <- ")
}

// ErrDecorate decorates err with caller if it implements Decorator,
// and returns it. Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	var d Decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
