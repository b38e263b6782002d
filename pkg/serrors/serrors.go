// Package serrors provides semantic error kinds used across the resolver to
// tell fatal run failures apart from candidate-local ones.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided name.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrInvalidInput indicates the target identity failed validation. Fatal.
	ErrInvalidInput = NewKind("INVALID_INPUT")
	// ErrUnauthorized indicates the session credential was rejected. Fatal.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrConfig indicates a missing or malformed configuration value. Fatal.
	ErrConfig = NewKind("CONFIG")
	// ErrRateLimited indicates the remote service kept throttling after all retries.
	ErrRateLimited = NewKind("RATE_LIMITED")
	// ErrMalformed indicates a payload was missing required fields.
	ErrMalformed = NewKind("MALFORMED")
	// ErrUnavailable indicates the remote surface could not be reached.
	ErrUnavailable = NewKind("UNAVAILABLE")
)

// fatalKinds stop the whole run. Every other kind is candidate-local.
var fatalKinds = []Kind{ErrInvalidInput, ErrUnauthorized, ErrConfig} //nolint: gochecknoglobals

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped error and an optional message. errors.Is and errors.As match either
// the kind or the wrapped cause.
//
// Error string formatting:
//   - If both msg and err are set: "<msg>: <err>"
//   - If only msg is set: "<msg>"
//   - If only err is set: "<err>"
//   - If neither set: the kind's Error() string.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind wrapping err.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the kind sentinel or the wrapped error.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As enables type assertions against either the kind sentinel or the wrapped error.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }

// KindOf returns the first semantic kind found in err's chain, or nil.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return nil
}

// IsFatal reports whether err must abort the whole run.
func IsFatal(err error) bool {
	for _, k := range fatalKinds {
		if errors.Is(err, k) {
			return true
		}
	}

	return false
}
