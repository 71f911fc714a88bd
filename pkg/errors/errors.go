// Package errors defines the coded errors returned across spiderfy.
//
// Every failure the libraries report is an [*Error] carrying a [Code]. The
// engine itself has a single run-time failure, [ErrCodeProjectionNotReady],
// raised when a pixel-space query runs before the host surface is ready.
// Everything else is construction-time validation of configs and scene files,
// or a failure in the rendering and CLI tooling around them.
//
// Codes survive wrapping. [Is] looks at every coded error in a chain, so a
// scene that fails because of a bad marker id matches both
// [ErrCodeInvalidScene] and [ErrCodeInvalidMarkerID]:
//
//	err := errors.Wrap(errors.ErrCodeInvalidScene, cause, "marker %s", id)
//	errors.Is(err, errors.ErrCodeInvalidScene)  // true
//	errors.GetCode(err)                          // INVALID_SCENE
//	errors.UserMessage(err)                      // "marker cafe"
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error class.
type Code string

const (
	// ErrCodeProjectionNotReady: a pixel query ran before the surface was ready.
	ErrCodeProjectionNotReady Code = "PROJECTION_NOT_READY"

	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidScene    Code = "INVALID_SCENE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidMarkerID Code = "INVALID_MARKER_ID"

	ErrCodeUnknownMarker Code = "UNKNOWN_MARKER"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return s
	}
	return s + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets the standard errors.Is match a sentinel *Error by code, so any
// PROJECTION_NOT_READY error matches spider.ErrProjectionNotReady.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause attached.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if Is(inner, code) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := outermost(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage returns the outermost *Error's message without its code, or
// err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e := outermost(err); e != nil {
		return e.Message
	}
	return err.Error()
}

func outermost(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
