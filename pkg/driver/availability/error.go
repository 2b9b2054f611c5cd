// Package availability holds the errors drivers return when a capture
// source cannot be used at all, as opposed to failing mid-stream.
package availability

import (
	"errors"
)

var (
	ErrUnimplemented = NewError("not implemented")
	ErrBusy          = NewError("device or resource busy")
	ErrNoDevice      = NewError("no such device")
	ErrUnsupported   = NewError("not supported on this platform")
)

type errorString struct {
	s string
}

// NewError creates an availability error with the given text.
func NewError(text string) error {
	return &errorString{text}
}

// IsError reports whether err, or any error it wraps, is an availability error.
func IsError(err error) bool {
	var target *errorString
	return errors.As(err, &target)
}

func (e *errorString) Error() string {
	return e.s
}
