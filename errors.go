package screenshare

import (
	"errors"
)

var (
	// ErrNotFound is returned when no registered driver satisfies the constraints.
	ErrNotFound = errors.New("failed to find the best driver that fits the constraints")
	// ErrNoVideo is returned by GetDisplayMedia when no video is requested.
	ErrNoVideo = errors.New("display capture requires video constraints")
)

// CaptureError is returned by RequestCapture. Err is the underlying failure
// and can be inspected with errors.Is and errors.As.
type CaptureError struct {
	Message string
	Err     error
}

func (e *CaptureError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
