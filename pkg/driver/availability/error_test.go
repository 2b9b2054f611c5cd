package availability

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsError(t *testing.T) {
	if !IsError(ErrNoDevice) {
		t.Error("ErrNoDevice must be an availability error")
	}
	if !IsError(fmt.Errorf("loopback: %w", ErrUnsupported)) {
		t.Error("wrapped availability errors must be detected")
	}
	if IsError(errors.New("no such device")) {
		t.Error("plain errors must not be treated as availability errors")
	}
}
