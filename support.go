package screenshare

import (
	"github.com/pion/screenshare/pkg/driver"
)

// Environment describes where a capture would run.
type Environment struct {
	// MediaDevices is nil when no media devices are available.
	MediaDevices MediaDevices
	// SecureContext reports whether the page is served over HTTPS or from
	// localhost. Browsers refuse display capture elsewhere.
	SecureContext bool
}

// Support is the outcome of CheckCaptureSupport. Reason is empty when
// capture is supported.
type Support struct {
	Supported bool
	Reason    string
}

// Reasons reported by CheckCaptureSupport.
const (
	ReasonNoMediaDevices   = "MediaDevices API is not supported"
	ReasonNoDisplayCapture = "getDisplayMedia API is not supported"
	ReasonInsecureContext  = "HTTPS or localhost is required"
)

// CheckCaptureSupport reports whether env can share a screen. The checks run
// in order and the first failure is returned.
func CheckCaptureSupport(env Environment) Support {
	if env.MediaDevices == nil {
		return Support{Reason: ReasonNoMediaDevices}
	}
	if !hasDisplay(env.MediaDevices) {
		return Support{Reason: ReasonNoDisplayCapture}
	}
	if !env.SecureContext {
		return Support{Reason: ReasonInsecureContext}
	}
	return Support{Supported: true}
}

func hasDisplay(md MediaDevices) bool {
	for _, info := range md.EnumerateDevices() {
		if info.Kind == VideoInput && info.DeviceType != driver.SystemAudio {
			return true
		}
	}
	return false
}
