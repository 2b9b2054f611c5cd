package screenshare

import "github.com/pion/screenshare/pkg/driver"

// MediaDeviceType enumerates type of media device.
type MediaDeviceType int

// MediaDeviceType definitions.
const (
	VideoInput MediaDeviceType = iota + 1
	AudioInput
)

func (t MediaDeviceType) String() string {
	switch t {
	case VideoInput:
		return "videoinput"
	case AudioInput:
		return "audioinput"
	default:
		return "unknown"
	}
}

// MediaDeviceInfo represents https://w3c.github.io/mediacapture-main/#dom-mediadeviceinfo
type MediaDeviceInfo struct {
	DeviceID   string
	Kind       MediaDeviceType
	Label      string
	DeviceType driver.DeviceType
}
