package driver

// DeviceType represents human readable device type. DeviceType
// can be useful to filter the drivers too.
type DeviceType string

const (
	// Screen represents a whole display
	Screen DeviceType = "screen"
	// Window represents a single application window
	Window DeviceType = "window"
	// SystemAudio represents a loopback of what the system is playing
	SystemAudio DeviceType = "system-audio"
)

// Priority represents how a driver should be selected when more than one
// driver fits the constraints equally.
type Priority float32

const (
	// PriorityHigh is a value for system default devices
	PriorityHigh Priority = 0.1
	// PriorityNormal is a value for normal devices
	PriorityNormal Priority = 0.0
	// PriorityLow is a value for unrecommended devices
	PriorityLow Priority = -0.1
)
