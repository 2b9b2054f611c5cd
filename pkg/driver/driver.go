// Package driver defines the capture adapters screenshare selects from and
// the manager that keeps track of them.
package driver

import (
	"github.com/pion/screenshare/pkg/io/audio"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/prop"
)

// Adapter is a capture source. Properties are only meaningful after Open.
type Adapter interface {
	Open() error
	Close() error
	Properties() []prop.Media
}

// VideoRecorder is an interface to encapsulate the recording process for video
type VideoRecorder interface {
	VideoRecord(p prop.Media) (r video.Reader, err error)
}

// AudioRecorder is an interface to encapsulate the recording process for audio
type AudioRecorder interface {
	AudioRecord(p prop.Media) (r audio.Reader, err error)
}

// Info is the static information of a driver
type Info struct {
	Label      string
	DeviceType DeviceType
	Priority   Priority
}

// Driver is an adapter that has been registered to the manager. It carries
// a unique ID and tracks its own state.
type Driver interface {
	Adapter
	ID() string
	Info() Info
	Status() State
}
