package screenshare

import (
	"github.com/pion/screenshare/pkg/io/audio"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/prop"
)

// MediaStreamConstraints selects the tracks GetDisplayMedia captures. A nil
// option means the kind is not requested.
type MediaStreamConstraints struct {
	Audio MediaOption
	Video MediaOption
}

// MediaTrackConstraints represents https://w3c.github.io/mediacapture-main/#dom-mediatrackconstraints
type MediaTrackConstraints struct {
	prop.MediaConstraints

	// VideoTransform runs on every frame after scaling and throttling.
	VideoTransform video.TransformFunc
	// AudioTransform runs on every chunk read from the driver.
	AudioTransform audio.TransformFunc
}

// MediaOption is a type of MediaTrackConstraints functional option.
type MediaOption func(*MediaTrackConstraints)
