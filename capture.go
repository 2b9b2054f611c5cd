package screenshare

import (
	"github.com/pion/screenshare/pkg/preset"
)

// CaptureOptions describes a screen share request.
type CaptureOptions struct {
	// Quality is the preset tier. Empty or unknown tiers fall back to the
	// tier that suits the device described by UserAgent.
	Quality preset.Tier
	// UserAgent is the client user agent, used to pick a fallback tier.
	UserAgent string
	// Audio requests system audio along with the display. It is only
	// captured when the resolved tier allows it.
	Audio bool
	// VideoOverride and AudioOverride replace individual preset fields.
	VideoOverride *preset.VideoOverride
	AudioOverride *preset.AudioOverride
}

// Constraints resolves o into the constraints handed to GetDisplayMedia,
// along with the tier that was used.
func (o CaptureOptions) Constraints() (preset.Tier, MediaStreamConstraints) {
	tier := o.Quality
	if _, _, ok := preset.Lookup(tier); !ok {
		tier = preset.Fallback(o.UserAgent)
	}
	v, a := preset.Resolve(tier, o.UserAgent, o.VideoOverride, o.AudioOverride)

	constraints := MediaStreamConstraints{
		Video: func(c *MediaTrackConstraints) {
			c.MediaConstraints = v.MediaConstraints()
		},
	}
	if o.Audio && a.WantsSystemAudio() {
		constraints.Audio = func(c *MediaTrackConstraints) {
			c.MediaConstraints = a.MediaConstraints()
		}
	}
	return tier, constraints
}

// RequestCapture starts sharing a display with the constraints of opts.
// Failures are returned as *CaptureError. Nothing is retried.
func RequestCapture(md MediaDevices, opts CaptureOptions) (MediaStream, error) {
	tier, constraints := opts.Constraints()

	var c MediaTrackConstraints
	constraints.Video(&c)
	logger.Infof("starting screen capture, quality preset: %s", tier)
	logger.Debugf("video constraints: %s", c.MediaConstraints.String())
	if constraints.Audio != nil {
		var ac MediaTrackConstraints
		constraints.Audio(&ac)
		logger.Debugf("audio constraints: %s", ac.MediaConstraints.String())
	}

	stream, err := md.GetDisplayMedia(constraints)
	if err != nil {
		logger.Errorf("screen capture failed: %v", err)
		return nil, &CaptureError{Message: "screen capture failed", Err: err}
	}
	return stream, nil
}
