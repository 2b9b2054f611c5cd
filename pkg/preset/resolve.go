package preset

import (
	"github.com/pion/screenshare/pkg/device"
	"github.com/pion/screenshare/pkg/prop"
)

// VideoOverride replaces single fields of a tier's video defaults. Fields
// left nil (or empty) keep the default.
type VideoOverride struct {
	Width, Height  prop.IntConstraint
	FrameRate      prop.FloatConstraint
	Cursor         CursorMode
	DisplaySurface DisplaySurface
}

// AudioOverride replaces single fields of a tier's audio defaults. Fields
// left nil keep the default.
type AudioOverride struct {
	EchoCancellation prop.BoolConstraint
	NoiseSuppression prop.BoolConstraint
	AutoGainControl  prop.BoolConstraint
	SystemAudio      prop.BoolConstraint
}

// Fallback picks the tier used when the caller did not ask for one.
// Tablets have no dedicated tier and get the desktop one.
func Fallback(userAgent string) Tier {
	if device.Detect(userAgent) == device.Mobile {
		return Mobile
	}
	return Desktop
}

// Resolve returns the constraints of tier with the overrides applied.
// An empty or unknown tier falls back by user agent. A nil override uses the
// defaults verbatim. Override values are not validated.
func Resolve(tier Tier, userAgent string, video *VideoOverride, audio *AudioOverride) (Video, Audio) {
	p, ok := presets[tier]
	if !ok {
		p = presets[Fallback(userAgent)]
	}

	return p.video.apply(video), p.audio.apply(audio)
}

func (v Video) apply(o *VideoOverride) Video {
	if o == nil {
		return v
	}
	if o.Width != nil {
		v.Width = o.Width
	}
	if o.Height != nil {
		v.Height = o.Height
	}
	if o.FrameRate != nil {
		v.FrameRate = o.FrameRate
	}
	if o.Cursor != "" {
		v.Cursor = o.Cursor
	}
	if o.DisplaySurface != "" {
		v.DisplaySurface = o.DisplaySurface
	}
	return v
}

func (a Audio) apply(o *AudioOverride) Audio {
	if o == nil {
		return a
	}
	if o.EchoCancellation != nil {
		a.EchoCancellation = o.EchoCancellation
	}
	if o.NoiseSuppression != nil {
		a.NoiseSuppression = o.NoiseSuppression
	}
	if o.AutoGainControl != nil {
		a.AutoGainControl = o.AutoGainControl
	}
	if o.SystemAudio != nil {
		a.SystemAudio = o.SystemAudio
	}
	return a
}
