// Package preset holds the capture quality tiers and resolves a tier plus
// caller overrides into concrete capture constraints.
package preset

import (
	"errors"
	"fmt"

	"github.com/pion/screenshare/pkg/prop"
)

// ErrUnknownTier is returned by ParseTier for names outside the tier table.
var ErrUnknownTier = errors.New("preset: unknown quality tier")

// Tier is a named bundle of default capture constraints.
type Tier string

const (
	// AICompatible favours square frames that vision models handle well.
	AICompatible Tier = "ai-compatible"
	// Mobile keeps bandwidth low for cellular networks.
	Mobile Tier = "mobile"
	// Desktop balances quality and CPU on a typical desktop uplink.
	Desktop Tier = "desktop"
	// HighBandwidth is for fast, stable networks.
	HighBandwidth Tier = "high-bandwidth"
)

// CursorMode tells the capturer whether to draw the mouse cursor.
type CursorMode string

const (
	CursorAlways CursorMode = "always"
	CursorMotion CursorMode = "motion"
	CursorNever  CursorMode = "never"
)

// DisplaySurface hints which kind of surface the user should pick.
type DisplaySurface string

const (
	SurfaceMonitor DisplaySurface = "monitor"
	SurfaceWindow  DisplaySurface = "window"
	SurfaceBrowser DisplaySurface = "browser"
)

// Video is the set of video capture constraints of a tier. A nil constraint
// or an empty mode leaves the property to the capturer.
type Video struct {
	Width, Height  prop.IntConstraint
	FrameRate      prop.FloatConstraint
	Cursor         CursorMode
	DisplaySurface DisplaySurface
}

// Audio is the set of audio processing flags of a tier. nil means unset.
type Audio struct {
	EchoCancellation prop.BoolConstraint
	NoiseSuppression prop.BoolConstraint
	AutoGainControl  prop.BoolConstraint
	SystemAudio      prop.BoolConstraint
}

type preset struct {
	video Video
	audio Audio
}

var tiers = []Tier{AICompatible, Mobile, Desktop, HighBandwidth}

var presets = map[Tier]preset{
	AICompatible: {
		video: Video{
			Width:          prop.IntRanged{Ideal: 500, Max: 800},
			Height:         prop.IntRanged{Ideal: 500, Max: 800},
			FrameRate:      prop.FloatRanged{Ideal: 30, Max: 60},
			Cursor:         CursorAlways,
			DisplaySurface: SurfaceMonitor,
		},
		audio: Audio{
			EchoCancellation: prop.Bool(true),
			NoiseSuppression: prop.Bool(true),
			AutoGainControl:  prop.Bool(true),
			SystemAudio:      prop.Bool(true),
		},
	},
	Mobile: {
		video: Video{
			Width:          prop.IntRanged{Ideal: 720, Max: 960},
			Height:         prop.IntRanged{Ideal: 480, Max: 640},
			FrameRate:      prop.FloatRanged{Ideal: 8, Max: 12},
			Cursor:         CursorAlways,
			DisplaySurface: SurfaceWindow,
		},
		audio: Audio{
			EchoCancellation: prop.Bool(true),
			NoiseSuppression: prop.Bool(true),
			AutoGainControl:  prop.Bool(true),
			SystemAudio:      prop.Bool(false),
		},
	},
	Desktop: {
		video: Video{
			Width:          prop.IntRanged{Ideal: 1280, Max: 1600},
			Height:         prop.IntRanged{Ideal: 720, Max: 900},
			FrameRate:      prop.FloatRanged{Ideal: 15, Max: 20},
			Cursor:         CursorAlways,
			DisplaySurface: SurfaceMonitor,
		},
		audio: Audio{
			EchoCancellation: prop.Bool(true),
			NoiseSuppression: prop.Bool(true),
			AutoGainControl:  prop.Bool(true),
			SystemAudio:      prop.Bool(true),
		},
	},
	HighBandwidth: {
		video: Video{
			Width:          prop.IntRanged{Ideal: 1920, Max: 2560},
			Height:         prop.IntRanged{Ideal: 1080, Max: 1440},
			FrameRate:      prop.FloatRanged{Ideal: 15, Max: 24},
			Cursor:         CursorAlways,
			DisplaySurface: SurfaceMonitor,
		},
		audio: Audio{
			EchoCancellation: prop.Bool(true),
			NoiseSuppression: prop.Bool(true),
			SystemAudio:      prop.Bool(true),
		},
	},
}

// Tiers lists every tier, lowest index first as they are offered to users.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Lookup returns the defaults of t.
func Lookup(t Tier) (Video, Audio, bool) {
	p, ok := presets[t]
	return p.video, p.audio, ok
}

// ParseTier validates s as a tier name.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := presets[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

// MediaConstraints converts v into track constraints.
func (v Video) MediaConstraints() prop.MediaConstraints {
	var c prop.MediaConstraints
	c.Width = v.Width
	c.Height = v.Height
	c.FrameRate = v.FrameRate
	if v.DisplaySurface != "" {
		c.DisplaySurface = prop.String(v.DisplaySurface)
	}
	if v.Cursor != "" {
		c.Cursor = prop.String(v.Cursor)
	}
	return c
}

// MediaConstraints converts a into constraints usable for driver selection.
func (a Audio) MediaConstraints() prop.MediaConstraints {
	var c prop.MediaConstraints
	c.EchoCancellation = a.EchoCancellation
	c.NoiseSuppression = a.NoiseSuppression
	c.AutoGainControl = a.AutoGainControl
	c.SystemAudio = a.SystemAudio
	return c
}

// WantsSystemAudio reports whether a asks for the system audio to be captured.
func (a Audio) WantsSystemAudio() bool {
	return a.SystemAudio != nil && a.SystemAudio.Value()
}
