// Package screenshare captures displays for sharing over WebRTC. Capture
// constraints come from quality presets, and drivers are picked by fitness
// distance, like getDisplayMedia in browsers.
package screenshare

import (
	"errors"
	"math"

	"github.com/pion/screenshare/internal/logging"
	"github.com/pion/screenshare/pkg/driver"
	"github.com/pion/screenshare/pkg/io/audio"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/prop"
)

var logger = logging.NewLogger("")

// MediaDevices is an interface that's defined on https://developer.mozilla.org/en-US/docs/Web/API/MediaDevices
type MediaDevices interface {
	GetDisplayMedia(constraints MediaStreamConstraints) (MediaStream, error)
	EnumerateDevices() []MediaDeviceInfo
}

// NewMediaDevices creates MediaDevices interface that provides access to
// the displays and the system audio registered in the driver manager.
func NewMediaDevices(opts ...MediaDevicesOption) MediaDevices {
	mdo := MediaDevicesOptions{
		manager: driver.GetManager(),
	}
	for _, o := range opts {
		o(&mdo)
	}
	return &mediaDevices{
		MediaDevicesOptions: mdo,
	}
}

type mediaDevices struct {
	MediaDevicesOptions
}

// MediaDevicesOptions stores parameters used by MediaDevices.
type MediaDevicesOptions struct {
	manager        *driver.Manager
	videoTransform video.TransformFunc
	audioTransform audio.TransformFunc
}

// MediaDevicesOption is a type of MediaDevices functional option.
type MediaDevicesOption func(*MediaDevicesOptions)

// WithDriverManager selects drivers from m instead of the default manager.
func WithDriverManager(m *driver.Manager) MediaDevicesOption {
	return func(o *MediaDevicesOptions) {
		o.manager = m
	}
}

// WithVideoTransformers will be used to transform the video that's coming from the driver.
// So, basically it'll look like following: driver -> scale -> throttle -> VideoTransform -> reader
func WithVideoTransformers(transformFuncs ...video.TransformFunc) MediaDevicesOption {
	return func(o *MediaDevicesOptions) {
		o.videoTransform = video.Merge(transformFuncs...)
	}
}

// WithAudioTransformers will be used to transform the audio that's coming from the driver.
// So, basically it'll look like following: driver -> AudioTransform -> reader
func WithAudioTransformers(transformFuncs ...audio.TransformFunc) MediaDevicesOption {
	return func(o *MediaDevicesOptions) {
		o.audioTransform = audio.Merge(transformFuncs...)
	}
}

// GetDisplayMedia prompts the user to select and grant permission to capture the contents
// of a display or portion thereof (such as a window) as a MediaStream.
// Reference: https://developer.mozilla.org/en-US/docs/Web/API/MediaDevices/getDisplayMedia
//
// Video is mandatory. System audio is best effort: when it cannot be
// captured the stream only holds the video track.
func (m *mediaDevices) GetDisplayMedia(constraints MediaStreamConstraints) (MediaStream, error) {
	if constraints.Video == nil {
		return nil, ErrNoVideo
	}

	var videoConstraints MediaTrackConstraints
	constraints.Video(&videoConstraints)
	videoTrack, err := m.selectScreen(videoConstraints)
	if err != nil {
		return nil, err
	}
	tracks := []Track{videoTrack}

	if constraints.Audio != nil {
		var audioConstraints MediaTrackConstraints
		constraints.Audio(&audioConstraints)
		audioTrack, err := m.selectSystemAudio(audioConstraints)
		switch {
		case errors.Is(err, ErrNotFound):
			logger.Warn("system audio is not available, capturing video only")
		case err != nil:
			logger.Warnf("failed to capture system audio, capturing video only: %v", err)
		default:
			tracks = append(tracks, audioTrack)
		}
	}

	s, err := NewMediaStream(tracks...)
	if err != nil {
		for _, t := range tracks {
			t.Stop()
		}
		return nil, err
	}

	return s, nil
}

func queryDriverProperties(manager *driver.Manager, filter driver.FilterFn) map[driver.Driver][]prop.Media {
	var needToClose []driver.Driver
	drivers := manager.Query(filter)
	m := make(map[driver.Driver][]prop.Media)

	for _, d := range drivers {
		if d.Status() == driver.StateClosed {
			err := d.Open()
			if err != nil {
				// Skip this driver if we failed to open because we can't get the properties
				logger.Debugf("skipping driver %s: %v", d.Info().Label, err)
				continue
			}
			needToClose = append(needToClose, d)
		}

		m[d] = d.Properties()
	}

	for _, d := range needToClose {
		// Since it was closed, we should close it to avoid a leak
		d.Close()
	}

	return m
}

// selectBestDriver implements SelectSettings algorithm.
// Reference: https://w3c.github.io/mediacapture-main/#dfn-selectsettings
func selectBestDriver(manager *driver.Manager, filter driver.FilterFn, constraints MediaTrackConstraints) (driver.Driver, prop.Media, error) {
	var bestDriver driver.Driver
	var bestProp prop.Media
	minFitnessDist := math.Inf(1)

	driverProperties := queryDriverProperties(manager, filter)
	for d, props := range driverProperties {
		priority := float64(d.Info().Priority)
		for _, p := range props {
			fitnessDist, ok := constraints.MediaConstraints.FitnessDistance(p)
			if !ok {
				continue
			}
			fitnessDist -= priority
			if fitnessDist < minFitnessDist {
				minFitnessDist = fitnessDist
				bestDriver = d
				bestProp = p
			}
		}
	}

	if bestDriver == nil {
		return nil, prop.Media{}, ErrNotFound
	}

	logger.Debugf("selected driver %s with %s", bestDriver.Info().Label, bestProp.String())
	selectedMedia := prop.Media{}
	selectedMedia.MergeConstraints(constraints.MediaConstraints)
	selectedMedia.Merge(bestProp)
	return bestDriver, selectedMedia, nil
}

func notRunning() driver.FilterFn {
	return func(d driver.Driver) bool {
		return d.Status() != driver.StateRunning
	}
}

func (m *mediaDevices) selectScreen(constraints MediaTrackConstraints) (*VideoTrack, error) {
	filters := []driver.FilterFn{
		driver.FilterVideoRecorder(),
		driver.FilterNot(driver.FilterDeviceType(driver.SystemAudio)),
		notRunning(),
	}
	if id, ok := constraints.DeviceID.(prop.StringExact); ok {
		filters = append(filters, driver.FilterID(string(id)))
	}

	// Displays are downscaled and throttled to the requested size and frame
	// rate, never rejected for them.
	selection := constraints
	selection.Width, selection.Height, selection.FrameRate = nil, nil, nil
	d, selected, err := selectBestDriver(m.manager, driver.FilterAnd(filters...), selection)
	if err != nil {
		return nil, err
	}

	selected.Width, selected.Height = video.Fit(selected.Width, selected.Height,
		targetInt(constraints.Width), targetInt(constraints.Height))
	if fps := targetFloat(constraints.FrameRate); fps > 0 && (selected.FrameRate == 0 || fps < selected.FrameRate) {
		selected.FrameRate = fps
	}

	return newVideoTrack(d, selected, m.videoTransform)
}

func (m *mediaDevices) selectSystemAudio(constraints MediaTrackConstraints) (*AudioTrack, error) {
	filters := []driver.FilterFn{
		driver.FilterAudioRecorder(),
		driver.FilterDeviceType(driver.SystemAudio),
		notRunning(),
	}
	if id, ok := constraints.DeviceID.(prop.StringExact); ok {
		filters = append(filters, driver.FilterID(string(id)))
	}

	d, selected, err := selectBestDriver(m.manager, driver.FilterAnd(filters...), constraints)
	if err != nil {
		return nil, err
	}

	return newAudioTrack(d, selected, m.audioTransform)
}

// targetInt is the size a constraint asks for: its ideal value, otherwise
// its upper bound. 0 means unconstrained.
func targetInt(c prop.IntConstraint) int {
	if v, ok := prop.IdealInt(c); ok {
		return v
	}
	v, _ := prop.MaxInt(c)
	return v
}

func targetFloat(c prop.FloatConstraint) float32 {
	if v, ok := prop.IdealFloat(c); ok {
		return v
	}
	v, _ := prop.MaxFloat(c)
	return v
}

func (m *mediaDevices) EnumerateDevices() []MediaDeviceInfo {
	drivers := m.manager.Query(
		driver.FilterFn(func(driver.Driver) bool { return true }))
	info := make([]MediaDeviceInfo, 0, len(drivers))
	for _, d := range drivers {
		var kind MediaDeviceType
		switch {
		case driver.FilterVideoRecorder()(d):
			kind = VideoInput
		case driver.FilterAudioRecorder()(d):
			kind = AudioInput
		default:
			continue
		}
		driverInfo := d.Info()
		info = append(info, MediaDeviceInfo{
			DeviceID:   d.ID(),
			Kind:       kind,
			Label:      driverInfo.Label,
			DeviceType: driverInfo.DeviceType,
		})
	}
	return info
}
