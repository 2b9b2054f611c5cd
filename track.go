package screenshare

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/screenshare/pkg/driver"
	mio "github.com/pion/screenshare/pkg/io"
	"github.com/pion/screenshare/pkg/io/audio"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/prop"
)

var (
	errInvalidDriverType = errors.New("invalid driver type")
)

// Track is an interface that represent MediaStreamTrack
// Reference: https://w3c.github.io/mediacapture-main/#mediastreamtrack
type Track interface {
	ID() string
	Kind() MediaDeviceType
	// Settings returns the properties the track is actually delivering.
	Settings() prop.Media
	// OnEnded registers a handler called once when the source ends on its
	// own, e.g. the user stopped sharing from the platform UI. It is not
	// called after Stop. Registering after the track ended calls the handler
	// right away.
	OnEnded(handler func())
	// Stop releases the source. Readers return io.EOF afterwards.
	Stop()
}

type baseTrack struct {
	id   string
	kind MediaDeviceType
	d    driver.Driver

	mu       sync.Mutex
	settings prop.Media
	stopped  bool
	ended    bool
	onEnded  func()
	done     chan struct{}
}

func newBaseTrack(d driver.Driver, kind MediaDeviceType, settings prop.Media) *baseTrack {
	return &baseTrack{
		id:       uuid.NewString(),
		kind:     kind,
		d:        d,
		settings: settings,
		done:     make(chan struct{}),
	}
}

func (t *baseTrack) ID() string {
	return t.id
}

func (t *baseTrack) Kind() MediaDeviceType {
	return t.kind
}

func (t *baseTrack) Settings() prop.Media {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

func (t *baseTrack) OnEnded(handler func()) {
	t.mu.Lock()
	t.onEnded = handler
	ended := t.ended
	t.mu.Unlock()

	if ended && handler != nil {
		go handler()
	}
}

func (t *baseTrack) Stop() {
	t.mu.Lock()
	if t.stopped || t.ended {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()

	if err := t.d.Close(); err != nil {
		logger.Warnf("track %s: failed to close driver: %v", t.id, err)
	}
	<-t.done
	logger.Debugf("track %s: stopped", t.id)
}

// finish is called once the source returned err. Unless the track was
// stopped by the caller, the source ended on its own.
func (t *baseTrack) finish(err error) {
	defer close(t.done)

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.ended = true
	handler := t.onEnded
	t.mu.Unlock()

	if errors.Is(err, io.EOF) {
		logger.Infof("track %s: source ended", t.id)
	} else {
		logger.Warnf("track %s: source failed: %v", t.id, err)
	}
	if err := t.d.Close(); err != nil {
		logger.Warnf("track %s: failed to close driver: %v", t.id, err)
	}
	if handler != nil {
		handler()
	}
}

// startDriver opens d if needed so that it can record.
func startDriver(d driver.Driver) error {
	if d.Status() == driver.StateClosed {
		if err := d.Open(); err != nil {
			return err
		}
	}
	return nil
}

// VideoTrack is a captured display.
type VideoTrack struct {
	*baseTrack
	broadcaster *mio.Broadcaster[image.Image]
}

var _ Track = &VideoTrack{}

func newVideoTrack(d driver.Driver, settings prop.Media, transform video.TransformFunc) (*VideoTrack, error) {
	recorder, ok := d.(driver.VideoRecorder)
	if !ok {
		return nil, errInvalidDriverType
	}

	if err := startDriver(d); err != nil {
		return nil, err
	}
	r, err := recorder.VideoRecord(settings)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to start %s: %w", d.Info().Label, err)
	}
	r = video.Merge(video.Throttle(settings.FrameRate), transform)(r)

	t := &VideoTrack{
		baseTrack:   newBaseTrack(d, VideoInput, settings),
		broadcaster: mio.NewBroadcaster[image.Image](),
	}
	go t.start(r)
	return t, nil
}

func (t *VideoTrack) start(r video.Reader) {
	for {
		img, release, err := r.Read()
		if err != nil {
			t.broadcaster.Close(err)
			t.finish(err)
			return
		}

		frame := video.Clone(img)
		if release != nil {
			release()
		}
		t.updateVideoSettings(frame)
		t.broadcaster.Publish(frame)
	}
}

// NewReader returns a reader of the frames captured from now on. Frames are
// shared between readers and must not be modified. A reader that falls
// behind skips to the latest frame.
func (t *VideoTrack) NewReader() video.Reader {
	read := t.broadcaster.NewReader()
	return video.ReaderFunc(func() (image.Image, func(), error) {
		img, err := read()
		if err != nil {
			return nil, func() {}, err
		}
		return img, func() {}, nil
	})
}

// AudioTrack is a captured system audio loopback.
type AudioTrack struct {
	*baseTrack
	broadcaster *mio.Broadcaster[audio.Chunk]
}

var _ Track = &AudioTrack{}

func newAudioTrack(d driver.Driver, settings prop.Media, transform audio.TransformFunc) (*AudioTrack, error) {
	recorder, ok := d.(driver.AudioRecorder)
	if !ok {
		return nil, errInvalidDriverType
	}

	if err := startDriver(d); err != nil {
		return nil, err
	}
	r, err := recorder.AudioRecord(settings)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to start %s: %w", d.Info().Label, err)
	}
	if transform != nil {
		r = transform(r)
	}

	t := &AudioTrack{
		baseTrack:   newBaseTrack(d, AudioInput, settings),
		broadcaster: mio.NewBroadcaster[audio.Chunk](),
	}
	go t.start(r)
	return t, nil
}

func (t *AudioTrack) start(r audio.Reader) {
	for {
		chunk, release, err := r.Read()
		if err != nil {
			t.broadcaster.Close(err)
			t.finish(err)
			return
		}

		data := make([]byte, len(chunk.Data))
		copy(data, chunk.Data)
		chunk.Data = data
		if release != nil {
			release()
		}
		t.updateAudioSettings(chunk)
		t.broadcaster.Publish(chunk)
	}
}

// NewReader returns a reader of the chunks captured from now on.
func (t *AudioTrack) NewReader() audio.Reader {
	read := t.broadcaster.NewReader()
	return audio.ReaderFunc(func() (audio.Chunk, func(), error) {
		chunk, err := read()
		if err != nil {
			return audio.Chunk{}, func() {}, err
		}
		return chunk, func() {}, nil
	})
}
