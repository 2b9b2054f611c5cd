// Package screentest provides dummy screen and system audio drivers for testing.
package screentest

import (
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/pion/screenshare/pkg/io/audio"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/prop"
)

const defaultFrameRate = 60

var bars = []color.RGBA{
	{192, 192, 192, 255},
	{192, 192, 0, 255},
	{0, 192, 192, 255},
	{0, 192, 0, 255},
	{192, 0, 192, 255},
	{192, 0, 0, 255},
	{0, 0, 192, 255},
}

// Screen is a fake display painting color bars with a moving marker.
type Screen struct {
	width, height int
	surface       string
	frameRate     float32

	mu      sync.Mutex
	closed  chan struct{}
	ended   chan struct{}
	endOnce sync.Once
	frames  int
}

// New creates a fake monitor of the given size.
func New(width, height int) *Screen {
	return &Screen{
		width:     width,
		height:    height,
		surface:   "monitor",
		frameRate: defaultFrameRate,
		ended:     make(chan struct{}),
	}
}

// WithSurface changes the display surface the screen reports.
func (s *Screen) WithSurface(surface string) *Screen {
	s.surface = surface
	return s
}

// End simulates the user stopping the share from the platform UI. Readers
// return io.EOF afterwards.
func (s *Screen) End() {
	s.endOnce.Do(func() { close(s.ended) })
}

// Frames returns how many frames have been produced so far.
func (s *Screen) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Screen) Open() error {
	s.mu.Lock()
	s.closed = make(chan struct{})
	s.mu.Unlock()
	return nil
}

func (s *Screen) Close() error {
	s.mu.Lock()
	close(s.closed)
	s.mu.Unlock()
	return nil
}

func (s *Screen) Properties() []prop.Media {
	return []prop.Media{{
		Video: prop.Video{
			Width:          s.width,
			Height:         s.height,
			FrameRate:      s.frameRate,
			DisplaySurface: s.surface,
			Cursor:         "always",
		},
	}}
}

func (s *Screen) VideoRecord(p prop.Media) (video.Reader, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	paintBars(img)
	tick := time.NewTicker(time.Duration(float64(time.Second) / float64(s.frameRate)))

	var r video.Reader = video.ReaderFunc(func() (image.Image, func(), error) {
		select {
		case <-closed:
			tick.Stop()
			return nil, func() {}, io.EOF
		case <-s.ended:
			tick.Stop()
			return nil, func() {}, io.EOF
		default:
		}

		select {
		case <-closed:
			tick.Stop()
			return nil, func() {}, io.EOF
		case <-s.ended:
			tick.Stop()
			return nil, func() {}, io.EOF
		case <-tick.C:
		}

		s.mu.Lock()
		n := s.frames
		s.frames++
		s.mu.Unlock()

		// Marker row moves one line per frame.
		y := n % s.height
		for x := 0; x < s.width; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
		return img, func() {
			for x := 0; x < s.width; x++ {
				img.SetRGBA(x, y, bars[x*len(bars)/s.width])
			}
		}, nil
	})

	return video.Scale(p.Width, p.Height, video.ScalerNearestNeighbor)(r), nil
}

func paintBars(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, bars[x*len(bars)/b.Dx()])
		}
	}
}

// SystemAudio is a fake loopback device producing 20ms chunks of silence.
type SystemAudio struct {
	mu     sync.Mutex
	closed chan struct{}
}

// NewSystemAudio creates a fake loopback device.
func NewSystemAudio() *SystemAudio {
	return &SystemAudio{}
}

func (a *SystemAudio) Open() error {
	a.mu.Lock()
	a.closed = make(chan struct{})
	a.mu.Unlock()
	return nil
}

func (a *SystemAudio) Close() error {
	a.mu.Lock()
	close(a.closed)
	a.mu.Unlock()
	return nil
}

func (a *SystemAudio) Properties() []prop.Media {
	return []prop.Media{{
		Audio: prop.Audio{
			ChannelCount: 2,
			SampleRate:   48000,
			SystemAudio:  true,
		},
	}}
}

func (a *SystemAudio) AudioRecord(p prop.Media) (audio.Reader, error) {
	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()

	const latency = 20 * time.Millisecond
	tick := time.NewTicker(latency)
	size := p.SampleRate * p.ChannelCount * 2 * int(latency/time.Millisecond) / 1000

	return audio.ReaderFunc(func() (audio.Chunk, func(), error) {
		select {
		case <-closed:
			tick.Stop()
			return audio.Chunk{}, func() {}, io.EOF
		default:
		}

		select {
		case <-closed:
			tick.Stop()
			return audio.Chunk{}, func() {}, io.EOF
		case <-tick.C:
		}
		return audio.Chunk{
			Data:         make([]byte, size),
			SampleRate:   p.SampleRate,
			ChannelCount: p.ChannelCount,
			SampleSize:   2,
		}, func() {}, nil
	}), nil
}
