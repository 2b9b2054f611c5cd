// Package screen registers one capture driver per active display.
package screen

import (
	"fmt"
	"image"
	"io"

	"github.com/kbinani/screenshot"
	"github.com/pion/screenshare/internal/logging"
	"github.com/pion/screenshare/pkg/driver"
	"github.com/pion/screenshare/pkg/driver/availability"
	"github.com/pion/screenshare/pkg/io/video"
	"github.com/pion/screenshare/pkg/prop"
)

var logger = logging.NewLogger("driver/screen")

type screen struct {
	displayIndex int
	doneCh       chan struct{}
}

func init() {
	activeDisplays := screenshot.NumActiveDisplays()
	for i := 0; i < activeDisplays; i++ {
		priority := driver.PriorityNormal
		if i == 0 {
			priority = driver.PriorityHigh
		}

		err := driver.GetManager().Register(newScreen(i), driver.Info{
			Label:      fmt.Sprint(i),
			DeviceType: driver.Screen,
			Priority:   priority,
		})
		if err != nil {
			logger.Errorf("failed to register display %d: %v", i, err)
		}
	}
	logger.Debugf("registered %d display(s)", activeDisplays)
}

func newScreen(displayIndex int) *screen {
	return &screen{
		displayIndex: displayIndex,
	}
}

func (s *screen) Open() error {
	if s.displayIndex >= screenshot.NumActiveDisplays() {
		return availability.ErrNoDevice
	}
	s.doneCh = make(chan struct{})
	return nil
}

func (s *screen) Close() error {
	close(s.doneCh)
	return nil
}

func (s *screen) VideoRecord(selectedProp prop.Media) (video.Reader, error) {
	doneCh := s.doneCh
	var r video.Reader = video.ReaderFunc(func() (image.Image, func(), error) {
		select {
		case <-doneCh:
			return nil, func() {}, io.EOF
		default:
		}

		img, err := screenshot.CaptureDisplay(s.displayIndex)
		if err != nil {
			// A display that went away ends the share, like the user
			// stopping it from the platform UI.
			if s.displayIndex >= screenshot.NumActiveDisplays() {
				logger.Infof("display %d is gone, ending capture", s.displayIndex)
				return nil, func() {}, io.EOF
			}
			return nil, func() {}, err
		}
		return img, func() {}, nil
	})

	return video.Scale(selectedProp.Width, selectedProp.Height, nil)(r), nil
}

func (s *screen) Properties() []prop.Media {
	resolution := screenshot.GetDisplayBounds(s.displayIndex)
	supportedProp := prop.Media{
		Video: prop.Video{
			Width:          resolution.Dx(),
			Height:         resolution.Dy(),
			DisplaySurface: "monitor",
			// screenshot grabs the framebuffer only.
			Cursor: "never",
		},
	}
	return []prop.Media{supportedProp}
}
