package screenshare

import (
	"image"

	"github.com/pion/screenshare/pkg/io/audio"
)

// updateVideoSettings keeps the reported size in line with the frames being
// delivered. Drivers that cannot scale hand out their native size.
func (t *baseTrack) updateVideoSettings(img image.Image) {
	b := img.Bounds()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.settings.Width != b.Dx() || t.settings.Height != b.Dy() {
		logger.Debugf("track %s: frame size %dx%d", t.id, b.Dx(), b.Dy())
		t.settings.Width = b.Dx()
		t.settings.Height = b.Dy()
	}
}

// updateAudioSettings does the same for the format of audio chunks.
func (t *baseTrack) updateAudioSettings(chunk audio.Chunk) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if chunk.SampleRate != 0 {
		t.settings.SampleRate = chunk.SampleRate
	}
	if chunk.ChannelCount != 0 {
		t.settings.ChannelCount = chunk.ChannelCount
	}
}
