package loopback

import (
	"testing"

	"github.com/pion/screenshare/pkg/driver/availability"
	"github.com/stretchr/testify/assert"
)

func TestOpenWithoutContext(t *testing.T) {
	l := &loopback{}
	err := l.Open()
	assert.ErrorIs(t, err, availability.ErrUnsupported)
	assert.True(t, availability.IsError(err))
}

func TestProperties(t *testing.T) {
	props := (&loopback{}).Properties()
	if assert.Len(t, props, 1) {
		assert.True(t, props[0].SystemAudio)
		assert.Equal(t, 48000, props[0].SampleRate)
		assert.Equal(t, 2, props[0].ChannelCount)
	}
}

func TestCloseWithoutDevice(t *testing.T) {
	l := &loopback{}
	assert.NoError(t, l.Close())
}
