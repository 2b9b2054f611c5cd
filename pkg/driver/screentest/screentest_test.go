package screentest

import (
	"image"
	"io"
	"testing"

	"github.com/pion/screenshare/pkg/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenEnd(t *testing.T) {
	s := New(64, 48)
	require.NoError(t, s.Open())
	defer s.Close()

	r, err := s.VideoRecord(prop.Media{Video: prop.Video{Width: 32, Height: 24}})
	require.NoError(t, err)

	img, release, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
	release()

	s.End()
	s.End()
	_, _, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, s.Frames())
}

func TestScreenClose(t *testing.T) {
	s := New(16, 16)
	require.NoError(t, s.Open())

	r, err := s.VideoRecord(prop.Media{})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSystemAudio(t *testing.T) {
	a := NewSystemAudio()
	require.NoError(t, a.Open())

	p := a.Properties()[0]
	r, err := a.AudioRecord(p)
	require.NoError(t, err)

	chunk, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 960, chunk.Frames())

	require.NoError(t, a.Close())
	_, _, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}
