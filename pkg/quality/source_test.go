package quality

import (
	"context"
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPeerConnection(t *testing.T) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	require.NoError(t, err)

	source := FromPeerConnection(pc)

	report, err := source.Stats(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report)

	require.NoError(t, pc.Close())

	_, err = source.Stats(context.Background())
	assert.ErrorIs(t, err, ErrConnectionClosed)
}

func TestFromPeerConnectionCanceled(t *testing.T) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	require.NoError(t, err)
	defer pc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = FromPeerConnection(pc).Stats(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
