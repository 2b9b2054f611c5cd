package quality

import (
	"context"
	"errors"

	"github.com/pion/webrtc/v4"
)

// ErrConnectionClosed is returned by a peer connection source once the
// connection has been closed.
var ErrConnectionClosed = errors.New("quality: peer connection is closed")

// StatsSource provides statistics snapshots. Stats may block while the
// connection aggregates its counters.
type StatsSource interface {
	Stats(ctx context.Context) (webrtc.StatsReport, error)
}

// StatsSourceFunc is a proxy type to make easier for users to implement StatsSource
type StatsSourceFunc func(ctx context.Context) (webrtc.StatsReport, error)

// Stats implements StatsSource.
func (f StatsSourceFunc) Stats(ctx context.Context) (webrtc.StatsReport, error) {
	return f(ctx)
}

// FromPeerConnection samples pc through GetStats.
func FromPeerConnection(pc *webrtc.PeerConnection) StatsSource {
	return StatsSourceFunc(func(ctx context.Context) (webrtc.StatsReport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if pc.ConnectionState() == webrtc.PeerConnectionStateClosed {
			return nil, ErrConnectionClosed
		}
		return pc.GetStats(), nil
	})
}
