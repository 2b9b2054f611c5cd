package quality

import (
	"github.com/pion/webrtc/v4"
)

const kindVideo = "video"

// Sample is the reduction of one statistics snapshot. Byte and packet
// counters are cumulative since the connection started.
type Sample struct {
	BytesReceived uint64
	BytesSent     uint64
	PacketsLost   int64
	// RoundTripTime is in seconds, as reported by the remote peer.
	RoundTripTime float64
}

// Reduce scans report once. Inbound and outbound video streams are summed,
// the round trip time comes from the remote-inbound video entry and is 0
// when the peer has not reported one yet.
func Reduce(report webrtc.StatsReport) Sample {
	var s Sample
	for _, stats := range report {
		switch st := stats.(type) {
		case webrtc.InboundRTPStreamStats:
			if st.Kind == kindVideo {
				s.BytesReceived += st.BytesReceived
				s.PacketsLost += int64(st.PacketsLost)
			}
		case webrtc.OutboundRTPStreamStats:
			if st.Kind == kindVideo {
				s.BytesSent += st.BytesSent
			}
		case webrtc.RemoteInboundRTPStreamStats:
			if st.Kind == kindVideo {
				s.RoundTripTime = st.RoundTripTime
			}
		}
	}
	return s
}

// Metrics are the values a Sample is classified by.
type Metrics struct {
	// Bandwidth is the total of bytes received and sent, in KiB. It is not
	// divided by any interval.
	Bandwidth float64
	// RTT is the round trip time in milliseconds.
	RTT float64
	// PacketLossRate is a smoothed loss ratio in [0, 1).
	PacketLossRate float64
}

// Metrics derives the classification metrics of s.
func (s Sample) Metrics() Metrics {
	return Metrics{
		Bandwidth:      float64(s.BytesReceived+s.BytesSent) / 1024,
		RTT:            s.RoundTripTime * 1000,
		PacketLossRate: PacketLossRate(s.PacketsLost),
	}
}

// PacketLossRate maps a lost packet count onto [0, 1) as lost/(lost+100).
// It is 0 only for no loss and never reaches 1. Negative counts, which RTCP
// reports when duplicates outnumber losses, count as no loss.
func PacketLossRate(lost int64) float64 {
	if lost <= 0 {
		return 0
	}
	return float64(lost) / float64(lost+100)
}
