package quality

import "math"

type rule struct {
	minBandwidth float64 // KiB, exclusive
	maxRTT       float64 // ms, exclusive
	maxLoss      float64 // exclusive
	label        Label
}

// Evaluated in order, the first match wins.
var rules = []rule{
	{minBandwidth: 500, maxRTT: 100, maxLoss: 0.01, label: Excellent},
	{minBandwidth: 200, maxRTT: 200, maxLoss: 0.05, label: Good},
	{minBandwidth: 50, maxRTT: 500, maxLoss: math.Inf(1), label: Fair},
}

// Classify maps m onto a label. Anything that matches no rule is Poor.
func Classify(m Metrics) Label {
	for _, r := range rules {
		if m.Bandwidth > r.minBandwidth && m.RTT < r.maxRTT && m.PacketLossRate < r.maxLoss {
			return r.label
		}
	}
	return Poor
}
