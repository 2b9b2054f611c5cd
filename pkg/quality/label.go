// Package quality classifies the health of a peer connection from periodic
// statistics snapshots.
package quality

// Label is the coarse connection quality.
type Label string

const (
	Excellent Label = "excellent"
	Good      Label = "good"
	Fair      Label = "fair"
	Poor      Label = "poor"
)

// Labels lists every label from best to worst.
func Labels() []Label {
	return []Label{Excellent, Good, Fair, Poor}
}

func (l Label) String() string {
	return string(l)
}
