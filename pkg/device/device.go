// Package device classifies the client device from its user agent.
package device

import "strings"

// Type is a coarse device class.
type Type string

const (
	Mobile  Type = "mobile"
	Tablet  Type = "tablet"
	Desktop Type = "desktop"
)

var (
	mobileTokens = []string{"Android", "iPhone", "iPod"}
	tabletTokens = []string{"iPad"}
)

// Detect classifies userAgent by substring match. Phones win over tablets,
// anything unrecognised is a desktop.
func Detect(userAgent string) Type {
	switch {
	case containsAny(userAgent, mobileTokens):
		return Mobile
	case containsAny(userAgent, tabletTokens):
		return Tablet
	default:
		return Desktop
	}
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
