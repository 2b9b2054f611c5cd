package screenshare

import "fmt"

// FormatBandwidth renders a byte rate for display, e.g. "1.5 KB/s".
func FormatBandwidth(bytes float64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%v B/s", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB/s", bytes/1024)
	default:
		return fmt.Sprintf("%.2f MB/s", bytes/1024/1024)
	}
}
