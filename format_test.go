package screenshare

import "testing"

func TestFormatBandwidth(t *testing.T) {
	testCases := []struct {
		bytes    float64
		expected string
	}{
		{0, "0 B/s"},
		{512.5, "512.5 B/s"},
		{1023, "1023 B/s"},
		{1024, "1.0 KB/s"},
		{1536, "1.5 KB/s"},
		{1024*1024 - 1, "1024.0 KB/s"},
		{2 * 1024 * 1024, "2.00 MB/s"},
		{5.5 * 1024 * 1024 * 1024, "5632.00 MB/s"},
	}

	for _, c := range testCases {
		if actual := FormatBandwidth(c.bytes); actual != c.expected {
			t.Errorf("FormatBandwidth(%v): expected %q, got %q", c.bytes, c.expected, actual)
		}
	}
}
