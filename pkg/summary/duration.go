package summary

import (
	"fmt"
	"strings"
)

const (
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// FormatDuration renders milliseconds as e.g. "1h 1m 1s 1ms", largest unit first, omitting
// zero units. Zero and negative durations render as "0ms".
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0ms"
	}

	h := ms / msPerHour
	m := (ms % msPerHour) / msPerMinute
	s := (ms % msPerMinute) / msPerSecond
	msLeft := ms % msPerSecond

	parts := make([]string, 0, 4)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	if msLeft > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dms", msLeft))
	}

	return strings.Join(parts, " ")
}
