package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		ms       int64
		expected string
	}{
		{name: "zero", ms: 0, expected: "0ms"},
		{name: "negative", ms: -1500, expected: "0ms"},
		{name: "one millisecond", ms: 1, expected: "1ms"},
		{name: "one second", ms: 1000, expected: "1s"},
		{name: "one minute", ms: 60000, expected: "1m"},
		{name: "one hour", ms: 3600000, expected: "1h"},
		{name: "hour minute second", ms: 3661000, expected: "1h 1m 1s"},
		{name: "all units", ms: 3661001, expected: "1h 1m 1s 1ms"},
		{name: "skips zero minutes", ms: 3601500, expected: "1h 1s 500ms"},
		{name: "seconds and milliseconds", ms: 5250, expected: "5s 250ms"},
		{name: "many hours", ms: 90000000, expected: "25h"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDuration(tc.ms))
		})
	}
}

func TestFormatDurationNeverEmpty(t *testing.T) {
	for _, ms := range []int64{-1, 0, 1, 999, 1000, 59999, 60000, 3599999, 3600000} {
		assert.NotEmpty(t, FormatDuration(ms), "duration %d", ms)
	}
}
