// ABOUTME: Tests for clock formatting helpers
// ABOUTME: Table-driven checks of HH:MM:SS rendering and field validation
package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in     time.Duration
		clock  string
		millis string
	}{
		{0, "00:00:00", "00:00:00.000"},
		{1500 * time.Millisecond, "00:00:01", "00:00:01.500"},
		{59*time.Minute + 59*time.Second, "00:59:59", "00:59:59.000"},
		{time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond, "01:02:03", "01:02:03.045"},
		{100 * time.Hour, "100:00:00", "100:00:00.000"},
		{-time.Second, "00:00:00", "00:00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			assert.Equal(t, tt.clock, FormatClock(tt.in))
			assert.Equal(t, tt.millis, FormatClockMillis(tt.in))
		})
	}
}

func TestFromHMS(t *testing.T) {
	d, err := FromHMS(1, 30, 15)
	require.NoError(t, err)
	assert.Equal(t, time.Hour+30*time.Minute+15*time.Second, d)

	h, m, s := SplitHMS(d)
	assert.Equal(t, []int{1, 30, 15}, []int{h, m, s})
}

func TestFromHMSRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		h, m, s int
	}{
		{"hours", 24, 0, 0},
		{"negative hours", -1, 0, 0},
		{"minutes", 0, 60, 0},
		{"seconds", 0, 0, 60},
		{"negative seconds", 0, 0, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromHMS(tt.h, tt.m, tt.s)
			assert.ErrorIs(t, err, ErrInvalidDuration)
		})
	}
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []time.Duration{
		time.Minute, 5 * time.Minute, 10 * time.Minute, 15 * time.Minute, 30 * time.Minute,
	}, Presets)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "finished", Finished.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
