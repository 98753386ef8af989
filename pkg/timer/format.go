// ABOUTME: Clock-face formatting and duration helpers
// ABOUTME: HH:MM:SS rendering, hour/minute/second input validation and presets
package timer

import (
	"fmt"
	"time"
)

// Presets are the quick-start countdown durations
var Presets = []time.Duration{
	1 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
}

// FormatClock renders d as HH:MM:SS, dropping fractions of a second
func FormatClock(d time.Duration) string {
	h, m, s := SplitHMS(d)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatClockMillis renders d as HH:MM:SS.mmm
func FormatClockMillis(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%s.%03d", FormatClock(d), ms)
}

// SplitHMS breaks d into whole hours, minutes and seconds. Negative
// durations split as zero.
func SplitHMS(d time.Duration) (hours, minutes, seconds int) {
	if d < 0 {
		return 0, 0, 0
	}
	total := int(d / time.Second)
	return total / 3600, total % 3600 / 60, total % 60
}

// FromHMS builds a duration from clock-face fields, rejecting out-of-range values
func FromHMS(hours, minutes, seconds int) (time.Duration, error) {
	switch {
	case hours < 0 || hours > 23:
		return 0, &InvalidDurationError{Reason: fmt.Sprintf("hours must be 0-23, got %d", hours)}
	case minutes < 0 || minutes > 59:
		return 0, &InvalidDurationError{Reason: fmt.Sprintf("minutes must be 0-59, got %d", minutes)}
	case seconds < 0 || seconds > 59:
		return 0, &InvalidDurationError{Reason: fmt.Sprintf("seconds must be 0-59, got %d", seconds)}
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second, nil
}
