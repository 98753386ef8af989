// ABOUTME: Error types for the timer engines
// ABOUTME: Typed errors for illegal transitions and invalid durations
package timer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidState matches every *InvalidStateError
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidDuration matches every *InvalidDurationError
	ErrInvalidDuration = errors.New("invalid duration")
)

// InvalidStateError reports a command issued in a phase that forbids it
type InvalidStateError struct {
	Op    string
	Phase Phase
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("timer: cannot %s while %s", e.Op, e.Phase)
}

// Is matches ErrInvalidState
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// InvalidDurationError reports a duration outside the accepted range
type InvalidDurationError struct {
	Duration time.Duration
	Reason   string
}

func (e *InvalidDurationError) Error() string {
	if e.Reason != "" {
		return "timer: " + e.Reason
	}
	return fmt.Sprintf("timer: invalid duration %s", e.Duration)
}

// Is matches ErrInvalidDuration
func (e *InvalidDurationError) Is(target error) bool {
	return target == ErrInvalidDuration
}
