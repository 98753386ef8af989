// ABOUTME: Error types for audio buffer operations
// ABOUTME: Typed range and input errors matched with errors.Is / errors.As
package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange matches any *InvalidRangeError
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnsupportedInput matches any *UnsupportedInputError
	ErrUnsupportedInput = errors.New("unsupported input")
)

// InvalidRangeError reports a trim range outside the buffer or with start >= end
type InvalidRangeError struct {
	Start    float64
	End      float64
	Duration float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%.3fs, %.3fs] for %.3fs of audio", e.Start, e.End, e.Duration)
}

// Is lets errors.Is(err, ErrInvalidRange) succeed
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// UnsupportedInputError reports a buffer the codec cannot process
type UnsupportedInputError struct {
	Reason string
}

func (e *UnsupportedInputError) Error() string {
	return "unsupported input: " + e.Reason
}

// Is lets errors.Is(err, ErrUnsupportedInput) succeed
func (e *UnsupportedInputError) Is(target error) bool {
	return target == ErrUnsupportedInput
}
