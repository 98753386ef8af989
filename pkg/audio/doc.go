// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Buffer, Format, Range and sample conversion functions
// Package audio provides the decoded-audio types shared by the toolbox codecs.
//
// This package defines core types used throughout the toolbox:
//   - Buffer: planar float PCM with a sample rate
//   - Format: describes the stream a buffer was decoded from
//   - Range: a span of a buffer in seconds, consumed by Trim
//
// Sample conversion clamps to [-1, 1] and scales by 32767, truncating toward
// zero, which is the rule the WAV encoder uses.
//
// Example:
//
//	buf := audio.NewBuffer(44100, 2, 44100*10)
//	clip, err := audio.Trim(buf, audio.Range{Start: 2, End: 4})
//	if errors.Is(err, audio.ErrInvalidRange) {
//	    // reject the request
//	}
package audio
