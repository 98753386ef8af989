// ABOUTME: Audio type definitions
// ABOUTME: Defines decoded buffers, stream formats and sample conversion
package audio

import (
	"fmt"
	"math"
	"time"
)

const (
	// MaxInt16Sample is the full-scale positive 16-bit value; -1.0 maps to its negation
	MaxInt16Sample = 32767

	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes the stream a buffer was decoded from
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	// BitDepth is the source sample width, or 0 for lossy codecs without one
	BitDepth int
}

// Buffer represents decoded PCM audio as planar float samples.
// Channels[c][i] is frame i of channel c, nominally in [-1.0, 1.0].
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer allocates a silent buffer
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{SampleRate: sampleRate, Channels: data}
}

// NumChannels returns the channel count
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the number of frames (samples per channel)
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Seconds returns the buffer length in seconds
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Duration returns the buffer length as a time.Duration
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// Validate checks the buffer can be processed
func (b *Buffer) Validate() error {
	if b == nil {
		return &UnsupportedInputError{Reason: "nil buffer"}
	}
	if len(b.Channels) == 0 {
		return &UnsupportedInputError{Reason: "buffer has no channels"}
	}
	if b.SampleRate <= 0 {
		return &UnsupportedInputError{Reason: fmt.Sprintf("invalid sample rate %d", b.SampleRate)}
	}
	if len(b.Channels) > math.MaxUint16 {
		return &UnsupportedInputError{Reason: fmt.Sprintf("too many channels: %d", len(b.Channels))}
	}
	frames := len(b.Channels[0])
	for c, ch := range b.Channels {
		if len(ch) != frames {
			return &UnsupportedInputError{
				Reason: fmt.Sprintf("channel %d has %d frames, channel 0 has %d", c, len(ch), frames),
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the buffer
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Channels: make([][]float32, len(b.Channels))}
	for c, ch := range b.Channels {
		out.Channels[c] = append([]float32(nil), ch...)
	}
	return out
}

// Interleave returns the samples frame by frame: ch0, ch1, ... for each frame
func (b *Buffer) Interleave() []float32 {
	channels := b.NumChannels()
	frames := b.Frames()
	out := make([]float32, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			out[i*channels+c] = b.Channels[c][i]
		}
	}
	return out
}

// Deinterleave builds a planar buffer from interleaved samples.
// Trailing samples that do not fill a whole frame are dropped.
func Deinterleave(samples []float32, sampleRate, channels int) *Buffer {
	if channels <= 0 {
		return &Buffer{SampleRate: sampleRate}
	}
	frames := len(samples) / channels
	buf := NewBuffer(sampleRate, channels, frames)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			buf.Channels[c][i] = samples[i*channels+c]
		}
	}
	return buf
}

// SampleToInt16 converts a float sample to 16-bit PCM.
// The sample is clamped to [-1, 1] and scaled by 32767 with truncation toward
// zero, so -1.0 encodes as -32767. NaN encodes as silence.
func SampleToInt16(sample float32) int16 {
	s := float64(sample)
	if math.IsNaN(s) {
		return 0
	}
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(s * MaxInt16Sample)
}

// SampleFromInt16 converts 16-bit PCM to a float sample
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / MaxInt16Sample
}

// SampleFromInt converts a signed integer sample of the given bit depth to float
func SampleFromInt(sample int32, bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		return 0
	}
	full := float64(int64(1)<<(bitDepth-1)) - 1
	v := float64(sample) / full
	if v < -1 {
		v = -1
	}
	return float32(v)
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	// Reconstruct 24-bit value and sign-extend to 32-bit
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}
