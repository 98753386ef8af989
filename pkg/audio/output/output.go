// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import (
	"context"
	"fmt"

	"github.com/harperreed/toolbox/pkg/audio"
)

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write outputs interleaved float samples (blocks until queued)
	Write(samples []float32) error

	// Drain blocks until queued audio has been played
	Drain(ctx context.Context) error

	// Close releases output resources
	Close() error
}

// Play opens out for buf's format and queues the whole buffer
func Play(out Output, buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if err := out.Open(buf.SampleRate, buf.NumChannels()); err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	if err := out.Write(buf.Interleave()); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}
	return nil
}

// VolumeControl is implemented by outputs with software volume
type VolumeControl interface {
	SetVolume(volume float64)
	Volume() float64
}

// applyVolume scales samples by volume with clipping protection
func applyVolume(samples []float32, volume float64) []float32 {
	multiplier := clampVolume(volume)

	result := make([]float32, len(samples))
	for i, sample := range samples {
		scaled := float64(sample) * multiplier

		// Clamp to full scale to prevent wraparound in the int16 conversion
		if scaled > 1 {
			scaled = 1
		} else if scaled < -1 {
			scaled = -1
		}

		result[i] = float32(scaled)
	}

	return result
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
