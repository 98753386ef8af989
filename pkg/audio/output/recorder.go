// ABOUTME: In-memory output used when no audio device is wanted
// ABOUTME: Records every write so callers can inspect what would have played
package output

import (
	"context"
	"fmt"
	"sync"
)

// Recorder is an Output that keeps written samples instead of playing them
type Recorder struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	writes     [][]float32
	closed     bool
	volume     float64
}

// NewRecorder creates an empty recorder at full volume
func NewRecorder() *Recorder {
	return &Recorder{volume: 1}
}

// Open records the requested format
func (r *Recorder) Open(sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid output format: %d Hz, %d channels", sampleRate, channels)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sampleRate = sampleRate
	r.channels = channels
	r.closed = false
	return nil
}

// Write stores a copy of samples
func (r *Recorder) Write(samples []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channels == 0 {
		return fmt.Errorf("output not initialized")
	}
	r.writes = append(r.writes, append([]float32(nil), samples...))
	return nil
}

// SetVolume records the requested volume; samples are stored unscaled
func (r *Recorder) SetVolume(volume float64) {
	r.mu.Lock()
	r.volume = clampVolume(volume)
	r.mu.Unlock()
}

// Volume returns the last volume set
func (r *Recorder) Volume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volume
}

// Drain returns immediately
func (r *Recorder) Drain(ctx context.Context) error {
	return ctx.Err()
}

// Close marks the recorder closed
func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Writes returns the recorded writes in order
func (r *Recorder) Writes() [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]float32, len(r.writes))
	copy(out, r.writes)
	return out
}

// Format returns the last opened sample rate and channel count
func (r *Recorder) Format() (sampleRate, channels int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sampleRate, r.channels
}

// Closed reports whether Close has been called
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
