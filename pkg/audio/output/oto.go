// ABOUTME: Oto-based audio output implementation
// ABOUTME: Handles PCM playback with software volume control using oto library
package output

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/harperreed/toolbox/pkg/audio"
	"go.uber.org/zap"
)

// drainPoll is how often Drain checks the player buffer
const drainPoll = 10 * time.Millisecond

// Oto output implementation using oto library
type Oto struct {
	mu         sync.Mutex
	logger     *zap.Logger
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	volume     float64
	ready      bool
	suspended  bool
}

// NewOto creates a new Oto output at full volume
func NewOto(logger *zap.Logger) *Oto {
	return &Oto{
		logger: logger.Named("output"),
		volume: 1,
	}
}

// Open initializes the output device. After Close it reopens on the
// existing context.
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan

		o.otoCtx = ctx
		o.sampleRate = sampleRate
		o.channels = channels

		o.logger.Info("audio output initialized",
			zap.Int("sample_rate", sampleRate),
			zap.Int("channels", channels))
	} else if o.sampleRate != sampleRate || o.channels != channels {
		// oto allows one context per process, so a format change keeps the old one
		o.logger.Warn("format change ignored, oto cannot reinitialize",
			zap.Int("sample_rate", o.sampleRate),
			zap.Int("channels", o.channels),
			zap.Int("requested_sample_rate", sampleRate),
			zap.Int("requested_channels", channels))
	}

	if o.ready {
		return nil
	}
	if o.suspended {
		if err := o.otoCtx.Resume(); err != nil {
			return fmt.Errorf("failed to resume oto context: %w", err)
		}
		o.suspended = false
	}

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	// Create persistent player that reads from the pipe
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true
	return nil
}

// Write outputs audio samples (blocks until written)
func (o *Oto) Write(samples []float32) error {
	o.mu.Lock()
	if !o.ready {
		o.mu.Unlock()
		return fmt.Errorf("output not initialized")
	}
	volume, writer := o.volume, o.pipeWriter
	o.mu.Unlock()

	volumedSamples := applyVolume(samples, volume)

	// Convert to 16-bit little-endian bytes for oto
	output := make([]byte, len(volumedSamples)*2)
	for i, sample := range volumedSamples {
		binary.LittleEndian.PutUint16(output[i*2:], uint16(audio.SampleToInt16(sample)))
	}

	// Write to pipe (which feeds the persistent player)
	// This blocks until the player has consumed the data
	if _, err := writer.Write(output); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Drain waits until the player has no buffered audio left
func (o *Oto) Drain(ctx context.Context) error {
	o.mu.Lock()
	player := o.player
	o.mu.Unlock()
	if player == nil {
		return nil
	}

	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()
	for player.BufferedSize() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil && o.ready {
		o.ready = false
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
		o.suspended = true
	}
	return nil
}

// SetVolume sets the volume (0-1)
func (o *Oto) SetVolume(volume float64) {
	o.mu.Lock()
	o.volume = clampVolume(volume)
	o.mu.Unlock()
	o.logger.Debug("volume set", zap.Float64("volume", volume))
}

// Volume returns current volume
func (o *Oto) Volume() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}
