// ABOUTME: Feedback beeps for timer and stopwatch events
// ABOUTME: Renders tones and plays them off the caller's goroutine
package app

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/harperreed/toolbox/internal/config"
	"github.com/harperreed/toolbox/pkg/audio"
	"github.com/harperreed/toolbox/pkg/audio/output"
	"github.com/harperreed/toolbox/pkg/audio/tone"
)

// soundQueueSize bounds pending beeps; extra beeps are dropped
const soundQueueSize = 8

// Sounds plays the beeps attached to engine signals
type Sounds struct {
	logger  *zap.Logger
	out     output.Output
	enabled atomic.Bool

	mu     sync.Mutex
	volume float64
	closed bool
	queue  chan *audio.Buffer
	wg     sync.WaitGroup
}

// NewSounds creates the beep player and ties its worker to the lifecycle
func NewSounds(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger, out output.Output) *Sounds {
	s := &Sounds{
		logger: logger.Named("sounds"),
		out:    out,
		volume: clampVolume(cfg.Sound.Volume),
		queue:  make(chan *audio.Buffer, soundQueueSize),
	}
	s.enabled.Store(cfg.Sound.Enabled)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.wg.Add(1)
			go s.run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.mu.Lock()
			s.closed = true
			close(s.queue)
			s.mu.Unlock()
			s.wg.Wait()
			// Let the last beep finish before the device closes
			_ = s.out.Drain(ctx)
			return nil
		},
	})
	return s
}

// Enabled reports whether beeps are played
func (s *Sounds) Enabled() bool {
	return s.enabled.Load()
}

// SetEnabled turns beeps on or off
func (s *Sounds) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
	s.logger.Debug("sound toggled", zap.Bool("enabled", enabled))
}

// Volume returns the beep volume in [0, 1]
func (s *Sounds) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetVolume changes the volume of later beeps, clamped to [0, 1]
func (s *Sounds) SetVolume(volume float64) {
	volume = clampVolume(volume)
	s.mu.Lock()
	s.volume = volume
	s.mu.Unlock()
	s.logger.Debug("sound volume changed", zap.Float64("volume", volume))
}

func clampVolume(volume float64) float64 {
	return min(max(volume, 0), 1)
}

// Warning is the short tick in a countdown's final seconds
func (s *Sounds) Warning() {
	s.enqueue(tone.Render(tone.Warning, s.Volume(), tone.DefaultSampleRate))
}

// Expired is the three-note chime when a countdown ends
func (s *Sounds) Expired() {
	s.enqueue(tone.Sequence(tone.Chime, s.Volume(), tone.DefaultSampleRate))
}

// Lap is the stopwatch lap blip
func (s *Sounds) Lap() {
	s.enqueue(tone.Render(tone.Lap, s.Volume(), tone.DefaultSampleRate))
}

// Stopped is the stopwatch stop beep
func (s *Sounds) Stopped() {
	s.enqueue(tone.Render(tone.Stop, s.Volume(), tone.DefaultSampleRate))
}

func (s *Sounds) enqueue(buf *audio.Buffer) {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- buf:
	default:
		s.logger.Debug("sound queue full, dropping beep")
	}
}

func (s *Sounds) run() {
	defer s.wg.Done()
	for buf := range s.queue {
		if !s.Enabled() {
			continue
		}
		if err := output.Play(s.out, buf); err != nil {
			// Usually no audio device; stay quiet from here on
			s.logger.Warn("sound playback failed, disabling sounds", zap.Error(err))
			s.enabled.Store(false)
		}
	}
}
