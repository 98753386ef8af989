// ABOUTME: Timer and stopwatch tool instances
// ABOUTME: Binds engine signals to sounds and session logging
package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/toolbox/internal/config"
	"github.com/harperreed/toolbox/pkg/timer"
)

// Timekeeper opens timer and stopwatch tools
type Timekeeper struct {
	cfg    *config.Config
	logger *zap.Logger
	sounds *Sounds
	clock  timer.Clock
}

// NewTimekeeper creates a Timekeeper
func NewTimekeeper(cfg *config.Config, logger *zap.Logger, sounds *Sounds, clock timer.Clock) *Timekeeper {
	return &Timekeeper{cfg: cfg, logger: logger, sounds: sounds, clock: clock}
}

// Sounds returns the shared beep player
func (k *Timekeeper) Sounds() *Sounds {
	return k.sounds
}

// CountdownTool is a countdown owned by one session
type CountdownTool struct {
	*timer.Countdown
	Session *Session
}

// Countdown opens a countdown configured with the default duration
func (k *Timekeeper) Countdown() *CountdownTool {
	session := newSession(k.logger, "timer")
	log := session.Logger

	cd := timer.NewCountdown(k.clock, timer.CountdownHooks{
		OnTick: func(remaining time.Duration) {
			log.Debug("tick", zap.Duration("remaining", remaining))
		},
		OnWarning: func(time.Duration) {
			k.sounds.Warning()
		},
		OnExpired: func() {
			log.Info("countdown expired")
			k.sounds.Expired()
		},
	}, timer.WithWarningSeconds(k.cfg.Timer.WarningSeconds))

	// Default duration is validated by config, so this cannot fail in Ready
	_ = cd.Configure(k.cfg.Timer.DefaultDuration)
	log.Info("timer opened", zap.Duration("duration", k.cfg.Timer.DefaultDuration))

	return &CountdownTool{Countdown: cd, Session: session}
}

// StopwatchTool is a stopwatch owned by one session
type StopwatchTool struct {
	*timer.Stopwatch
	Session *Session
	sounds  *Sounds
}

// Stopwatch opens a stopwatch
func (k *Timekeeper) Stopwatch() *StopwatchTool {
	session := newSession(k.logger, "stopwatch")
	log := session.Logger

	sw := timer.NewStopwatch(k.clock, timer.StopwatchHooks{
		OnLap: func(lap timer.Lap) {
			log.Info("lap",
				zap.Int("number", lap.Number),
				zap.Duration("lap", lap.LapElapsed),
				zap.Duration("total", lap.TotalElapsed))
			k.sounds.Lap()
		},
	})
	log.Info("stopwatch opened")

	return &StopwatchTool{Stopwatch: sw, Session: session, sounds: k.sounds}
}

// Stop stops the stopwatch and plays the stop beep
func (t *StopwatchTool) Stop() error {
	if err := t.Stopwatch.Stop(); err != nil {
		return err
	}
	t.Session.Logger.Info("stopwatch stopped", zap.Duration("elapsed", t.Elapsed()))
	t.sounds.Stopped()
	return nil
}
