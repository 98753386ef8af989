// ABOUTME: Stopwatch state machine with lap recording
// ABOUTME: Banks run time on stop and keeps laps most recent first
package timer

import (
	"sync"
	"time"
)

// Lap is one recorded split
type Lap struct {
	Number       int
	LapElapsed   time.Duration
	TotalElapsed time.Duration
}

// StopwatchHooks are the signals a stopwatch emits. Nil hooks are skipped.
type StopwatchHooks struct {
	OnLap func(Lap)
}

// Stopwatch measures elapsed time. Once stopped it must be reset before it
// can run again.
type Stopwatch struct {
	clock Clock
	hooks StopwatchHooks

	mu           sync.Mutex
	phase        Phase
	accumulated  time.Duration
	runningSince time.Time
	lapStart     time.Time
	laps         []Lap
	lapCounter   int
}

// NewStopwatch creates a stopwatch in Ready
func NewStopwatch(clock Clock, hooks StopwatchHooks) *Stopwatch {
	return &Stopwatch{
		clock: clock,
		hooks: hooks,
		phase: Ready,
	}
}

// Start begins timing. Legal only in Ready.
func (s *Stopwatch) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Ready {
		return &InvalidStateError{Op: "start stopwatch", Phase: s.phase}
	}

	now := s.clock.Now()
	s.runningSince = now
	s.lapStart = now
	s.phase = Running
	return nil
}

// Lap records a split and starts the next lap. Legal only in Running.
func (s *Stopwatch) Lap() (Lap, error) {
	s.mu.Lock()
	if s.phase != Running {
		phase := s.phase
		s.mu.Unlock()
		return Lap{}, &InvalidStateError{Op: "lap stopwatch", Phase: phase}
	}

	now := s.clock.Now()
	s.lapCounter++
	lap := Lap{
		Number:       s.lapCounter,
		LapElapsed:   now.Sub(s.lapStart),
		TotalElapsed: s.accumulated + now.Sub(s.runningSince),
	}
	s.laps = append([]Lap{lap}, s.laps...)
	s.lapStart = now
	s.mu.Unlock()

	if s.hooks.OnLap != nil {
		s.hooks.OnLap(lap)
	}
	return lap, nil
}

// Stop banks the running time. Legal only in Running.
func (s *Stopwatch) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Running {
		return &InvalidStateError{Op: "stop stopwatch", Phase: s.phase}
	}

	s.accumulated += s.clock.Now().Sub(s.runningSince)
	s.runningSince = time.Time{}
	s.phase = Stopped
	return nil
}

// Reset clears elapsed time and laps and returns to Ready
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	s.accumulated = 0
	s.runningSince = time.Time{}
	s.lapStart = time.Time{}
	s.laps = nil
	s.lapCounter = 0
	s.phase = Ready
	s.mu.Unlock()
}

// ClearLaps drops recorded laps and restarts lap numbering without touching
// elapsed time
func (s *Stopwatch) ClearLaps() {
	s.mu.Lock()
	s.laps = nil
	s.lapCounter = 0
	s.mu.Unlock()
}

// Elapsed returns banked time plus the current run segment
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Running {
		return s.accumulated + s.clock.Now().Sub(s.runningSince)
	}
	return s.accumulated
}

// Laps returns a copy of the recorded laps, most recent first
func (s *Stopwatch) Laps() []Lap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Lap(nil), s.laps...)
}

// Phase returns the current phase
func (s *Stopwatch) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}
