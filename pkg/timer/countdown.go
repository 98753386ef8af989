// ABOUTME: Countdown timer state machine
// ABOUTME: Tracks remaining time against an absolute end and emits tick, warning and expiry signals
package timer

import (
	"context"
	"sync"
	"time"
)

// DefaultWarningSeconds is how many final seconds emit a warning signal
const DefaultWarningSeconds = 10

// CountdownHooks are the signals a countdown emits. Nil hooks are skipped.
type CountdownHooks struct {
	// OnTick fires once for every whole second the display crosses
	OnTick func(remaining time.Duration)
	// OnWarning fires for each whole second reached in [1, warning seconds],
	// never from the tick that finishes the countdown
	OnWarning func(remaining time.Duration)
	// OnExpired fires exactly once when the countdown reaches zero
	OnExpired func()
}

// CountdownOption configures a Countdown
type CountdownOption func(*Countdown)

// WithWarningSeconds sets the warning window; zero disables warnings
func WithWarningSeconds(n int) CountdownOption {
	return func(c *Countdown) {
		if n >= 0 {
			c.warning = n
		}
	}
}

// Countdown counts a configured duration down to zero
type Countdown struct {
	clock Clock
	hooks CountdownHooks

	mu        sync.Mutex
	phase     Phase
	total     time.Duration
	remaining time.Duration
	targetEnd time.Time
	// lastSecond is the whole-second value most recently signalled
	lastSecond int
	warning    int
}

// NewCountdown creates a countdown in Ready with zero duration
func NewCountdown(clock Clock, hooks CountdownHooks, opts ...CountdownOption) *Countdown {
	c := &Countdown{
		clock:   clock,
		hooks:   hooks,
		phase:   Ready,
		warning: DefaultWarningSeconds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure sets the total duration. Legal only in Ready.
func (c *Countdown) Configure(total time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Ready {
		return &InvalidStateError{Op: "configure countdown", Phase: c.phase}
	}
	if total < 0 {
		return &InvalidDurationError{Duration: total, Reason: "countdown duration must not be negative"}
	}

	c.total = total
	c.remaining = total
	return nil
}

// Start begins counting from Ready, or resumes from Paused
func (c *Countdown) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case Ready:
		if c.remaining <= 0 {
			return &InvalidStateError{Op: "start countdown with no time remaining", Phase: c.phase}
		}
		c.lastSecond = ceilSeconds(c.remaining)
	case Paused:
	default:
		return &InvalidStateError{Op: "start countdown", Phase: c.phase}
	}

	c.targetEnd = c.clock.Now().Add(c.remaining)
	c.phase = Running
	return nil
}

// Resume continues a paused countdown
func (c *Countdown) Resume() error {
	c.mu.Lock()
	phase := c.phase
	c.mu.Unlock()

	if phase != Paused {
		return &InvalidStateError{Op: "resume countdown", Phase: phase}
	}
	return c.Start()
}

// Pause freezes the remaining time. Legal only in Running. A countdown
// whose end has already passed settles to Finished instead and the pause
// is rejected.
func (c *Countdown) Pause() error {
	c.mu.Lock()
	if c.phase != Running {
		phase := c.phase
		c.mu.Unlock()
		return &InvalidStateError{Op: "pause countdown", Phase: phase}
	}

	left := c.leftLocked()
	if left <= 0 {
		c.mu.Unlock()
		phase := c.Tick()
		return &InvalidStateError{Op: "pause countdown", Phase: phase}
	}

	c.remaining = left
	c.phase = Paused
	c.mu.Unlock()
	return nil
}

// Reset restores the configured duration and returns to Ready
func (c *Countdown) Reset() {
	c.mu.Lock()
	c.remaining = c.total
	c.targetEnd = time.Time{}
	c.lastSecond = 0
	c.phase = Ready
	c.mu.Unlock()
}

// Tick recomputes the remaining time from the clock and emits any signals due.
// It is a no-op outside Running and returns the phase after the update.
func (c *Countdown) Tick() Phase {
	c.mu.Lock()
	if c.phase != Running {
		phase := c.phase
		c.mu.Unlock()
		return phase
	}

	left := c.leftLocked()
	secs := ceilSeconds(left)
	expired := left <= 0
	if expired {
		secs = 0
		c.remaining = 0
		c.phase = Finished
	} else {
		c.remaining = left
	}

	var crossed []int
	for s := c.lastSecond - 1; s >= secs; s-- {
		crossed = append(crossed, s)
	}
	if secs < c.lastSecond {
		c.lastSecond = secs
	}
	warning := c.warning
	phase := c.phase
	c.mu.Unlock()

	for _, s := range crossed {
		d := time.Duration(s) * time.Second
		if c.hooks.OnTick != nil {
			c.hooks.OnTick(d)
		}
		// Seconds skipped by the tick that expires get no warning
		if !expired && s >= 1 && s <= warning && c.hooks.OnWarning != nil {
			c.hooks.OnWarning(d)
		}
	}
	if expired && c.hooks.OnExpired != nil {
		c.hooks.OnExpired()
	}
	return phase
}

// Run ticks the countdown every interval until it finishes or ctx is done.
// Pausing does not end Run; Reset does.
func (c *Countdown) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			switch c.Tick() {
			case Finished, Ready:
				return nil
			}
		}
	}
}

// Phase returns the current phase
func (c *Countdown) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Total returns the configured duration
func (c *Countdown) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Remaining returns the time left. While running it is read from the clock.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == Running {
		return c.leftLocked()
	}
	return c.remaining
}

// RemainingSeconds returns the remaining time rounded up to a whole second
func (c *Countdown) RemainingSeconds() int {
	return ceilSeconds(c.Remaining())
}

// Progress returns the elapsed fraction of the total in [0, 1]
func (c *Countdown) Progress() float64 {
	c.mu.Lock()
	total := c.total
	c.mu.Unlock()

	if total <= 0 {
		return 0
	}
	p := 1 - float64(c.Remaining())/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (c *Countdown) leftLocked() time.Duration {
	left := c.targetEnd.Sub(c.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// ceilSeconds rounds d up to whole seconds
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
