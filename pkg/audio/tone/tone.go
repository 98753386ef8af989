// ABOUTME: Sine beep generator
// ABOUTME: Renders enveloped beeps and beep sequences into mono buffers
package tone

import (
	"math"
	"time"

	"github.com/harperreed/toolbox/pkg/audio"
)

const (
	// DefaultSampleRate is the rate beeps are rendered at
	DefaultSampleRate = 48000

	// Attack is the linear fade-in at the start of every beep
	Attack = 10 * time.Millisecond

	// Floor is the gain a beep decays to by its end
	Floor = 0.001
)

// Beep is a single sine tone
type Beep struct {
	Frequency float64
	Duration  time.Duration
}

// Step places a beep at an offset from the start of a sequence
type Step struct {
	Beep
	At time.Duration
}

// Signals used by the timer and stopwatch
var (
	Warning = Beep{Frequency: 600, Duration: 100 * time.Millisecond}
	Lap     = Beep{Frequency: 800, Duration: 100 * time.Millisecond}
	Stop    = Beep{Frequency: 600, Duration: 200 * time.Millisecond}

	// Chime is the rising three-note expiry signal
	Chime = []Step{
		{Beep: Beep{Frequency: 1000, Duration: 500 * time.Millisecond}, At: 0},
		{Beep: Beep{Frequency: 1200, Duration: 500 * time.Millisecond}, At: 600 * time.Millisecond},
		{Beep: Beep{Frequency: 1400, Duration: 500 * time.Millisecond}, At: 1200 * time.Millisecond},
	}
)

// Render returns a mono buffer holding b at the given peak volume (0..1)
func Render(b Beep, volume float64, sampleRate int) *audio.Buffer {
	return Sequence([]Step{{Beep: b}}, volume, sampleRate)
}

// Sequence renders steps into one mono buffer long enough for the last beep.
// Overlapping steps are summed and clipped.
func Sequence(steps []Step, volume float64, sampleRate int) *audio.Buffer {
	var end time.Duration
	for _, s := range steps {
		if e := s.At + s.Duration; e > end {
			end = e
		}
	}

	buf := audio.NewBuffer(sampleRate, 1, framesFor(end, sampleRate))
	out := buf.Channels[0]
	for _, s := range steps {
		offset := framesFor(s.At, sampleRate)
		n := framesFor(s.Duration, sampleRate)
		for i := 0; i < n && offset+i < len(out); i++ {
			t := float64(i) / float64(sampleRate)
			sample := math.Sin(2*math.Pi*s.Frequency*t) * Envelope(s.Beep, volume, t)
			v := float64(out[offset+i]) + sample
			out[offset+i] = float32(math.Max(-1, math.Min(1, v)))
		}
	}
	return buf
}

// Envelope returns the gain of b at t seconds: a linear ramp to volume over
// Attack, then an exponential decay reaching Floor at the end of the beep.
func Envelope(b Beep, volume, t float64) float64 {
	if volume <= 0 || t < 0 {
		return 0
	}
	volume = math.Min(volume, 1)

	attack := Attack.Seconds()
	total := b.Duration.Seconds()
	if t >= total {
		return 0
	}
	if t < attack {
		return volume * t / attack
	}
	if volume <= Floor || total <= attack {
		return volume
	}
	frac := (t - attack) / (total - attack)
	return volume * math.Pow(Floor/volume, frac)
}

func framesFor(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}
