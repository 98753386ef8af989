// ABOUTME: Tests for the stopwatch state machine
// ABOUTME: Covers lap accounting, frozen elapsed time after stop and reset rules
package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwatchLapAccounting(t *testing.T) {
	clock := NewManualClock(epoch)
	var signalled []Lap
	sw := NewStopwatch(clock, StopwatchHooks{OnLap: func(l Lap) { signalled = append(signalled, l) }})

	require.NoError(t, sw.Start())
	clock.Advance(5 * time.Second)
	_, err := sw.Lap()
	require.NoError(t, err)
	clock.Advance(3 * time.Second)
	latest, err := sw.Lap()
	require.NoError(t, err)

	laps := sw.Laps()
	require.Len(t, laps, 2)
	assert.Equal(t, latest, laps[0], "most recent lap first")
	assert.Equal(t, 3*time.Second, laps[0].LapElapsed)
	assert.Equal(t, 8*time.Second, laps[0].TotalElapsed)
	assert.Equal(t, 2, laps[0].Number)
	assert.Equal(t, 5*time.Second, laps[1].LapElapsed)
	assert.Equal(t, 1, laps[1].Number)
	assert.Len(t, signalled, 2)
}

func TestStopwatchStopFreezesElapsed(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := NewStopwatch(clock, StopwatchHooks{})

	require.NoError(t, sw.Start())
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, sw.Elapsed())
	require.NoError(t, sw.Stop())

	clock.Advance(time.Minute)
	assert.Equal(t, 1500*time.Millisecond, sw.Elapsed())
	assert.Equal(t, Stopped, sw.Phase())
}

func TestStopwatchElapsedHasNoSideEffects(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := NewStopwatch(clock, StopwatchHooks{})
	require.NoError(t, sw.Start())
	clock.Advance(time.Second)

	for i := 0; i < 1000; i++ {
		sw.Elapsed()
	}
	assert.Equal(t, time.Second, sw.Elapsed())
	assert.Empty(t, sw.Laps())
}

func TestStopwatchRequiresResetAfterStop(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := NewStopwatch(clock, StopwatchHooks{})
	require.NoError(t, sw.Start())
	clock.Advance(time.Second)
	require.NoError(t, sw.Stop())

	err := sw.Start()
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, Stopped, stateErr.Phase)
	assert.Equal(t, time.Second, sw.Elapsed())

	sw.Reset()
	assert.Equal(t, Ready, sw.Phase())
	assert.Equal(t, time.Duration(0), sw.Elapsed())
	require.NoError(t, sw.Start())
}

func TestStopwatchIllegalTransitions(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := NewStopwatch(clock, StopwatchHooks{})

	_, err := sw.Lap()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, sw.Stop(), ErrInvalidState)

	require.NoError(t, sw.Start())
	assert.ErrorIs(t, sw.Start(), ErrInvalidState)
	require.NoError(t, sw.Stop())
	_, err = sw.Lap()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, sw.Stop(), ErrInvalidState)
	assert.Empty(t, sw.Laps())
}

func TestStopwatchResetClearsLaps(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := NewStopwatch(clock, StopwatchHooks{})
	require.NoError(t, sw.Start())
	clock.Advance(time.Second)
	sw.Lap()

	sw.Reset()
	assert.Empty(t, sw.Laps())

	require.NoError(t, sw.Start())
	clock.Advance(time.Second)
	lap, err := sw.Lap()
	require.NoError(t, err)
	assert.Equal(t, 1, lap.Number)
}

func TestStopwatchClearLapsKeepsTime(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := NewStopwatch(clock, StopwatchHooks{})
	require.NoError(t, sw.Start())
	clock.Advance(2 * time.Second)
	sw.Lap()
	sw.Lap()

	sw.ClearLaps()
	assert.Empty(t, sw.Laps())
	assert.Equal(t, Running, sw.Phase())
	assert.Equal(t, 2*time.Second, sw.Elapsed())

	clock.Advance(time.Second)
	lap, err := sw.Lap()
	require.NoError(t, err)
	assert.Equal(t, 1, lap.Number)
	assert.Equal(t, 3*time.Second, lap.TotalElapsed)
}

func TestStopwatchLapsReturnsCopy(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := NewStopwatch(clock, StopwatchHooks{})
	require.NoError(t, sw.Start())
	clock.Advance(time.Second)
	sw.Lap()

	laps := sw.Laps()
	laps[0].Number = 99
	assert.Equal(t, 1, sw.Laps()[0].Number)
}
