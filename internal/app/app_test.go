// ABOUTME: Tests for the fx-assembled toolbox services
// ABOUTME: Runs convert, trim, play and timer sounds against a recording output
package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/harperreed/toolbox/internal/config"
	"github.com/harperreed/toolbox/pkg/audio"
	"github.com/harperreed/toolbox/pkg/audio/output"
	"github.com/harperreed/toolbox/pkg/audio/tone"
	"github.com/harperreed/toolbox/pkg/audio/wav"
	"github.com/harperreed/toolbox/pkg/timer"
)

type harness struct {
	cfg      *config.Config
	recorder *output.Recorder
	clock    *timer.ManualClock
	tools    *Tools
	keeper   *Timekeeper
}

func newHarness(t *testing.T, mutate ...func(*config.Config)) *harness {
	t.Helper()

	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "toolbox.log")
	for _, m := range mutate {
		m(cfg)
	}

	h := &harness{
		cfg:      cfg,
		recorder: output.NewRecorder(),
		clock:    timer.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	a := New(cfg, false,
		fx.Decorate(func(output.Output) output.Output { return h.recorder }),
		fx.Decorate(func(timer.Clock) timer.Clock { return h.clock }),
		fx.Populate(&h.tools, &h.keeper),
	)
	require.NoError(t, a.Err())
	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(func() {
		assert.NoError(t, a.Stop(context.Background()))
	})
	return h
}

func writeInput(t *testing.T, dir string, buf *audio.Buffer) string {
	t.Helper()
	data, err := wav.Encode(buf)
	require.NoError(t, err)
	path := filepath.Join(dir, "input.wav")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func ramp(sampleRate, seconds int) *audio.Buffer {
	buf := audio.NewBuffer(sampleRate, 1, sampleRate*seconds)
	for i := range buf.Channels[0] {
		buf.Channels[0][i] = float32(i%100) / 100
	}
	return buf
}

func TestConvertWritesDefaultOutput(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	input := writeInput(t, dir, ramp(8000, 1))

	report, err := h.tools.Convert(input, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "input-converted.wav"), report.Output)
	assert.Equal(t, "wav", report.Format.Codec)
	assert.Equal(t, 8000, report.Frames)
	assert.Equal(t, time.Second, report.Duration)

	data, err := os.ReadFile(report.Output)
	require.NoError(t, err)
	assert.Equal(t, report.Bytes, int64(len(data)))
}

func TestTrimWritesClip(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	input := writeInput(t, dir, ramp(8000, 2))
	out := filepath.Join(dir, "nested", "clip.wav")

	report, err := h.tools.Trim(input, out, audio.Range{Start: 0.5, End: 1.5})
	require.NoError(t, err)
	assert.Equal(t, 8000, report.Frames)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	info, err := wav.ReadInfo(data)
	require.NoError(t, err)
	assert.Equal(t, 8000, info.Frames)
}

func TestTrimRejectsInvalidRange(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	input := writeInput(t, dir, ramp(8000, 2))

	_, err := h.tools.Trim(input, "", audio.Range{Start: 1, End: 3})
	assert.ErrorIs(t, err, audio.ErrInvalidRange)

	_, statErr := os.Stat(filepath.Join(dir, "input-trimmed.wav"))
	assert.True(t, os.IsNotExist(statErr), "no output for a rejected trim")
}

func TestTrimClipsDecodesOnce(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	input := writeInput(t, dir, ramp(8000, 3))

	reports, err := h.tools.TrimClips(input, []audio.Range{
		{Start: 0, End: 1},
		{Start: 1, End: 1.5},
		{Start: 2, End: 3},
	})
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, filepath.Join(dir, "input-trimmed-2.wav"), reports[1].Output)
	assert.Equal(t, 4000, reports[1].Frames)

	assert.Equal(t, 1, h.tools.cache.len())
	assert.Equal(t, int64(2), h.tools.cache.hits.Load(), "later clips reuse the decoded input")
}

func TestTrimClipsStopsAtBadRange(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	input := writeInput(t, dir, ramp(8000, 2))

	reports, err := h.tools.TrimClips(input, []audio.Range{
		{Start: 0, End: 1},
		{Start: 1.5, End: 5},
	})
	assert.ErrorIs(t, err, audio.ErrInvalidRange)
	assert.ErrorContains(t, err, "clip 2")
	require.Len(t, reports, 1)

	_, statErr := os.Stat(filepath.Join(dir, "input-trimmed-2.wav"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "broken.wav")

	_, err := h.tools.write(&audio.Buffer{}, path)
	assert.ErrorIs(t, err, audio.ErrUnsupportedInput)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial output must be removed")
}

func TestOutputPathUsesConfiguredDir(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Audio.OutputDir = "/srv/out" })
	assert.Equal(t, "/srv/out/song-converted.wav", h.tools.OutputPath("/music/song.mp3", "converted"))
}

func TestInfo(t *testing.T) {
	h := newHarness(t)
	input := writeInput(t, t.TempDir(), audio.NewBuffer(22050, 2, 44100))

	report, err := h.tools.Info(input)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Channels)
	assert.Equal(t, 44100, report.Frames)
	assert.Equal(t, 2*time.Second, report.Duration)
	assert.Equal(t, 16, report.Format.BitDepth)
}

func TestDecodeCacheTracksFileChanges(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	input := writeInput(t, dir, ramp(8000, 1))

	first, err := h.tools.Info(input)
	require.NoError(t, err)
	_, err = h.tools.Info(input)
	require.NoError(t, err)
	assert.Equal(t, 1, h.tools.cache.len())

	writeInput(t, dir, ramp(8000, 2))
	second, err := h.tools.Info(input)
	require.NoError(t, err)
	assert.Equal(t, 8000, first.Frames)
	assert.Equal(t, 16000, second.Frames)
	assert.Equal(t, 2, h.tools.cache.len())
}

func TestPlayUsesOutput(t *testing.T) {
	h := newHarness(t)
	input := writeInput(t, t.TempDir(), ramp(8000, 1))

	require.NoError(t, h.tools.Play(context.Background(), input, 0.5))
	assert.Equal(t, 0.5, h.recorder.Volume())

	rate, channels := h.recorder.Format()
	assert.Equal(t, 8000, rate)
	assert.Equal(t, 1, channels)
	require.Len(t, h.recorder.Writes(), 1)
	assert.Len(t, h.recorder.Writes()[0], 8000)
}

func TestUnknownInputFormat(t *testing.T) {
	h := newHarness(t)
	_, err := h.tools.Convert("movie.mkv", "")
	assert.Error(t, err)
}

func TestCountdownExpiryPlaysChime(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Timer.DefaultDuration = 2 * time.Second })

	cd := h.keeper.Countdown()
	assert.Equal(t, 2*time.Second, cd.Total())
	require.NoError(t, cd.Start())

	h.clock.Advance(2 * time.Second)
	require.Equal(t, timer.Finished, cd.Tick())

	chime := tone.Sequence(tone.Chime, h.cfg.Sound.Volume, tone.DefaultSampleRate)
	// Warning at 1s, then the chime
	require.Eventually(t, func() bool { return len(h.recorder.Writes()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Len(t, h.recorder.Writes()[1], chime.Frames())
}

func TestStopwatchStopBeeps(t *testing.T) {
	h := newHarness(t)

	sw := h.keeper.Stopwatch()
	require.NoError(t, sw.Start())
	h.clock.Advance(time.Second)
	_, err := sw.Lap()
	require.NoError(t, err)
	require.NoError(t, sw.Stop())
	assert.Equal(t, time.Second, sw.Elapsed())

	require.Eventually(t, func() bool { return len(h.recorder.Writes()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Len(t, h.recorder.Writes()[1], tone.Render(tone.Stop, 1, tone.DefaultSampleRate).Frames())

	// A failed stop makes no sound
	assert.ErrorIs(t, sw.Stop(), timer.ErrInvalidState)
}

func TestSoundsDisabled(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Sound.Enabled = false })

	sw := h.keeper.Stopwatch()
	require.NoError(t, sw.Start())
	require.NoError(t, sw.Stop())

	assert.False(t, h.keeper.Sounds().Enabled())
	assert.Never(t, func() bool { return len(h.recorder.Writes()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	h.keeper.Sounds().SetEnabled(true)
	h.keeper.Sounds().Lap()
	require.Eventually(t, func() bool { return len(h.recorder.Writes()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestSoundsVolumeClamps(t *testing.T) {
	h := newHarness(t)
	sounds := h.keeper.Sounds()
	assert.Equal(t, h.cfg.Sound.Volume, sounds.Volume())

	sounds.SetVolume(1.7)
	assert.Equal(t, 1.0, sounds.Volume())
	sounds.SetVolume(-0.2)
	assert.Equal(t, 0.0, sounds.Volume())
	sounds.SetVolume(0.25)
	assert.Equal(t, 0.25, sounds.Volume())
}

func TestSessionsAreDistinct(t *testing.T) {
	a := newSession(zap.NewNop(), "timer")
	b := newSession(zap.NewNop(), "timer")

	assert.NotEqual(t, a.ID, b.ID)
	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.Equal(t, "timer", a.Tool)
}
