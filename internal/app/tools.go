// ABOUTME: Audio converter, trimmer, info and preview tools
// ABOUTME: Decode input files, optionally trim, and write 16-bit WAV output
package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/toolbox/internal/config"
	"github.com/harperreed/toolbox/pkg/audio"
	"github.com/harperreed/toolbox/pkg/audio/decode"
	"github.com/harperreed/toolbox/pkg/audio/output"
	"github.com/harperreed/toolbox/pkg/audio/wav"
)

// Report describes the result of an audio tool run
type Report struct {
	Input    string
	Output   string
	Format   audio.Format
	Channels int
	Frames   int
	Duration time.Duration
	Bytes    int64
}

// Tools runs the audio converter and trimmer
type Tools struct {
	cfg    *config.Config
	logger *zap.Logger
	out    output.Output
	cache  *decodeCache
}

// NewTools creates the audio tools
func NewTools(cfg *config.Config, logger *zap.Logger, out output.Output) *Tools {
	return &Tools{
		cfg:    cfg,
		logger: logger,
		out:    out,
		cache:  newDecodeCache(cfg.Audio.CacheSize),
	}
}

// OutputPath derives "<dir>/<base>-<suffix>.wav" for an input file. The
// directory is audio.output_dir when set, else the input's own.
func (t *Tools) OutputPath(input, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := t.cfg.Audio.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+"-"+suffix+wav.Extension)
}

// Convert decodes input and writes it as WAV
func (t *Tools) Convert(input, out string) (Report, error) {
	session := newSession(t.logger, "convert")
	if out == "" {
		out = t.OutputPath(input, "converted")
	}

	buf, format, err := t.decode(input)
	if err != nil {
		return Report{}, err
	}

	report, err := t.write(buf, out)
	if err != nil {
		return Report{}, err
	}
	report.Input = input
	report.Format = format

	session.Logger.Info("converted",
		zap.String("input", input),
		zap.String("output", out),
		zap.String("codec", format.Codec),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// Trim decodes input, cuts it to r and writes the clip as WAV
func (t *Tools) Trim(input, out string, r audio.Range) (Report, error) {
	session := newSession(t.logger, "trim")
	if out == "" {
		out = t.OutputPath(input, "trimmed")
	}

	buf, format, err := t.decode(input)
	if err != nil {
		return Report{}, err
	}

	clip, err := audio.Trim(buf, r)
	if err != nil {
		return Report{}, err
	}

	report, err := t.write(clip, out)
	if err != nil {
		return Report{}, err
	}
	report.Input = input
	report.Format = format

	session.Logger.Info("trimmed",
		zap.String("input", input),
		zap.String("output", out),
		zap.Float64("start", r.Start),
		zap.Float64("end", r.End),
		zap.Int("frames", report.Frames))
	return report, nil
}

// TrimClips cuts several ranges from one input, writing each to
// "<base>-trimmed-N.wav". The input is decoded once and reused from the
// decode cache. Reports for clips written before a failure are returned
// with the error.
func (t *Tools) TrimClips(input string, ranges []audio.Range) ([]Report, error) {
	reports := make([]Report, 0, len(ranges))
	for i, r := range ranges {
		out := t.OutputPath(input, fmt.Sprintf("trimmed-%d", i+1))
		report, err := t.Trim(input, out, r)
		if err != nil {
			return reports, fmt.Errorf("clip %d: %w", i+1, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Info decodes input and describes it
func (t *Tools) Info(input string) (Report, error) {
	buf, format, err := t.decode(input)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Input:    input,
		Format:   format,
		Channels: buf.NumChannels(),
		Frames:   buf.Frames(),
		Duration: buf.Duration(),
	}, nil
}

// Play decodes input and plays it through the output device at volume (0-1)
func (t *Tools) Play(ctx context.Context, input string, volume float64) error {
	session := newSession(t.logger, "play")

	buf, _, err := t.decode(input)
	if err != nil {
		return err
	}

	if vc, ok := t.out.(output.VolumeControl); ok {
		vc.SetVolume(volume)
	}

	session.Logger.Info("playing", zap.String("input", input), zap.Duration("duration", buf.Duration()))

	done := make(chan error, 1)
	go func() {
		done <- output.Play(t.out, buf)
	}()

	select {
	case <-ctx.Done():
		// Closing the output unblocks the pending write
		_ = t.out.Close()
		<-done
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return err
		}
	}
	return t.out.Drain(ctx)
}

func (t *Tools) decode(input string) (*audio.Buffer, audio.Format, error) {
	opts := decode.DefaultOptions()
	opts.Channels = t.cfg.Audio.OpusChannels

	key, cacheable := t.cache.key(input, opts.Channels)
	if cacheable {
		if d, ok := t.cache.get(key); ok {
			t.logger.Debug("decode cache hit", zap.String("input", input))
			return d.buf, d.format, nil
		}
	}

	buf, format, err := decode.File(input, opts)
	if err != nil {
		return nil, audio.Format{}, err
	}
	if cacheable {
		t.cache.add(key, decoded{buf: buf, format: format})
	}
	return buf, format, nil
}

func (t *Tools) write(buf *audio.Buffer, path string) (Report, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Report{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	err = wav.NewEncoder(w).Encode(buf)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return Report{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Report{}, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return Report{
		Output:   path,
		Channels: buf.NumChannels(),
		Frames:   buf.Frames(),
		Duration: buf.Duration(),
		Bytes:    int64(wav.HeaderSize + buf.Frames()*buf.NumChannels()*2),
	}, nil
}
