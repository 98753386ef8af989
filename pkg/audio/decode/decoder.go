// ABOUTME: Decoder interface definition and codec registry
// ABOUTME: Maps file extensions to decoders that produce planar float buffers
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/toolbox/pkg/audio"
)

// ErrUnknownFormat reports a file extension with no registered decoder
var ErrUnknownFormat = errors.New("unknown audio format")

// Decoder decodes a complete encoded stream to PCM
type Decoder interface {
	// Decode reads r to the end and returns the decoded audio and its source format
	Decode(r io.Reader) (*audio.Buffer, audio.Format, error)
}

// Options carries stream parameters that some containers do not record
type Options struct {
	// Channels is the output channel count for Ogg Opus and raw PCM
	Channels int
	// SampleRate is the raw PCM sample rate
	SampleRate int
	// BitDepth is the raw PCM sample width (16 or 24)
	BitDepth int
}

// DefaultOptions returns stereo 16-bit 48kHz, the common Opus layout
func DefaultOptions() Options {
	return Options{Channels: 2, SampleRate: 48000, BitDepth: 16}
}

// New returns the decoder for a codec name: mp3, flac, opus, wav or pcm
func New(codec string, opts Options) (Decoder, error) {
	switch codec {
	case "mp3":
		return NewMP3(), nil
	case "flac":
		return NewFLAC(), nil
	case "opus":
		channels := opts.Channels
		if channels == 0 {
			channels = 2
		}
		return NewOpus(channels)
	case "wav":
		return NewWAV(), nil
	case "pcm":
		return NewPCM(audio.Format{
			Codec:      "pcm",
			SampleRate: opts.SampleRate,
			Channels:   opts.Channels,
			BitDepth:   opts.BitDepth,
		})
	default:
		return nil, fmt.Errorf("%w: codec %q", ErrUnknownFormat, codec)
	}
}

// CodecForPath maps a file name to a codec by extension
func CodecForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		return "mp3", nil
	case ".flac":
		return "flac", nil
	case ".opus", ".ogg", ".oga":
		return "opus", nil
	case ".wav", ".wave":
		return "wav", nil
	case ".pcm", ".raw":
		return "pcm", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ForPath returns the decoder for a file name
func ForPath(path string, opts Options) (Decoder, error) {
	codec, err := CodecForPath(path)
	if err != nil {
		return nil, err
	}
	return New(codec, opts)
}

// File opens and decodes an audio file
func File(path string, opts Options) (*audio.Buffer, audio.Format, error) {
	dec, err := ForPath(path, opts)
	if err != nil {
		return nil, audio.Format{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	buf, format, err := dec.Decode(f)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return buf, format, nil
}
