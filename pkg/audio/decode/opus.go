// ABOUTME: Ogg Opus audio decoder
// ABOUTME: Decodes Ogg Opus files to 48kHz float samples via libopusfile
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/harperreed/toolbox/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// opusSampleRate is the fixed output rate of libopusfile
const opusSampleRate = 48000

// opusFrameSize is the largest Opus frame (120ms at 48kHz) per channel
const opusFrameSize = 5760

// OpusDecoder decodes Ogg Opus audio
type OpusDecoder struct {
	channels int
}

// NewOpus creates a new Opus decoder producing the given channel count
func NewOpus(channels int) (Decoder, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("invalid channel count for Opus decoder: %d", channels)
	}
	return &OpusDecoder{channels: channels}, nil
}

// Decode reads an Ogg Opus stream to the end
func (d *OpusDecoder) Decode(r io.Reader) (*audio.Buffer, audio.Format, error) {
	stream, err := opus.NewStream(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to open opus stream: %w", err)
	}
	defer stream.Close()

	var samples []float32
	pcm := make([]float32, opusFrameSize*d.channels)
	for {
		n, err := stream.ReadFloat32(pcm)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, audio.Format{}, fmt.Errorf("opus decode failed: %w", err)
		}
		samples = append(samples, pcm[:n*d.channels]...)
	}

	return audio.Deinterleave(samples, opusSampleRate, d.channels), opusFormat(d.channels), nil
}

// opusFormat describes decoded Opus. The codec has no source bit depth,
// so BitDepth stays zero.
func opusFormat(channels int) audio.Format {
	return audio.Format{
		Codec:      "opus",
		SampleRate: opusSampleRate,
		Channels:   channels,
	}
}
