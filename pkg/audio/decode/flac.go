// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC frames to float samples via mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/harperreed/toolbox/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLACDecoder decodes FLAC audio
type FLACDecoder struct{}

// NewFLAC creates a new FLAC decoder
func NewFLAC() Decoder {
	return FLACDecoder{}
}

// Decode parses every frame of a FLAC stream
func (FLACDecoder) Decode(r io.Reader) (*audio.Buffer, audio.Format, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to open flac stream: %w", err)
	}
	defer stream.Close()

	format := audio.Format{
		Codec:      "flac",
		SampleRate: int(stream.Info.SampleRate),
		Channels:   int(stream.Info.NChannels),
		BitDepth:   int(stream.Info.BitsPerSample),
	}
	if format.Channels == 0 || format.SampleRate == 0 {
		return nil, audio.Format{}, fmt.Errorf("invalid flac stream info: %d Hz, %d channels", format.SampleRate, format.Channels)
	}

	// NSamples is zero when the encoder did not know the length up front
	buf := audio.NewBuffer(format.SampleRate, format.Channels, 0)
	if n := int(stream.Info.NSamples); n > 0 {
		for c := range buf.Channels {
			buf.Channels[c] = make([]float32, 0, n)
		}
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, audio.Format{}, fmt.Errorf("flac frame decode failed: %w", err)
		}

		for c, sub := range frame.Subframes {
			if c >= format.Channels {
				break
			}
			for _, s := range sub.Samples {
				buf.Channels[c] = append(buf.Channels[c], audio.SampleFromInt(s, format.BitDepth))
			}
		}
	}

	return buf, format, nil
}
