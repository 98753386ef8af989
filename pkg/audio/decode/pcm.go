// ABOUTME: PCM audio decoder
// ABOUTME: Decodes headerless 16-bit and 24-bit little-endian PCM
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/harperreed/toolbox/pkg/audio"
)

// PCMDecoder decodes raw interleaved PCM
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("invalid PCM layout: %d Hz, %d channels", format.SampleRate, format.Channels)
	}

	return &PCMDecoder{format: format}, nil
}

// Decode converts PCM bytes to float samples
func (d *PCMDecoder) Decode(r io.Reader) (*audio.Buffer, audio.Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to read PCM data: %w", err)
	}

	width := d.format.BitDepth / 8
	samples := make([]float32, len(data)/width)
	if d.format.BitDepth == 24 {
		for i := range samples {
			b := [3]byte{data[i*3], data[i*3+1], data[i*3+2]}
			samples[i] = audio.SampleFromInt(audio.SampleFrom24Bit(b), 24)
		}
	} else {
		for i := range samples {
			samples[i] = audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(data[i*2:])))
		}
	}

	return audio.Deinterleave(samples, d.format.SampleRate, d.format.Channels), d.format, nil
}
