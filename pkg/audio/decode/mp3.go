// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 files to stereo float samples via go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/harperreed/toolbox/pkg/audio"
)

// MP3Decoder decodes MP3 audio
type MP3Decoder struct{}

// NewMP3 creates a new MP3 decoder
func NewMP3() Decoder {
	return MP3Decoder{}
}

// Decode converts an MP3 stream to float samples.
// go-mp3 always produces interleaved stereo 16-bit output.
func (MP3Decoder) Decode(r io.Reader) (*audio.Buffer, audio.Format, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("mp3 decode error: %w", err)
	}

	// Convert bytes to int16 then to float
	numSamples := len(pcm) / 2
	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		samples[i] = audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}

	format := audio.Format{
		Codec:      "mp3",
		SampleRate: decoder.SampleRate(),
		Channels:   2,
		BitDepth:   16,
	}
	return audio.Deinterleave(samples, format.SampleRate, format.Channels), format, nil
}
