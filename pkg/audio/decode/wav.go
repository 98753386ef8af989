// ABOUTME: WAV input decoder
// ABOUTME: Adapts the wav package to the Decoder interface
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/harperreed/toolbox/pkg/audio"
	"github.com/harperreed/toolbox/pkg/audio/wav"
)

// WAVDecoder decodes RIFF/WAVE files
type WAVDecoder struct{}

// NewWAV creates a new WAV decoder
func NewWAV() Decoder {
	return WAVDecoder{}
}

// Decode reads a WAV file
func (WAVDecoder) Decode(r io.Reader) (*audio.Buffer, audio.Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to read WAV data: %w", err)
	}

	info, err := wav.ReadInfo(data)
	if err != nil {
		return nil, audio.Format{}, err
	}

	buf, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, audio.Format{}, err
	}

	return buf, audio.Format{
		Codec:      "wav",
		SampleRate: info.SampleRate,
		Channels:   info.Channels,
		BitDepth:   info.BitsPerSample,
	}, nil
}
