// ABOUTME: WAV file decoder
// ABOUTME: Walks RIFF chunks and converts PCM or float samples to a planar buffer
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/harperreed/toolbox/pkg/audio"
)

var (
	// ErrInvalidFormat reports data that is not a well-formed RIFF/WAVE file
	ErrInvalidFormat = errors.New("invalid WAV file")

	// ErrUnsupportedFormat reports a valid WAV file in an encoding we cannot read
	ErrUnsupportedFormat = errors.New("unsupported WAV encoding")
)

// Info describes a WAV file without its samples
type Info struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	BitsPerSample int
	Frames        int
}

// Seconds returns the duration of the data chunk
func (i Info) Seconds() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// Decode reads a complete WAV file into a planar float buffer
func Decode(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %w", err)
	}

	info, samples, err := parse(data)
	if err != nil {
		return nil, err
	}

	buf := audio.NewBuffer(info.SampleRate, info.Channels, info.Frames)
	bytesPerSample := info.BitsPerSample / 8
	off := 0
	for i := 0; i < info.Frames; i++ {
		for c := 0; c < info.Channels; c++ {
			buf.Channels[c][i] = convert(samples[off:off+bytesPerSample], info)
			off += bytesPerSample
		}
	}

	return buf, nil
}

// ReadInfo parses the chunk layout of a WAV file and reports its format
func ReadInfo(data []byte) (Info, error) {
	info, _, err := parse(data)
	return info, err
}

// parse validates the RIFF structure and returns the format and raw data chunk
func parse(data []byte) (Info, []byte, error) {
	if len(data) < 12 {
		return Info{}, nil, fmt.Errorf("%w: need at least 12 bytes, got %d", ErrInvalidFormat, len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return Info{}, nil, fmt.Errorf("%w: missing RIFF header", ErrInvalidFormat)
	}
	if string(data[8:12]) != "WAVE" {
		return Info{}, nil, fmt.Errorf("%w: missing WAVE format", ErrInvalidFormat)
	}

	var (
		info    Info
		haveFmt bool
		payload []byte
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		end := body + size
		if end > len(data) || end < body {
			if id != "data" {
				return Info{}, nil, fmt.Errorf("%w: chunk %q truncated", ErrInvalidFormat, id)
			}
			// Streamed files often leave the data size unset; take what is there
			end = len(data)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Info{}, nil, fmt.Errorf("%w: fmt chunk is %d bytes", ErrInvalidFormat, size)
			}
			info = parseFmt(data[body:end])
			haveFmt = true
		case "data":
			payload = data[body:end]
		}

		if payload != nil && haveFmt {
			break
		}
		// Chunks are word aligned
		pos = end + size%2
	}

	if !haveFmt {
		return Info{}, nil, fmt.Errorf("%w: missing fmt chunk", ErrInvalidFormat)
	}
	if payload == nil {
		return Info{}, nil, fmt.Errorf("%w: missing data chunk", ErrInvalidFormat)
	}
	if err := checkSupported(info); err != nil {
		return Info{}, nil, err
	}

	frameSize := info.Channels * info.BitsPerSample / 8
	info.Frames = len(payload) / frameSize
	return info, payload[:info.Frames*frameSize], nil
}

func parseFmt(b []byte) Info {
	info := Info{
		AudioFormat:   binary.LittleEndian.Uint16(b[0:2]),
		Channels:      int(binary.LittleEndian.Uint16(b[2:4])),
		SampleRate:    int(binary.LittleEndian.Uint32(b[4:8])),
		BitsPerSample: int(binary.LittleEndian.Uint16(b[14:16])),
	}
	// WAVE_FORMAT_EXTENSIBLE carries the real format code at the start of the sub-format GUID
	if info.AudioFormat == FormatExtensible && len(b) >= 26 {
		info.AudioFormat = binary.LittleEndian.Uint16(b[24:26])
	}
	return info
}

func checkSupported(info Info) error {
	if info.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, info.Channels)
	}
	if info.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, info.SampleRate)
	}

	switch info.AudioFormat {
	case FormatPCM:
		switch info.BitsPerSample {
		case 8, 16, 24, 32:
			return nil
		}
	case FormatIEEEFloat:
		if info.BitsPerSample == 32 || info.BitsPerSample == 64 {
			return nil
		}
	default:
		return fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, info.AudioFormat)
	}
	return fmt.Errorf("%w: %d-bit samples for format %d", ErrUnsupportedFormat, info.BitsPerSample, info.AudioFormat)
}

func convert(b []byte, info Info) float32 {
	if info.AudioFormat == FormatIEEEFloat {
		if info.BitsPerSample == 64 {
			return float32(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	}

	switch info.BitsPerSample {
	case 8:
		// 8-bit WAV is unsigned with a 128 midpoint
		return audio.SampleFromInt(int32(b[0])-128, 8)
	case 16:
		return audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(b)))
	case 24:
		return audio.SampleFromInt(audio.SampleFrom24Bit([3]byte{b[0], b[1], b[2]}), 24)
	default:
		return audio.SampleFromInt(int32(binary.LittleEndian.Uint32(b)), 32)
	}
}
