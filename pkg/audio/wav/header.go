// ABOUTME: Canonical 44-byte RIFF/WAVE header for 16-bit PCM
// ABOUTME: Derives size and rate fields from sample rate, channels and frames
package wav

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// HeaderSize is the size of the canonical WAV header in bytes
	HeaderSize = 44

	// FormatPCM is the audio format code for uncompressed integer PCM
	FormatPCM = 1
	// FormatIEEEFloat is the audio format code for 32/64-bit float samples
	FormatIEEEFloat = 3
	// FormatExtensible wraps one of the above in a WAVE_FORMAT_EXTENSIBLE chunk
	FormatExtensible = 0xFFFE

	// BitsPerSample is the only bit depth the encoder writes
	BitsPerSample = 16

	// MIMEType and Extension describe encoder output for save/export
	MIMEType  = "audio/wav"
	Extension = ".wav"

	fmtChunkSize = 16
)

// Header mirrors the canonical WAV header layout.
// Build it with NewHeader so the derived fields stay consistent.
type Header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + Subchunk2Size
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // frames * BlockAlign
}

// NewHeader computes the header for 16-bit PCM with the given geometry
func NewHeader(sampleRate, channels, frames int) (Header, error) {
	if channels <= 0 || channels > math.MaxUint16/2 {
		return Header{}, fmt.Errorf("invalid channel count: %d", channels)
	}
	if sampleRate <= 0 || int64(sampleRate)*int64(channels)*2 > math.MaxUint32 {
		return Header{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if frames < 0 {
		return Header{}, fmt.Errorf("invalid frame count: %d", frames)
	}

	blockAlign := channels * BitsPerSample / 8
	dataSize := int64(frames) * int64(blockAlign)
	if dataSize > math.MaxUint32-36 {
		return Header{}, fmt.Errorf("data size %d bytes exceeds the WAV 4 GiB limit", dataSize)
	}

	return Header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + dataSize),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: fmtChunkSize,
		AudioFormat:   FormatPCM,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: BitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(dataSize),
	}, nil
}

// Frames returns the number of frames the data chunk holds
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}
	return int(h.Subchunk2Size) / int(h.BlockAlign)
}

// Seconds returns the duration described by the header
func (h Header) Seconds() float64 {
	if h.SampleRate == 0 {
		return 0
	}
	return float64(h.Frames()) / float64(h.SampleRate)
}

// MarshalBinary encodes the header in little-endian order
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	h.put(b)
	return b, nil
}

func (h Header) put(b []byte) {
	copy(b[0:4], h.ChunkID[:])
	binary.LittleEndian.PutUint32(b[4:8], h.ChunkSize)
	copy(b[8:12], h.Format[:])
	copy(b[12:16], h.Subchunk1ID[:])
	binary.LittleEndian.PutUint32(b[16:20], h.Subchunk1Size)
	binary.LittleEndian.PutUint16(b[20:22], h.AudioFormat)
	binary.LittleEndian.PutUint16(b[22:24], h.NumChannels)
	binary.LittleEndian.PutUint32(b[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(b[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(b[34:36], h.BitsPerSample)
	copy(b[36:40], h.Subchunk2ID[:])
	binary.LittleEndian.PutUint32(b[40:44], h.Subchunk2Size)
}

// ParseHeader reads a canonical 44-byte header.
// Files with extra chunks before "data" should go through Decode instead.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need at least %d bytes, got %d", ErrInvalidFormat, HeaderSize, len(data))
	}

	var h Header
	copy(h.ChunkID[:], data[0:4])
	h.ChunkSize = binary.LittleEndian.Uint32(data[4:8])
	copy(h.Format[:], data[8:12])
	copy(h.Subchunk1ID[:], data[12:16])
	h.Subchunk1Size = binary.LittleEndian.Uint32(data[16:20])
	h.AudioFormat = binary.LittleEndian.Uint16(data[20:22])
	h.NumChannels = binary.LittleEndian.Uint16(data[22:24])
	h.SampleRate = binary.LittleEndian.Uint32(data[24:28])
	h.ByteRate = binary.LittleEndian.Uint32(data[28:32])
	h.BlockAlign = binary.LittleEndian.Uint16(data[32:34])
	h.BitsPerSample = binary.LittleEndian.Uint16(data[34:36])
	copy(h.Subchunk2ID[:], data[36:40])
	h.Subchunk2Size = binary.LittleEndian.Uint32(data[40:44])

	switch {
	case string(h.ChunkID[:]) != "RIFF":
		return Header{}, fmt.Errorf("%w: missing RIFF header", ErrInvalidFormat)
	case string(h.Format[:]) != "WAVE":
		return Header{}, fmt.Errorf("%w: missing WAVE format", ErrInvalidFormat)
	case string(h.Subchunk1ID[:]) != "fmt ":
		return Header{}, fmt.Errorf("%w: missing fmt chunk", ErrInvalidFormat)
	case string(h.Subchunk2ID[:]) != "data":
		return Header{}, fmt.Errorf("%w: missing data chunk", ErrInvalidFormat)
	}

	return h, nil
}
