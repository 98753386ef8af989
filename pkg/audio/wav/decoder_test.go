// ABOUTME: Tests for the WAV decoder
// ABOUTME: Round-trips encoder output and exercises chunk walking and sample formats
package wav

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/harperreed/toolbox/pkg/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV assembles a RIFF file from a fmt body, optional extra chunks and data
func buildWAV(fmtBody []byte, extra [][]byte, data []byte) []byte {
	var body bytes.Buffer
	body.WriteString("WAVE")
	writeChunk(&body, "fmt ", fmtBody)
	for _, c := range extra {
		body.Write(c)
	}
	writeChunk(&body, "data", data)

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeChunk(w *bytes.Buffer, id string, body []byte) {
	w.WriteString(id)
	binary.Write(w, binary.LittleEndian, uint32(len(body)))
	w.Write(body)
	if len(body)%2 == 1 {
		w.WriteByte(0)
	}
}

func fmtChunk(format uint16, channels, sampleRate, bits int) []byte {
	b := make([]byte, 16)
	le := binary.LittleEndian
	le.PutUint16(b[0:], format)
	le.PutUint16(b[2:], uint16(channels))
	le.PutUint32(b[4:], uint32(sampleRate))
	le.PutUint32(b[8:], uint32(sampleRate*channels*bits/8))
	le.PutUint16(b[12:], uint16(channels*bits/8))
	le.PutUint16(b[14:], uint16(bits))
	return b
}

func TestDecodeRoundTrip(t *testing.T) {
	src := sineBuffer(44100, 2, 3000)

	data, err := Encode(src)
	require.NoError(t, err)

	out, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 44100, out.SampleRate)
	require.Equal(t, 2, out.NumChannels())
	require.Equal(t, 3000, out.Frames())
	for c := range src.Channels {
		for i := range src.Channels[c] {
			assert.InDelta(t, src.Channels[c][i], out.Channels[c][i], 1.0/32767+1e-6)
		}
	}

	again, err := Encode(out)
	require.NoError(t, err)
	assert.Len(t, again, len(data))
}

func TestDecodeSkipsUnknownChunks(t *testing.T) {
	list := bytes.Buffer{}
	writeChunk(&list, "LIST", []byte("INFOISFT\x05\x00\x00\x00test\x00"))

	pcm := make([]byte, 4)
	binary.LittleEndian.PutUint16(pcm[0:], uint16(16384))
	binary.LittleEndian.PutUint16(pcm[2:], uint16(0x8001)) // -32767

	data := buildWAV(fmtChunk(FormatPCM, 1, 16000, 16), [][]byte{list.Bytes()}, pcm)

	out, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, out.Frames())
	assert.InDelta(t, 0.5, out.Channels[0][0], 1e-4)
	assert.InDelta(t, -1.0, out.Channels[0][1], 1e-6)
}

func TestDecodeSampleFormats(t *testing.T) {
	le := binary.LittleEndian

	float32Data := make([]byte, 8)
	le.PutUint32(float32Data[0:], math.Float32bits(0.25))
	le.PutUint32(float32Data[4:], math.Float32bits(-0.75))

	int24Data := []byte{0xFF, 0xFF, 0x7F, 0x00, 0x00, 0xC0}

	tests := []struct {
		name     string
		fmt      []byte
		data     []byte
		expected []float32
	}{
		{"8-bit unsigned", fmtChunk(FormatPCM, 1, 8000, 8), []byte{128, 255, 0}, []float32{0, 1, -1}},
		{"24-bit", fmtChunk(FormatPCM, 1, 8000, 24), int24Data, []float32{1, -0.5}},
		{"32-bit float", fmtChunk(FormatIEEEFloat, 1, 8000, 32), float32Data, []float32{0.25, -0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Decode(bytes.NewReader(buildWAV(tt.fmt, nil, tt.data)))
			require.NoError(t, err)
			require.Equal(t, len(tt.expected), out.Frames())
			for i, want := range tt.expected {
				assert.InDelta(t, want, out.Channels[0][i], 1e-4)
			}
		})
	}
}

func TestDecodeDropsPartialFrame(t *testing.T) {
	// Three bytes of 16-bit stereo is less than one frame
	data := buildWAV(fmtChunk(FormatPCM, 2, 8000, 16), nil, []byte{1, 2, 3})

	out, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Frames())
	assert.Equal(t, 2, out.NumChannels())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"too short", []byte("RIFF"), ErrInvalidFormat},
		{"not riff", append([]byte("RIFX\x00\x00\x00\x00WAVE"), make([]byte, 32)...), ErrInvalidFormat},
		{"not wave", []byte("RIFF\x04\x00\x00\x00AVI "), ErrInvalidFormat},
		{"no fmt", []byte("RIFF\x0c\x00\x00\x00WAVEdata\x00\x00\x00\x00"), ErrInvalidFormat},
		{"no data", append([]byte("RIFF\x18\x00\x00\x00WAVEfmt \x10\x00\x00\x00"), fmtChunk(FormatPCM, 1, 8000, 16)...), ErrInvalidFormat},
		{"mu-law", buildWAV(fmtChunk(7, 1, 8000, 8), nil, []byte{0}), ErrUnsupportedFormat},
		{"12-bit", buildWAV(fmtChunk(FormatPCM, 1, 8000, 12), nil, []byte{0, 0}), ErrUnsupportedFormat},
		{"zero channels", buildWAV(fmtChunk(FormatPCM, 0, 8000, 16), nil, []byte{0, 0}), ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadInfo(t *testing.T) {
	data, err := Encode(sineBuffer(22050, 2, 22050))
	require.NoError(t, err)

	info, err := ReadInfo(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(FormatPCM), info.AudioFormat)
	assert.Equal(t, 2, info.Channels)
	assert.Equal(t, 22050, info.SampleRate)
	assert.Equal(t, 16, info.BitsPerSample)
	assert.Equal(t, 22050, info.Frames)
	assert.InDelta(t, 1.0, info.Seconds(), 1e-9)
}

func TestParseHeaderRejectsGarbage(t *testing.T) {
	_, err := ParseHeader(make([]byte, 10))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseHeader(make([]byte, HeaderSize))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodedBufferIsUsable(t *testing.T) {
	data, err := Encode(sineBuffer(8000, 1, 8000))
	require.NoError(t, err)

	buf, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	clip, err := audio.Trim(buf, audio.Range{Start: 0.5, End: 0.75})
	require.NoError(t, err)
	assert.Equal(t, 2000, clip.Frames())
}
