// ABOUTME: 16-bit PCM WAV encoder
// ABOUTME: Writes a canonical header followed by interleaved little-endian samples
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/harperreed/toolbox/pkg/audio"
)

// framesPerWrite bounds the scratch buffer used while streaming samples
const framesPerWrite = 4096

// Encoder writes WAV files to an io.Writer
type Encoder struct {
	w io.Writer
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes buf as a complete WAV file
func (e *Encoder) Encode(buf *audio.Buffer) error {
	header, err := headerFor(buf)
	if err != nil {
		return err
	}

	head, _ := header.MarshalBinary()
	if _, err := e.w.Write(head); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}

	channels := buf.NumChannels()
	frames := buf.Frames()
	scratch := make([]byte, framesPerWrite*channels*2)

	for start := 0; start < frames; start += framesPerWrite {
		end := start + framesPerWrite
		if end > frames {
			end = frames
		}
		n := putFrames(scratch, buf, start, end)
		if _, err := e.w.Write(scratch[:n]); err != nil {
			return fmt.Errorf("failed to write audio data: %w", err)
		}
	}

	return nil
}

// Encode returns buf as an in-memory WAV file
func Encode(buf *audio.Buffer) ([]byte, error) {
	header, err := headerFor(buf)
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(make([]byte, 0, HeaderSize+int(header.Subchunk2Size)))
	if err := NewEncoder(out).Encode(buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func headerFor(buf *audio.Buffer) (Header, error) {
	if err := buf.Validate(); err != nil {
		return Header{}, err
	}
	header, err := NewHeader(buf.SampleRate, buf.NumChannels(), buf.Frames())
	if err != nil {
		return Header{}, &audio.UnsupportedInputError{Reason: err.Error()}
	}
	return header, nil
}

// putFrames interleaves frames [start, end) into dst and returns bytes written
func putFrames(dst []byte, buf *audio.Buffer, start, end int) int {
	off := 0
	for i := start; i < end; i++ {
		for _, ch := range buf.Channels {
			binary.LittleEndian.PutUint16(dst[off:], uint16(audio.SampleToInt16(ch[i])))
			off += 2
		}
	}
	return off
}
