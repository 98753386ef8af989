// ABOUTME: Sample-accurate trimming of decoded buffers
// ABOUTME: Copies a [start, end) second range into a fresh buffer
package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range selects a span of a buffer in seconds
type Range struct {
	Start float64
	End   float64
}

// Trim copies the frames between floor(Start*rate) and floor(End*rate) into a
// new buffer. The source buffer is left untouched and shares no memory with
// the result.
func Trim(buf *Buffer, r Range) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	duration := buf.Seconds()
	if !validRange(r, duration) {
		return nil, &InvalidRangeError{Start: r.Start, End: r.End, Duration: duration}
	}

	rate := float64(buf.SampleRate)
	startFrame := int(math.Floor(r.Start * rate))
	endFrame := int(math.Floor(r.End * rate))
	if endFrame > buf.Frames() {
		endFrame = buf.Frames()
	}

	out := &Buffer{
		SampleRate: buf.SampleRate,
		Channels:   make([][]float32, len(buf.Channels)),
	}
	for c, ch := range buf.Channels {
		data := make([]float32, endFrame-startFrame)
		copy(data, ch[startFrame:endFrame])
		out.Channels[c] = data
	}
	return out, nil
}

// ParseRange reads "START:END" in seconds, e.g. "1.5:3". Ordering and
// bounds are checked by Trim against the buffer.
func ParseRange(s string) (Range, error) {
	startText, endText, ok := strings.Cut(s, ":")
	if !ok {
		return Range{}, fmt.Errorf("invalid range %q: want START:END in seconds", s)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(startText), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range start %q: %w", startText, err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(endText), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range end %q: %w", endText, err)
	}
	return Range{Start: start, End: end}, nil
}

func validRange(r Range, duration float64) bool {
	for _, v := range []float64{r.Start, r.End} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Start >= 0 && r.Start < r.End && r.End <= duration
}
