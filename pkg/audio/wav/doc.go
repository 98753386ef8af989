// ABOUTME: WAV container package
// ABOUTME: Byte-exact 16-bit PCM encoder plus a tolerant chunk-walking decoder
// Package wav reads and writes RIFF/WAVE files.
//
// The encoder always produces the canonical 44-byte header followed by
// interleaved little-endian 16-bit samples:
//
//	offset  size  field
//	0       4     "RIFF"
//	4       4     36 + dataSize
//	8       4     "WAVE"
//	12      4     "fmt "
//	16      4     16
//	20      2     1 (PCM)
//	22      2     channels
//	24      4     sample rate
//	28      4     sample rate * channels * 2
//	32      2     channels * 2
//	34      2     16
//	36      4     "data"
//	40      4     frames * channels * 2
//
// Float samples are clamped to [-1, 1] and multiplied by 32767 with the
// fraction truncated toward zero. Output is deterministic, and an empty
// buffer produces a header-only file.
//
// Example:
//
//	data, err := wav.Encode(buf)
//	clip, err := wav.Decode(bytes.NewReader(data))
package wav
