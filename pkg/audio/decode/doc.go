// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for WAV, PCM, Opus, FLAC, MP3
// Package decode turns encoded audio files into planar float buffers.
//
// Supports: WAV, raw PCM (16-bit and 24-bit), Ogg Opus, FLAC, MP3
//
// Decoding is one-shot: a decoder reads its input to the end and returns an
// audio.Buffer plus the audio.Format it found. Ogg Opus always decodes at
// 48kHz and raw PCM carries no header, so both take their layout from Options.
//
// Example:
//
//	buf, format, err := decode.File("song.flac", decode.DefaultOptions())
package decode
