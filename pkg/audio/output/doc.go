// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface, oto playback and an in-memory recorder
// Package output provides audio playback interfaces.
//
// Oto plays through the system audio device with software volume. Recorder
// keeps samples in memory for headless runs and tests.
//
// Example:
//
//	out := output.NewOto(logger)
//	err := output.Play(out, buf)
//	err = out.Drain(ctx)
package output
