// ABOUTME: Tests for config loading and validation
// ABOUTME: Covers defaults, YAML overrides and range checks
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toolbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Timer.WarningSeconds)
	assert.True(t, cfg.Sound.Enabled)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
audio:
  output_dir: /tmp/out
timer:
  default_duration: 90s
sound:
  enabled: false
  volume: 0.8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "toolbox.log", cfg.LogFile, "unset keys keep defaults")
	assert.Equal(t, "/tmp/out", cfg.Audio.OutputDir)
	assert.Equal(t, 90*time.Second, cfg.Timer.DefaultDuration)
	assert.Equal(t, 10, cfg.Timer.WarningSeconds)
	assert.False(t, cfg.Sound.Enabled)
	assert.Equal(t, 0.8, cfg.Sound.Volume)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
log_level: loud
timer:
  warning_seconds: 99
sound:
  volume: 2
audio:
  cache_size: 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "log_level")
	assert.ErrorContains(t, err, "warning_seconds")
	assert.ErrorContains(t, err, "sound.volume")
	assert.ErrorContains(t, err, "audio.cache_size")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")
}
