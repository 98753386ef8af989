// ABOUTME: Toolbox configuration loaded from YAML
// ABOUTME: Defaults, file loading and validation for logging, audio, timer and sound settings
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AudioConfig controls where converted files are written
type AudioConfig struct {
	// OutputDir is used for default output names; empty means next to the input
	OutputDir string `yaml:"output_dir"`
	// OpusChannels is the channel count Ogg Opus files decode to
	OpusChannels int `yaml:"opus_channels"`
	// CacheSize is how many decoded files are kept in memory
	CacheSize int `yaml:"cache_size"`
}

// TimerConfig holds countdown defaults
type TimerConfig struct {
	DefaultDuration time.Duration `yaml:"default_duration"`
	WarningSeconds  int           `yaml:"warning_seconds"`
}

// SoundConfig controls the feedback beeps
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Config stores the application configuration.
type Config struct {
	LogLevel string      `yaml:"log_level"`
	LogFile  string      `yaml:"log_file"`
	Audio    AudioConfig `yaml:"audio"`
	Timer    TimerConfig `yaml:"timer"`
	Sound    SoundConfig `yaml:"sound"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		LogLevel: "info",
		LogFile:  "toolbox.log",
		Audio: AudioConfig{
			OpusChannels: 2,
			CacheSize:    4,
		},
		Timer: TimerConfig{
			DefaultDuration: 5 * time.Minute,
			WarningSeconds:  10,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.3,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every out-of-range setting
func (c *Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if c.Timer.DefaultDuration < 0 {
		errs = append(errs, fmt.Errorf("timer.default_duration must not be negative, got %s", c.Timer.DefaultDuration))
	}
	if c.Timer.DefaultDuration >= 24*time.Hour {
		errs = append(errs, fmt.Errorf("timer.default_duration must be under 24h, got %s", c.Timer.DefaultDuration))
	}
	if c.Timer.WarningSeconds < 0 || c.Timer.WarningSeconds > 60 {
		errs = append(errs, fmt.Errorf("timer.warning_seconds must be 0-60, got %d", c.Timer.WarningSeconds))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound.volume must be 0-1, got %g", c.Sound.Volume))
	}
	if c.Audio.OpusChannels != 1 && c.Audio.OpusChannels != 2 {
		errs = append(errs, fmt.Errorf("audio.opus_channels must be 1 or 2, got %d", c.Audio.OpusChannels))
	}

	if c.Audio.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("audio.cache_size must be at least 1, got %d", c.Audio.CacheSize))
	}

	return errors.Join(errs...)
}
