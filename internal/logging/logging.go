// ABOUTME: Zap logger construction for the toolbox
// ABOUTME: Builds console and file cores from config and wires them into fx
// Package logging builds the zap loggers used across the toolbox.
package logging

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/harperreed/toolbox/internal/config"
)

// Options selects the level and sinks for a logger
type Options struct {
	Level string
	// File receives every log line when set
	File string
	// Console also writes to stderr. The TUI owns the terminal, so it turns this off.
	Console bool
}

// New creates and configures a new Zap logger.
func New(opts Options) (*zap.Logger, error) {
	var zapConfig zap.Config
	switch opts.Level {
	case "debug":
		zapConfig = zap.NewDevelopmentConfig()
	case "info":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapConfig.OutputPaths = nil
	if opts.File != "" {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, opts.File)
	}
	if opts.Console {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, "stderr")
	}
	if len(zapConfig.OutputPaths) == 0 {
		return zap.NewNop(), nil
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}
	return logger, nil
}

// NewZapLoggerParams holds dependencies for NewZapLogger.
type NewZapLoggerParams struct {
	fx.In
	Cfg *config.Config
	LC  fx.Lifecycle
	// Console is supplied by the command; the TUI passes false
	Console bool `name:"log_console"`
}

// NewZapLogger builds the process logger from config and syncs it on stop.
func NewZapLogger(params NewZapLoggerParams) (*zap.Logger, error) {
	logger, err := New(Options{
		Level:   params.Cfg.LogLevel,
		File:    params.Cfg.LogFile,
		Console: params.Console,
	})
	if err != nil {
		return nil, err
	}

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Syncing stderr fails on some terminals; the file sink is what matters
			_ = logger.Sync()
			return nil
		},
	})

	return logger, nil
}

// Module provides logging infrastructure.
var Module = fx.Module("logger",
	fx.Provide(NewZapLogger),
)
