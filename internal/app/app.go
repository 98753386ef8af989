// ABOUTME: Application assembly with fx
// ABOUTME: Wires config, logger, audio output, sounds and tools into one graph
package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/harperreed/toolbox/internal/config"
	"github.com/harperreed/toolbox/internal/logging"
	"github.com/harperreed/toolbox/pkg/audio/output"
	"github.com/harperreed/toolbox/pkg/timer"
)

// Module provides the toolbox services
var Module = fx.Module("toolbox",
	fx.Provide(
		NewOutput,
		NewClock,
		NewSounds,
		NewTools,
		NewTimekeeper,
	),
)

// Application represents the main application with its lifecycle.
type Application struct {
	app *fx.App
}

// New assembles the graph for cfg. console selects whether logs also go to
// the terminal. Extra options typically fx.Populate the services a command needs.
func New(cfg *config.Config, console bool, opts ...fx.Option) *Application {
	options := []fx.Option{
		config.Module(cfg),
		fx.Supply(fx.Annotated{Name: "log_console", Target: console}),
		logging.Module,
		Module,
		fx.WithLogger(logging.NewFxLoggerAdapter),
	}
	options = append(options, opts...)

	return &Application{app: fx.New(options...)}
}

// Err reports a graph construction failure
func (a *Application) Err() error {
	return a.app.Err()
}

// Start runs OnStart hooks
func (a *Application) Start(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	return nil
}

// Stop runs OnStop hooks
func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// NewOutput provides the oto device and closes it on shutdown. The device is
// opened lazily on first playback.
func NewOutput(lc fx.Lifecycle, logger *zap.Logger) output.Output {
	out := output.NewOto(logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return out.Close()
		},
	})
	return out
}

// NewClock provides the wall clock
func NewClock() timer.Clock {
	return timer.SystemClock{}
}
