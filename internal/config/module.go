// ABOUTME: Fx module that supplies the loaded configuration
// ABOUTME: Callers load and validate the file before building the graph
// Package config provides configuration infrastructure and Fx modules.
package config

import (
	"go.uber.org/fx"
)

// Module supplies an already loaded configuration to the graph.
func Module(cfg *Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
