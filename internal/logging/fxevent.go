// ABOUTME: Adapter that routes fx lifecycle events to zap
// ABOUTME: Logs hooks and provide/invoke failures at debug or error level
package logging

import (
	"strings"

	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxLoggerAdapter adapts a zap.SugaredLogger to the fxevent.Logger interface.
type FxLoggerAdapter struct {
	logger *zap.SugaredLogger
}

// NewFxLoggerAdapter creates a new Fx logger adapter that implements fxevent.Logger.
func NewFxLoggerAdapter(logger *zap.Logger) fxevent.Logger {
	return &FxLoggerAdapter{logger: logger.Named("fx").Sugar()}
}

// LogEvent implements fxevent.Logger interface.
func (p *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		p.logger.Debugf("HOOK OnStart executing: %s, function: %s", e.CallerName, e.FunctionName)
	case *fxevent.OnStartExecuted:
		p.logHook("HOOK OnStart", e.CallerName, e.FunctionName, e.Err, e.Runtime.String())
	case *fxevent.OnStopExecuting:
		p.logger.Debugf("HOOK OnStop executing: %s, function: %s", e.CallerName, e.FunctionName)
	case *fxevent.OnStopExecuted:
		p.logHook("HOOK OnStop", e.CallerName, e.FunctionName, e.Err, e.Runtime.String())
	case *fxevent.Supplied:
		p.logResult("SUPPLY "+e.TypeName, e.Err)
	case *fxevent.Provided:
		p.logResult("PROVIDE "+strings.Join(e.OutputTypeNames, ", "), e.Err)
	case *fxevent.Invoking:
		p.logger.Debugf("INVOKE: %s", e.FunctionName)
	case *fxevent.Invoked:
		p.logResult("INVOKE "+e.FunctionName, e.Err)
	case *fxevent.Stopping:
		p.logger.Debugf("STOPPING: %s", e.Signal)
	case *fxevent.Stopped:
		p.logResult("STOPPED", e.Err)
	case *fxevent.RollingBack:
		p.logger.Errorf("ROLLING BACK: %v", e.StartErr)
	case *fxevent.RolledBack:
		p.logResult("ROLLED BACK", e.Err)
	case *fxevent.Started:
		p.logResult("STARTED", e.Err)
	case *fxevent.LoggerInitialized:
		p.logResult("LOGGER INITIALIZED "+e.ConstructorName, e.Err)
	default:
		p.logger.Debugf("UNKNOWN Fx event: %T", event)
	}
}

func (p *FxLoggerAdapter) logHook(action, caller, function string, err error, runtime string) {
	if err != nil {
		p.logger.Errorf("%s failed: %s, function: %s, error: %v", action, caller, function, err)
		return
	}
	p.logger.Debugf("%s executed: %s, function: %s, runtime: %s", action, caller, function, runtime)
}

func (p *FxLoggerAdapter) logResult(action string, err error) {
	if err != nil {
		p.logger.Errorf("%s failed: %v", action, err)
		return
	}
	p.logger.Debug(action)
}
