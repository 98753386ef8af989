// ABOUTME: Per-tool session identity
// ABOUTME: Gives each opened tool an ID and a logger tagged with it
package app

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/toolbox/internal/version"
)

// Session is one opened instance of a tool
type Session struct {
	ID      string
	Tool    string
	Started time.Time
	Logger  *zap.Logger
}

func newSession(logger *zap.Logger, tool string) *Session {
	id := uuid.New().String()
	return &Session{
		ID:      id,
		Tool:    tool,
		Started: time.Now(),
		Logger:  logger.With(zap.String("session_id", id), zap.String("tool", tool), zap.String("version", version.Version)),
	}
}
