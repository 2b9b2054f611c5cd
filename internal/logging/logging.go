// Package logging hands out the scoped pion loggers used across screenshare.
// Levels are controlled through the PION_LOG_* environment variables.
package logging

import (
	"github.com/pion/logging"
)

const scopePrefix = "screenshare"

var loggerFactory logging.LoggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a logger for scope, e.g. "quality" becomes
// "screenshare/quality". An empty scope returns the root logger.
func NewLogger(scope string) logging.LeveledLogger {
	if scope == "" {
		return loggerFactory.NewLogger(scopePrefix)
	}
	return loggerFactory.NewLogger(scopePrefix + "/" + scope)
}
