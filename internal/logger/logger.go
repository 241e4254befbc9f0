// Package logger configures contextualized zap logger.
package logger

import (
	"io"

	"github.com/bool64/zapctxd"
	"go.uber.org/zap"
)

// New creates development console logger, debug messages are enabled with verbose.
func New(w io.Writer, verbose bool) *zapctxd.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	return zapctxd.New(zapctxd.Config{
		Level:   level,
		DevMode: true,
		Output:  w,
	})
}

// Sync flushes buffered messages.
func Sync(l *zapctxd.Logger) error {
	return l.ZapLogger().Sync()
}
