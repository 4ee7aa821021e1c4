// Package logger builds prefixed charmbracelet loggers that follow the global log level.
package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewWithWriter creates a default charm logger writing to w.
// Callers pass stderr or a buffer, stdout is left to the IPC stream.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
