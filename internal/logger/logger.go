package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a stderr-style logger. Debug output is enabled when verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "taskvoice",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.InfoLevel,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops every message.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
