// Package logging builds the structured logger shared by every component.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level. Unknown levels fall
// back to info. A nil w writes to stderr.
func New(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		ReportCaller:    lvl == log.DebugLevel,
	})
}
