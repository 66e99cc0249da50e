// ABOUTME: Logger construction shared by the CLI, servers and store
// ABOUTME: Wraps charmbracelet/log with the revenueos prefix and a configurable level

package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const Prefix = "revenueos"

// New builds a timestamped logger writing to w. Unknown levels fall back to info.
func New(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
