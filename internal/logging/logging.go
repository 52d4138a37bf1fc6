// Package logging builds the charmbracelet loggers shared by every component.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a [log.Logger] writing to w with timestamps enabled.
//
// The writer defaults to [os.Stderr]. An unknown level falls back to info.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	l.SetLevel(ParseLevel(level))
	return l
}

// NewFile creates a logger writing to a size-rotated file at path.
// Used by the TUI, where anything written to the terminal would corrupt the screen.
func NewFile(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	l := log.NewWithOptions(rotator, log.Options{ReportTimestamp: true, Formatter: log.LogfmtFormatter})
	l.SetLevel(ParseLevel(level))
	return l, rotator, nil
}

// Component returns a child logger tagged with the component name.
// A nil parent yields a child of [log.Default].
func Component(l *log.Logger, name string) *log.Logger {
	if l == nil {
		l = log.Default()
	}
	return l.With("component", name)
}

// ParseLevel converts a level name to a [log.Level], defaulting to info.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
