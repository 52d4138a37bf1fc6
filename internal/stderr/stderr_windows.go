//go:build windows

// Package stderr is a no-op on Windows, whose audio backends do not write to
// fd 2.
package stderr

import (
	"os"

	"github.com/charmbracelet/log"
)

// Capture is a no-op on Windows.
type Capture struct{}

// Start is a no-op on Windows.
func Start(*log.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// WriteOriginal writes msg to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
