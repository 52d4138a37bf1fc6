//go:build !linux

package mpris

import "github.com/charmbracelet/log"

// Adapter is a no-op outside Linux.
type Adapter struct{}

// New returns a no-op adapter outside Linux.
func New(Player, chan<- Intent, *log.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op outside Linux.
func (a *Adapter) Close() error {
	return nil
}
