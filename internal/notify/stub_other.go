//go:build !linux

package notify

// New returns a no-op notifier outside Linux.
func New() Notifier {
	return noop{}
}
