// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryLoad   Op = "load library"
	OpLibrarySave   Op = "save library"
	OpLibraryRead   Op = "read music directory"
	OpLibraryCreate Op = "create music directory"

	// Watcher operations
	OpWatcherStart Op = "start file watcher"
	OpWatchDir     Op = "watch directory"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackState Op = "get playback state"
	OpPlaybackOpen  Op = "open audio output"
	OpFileOpen      Op = "open file"
	OpFileDecode    Op = "decode audio"

	// Metadata
	OpReadTags Op = "read file tags"

	// Configuration
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is an operation-level failure carrying the failed Op, the path it
// concerned (if any) and the underlying cause.
type Error struct {
	Op   Op
	Path string
	Err  error
}

// Wrap returns an *Error for op on path, or nil if err is nil.
func Wrap(op Op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	return FormatWith(e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
