// Package player decodes audio files and plays them on the system output.
package player

import (
	"os"
	"time"

	"github.com/gopxl/beep/v2"
)

// Output is an open audio device. Sinks created from it mix into the same
// device.
type Output interface {
	NewSink() Sink
	Close() error
}

// Sink is one playback pipeline connected to an Output.
type Sink interface {
	// Append starts playing stream. A sink plays one stream at a time.
	Append(stream beep.StreamSeekCloser, format beep.Format)
	Pause()
	Resume()
	// Stop halts playback and releases the stream. A stopped sink is empty.
	Stop()
	// Empty reports whether the sink has nothing left to play.
	Empty() bool
	Paused() bool
	Position() time.Duration
}

// OpenFunc opens the audio output.
type OpenFunc func() (Output, error)

// DecodeFunc turns an opened file into a playable stream. The stream owns f.
type DecodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

// Verify Speaker implements Output at compile time.
var _ Output = (*Speaker)(nil)
