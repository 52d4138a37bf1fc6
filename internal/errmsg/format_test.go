//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"io/fs"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpLibraryLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "config operation",
			op:       OpConfigLoad,
			err:      errors.New("permission denied"),
			expected: "Failed to load configuration: permission denied",
		},
		{
			name:     "save operation",
			op:       OpLibrarySave,
			err:      errors.New("disk full"),
			expected: "Failed to save library: disk full",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileOpen,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpLibraryRead,
			context:  "/home/user/Music/tunes",
			err:      errors.New("permission denied"),
			expected: "Failed to read music directory '/home/user/Music/tunes': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpReadTags,
			context:  "",
			err:      errors.New("malformed frame"),
			expected: "Failed to read file tags: malformed frame",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpLibrarySave, "/x", nil) != nil {
		t.Fatal("Wrap(nil) should return nil")
	}

	err := Wrap(OpLibraryRead, "/music", fs.ErrNotExist)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("errors.As failed for %T", err)
	}
	if e.Op != OpLibraryRead {
		t.Errorf("Op = %q, want %q", e.Op, OpLibraryRead)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("Wrap should preserve the cause for errors.Is")
	}
	want := "Failed to read music directory '/music': file does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
