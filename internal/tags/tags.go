// Package tags reads track metadata and audio duration from music files.
// Tag parsing and duration probing are delegated to format libraries; this
// package only decides which one to ask and how to merge partial answers.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// File extensions supported by the library.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtM4A  = ".m4a"
	ExtOGG  = ".ogg"
	ExtAAC  = ".aac"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

var supported = map[string]bool{
	ExtMP3:  true,
	ExtFLAC: true,
	ExtWAV:  true,
	ExtM4A:  true,
	ExtOGG:  true,
	ExtAAC:  true,
}

// Metadata is what a music file tells us about itself.
// Zero values mean "absent".
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	Genre       string
	Year        int
	TrackNumber int
	Duration    time.Duration
}

// hasTags reports whether any tag field was found.
func (m *Metadata) hasTags() bool {
	return m.Title != "" || m.Artist != "" || m.Album != "" || m.Genre != "" ||
		m.Year > 0 || m.TrackNumber > 0
}

// IsSupported reports whether path has a supported audio extension.
// Only the name is inspected, so it also works for files that no longer exist.
func IsSupported(path string) bool {
	return supported[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the supported extensions, without the leading dot.
func Extensions() []string {
	return []string{"mp3", "flac", "wav", "m4a", "ogg", "aac"}
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
	}
	return ""
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M" format.
func parseNumberPair(s string) (num, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return max(num, 0), max(total, 0)
}

// parseYear extracts the year from "YYYY" or "YYYY-MM-DD" style dates.
func parseYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) > 4 {
		date = date[:4]
	}
	y, err := strconv.Atoi(date)
	if err != nil || y < 0 {
		return 0
	}
	return y
}
