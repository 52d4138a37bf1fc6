// Package library keeps the persisted track index in step with the music
// directory.
package library

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// IndexFileName is the name of the persisted index inside the music directory.
const IndexFileName = "library.json"

// Track is one indexed audio file.
type Track struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	Title        string `json:"title,omitempty"`
	Artist       string `json:"artist,omitempty"`
	Album        string `json:"album,omitempty"`
	Year         int    `json:"year,omitempty"`
	TrackNumber  int    `json:"track_number,omitempty"`
	Genre        string `json:"genre,omitempty"`
	DurationSecs uint64 `json:"duration_secs"`
	Mtime        int64  `json:"mtime,omitempty"`
}

// DisplayTitle is the title, or the filename when the file has no title tag.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Filename
}

// Index is the ordered set of tracks persisted for a music directory.
type Index struct {
	Tracks []Track `json:"tunes"`
}

// Len returns the number of tracks.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.Tracks)
}

// Clone returns a deep copy safe to hand to another goroutine.
func (idx *Index) Clone() *Index {
	if idx == nil {
		return &Index{Tracks: []Track{}}
	}
	return &Index{Tracks: append(make([]Track, 0, len(idx.Tracks)), idx.Tracks...)}
}

// TrackID derives the stable identifier of the track at path.
// The same path always yields the same ID, across runs and machines.
func TrackID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String()
}

// SortTracks orders tracks by lowercase display title. Equal titles keep
// their relative order.
func SortTracks(tracks []Track) {
	slices.SortStableFunc(tracks, func(a, b Track) int {
		return strings.Compare(strings.ToLower(a.DisplayTitle()), strings.ToLower(b.DisplayTitle()))
	})
}
