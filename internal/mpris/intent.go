// Package mpris exposes the player on the session bus as an MPRIS media
// player so desktop media keys and applets can drive it.
package mpris

import (
	"context"
	"strings"

	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/playback"
)

// Intent is a request that needs the track list, which only the UI has.
type Intent int

const (
	IntentNext Intent = iota
	IntentPrevious
	IntentPlay // play the selected track while stopped
	// IntentStop goes through the UI so it can tell a requested stop from a
	// track running out.
	IntentStop
)

func (i Intent) String() string {
	switch i {
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentPlay:
		return "play"
	case IntentStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Player is the part of the transport the adapter drives directly.
type Player interface {
	Pause() error
	Resume() error
	PlaybackState(ctx context.Context) (playback.Snapshot, error)
}

// TrackObjectPath returns the D-Bus object path for the track at path.
func TrackObjectPath(path string) string {
	if path == "" {
		return "/org/mpris/MediaPlayer2/TrackList/NoTrack"
	}
	return "/org/tunes/track/" + strings.ReplaceAll(library.TrackID(path), "-", "_")
}
