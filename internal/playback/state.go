package playback

import (
	"fmt"
	"time"
)

// Status is the externally visible playback status.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (playing or paused).
func (s Status) IsActive() bool {
	return s == StatusPlaying || s == StatusPaused
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusStopped, StatusPlaying, StatusPaused:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid playback status %d", int(s))
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Stopped":
		*s = StatusStopped
	case "Playing":
		*s = StatusPlaying
	case "Paused":
		*s = StatusPaused
	default:
		return fmt.Errorf("invalid playback status %q", text)
	}
	return nil
}

// Snapshot is the playback state at the moment it was queried. Track fields
// are only set while a track is loaded.
type Snapshot struct {
	Status             Status  `json:"status"`
	CurrentTrackPath   string  `json:"current_track_path,omitempty"`
	CurrentTrackTitle  string  `json:"current_track_title,omitempty"`
	CurrentTrackArtist string  `json:"current_track_artist,omitempty"`
	PositionSecs       float64 `json:"position_secs"`
	DurationSecs       uint64  `json:"duration_secs"`
}

// Position returns the playback position.
func (s Snapshot) Position() time.Duration {
	return time.Duration(s.PositionSecs * float64(time.Second))
}

// Duration returns the track duration as given to Play.
func (s Snapshot) Duration() time.Duration {
	return time.Duration(s.DurationSecs) * time.Second
}
