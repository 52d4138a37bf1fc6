// Package notify sends desktop notifications over D-Bus.
package notify

import (
	"github.com/llehouerou/tunes/internal/mpris"
	"github.com/llehouerou/tunes/internal/playback"
)

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const appName = "tunes"

// Notification is a single desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify returns the notification ID, or 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// NowPlaying shows one notification per track change, replacing the
// previous one instead of stacking.
type NowPlaying struct {
	notifier Notifier
	lastPath string
	lastID   uint32
}

// NewNowPlaying wraps n.
func NewNowPlaying(n Notifier) *NowPlaying {
	return &NowPlaying{notifier: n}
}

// Update notifies when s is playing a track other than the last one shown.
func (p *NowPlaying) Update(s playback.Snapshot) error {
	if s.Status != playback.StatusPlaying || s.CurrentTrackPath == p.lastPath {
		return nil
	}
	p.lastPath = s.CurrentTrackPath

	title := s.CurrentTrackTitle
	if title == "" {
		title = "Now playing"
	}
	icon := mpris.FindAlbumArt(s.CurrentTrackPath)
	if icon == "" {
		icon = "audio-x-generic"
	}

	id, err := p.notifier.Notify(Notification{
		Title:      title,
		Body:       s.CurrentTrackArtist,
		Icon:       icon,
		Timeout:    5000,
		ReplacesID: p.lastID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		return err
	}
	p.lastID = id
	return nil
}
