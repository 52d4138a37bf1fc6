//go:build linux

package mpris

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tunes/internal/playback"
)

const stateTimeout = time.Second

// Adapter serves a Player over MPRIS.
type Adapter struct {
	server *server.Server
}

// New registers the player on the session bus. Next, previous and play
// requests are sent on intents; a full channel drops them.
func New(p Player, intents chan<- Intent, logger *log.Logger) (*Adapter, error) {
	if logger == nil {
		logger = log.Default()
	}
	a := &Adapter{
		server: server.NewServer("tunes", rootAdapter{}, &playerAdapter{
			player:  p,
			intents: intents,
			logger:  logger,
		}),
	}
	go func() {
		if err := a.server.Listen(); err != nil {
			logger.Warn("mpris server stopped", "err", err)
		}
	}()
	return a, nil
}

// Close releases the bus name.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

type rootAdapter struct{}

func (rootAdapter) Raise() error                { return nil }
func (rootAdapter) Quit() error                 { return nil }
func (rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (rootAdapter) Identity() (string, error)   { return "Tunes", nil }

//nolint:revive // Method name required by interface.
func (rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{
		"audio/mpeg", "audio/flac", "audio/wav",
		"audio/mp4", "audio/aac", "audio/ogg",
	}, nil
}

type playerAdapter struct {
	player  Player
	intents chan<- Intent
	logger  *log.Logger
}

func (p *playerAdapter) state() playback.Snapshot {
	ctx, cancel := context.WithTimeout(context.Background(), stateTimeout)
	defer cancel()
	s, err := p.player.PlaybackState(ctx)
	if err != nil {
		p.logger.Debug("mpris state query failed", "err", err)
		return playback.Snapshot{}
	}
	return s
}

func (p *playerAdapter) send(i Intent) error {
	select {
	case p.intents <- i:
	default:
		p.logger.Debug("mpris intent dropped", "intent", i)
	}
	return nil
}

func (p *playerAdapter) Next() error     { return p.send(IntentNext) }
func (p *playerAdapter) Previous() error { return p.send(IntentPrevious) }
func (p *playerAdapter) Pause() error    { return p.player.Pause() }
func (p *playerAdapter) Stop() error     { return p.send(IntentStop) }

func (p *playerAdapter) PlayPause() error {
	switch p.state().Status {
	case playback.StatusPlaying:
		return p.player.Pause()
	case playback.StatusPaused:
		return p.player.Resume()
	default:
		return p.send(IntentPlay)
	}
}

func (p *playerAdapter) Play() error {
	switch p.state().Status {
	case playback.StatusPaused:
		return p.player.Resume()
	case playback.StatusStopped:
		return p.send(IntentPlay)
	default:
		return nil
	}
}

// Seeking is not supported by the engine.
func (p *playerAdapter) Seek(types.Microseconds) error                { return nil }
func (p *playerAdapter) SetPosition(string, types.Microseconds) error { return nil }

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.state().Status), nil
}

func playbackStatus(s playback.Status) types.PlaybackStatus {
	switch s {
	case playback.StatusPlaying:
		return types.PlaybackStatusPlaying
	case playback.StatusPaused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.state()), nil
}

func metadata(s playback.Snapshot) types.Metadata {
	if !s.Status.IsActive() {
		return types.Metadata{TrackId: dbus.ObjectPath(TrackObjectPath(""))}
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(TrackObjectPath(s.CurrentTrackPath)),
		Length:  types.Microseconds(s.Duration().Microseconds()),
		Title:   s.CurrentTrackTitle,
	}
	if s.CurrentTrackArtist != "" {
		meta.Artist = []string{s.CurrentTrackArtist}
	}
	if art := FindAlbumArt(s.CurrentTrackPath); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta
}

func (p *playerAdapter) Position() (int64, error) {
	return p.state().Position().Microseconds(), nil
}

func (p *playerAdapter) Rate() (float64, error)        { return 1.0, nil }
func (p *playerAdapter) SetRate(float64) error         { return nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) Volume() (float64, error)      { return 1.0, nil }
func (p *playerAdapter) SetVolume(float64) error       { return nil }
func (p *playerAdapter) CanGoNext() (bool, error)      { return true, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error)  { return true, nil }
func (p *playerAdapter) CanPlay() (bool, error)        { return true, nil }
func (p *playerAdapter) CanPause() (bool, error)       { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)        { return false, nil }
func (p *playerAdapter) CanControl() (bool, error)     { return true, nil }
