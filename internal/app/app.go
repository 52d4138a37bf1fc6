// Package app is the terminal UI: the library as a list, a player bar, and
// keys mapped onto the transport service.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/tunes/internal/keymap"
	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/mpris"
	"github.com/llehouerou/tunes/internal/notify"
	"github.com/llehouerou/tunes/internal/playback"
	"github.com/llehouerou/tunes/internal/search"
	"github.com/llehouerou/tunes/internal/ui/cursor"
)

// Service is the command surface the UI drives.
type Service interface {
	MusicDirectory() string
	ScanLibrary(ctx context.Context) (*library.Index, error)
	PlayTrack(path, title, artist string, durationSecs uint64) error
	Pause() error
	Resume() error
	Stop() error
	PlaybackState(ctx context.Context) (playback.Snapshot, error)
	Subscribe() <-chan library.Changed
}

// Options holds the optional collaborators of the UI.
type Options struct {
	// Intents carries next/previous/play/stop requests from the media keys.
	Intents <-chan mpris.Intent
	// NowPlaying, when set, announces each new track.
	NowPlaying *notify.NowPlaying
	Logger     *log.Logger
}

// Model is the root bubbletea model.
type Model struct {
	svc        Service
	logger     *log.Logger
	keys       *keymap.Resolver
	help       help.Model
	changes    <-chan library.Changed
	intents    <-chan mpris.Intent
	nowPlaying *notify.NowPlaying

	// all is the library in index order; tracks is the filtered view the
	// cursor, autoplay and next/previous work on.
	all       []library.Track
	tracks    []library.Track
	matcher   *search.Matcher
	query     string
	filtering bool
	cursor    cursor.Cursor
	state     playback.Snapshot

	// lastPlayed is the path most recently sent to PlayTrack. It anchors
	// next/previous once the engine has cleared its fields.
	lastPlayed    string
	stopRequested bool

	scanning bool
	lastScan time.Time
	errMsg   string

	width  int
	height int
}

// New subscribes to library changes and returns the initial model. The first
// scan starts with Init.
func New(svc Service, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return Model{
		svc:        svc,
		logger:     logger,
		keys:       keymap.NewResolver(keymap.All),
		help:       help.New(),
		changes:    svc.Subscribe(),
		intents:    opts.Intents,
		nowPlaying: opts.NowPlaying,
		cursor:     cursor.New(2),
		scanning:   true,
	}
}
