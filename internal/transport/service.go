// Package transport is the command surface shared by every front end. It
// turns user intents into playback commands and library scans.
package transport

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/playback"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("transport closed")

// Service is the facade over the playback engine and the library syncer.
type Service struct {
	dir    string
	engine *playback.Engine
	syncer *library.Syncer
	logger *log.Logger

	// optional: closed before the syncer
	watcher io.Closer
	// optional: closed once the syncer is done with it
	store io.Closer

	mu     sync.RWMutex
	closed bool
}

// New assembles a service from running components. Close stops them.
func New(dir string, engine *playback.Engine, syncer *library.Syncer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		dir:    dir,
		engine: engine,
		syncer: syncer,
		logger: logger,
	}
}

func (s *Service) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// MusicDirectory returns the library directory.
func (s *Service) MusicDirectory() string {
	return s.dir
}

// ScanLibrary reconciles the index with the directory and returns it.
func (s *Service) ScanLibrary(ctx context.Context) (*library.Index, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	idx, err := s.syncer.Scan(ctx)
	if errors.Is(err, library.ErrSyncerClosed) {
		return nil, ErrClosed
	}
	return idx, err
}

// PlayTrack starts playing path. It only reports whether the request was
// accepted; decoding problems show up as a Stopped state.
func (s *Service) PlayTrack(path, title, artist string, durationSecs uint64) error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.engine.Play(path, title, artist, time.Duration(durationSecs)*time.Second)
}

// Pause pauses playback.
func (s *Service) Pause() error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.engine.Pause()
}

// Resume resumes paused playback.
func (s *Service) Resume() error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.engine.Resume()
}

// Stop stops playback.
func (s *Service) Stop() error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.engine.Stop()
}

// PlaybackState returns the current playback snapshot.
func (s *Service) PlaybackState(ctx context.Context) (playback.Snapshot, error) {
	if s.isClosed() {
		return playback.Snapshot{}, ErrClosed
	}
	return s.engine.State(ctx)
}

// Subscribe returns a channel of library-changed events. It is closed when
// the service closes.
func (s *Service) Subscribe() <-chan library.Changed {
	return s.syncer.Subscribe()
}

// Close stops every component. Queued commands and scans finish first.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
	}
	s.syncer.Close()
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	errs = append(errs, s.engine.Close())
	s.logger.Debug("transport closed")
	return errors.Join(errs...)
}
