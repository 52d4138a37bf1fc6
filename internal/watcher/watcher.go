// Package watcher turns filesystem events in the music directory into change
// signals.
package watcher

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/llehouerou/tunes/internal/errmsg"
	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/tags"
)

// Notifier receives change signals. Notify must not block.
type Notifier interface {
	Notify() bool
}

// Kind classifies a relevant filesystem event.
type Kind int

const (
	Created Kind = iota + 1
	Removed
	Modified
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	}
	return "unknown"
}

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	fs       *fsnotify.Watcher
	dir      string
	notifier Notifier
	logger   *log.Logger

	closeOnce sync.Once
	stopped   chan struct{}
}

// New starts watching dir and forwards relevant events to notifier.
func New(dir string, notifier Notifier, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpWatcherStart, dir, err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errmsg.Wrap(errmsg.OpWatchDir, dir, err)
	}

	w := &Watcher{
		fs:       fsw,
		dir:      dir,
		notifier: notifier,
		logger:   logger,
		stopped:  make(chan struct{}),
	}
	go w.eventLoop()
	return w, nil
}

// Close stops watching and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			kind, ok := Classify(event)
			if !ok {
				continue
			}
			w.logger.Debug("library file changed", "path", event.Name, "kind", kind)
			w.notifier.Notify()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "dir", w.dir, "err", err)
		}
	}
}

// Classify reports whether event concerns a library file and what happened
// to it. The check is by name only, since removed files cannot be inspected.
func Classify(event fsnotify.Event) (Kind, bool) {
	name := filepath.Base(event.Name)
	if name == library.IndexFileName || !tags.IsSupported(name) {
		return 0, false
	}

	switch {
	case event.Has(fsnotify.Create):
		return Created, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Removed, true
	case event.Has(fsnotify.Write), event.Has(fsnotify.Chmod):
		// Chmod covers attribute changes such as a touched mtime.
		return Modified, true
	}
	return 0, false
}
