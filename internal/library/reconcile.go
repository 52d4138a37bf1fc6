package library

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/tunes/internal/errmsg"
	"github.com/llehouerou/tunes/internal/tags"
)

// defaultWorkers is the metadata read parallelism when none is configured.
const defaultWorkers = 4

// MetadataReader extracts tags and duration from one file.
type MetadataReader interface {
	ReadMetadata(path string) (*tags.Metadata, error)
}

// Options tune a Reconciler.
type Options struct {
	// Workers is the number of files read concurrently.
	Workers int
	// RefreshModified re-reads files whose modification time changed since
	// they were indexed. Off by default: indexed files are never re-read.
	RefreshModified bool
	Logger          *log.Logger
}

// Reconciler brings the persisted index in line with the files present in
// the music directory.
type Reconciler struct {
	dir             string
	store           Store
	reader          MetadataReader
	workers         int
	refreshModified bool
	logger          *log.Logger
}

// NewReconciler returns a reconciler for dir. Relative directories are
// resolved so that indexed paths and IDs are absolute.
func NewReconciler(dir string, store Store, reader MetadataReader, opts Options) *Reconciler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{
		dir:             dir,
		store:           store,
		reader:          reader,
		workers:         workers,
		refreshModified: opts.RefreshModified,
		logger:          logger,
	}
}

// Dir returns the absolute music directory.
func (r *Reconciler) Dir() string {
	return r.dir
}

// EnsureDir creates the music directory if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errmsg.Wrap(errmsg.OpLibraryCreate, dir, err)
	}
	return nil
}

type fileEntry struct {
	path  string
	name  string
	mtime int64
}

// Reconcile scans the directory, drops records for vanished files, reads
// metadata for new ones, sorts and persists the result.
//
// A failed read of a single file only skips that file; it will be tried
// again on the next reconciliation.
func (r *Reconciler) Reconcile() (*Index, error) {
	files, err := r.listFiles()
	if err != nil {
		return nil, err
	}

	prev, err := r.store.Load()
	if err != nil {
		r.logger.Warn("could not load library index, starting empty", "err", err)
		prev = &Index{}
	}

	present := make(map[string]fileEntry, len(files))
	for _, f := range files {
		present[f.path] = f
	}

	tracks := make([]Track, 0, len(files))
	indexed := make(map[string]bool, len(prev.Tracks))
	for _, t := range prev.Tracks {
		f, ok := present[t.Path]
		if !ok || indexed[t.Path] {
			continue
		}
		if r.refreshModified {
			if t.Mtime != f.mtime {
				continue
			}
		} else {
			t.Mtime = 0
		}
		indexed[t.Path] = true
		tracks = append(tracks, t)
	}

	var pending []fileEntry
	for _, f := range files {
		if !indexed[f.path] {
			pending = append(pending, f)
		}
	}

	added := r.readAll(pending)
	tracks = append(tracks, added...)
	SortTracks(tracks)

	idx := &Index{Tracks: tracks}
	if err := r.store.Save(idx); err != nil {
		return nil, err
	}

	r.logger.Debug("library reconciled", "dir", r.dir, "tracks", len(tracks),
		"added", len(added), "removed", len(prev.Tracks)-len(indexed))
	return idx, nil
}

// listFiles returns the supported audio files directly inside the directory,
// in directory order.
func (r *Reconciler) listFiles() ([]fileEntry, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpLibraryRead, r.dir, err)
	}

	files := make([]fileEntry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || name == IndexFileName || !tags.IsSupported(name) {
			continue
		}
		f := fileEntry{path: filepath.Join(r.dir, name), name: name}
		if r.refreshModified {
			info, err := e.Info()
			if err != nil {
				continue
			}
			f.mtime = info.ModTime().Unix()
		}
		files = append(files, f)
	}
	return files, nil
}

// readAll reads metadata for files in parallel. The result keeps the input
// order; unreadable files are left out.
func (r *Reconciler) readAll(files []fileEntry) []Track {
	if len(files) == 0 {
		return nil
	}

	results := make([]*Track, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for range min(r.workers, len(files)) {
		wg.Go(func() {
			for i := range work {
				results[i] = r.readTrack(files[i])
			}
		})
	}
	for i := range files {
		work <- i
	}
	close(work)
	wg.Wait()

	tracks := make([]Track, 0, len(files))
	for _, t := range results {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks
}

func (r *Reconciler) readTrack(f fileEntry) *Track {
	md, err := r.reader.ReadMetadata(f.path)
	if err != nil {
		r.logger.Debug(errmsg.FormatWith(errmsg.OpReadTags, f.path, err))
		return nil
	}
	t := newTrack(f, md)
	return &t
}

func newTrack(f fileEntry, md *tags.Metadata) Track {
	return Track{
		ID:           TrackID(f.path),
		Filename:     f.name,
		Path:         f.path,
		Title:        md.Title,
		Artist:       md.Artist,
		Album:        md.Album,
		Year:         max(md.Year, 0),
		TrackNumber:  max(md.TrackNumber, 0),
		Genre:        md.Genre,
		DurationSecs: uint64(max(md.Duration, 0) / time.Second),
		Mtime:        f.mtime,
	}
}
