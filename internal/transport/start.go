package transport

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/tunes/internal/config"
	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/logging"
	"github.com/llehouerou/tunes/internal/playback"
	"github.com/llehouerou/tunes/internal/player"
	"github.com/llehouerou/tunes/internal/tags"
	"github.com/llehouerou/tunes/internal/watcher"
)

// Options override the collaborators Start would otherwise build from the
// configuration. Zero values select the real implementations.
type Options struct {
	Open   player.OpenFunc
	Decode player.DecodeFunc
	Reader library.MetadataReader
	Logger *log.Logger
	// NoWatch disables the directory watcher.
	NoWatch bool
}

// Start builds and starts every component for cfg.
//
// A watcher that cannot start is logged and skipped: the library can still
// be scanned by hand. An unusable music directory or index store is an error.
func Start(cfg *config.Config, opts Options) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	rec, closer, err := openLibrary(cfg, opts.Reader, logger)
	if err != nil {
		return nil, err
	}
	syncer := library.NewSyncer(rec, library.SyncerOptions{
		PollInterval: cfg.Watcher.PollInterval,
		QuietWindow:  cfg.Watcher.QuietWindow,
		Logger:       logging.Component(logger, "syncer"),
	})

	open := opts.Open
	if open == nil {
		open = player.SpeakerOpener(player.Config{
			SampleRate: cfg.Audio.SampleRate,
			Buffer:     cfg.Audio.Buffer,
		})
	}
	engine := playback.New(open, opts.Decode, logging.Component(logger, "playback"))

	svc := New(rec.Dir(), engine, syncer, logger)
	svc.store = closer

	if !opts.NoWatch {
		w, err := watcher.New(rec.Dir(), syncer, logging.Component(logger, "watcher"))
		if err != nil {
			logger.Error("library watcher disabled", "err", err)
		} else {
			svc.watcher = w
		}
	}

	return svc, nil
}

// Scan reconciles the library of cfg once, without audio or watching.
func Scan(cfg *config.Config, opts Options) (*library.Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rec, closer, err := openLibrary(cfg, opts.Reader, logger)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}
	return rec.Reconcile()
}

// openLibrary creates the music directory and the reconciler over the
// configured store. The closer is nil for stores that hold no resources.
func openLibrary(cfg *config.Config, reader library.MetadataReader, logger *log.Logger) (*library.Reconciler, io.Closer, error) {
	if err := library.EnsureDir(cfg.MusicDir); err != nil {
		return nil, nil, err
	}

	var (
		store  library.Store
		closer io.Closer
	)
	switch cfg.Library.Store {
	case config.StoreSQLite:
		sqlite, err := library.OpenSQLiteStore(cfg.Library.DBPath)
		if err != nil {
			return nil, nil, err
		}
		store, closer = sqlite, sqlite
	default:
		store = library.NewJSONStore(cfg.MusicDir)
	}

	if reader == nil {
		reader = tags.NewReader(cfg.Library.MetadataTimeout)
	}

	rec := library.NewReconciler(cfg.MusicDir, store, reader, library.Options{
		Workers:         cfg.Library.ScanWorkers,
		RefreshModified: cfg.Library.RefreshModified,
		Logger:          logging.Component(logger, "library"),
	})
	return rec, closer, nil
}
