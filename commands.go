package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/tunes/internal/app"
	"github.com/llehouerou/tunes/internal/config"
	"github.com/llehouerou/tunes/internal/errmsg"
	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/logging"
	"github.com/llehouerou/tunes/internal/mpris"
	"github.com/llehouerou/tunes/internal/notify"
	"github.com/llehouerou/tunes/internal/shell"
	"github.com/llehouerou/tunes/internal/stderr"
	"github.com/llehouerou/tunes/internal/transport"
	"github.com/llehouerou/tunes/internal/ui/render"
)

// loadConfig reads the config files and applies the global flags.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	paths := config.SearchPaths()
	if extra := cmd.String("config"); extra != "" {
		if _, err := os.Stat(extra); err != nil {
			return nil, errmsg.Wrap(errmsg.OpConfigLoad, extra, err)
		}
		paths = append(paths, extra)
	}

	cfg, err := config.LoadFiles(paths...)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, "", err)
	}

	if dir := cmd.String("dir"); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		cfg.MusicDir = abs
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// runUI starts the TUI. Logs go to a file, since the terminal belongs to the
// UI, and so does anything C libraries print to stderr.
func runUI(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	capture, err := stderr.Start(logging.Component(logger, "stderr"))
	if err != nil {
		logger.Warn("stderr capture disabled", "err", err)
	} else {
		defer capture.Stop()
	}

	svc, err := transport.Start(cfg, transport.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer closeService(svc, logger)

	intents := make(chan mpris.Intent, 4)
	adapter, err := mpris.New(svc, intents, logging.Component(logger, "mpris"))
	if err != nil {
		logger.Warn("mpris disabled", "err", err)
	} else {
		defer adapter.Close()
	}

	model := app.New(svc, app.Options{
		Intents:    intents,
		NowPlaying: notify.NewNowPlaying(notify.New()),
		Logger:     logging.Component(logger, "ui"),
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runShell(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	svc, err := transport.Start(cfg, transport.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer closeService(svc, logger)

	history := config.HistoryFile()
	if err := os.MkdirAll(filepath.Dir(history), 0o755); err != nil {
		logger.Warn("shell history disabled", "err", err)
		history = ""
	}
	rl, err := shell.NewReadline(history)
	if err != nil {
		return err
	}
	return shell.New(svc, rl.Stdout(), logging.Component(logger, "shell")).Run(ctx, rl)
}

func runScan(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	idx, err := transport.Scan(cfg, transport.Options{Logger: logger})
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(cmd.Root().Writer, idx)
	}
	printIndex(cmd.Root().Writer, cfg.MusicDir, idx)
	return nil
}

func runDir(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, cfg.MusicDir)
	return err
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	svc, err := transport.Start(cfg, transport.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer closeService(svc, logger)

	changes := svc.Subscribe()
	idx, err := svc.ScanLibrary(ctx)
	if err != nil {
		return err
	}
	logger.Info("watching", "dir", svc.MusicDirectory(), "tracks", idx.Len())

	return watchLoop(ctx, changes, logger)
}

// watchLoop logs each change event until ctx is done or the events stop.
func watchLoop(ctx context.Context, changes <-chan library.Changed, logger *log.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("library changed", "tracks", ev.Index.Len())
		}
	}
}

func writeJSON(w io.Writer, idx *library.Index) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(idx)
}

func printIndex(w io.Writer, dir string, idx *library.Index) {
	for _, t := range idx.Tracks {
		fmt.Fprintf(w, "%s  %s  %s\n",
			render.TruncateAndPad(t.DisplayTitle(), 40),
			render.TruncateAndPad(t.Artist, 24),
			render.Duration(time.Duration(t.DurationSecs)*time.Second))
	}
	fmt.Fprintf(w, "%s in %s\n", english.Plural(idx.Len(), "track", ""), dir)
}

func closeService(svc *transport.Service, logger *log.Logger) {
	if err := svc.Close(); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
