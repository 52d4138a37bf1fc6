package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "tunes"

// Store backends for the library index.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	MusicDir string `koanf:"music_dir"` // scanned directory; default <XDG music>/tunes
	LogLevel string `koanf:"log_level"` // debug, info, warn, error
	LogFile  string `koanf:"log_file"`  // TUI log file

	Library LibraryConfig `koanf:"library"`
	Watcher WatcherConfig `koanf:"watcher"`
	Audio   AudioConfig   `koanf:"audio"`
}

// LibraryConfig holds index and reconciliation settings.
type LibraryConfig struct {
	Store           string        `koanf:"store"`            // "json" (default) or "sqlite"
	DBPath          string        `koanf:"db_path"`          // sqlite store location
	RefreshModified bool          `koanf:"refresh_modified"` // re-read tags when mtime changes
	ScanWorkers     int           `koanf:"scan_workers"`     // parallel metadata readers
	MetadataTimeout time.Duration `koanf:"metadata_timeout"` // per-file tag read bound
}

// WatcherConfig holds debounce timings.
type WatcherConfig struct {
	PollInterval time.Duration `koanf:"poll_interval"`
	QuietWindow  time.Duration `koanf:"quiet_window"`
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	SampleRate int           `koanf:"sample_rate"`
	Buffer     time.Duration `koanf:"buffer"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		MusicDir: defaultMusicDir(),
		LogLevel: "info",
		LogFile:  filepath.Join(xdg.StateHome, appName, appName+".log"),
		Library: LibraryConfig{
			Store:           StoreJSON,
			DBPath:          filepath.Join(xdg.DataHome, appName, "library.db"),
			ScanWorkers:     4,
			MetadataTimeout: 10 * time.Second,
		},
		Watcher: WatcherConfig{
			PollInterval: 100 * time.Millisecond,
			QuietWindow:  500 * time.Millisecond,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Buffer:     100 * time.Millisecond,
		},
	}
}

// Load reads the standard config files, in order of priority (last wins).
func Load() (*Config, error) {
	return LoadFiles(SearchPaths()...)
}

// LoadFiles reads the given TOML files on top of the defaults.
// Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()

	c.MusicDir = expandPath(c.MusicDir)
	if c.MusicDir == "" {
		c.MusicDir = def.MusicDir
	}
	c.LogFile = expandPath(c.LogFile)
	c.Library.DBPath = expandPath(c.Library.DBPath)

	c.Library.Store = strings.ToLower(strings.TrimSpace(c.Library.Store))
	if c.Library.Store != StoreSQLite {
		c.Library.Store = StoreJSON
	}
	if c.Library.ScanWorkers <= 0 || c.Library.ScanWorkers > 32 {
		c.Library.ScanWorkers = def.Library.ScanWorkers
	}
	if c.Library.MetadataTimeout <= 0 {
		c.Library.MetadataTimeout = def.Library.MetadataTimeout
	}

	if c.Watcher.PollInterval <= 0 {
		c.Watcher.PollInterval = def.Watcher.PollInterval
	}
	// The quiet window must span at least one poll, or a burst could fire mid-way.
	if c.Watcher.QuietWindow < c.Watcher.PollInterval {
		c.Watcher.QuietWindow = max(def.Watcher.QuietWindow, c.Watcher.PollInterval)
	}

	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	if c.Audio.Buffer <= 0 {
		c.Audio.Buffer = def.Audio.Buffer
	}
}

// SearchPaths lists the config files Load reads, lowest priority first:
// $XDG_CONFIG_HOME/tunes/config.toml, then ./config.toml.
func SearchPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

// defaultMusicDir mirrors the platform audio directory with a "tunes" subfolder.
func defaultMusicDir() string {
	music := xdg.UserDirs.Music
	if music == "" {
		if home, err := os.UserHomeDir(); err == nil {
			music = filepath.Join(home, "Music")
		}
	}
	return filepath.Join(music, appName)
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HistoryFile is where the shell keeps its command history.
func HistoryFile() string {
	return filepath.Join(xdg.StateHome, appName, "history")
}
