package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFiles_Defaults(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "tunes", filepath.Base(cfg.MusicDir))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreJSON, cfg.Library.Store)
	assert.Equal(t, 4, cfg.Library.ScanWorkers)
	assert.Equal(t, 100*time.Millisecond, cfg.Watcher.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Watcher.QuietWindow)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
}

func TestLoadFiles_Overrides(t *testing.T) {
	path := writeConfig(t, `
music_dir = "/srv/music"
log_level = "debug"

[library]
store = "SQLite"
refresh_modified = true
scan_workers = 2

[watcher]
poll_interval = "50ms"
quiet_window = "1s"

[audio]
sample_rate = 48000
`)

	cfg, err := LoadFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/music", cfg.MusicDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StoreSQLite, cfg.Library.Store)
	assert.True(t, cfg.Library.RefreshModified)
	assert.Equal(t, 2, cfg.Library.ScanWorkers)
	assert.Equal(t, 50*time.Millisecond, cfg.Watcher.PollInterval)
	assert.Equal(t, time.Second, cfg.Watcher.QuietWindow)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
}

func TestLoadFiles_LaterFileWins(t *testing.T) {
	first := writeConfig(t, `music_dir = "/first"`)
	second := writeConfig(t, `music_dir = "/second"`)

	cfg, err := LoadFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, "/second", cfg.MusicDir)
}

func TestLoadFiles_InvalidValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
[library]
store = "postgres"
scan_workers = -3

[watcher]
poll_interval = "200ms"
quiet_window = "10ms"
`)

	cfg, err := LoadFiles(path)
	require.NoError(t, err)

	assert.Equal(t, StoreJSON, cfg.Library.Store)
	assert.Equal(t, 4, cfg.Library.ScanWorkers)
	assert.Equal(t, 200*time.Millisecond, cfg.Watcher.PollInterval)
	assert.GreaterOrEqual(t, cfg.Watcher.QuietWindow, cfg.Watcher.PollInterval)
}

func TestLoadFiles_MalformedFile(t *testing.T) {
	path := writeConfig(t, `music_dir = `)

	_, err := LoadFiles(path)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Music"), expandPath("~/Music"))
	assert.Equal(t, "/abs", expandPath("/abs"))
	assert.Empty(t, expandPath(""))
}
