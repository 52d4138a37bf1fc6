//go:build linux

package mpris

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunes/internal/logging"
	"github.com/llehouerou/tunes/internal/playback"
)

type fakePlayer struct {
	snap  playback.Snapshot
	err   error
	calls []string
}

func (f *fakePlayer) Pause() error  { f.calls = append(f.calls, "pause"); return nil }
func (f *fakePlayer) Resume() error { f.calls = append(f.calls, "resume"); return nil }

func (f *fakePlayer) PlaybackState(context.Context) (playback.Snapshot, error) {
	return f.snap, f.err
}

func newAdapter(status playback.Status) (*playerAdapter, *fakePlayer, chan Intent) {
	fp := &fakePlayer{snap: playback.Snapshot{Status: status}}
	intents := make(chan Intent, 1)
	return &playerAdapter{player: fp, intents: intents, logger: logging.Discard()}, fp, intents
}

func TestPlayPause(t *testing.T) {
	tests := []struct {
		status     playback.Status
		wantCalls  []string
		wantIntent bool
	}{
		{playback.StatusPlaying, []string{"pause"}, false},
		{playback.StatusPaused, []string{"resume"}, false},
		{playback.StatusStopped, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			p, fp, intents := newAdapter(tt.status)

			require.NoError(t, p.PlayPause())

			assert.Equal(t, tt.wantCalls, fp.calls)
			assert.Equal(t, tt.wantIntent, len(intents) == 1)
		})
	}
}

func TestPlay_WhilePlayingIsNoop(t *testing.T) {
	p, fp, intents := newAdapter(playback.StatusPlaying)

	require.NoError(t, p.Play())

	assert.Empty(t, fp.calls)
	assert.Empty(t, intents)
}

func TestNextPrevious_SendIntents(t *testing.T) {
	p, _, intents := newAdapter(playback.StatusPlaying)

	require.NoError(t, p.Next())
	assert.Equal(t, IntentNext, <-intents)

	require.NoError(t, p.Previous())
	assert.Equal(t, IntentPrevious, <-intents)
}

func TestStop_GoesThroughIntents(t *testing.T) {
	p, fp, intents := newAdapter(playback.StatusPlaying)

	require.NoError(t, p.Stop())

	assert.Empty(t, fp.calls)
	assert.Equal(t, IntentStop, <-intents)
}

func TestIntentDroppedWhenFull(t *testing.T) {
	p, _, intents := newAdapter(playback.StatusPlaying)

	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())

	assert.Len(t, intents, 1)
	assert.Equal(t, IntentNext, <-intents)
}

func TestPlaybackStatus(t *testing.T) {
	p, fp, _ := newAdapter(playback.StatusPaused)

	got, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPaused, got)

	fp.err = errors.New("engine gone")
	got, err = p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, got)
}

func TestMetadata(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte("x"), 0o600))

	meta := metadata(playback.Snapshot{
		Status:             playback.StatusPlaying,
		CurrentTrackPath:   track,
		CurrentTrackTitle:  "Song",
		CurrentTrackArtist: "Band",
		DurationSecs:       90,
	})

	assert.Equal(t, TrackObjectPath(track), string(meta.TrackId))
	assert.Equal(t, "Song", meta.Title)
	assert.Equal(t, []string{"Band"}, meta.Artist)
	assert.Equal(t, types.Microseconds(90_000_000), meta.Length)
	assert.Equal(t, "file://"+filepath.Join(dir, "cover.png"), meta.ArtUrl)
}

func TestMetadata_Stopped(t *testing.T) {
	meta := metadata(playback.Snapshot{})

	assert.Equal(t, TrackObjectPath(""), string(meta.TrackId))
	assert.Empty(t, meta.Title)
}

func TestPosition(t *testing.T) {
	p, fp, _ := newAdapter(playback.StatusPlaying)
	fp.snap.PositionSecs = 2.5

	got, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(2_500_000), got)
}
