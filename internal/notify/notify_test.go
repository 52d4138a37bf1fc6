package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunes/internal/playback"
)

type recorder struct {
	sent []Notification
	err  error
}

func (r *recorder) Notify(n Notification) (uint32, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	return 7, nil
}

func (r *recorder) Close(uint32) error { return nil }

func playing(path, title string) playback.Snapshot {
	return playback.Snapshot{
		Status:             playback.StatusPlaying,
		CurrentTrackPath:   path,
		CurrentTrackTitle:  title,
		CurrentTrackArtist: "Band",
	}
}

func TestUrgencyValues(t *testing.T) {
	assert.Equal(t, Urgency(0), UrgencyLow)
	assert.Equal(t, Urgency(1), UrgencyNormal)
	assert.Equal(t, Urgency(2), UrgencyCritical)
}

func TestNowPlaying_OncePerTrack(t *testing.T) {
	r := &recorder{}
	np := NewNowPlaying(r)

	require.NoError(t, np.Update(playing("/m/a.mp3", "A")))
	require.NoError(t, np.Update(playing("/m/a.mp3", "A")))
	require.NoError(t, np.Update(playing("/m/b.mp3", "B")))

	require.Len(t, r.sent, 2)
	assert.Equal(t, "A", r.sent[0].Title)
	assert.Equal(t, "Band", r.sent[0].Body)
	assert.Equal(t, "audio-x-generic", r.sent[0].Icon)
	assert.Zero(t, r.sent[0].ReplacesID)
	assert.Equal(t, uint32(7), r.sent[1].ReplacesID)
}

func TestNowPlaying_IgnoresPausedAndStopped(t *testing.T) {
	r := &recorder{}
	np := NewNowPlaying(r)

	paused := playing("/m/a.mp3", "A")
	paused.Status = playback.StatusPaused
	require.NoError(t, np.Update(paused))
	require.NoError(t, np.Update(playback.Snapshot{}))

	assert.Empty(t, r.sent)
}

func TestNowPlaying_UntitledTrack(t *testing.T) {
	r := &recorder{}
	require.NoError(t, NewNowPlaying(r).Update(playing("/m/a.mp3", "")))

	require.Len(t, r.sent, 1)
	assert.Equal(t, "Now playing", r.sent[0].Title)
}

func TestNowPlaying_Error(t *testing.T) {
	r := &recorder{err: errors.New("bus gone")}

	assert.Error(t, NewNowPlaying(r).Update(playing("/m/a.mp3", "A")))
}
