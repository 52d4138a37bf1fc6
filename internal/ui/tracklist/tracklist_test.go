package tracklist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/ui/cursor"
)

func tracks(n int) []library.Track {
	out := make([]library.Track, n)
	for i := range out {
		out[i] = library.Track{
			Path:         fmt.Sprintf("/m/%02d.mp3", i),
			Filename:     fmt.Sprintf("%02d.mp3", i),
			Title:        fmt.Sprintf("Song %02d", i),
			Artist:       "Band",
			DurationSecs: 185,
		}
	}
	return out
}

func lines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestRender_FillsViewport(t *testing.T) {
	out := lines(Render(tracks(3), View{Cursor: cursor.New(0), Width: 50, Height: 6}))

	require.Len(t, out, 6)
	for _, l := range out {
		assert.Equal(t, 50, lipgloss.Width(l))
	}
	assert.Contains(t, out[0], "Song 00")
	assert.Contains(t, out[0], "Band")
	assert.Contains(t, out[0], "3:05")
	assert.Empty(t, strings.TrimSpace(out[5]))
}

func TestRender_Empty(t *testing.T) {
	out := lines(Render(nil, View{Width: 30, Height: 2}))

	require.Len(t, out, 2)
	assert.Contains(t, out[0], "no tracks")
}

func TestRender_ZeroHeight(t *testing.T) {
	assert.Empty(t, Render(tracks(3), View{Width: 30}))
}

func TestRender_Scrolls(t *testing.T) {
	c := cursor.New(0)
	c.Jump(9, 10, 4)

	out := lines(Render(tracks(10), View{Cursor: c, Width: 40, Height: 4}))

	assert.Contains(t, out[0], "Song 06")
	assert.Contains(t, out[3], "Song 09")
}

func TestRender_PlayingMarker(t *testing.T) {
	out := lines(Render(tracks(3), View{
		Cursor:      cursor.New(0),
		PlayingPath: "/m/01.mp3",
		Width:       40,
		Height:      3,
	}))

	assert.True(t, strings.HasPrefix(out[1], "▶ "))
	assert.False(t, strings.HasPrefix(out[0], "▶"))
}

func TestRender_FallsBackToFilename(t *testing.T) {
	ts := []library.Track{{Path: "/m/raw.wav", Filename: "raw.wav"}}

	out := lines(Render(ts, View{Width: 40, Height: 1}))

	assert.Contains(t, out[0], "raw.wav")
}

func TestColumns(t *testing.T) {
	title, artist := columns(100)
	assert.Equal(t, 100-markerWidth-durationWidth-2*gap, title+artist)
	assert.Greater(t, title, artist)

	title, artist = columns(0)
	assert.Equal(t, 2, title+artist)
}
