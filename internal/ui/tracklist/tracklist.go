// Package tracklist renders the library index as a scrolling table.
package tracklist

import (
	"strings"
	"time"

	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/ui/cursor"
	"github.com/llehouerou/tunes/internal/ui/render"
	"github.com/llehouerou/tunes/internal/ui/styles"
)

const (
	markerWidth   = 2
	durationWidth = 8
	gap           = 2
)

// View is what Render needs besides the tracks.
type View struct {
	Cursor      cursor.Cursor
	PlayingPath string
	Width       int
	Height      int
}

// Render draws exactly v.Height lines of v.Width cells.
func Render(tracks []library.Track, v View) string {
	if v.Height <= 0 {
		return ""
	}
	st := styles.T().S()
	lines := make([]string, 0, v.Height)

	if len(tracks) == 0 {
		lines = append(lines, st.Subtle.Render(render.Pad("  no tracks", v.Width)))
	}

	titleW, artistW := columns(v.Width)
	start, end := v.Cursor.VisibleRange(len(tracks), v.Height)
	for i := start; i < end; i++ {
		t := tracks[i]
		playing := t.Path == v.PlayingPath

		marker := "  "
		if playing {
			marker = "▶ "
		}
		row := marker +
			render.TruncateAndPad(t.DisplayTitle(), titleW) + strings.Repeat(" ", gap) +
			render.TruncateAndPad(t.Artist, artistW) + strings.Repeat(" ", gap) +
			duration(t.DurationSecs)
		row = render.TruncateAndPad(row, v.Width)

		switch {
		case i == v.Cursor.Pos():
			row = st.Cursor.Render(row)
		case playing:
			row = st.Playing.Render(row)
		default:
			row = st.Base.Render(row)
		}
		lines = append(lines, row)
	}

	for len(lines) < v.Height {
		lines = append(lines, strings.Repeat(" ", max(v.Width, 0)))
	}
	return strings.Join(lines, "\n")
}

// columns splits the width left after the marker and duration 60/40 between
// title and artist.
func columns(width int) (title, artist int) {
	rest := max(width-markerWidth-durationWidth-2*gap, 2)
	title = rest * 6 / 10
	return title, rest - title
}

func duration(secs uint64) string {
	if secs == 0 {
		return render.Pad("", durationWidth)
	}
	s := render.Duration(time.Duration(secs) * time.Second)
	return strings.Repeat(" ", max(durationWidth-len(s), 0)) + s
}
