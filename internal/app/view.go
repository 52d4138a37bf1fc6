package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tunes/internal/ui/playerbar"
	"github.com/llehouerou/tunes/internal/ui/render"
	"github.com/llehouerou/tunes/internal/ui/styles"
	"github.com/llehouerou/tunes/internal/ui/tracklist"
)

const headerHeight = 2

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	list := tracklist.Render(m.tracks, tracklist.View{
		Cursor:      m.cursor,
		PlayingPath: m.playingPath(),
		Width:       m.width,
		Height:      m.listHeight(),
	})
	return strings.Join([]string{
		m.header(),
		list,
		playerbar.Render(m.state, m.width),
		m.footer(),
	}, "\n")
}

func (m Model) header() string {
	th := styles.T()
	st := th.S()

	left := styles.Gradient(" tunes ", th.Accent, th.AccentAlt) + " " +
		st.Muted.Render(render.Truncate(m.svc.MusicDirectory(), max(m.width/2, 10)))

	var status string
	switch {
	case m.scanning:
		status = "scanning…"
	case m.lastScan.IsZero():
		status = "not scanned"
	default:
		status = "scanned " + humanize.Time(m.lastScan)
	}
	count := pluralTracks(len(m.all))
	if m.query != "" {
		count = humanize.Comma(int64(len(m.tracks))) + " of " + count
	}
	right := st.Subtle.Render(fmt.Sprintf("%s · %s", count, status))

	return render.Row(left, right, m.width) + "\n" + st.Subtle.Render(render.Separator(m.width))
}

func (m Model) footer() string {
	if m.errMsg != "" {
		return styles.T().S().Error.Render(render.Truncate(m.errMsg, max(m.width, 1)))
	}
	help := m.help.View(helpKeys{m.keys})
	switch {
	case m.filtering:
		return m.filterLine() + "\n" + help
	case m.query != "":
		return m.filterLine() + styles.T().S().Subtle.Render("  esc clears") + "\n" + help
	}
	return help
}

func (m Model) filterLine() string {
	st := styles.T().S()
	line := st.Title.Render("/") + st.Base.Render(render.Sanitize(m.query))
	if m.filtering {
		line += st.Cursor.Render(" ")
	}
	return line
}

// playingPath is the path to highlight, empty when nothing is loaded.
func (m Model) playingPath() string {
	if !m.state.Status.IsActive() {
		return ""
	}
	return m.state.CurrentTrackPath
}

func pluralTracks(n int) string {
	if n == 1 {
		return "1 track"
	}
	return humanize.Comma(int64(n)) + " tracks"
}
