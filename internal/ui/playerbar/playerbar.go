// Package playerbar renders the now-playing line at the bottom of the TUI.
package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunes/internal/playback"
	"github.com/llehouerou/tunes/internal/ui/render"
	"github.com/llehouerou/tunes/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"

	separator   = "   "
	minBarWidth = 10
)

// Height is the number of rows Render produces.
const Height = 3

// Render draws the bar for s at the given width. A stopped engine still gets
// a bar so the layout does not jump when playback starts.
func Render(s playback.Snapshot, width int) string {
	st := styles.T().S()
	inner := max(width-6, 0)

	if !s.Status.IsActive() {
		line := st.Subtle.Render(stopSymbol + "  nothing playing")
		return st.Panel.Padding(0, 2).Width(max(width-2, 0)).Render(line)
	}

	status := playSymbol
	if s.Status == playback.StatusPaused {
		status = pauseSymbol
	}

	title := s.CurrentTrackTitle
	if title == "" {
		title = "Unknown Track"
	}
	artist := s.CurrentTrackArtist

	timeStr := render.Duration(s.Position()) + " / " + render.Duration(s.Duration())
	fixed := lipgloss.Width(status+"  ") + lipgloss.Width(timeStr) + 2*len(separator)
	avail := max(inner-fixed-minBarWidth, 0)

	var text string
	switch titleW, artistW := lipgloss.Width(title), lipgloss.Width(artist); {
	case artist == "" || titleW+len(separator)+artistW <= avail:
		text = st.Title.Render(render.Truncate(title, avail))
		if artist != "" {
			text += separator + st.Muted.Render(artist)
		}
	case titleW+len(separator) < avail:
		text = st.Title.Render(title) + separator +
			st.Muted.Render(render.Truncate(artist, avail-titleW-len(separator)))
	default:
		text = st.Title.Render(render.Truncate(title, avail))
	}

	barWidth := max(inner-lipgloss.Width(text)-fixed, 5)

	var b strings.Builder
	b.WriteString(text)
	b.WriteString(separator)
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(Progress(s, barWidth))
	b.WriteString(separator)
	b.WriteString(st.Muted.Render(timeStr))

	return st.Panel.Padding(0, 2).Width(max(width-2, 0)).Render(b.String())
}

// Progress draws a width-cell progress bar for the snapshot's position.
func Progress(s playback.Snapshot, width int) string {
	st := styles.T().S()
	var ratio float64
	if s.DurationSecs > 0 {
		ratio = min(s.PositionSecs/float64(s.DurationSecs), 1)
	}
	filled := int(float64(width) * ratio)
	return st.BarFill.Render(strings.Repeat("━", filled)) +
		st.BarEmpty.Render(strings.Repeat("─", width-filled))
}
