package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunes/internal/errmsg"
	"github.com/llehouerou/tunes/internal/playback"
)

// playIndex starts the track at i and moves the cursor onto it. Out of range
// indices do nothing, so running off either end of the list stops there.
func (m *Model) playIndex(i int) tea.Cmd {
	if i < 0 || i >= len(m.tracks) {
		return nil
	}
	t := m.tracks[i]
	if err := m.svc.PlayTrack(t.Path, t.DisplayTitle(), t.Artist, t.DurationSecs); err != nil {
		m.logger.Error("play failed", "path", t.Path, "err", err)
		m.errMsg = errmsg.FormatWith(errmsg.OpPlaybackStart, t.DisplayTitle(), err)
		return nil
	}
	m.lastPlayed = t.Path
	m.stopRequested = false
	m.errMsg = ""
	m.cursor.Jump(i, len(m.tracks), m.listHeight())
	return m.queryStateCmd(false)
}

// playNeighbor plays the track delta rows away from the current one, or the
// selected track when nothing has been played yet.
func (m *Model) playNeighbor(delta int) tea.Cmd {
	base := m.indexOf(m.currentPath())
	if base < 0 {
		return m.playIndex(m.cursor.Pos())
	}
	return m.playIndex(base + delta)
}

func (m *Model) togglePause() tea.Cmd {
	var err error
	switch m.state.Status {
	case playback.StatusPlaying:
		err = m.svc.Pause()
	case playback.StatusPaused:
		err = m.svc.Resume()
	case playback.StatusStopped:
		return m.playIndex(m.cursor.Pos())
	}
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	return m.queryStateCmd(false)
}

func (m *Model) stop() tea.Cmd {
	if err := m.svc.Stop(); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.stopRequested = true
	return m.queryStateCmd(false)
}

func (m *Model) rescan() tea.Cmd {
	if m.scanning {
		return nil
	}
	m.scanning = true
	m.errMsg = ""
	return m.scanCmd()
}

// currentPath is the loaded track, or the last one started if the engine
// has since stopped.
func (m Model) currentPath() string {
	if m.state.Status.IsActive() {
		return m.state.CurrentTrackPath
	}
	return m.lastPlayed
}
