package app

import (
	"errors"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunes/internal/errmsg"
	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/mpris"
	"github.com/llehouerou/tunes/internal/playback"
	"github.com/llehouerou/tunes/internal/ui/playerbar"
)

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.cursor.Jump(m.cursor.Pos(), len(m.tracks), m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case tickMsg:
		return m, m.queryStateCmd(true)

	case stateMsg:
		return m.handleState(msg)

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.logger.Error("library scan failed", "err", msg.err)
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.lastScan = msg.at
		m.indexLibrary(msg.index)
		return m, nil

	case libraryChangedMsg:
		m.lastScan = msg.at
		m.indexLibrary(msg.index)
		return m, m.waitForChanges()

	case changesClosedMsg:
		m.changes = nil
		return m, nil

	case intentMsg:
		cmd := m.handleIntent(mpris.Intent(msg))
		return m, tea.Batch(cmd, m.waitForIntent())
	}

	return m, nil
}

func (m Model) indexOf(path string) int {
	if path == "" {
		return -1
	}
	return slices.IndexFunc(m.tracks, func(t library.Track) bool {
		return t.Path == path
	})
}

// handleState records a snapshot and plays the next track when the previous
// one ran out on its own.
func (m Model) handleState(msg stateMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg.poll {
		cmds = append(cmds, tickCmd())
	}

	if msg.err != nil {
		m.logger.Debug("playback state query failed", "err", msg.err)
		if errors.Is(msg.err, playback.ErrUnavailable) {
			m.errMsg = errmsg.Format(errmsg.OpPlaybackState, playback.ErrUnavailable)
		}
		return m, tea.Batch(cmds...)
	}

	prev := m.state
	m.state = msg.snap

	if m.nowPlaying != nil {
		if err := m.nowPlaying.Update(msg.snap); err != nil {
			m.logger.Debug("now playing notification failed", "err", err)
		}
	}

	if prev.Status.IsActive() && msg.snap.Status == playback.StatusStopped {
		if m.stopRequested {
			m.stopRequested = false
		} else if i := m.indexOf(prev.CurrentTrackPath); i >= 0 {
			cmds = append(cmds, m.playIndex(i+1))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleIntent(i mpris.Intent) tea.Cmd {
	switch i {
	case mpris.IntentNext:
		return m.playNeighbor(1)
	case mpris.IntentPrevious:
		return m.playNeighbor(-1)
	case mpris.IntentPlay:
		return m.playIndex(m.cursor.Pos())
	case mpris.IntentStop:
		return m.stop()
	}
	return nil
}

// listHeight is the number of track rows that fit between header and footer.
func (m Model) listHeight() int {
	return max(m.height-headerHeight-playerbar.Height-lipgloss.Height(m.footer()), 1)
}
