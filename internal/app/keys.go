package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunes/internal/keymap"
)

// keyHandler reacts to a resolved action and reports whether it claimed it.
type keyHandler func(m *Model, a keymap.Action) (tea.Cmd, bool)

// keyHandlers are tried in order; the first to claim an action wins.
var keyHandlers = []keyHandler{
	(*Model).handleGlobalKeys,
	(*Model).handlePlaybackKeys,
	(*Model).handleNavigationKeys,
}

func (m Model) handleKey(k string) (tea.Model, tea.Cmd) {
	if m.filtering && m.handleFilterKey(k) {
		return m, nil
	}
	if k == "esc" && m.query != "" {
		m.query = ""
		m.applyFilter()
		return m, nil
	}
	cmd, _ := m.dispatch(m.keys.Resolve(k))
	return m, cmd
}

// dispatch hands an action to the key handlers. Unbound keys resolve to the
// empty action, which no handler claims.
func (m *Model) dispatch(a keymap.Action) (tea.Cmd, bool) {
	if a == "" {
		return nil, false
	}
	for _, h := range keyHandlers {
		if cmd, ok := h(m, a); ok {
			return cmd, true
		}
	}
	return nil, false
}

func (m *Model) handleGlobalKeys(a keymap.Action) (tea.Cmd, bool) {
	switch a { //nolint:exhaustive // only handling global actions
	case keymap.ActionQuit:
		return tea.Quit, true
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.cursor.Jump(m.cursor.Pos(), len(m.tracks), m.listHeight())
		return nil, true
	case keymap.ActionRescan:
		return m.rescan(), true
	case keymap.ActionFilter:
		m.filtering = true
		m.cursor.Jump(m.cursor.Pos(), len(m.tracks), m.listHeight())
		return nil, true
	}
	return nil, false
}

func (m *Model) handlePlaybackKeys(a keymap.Action) (tea.Cmd, bool) {
	switch a { //nolint:exhaustive // only handling playback actions
	case keymap.ActionSelect:
		return m.playIndex(m.cursor.Pos()), true
	case keymap.ActionPlayPause:
		return m.togglePause(), true
	case keymap.ActionStop:
		return m.stop(), true
	case keymap.ActionNextTrack:
		return m.playNeighbor(1), true
	case keymap.ActionPrevTrack:
		return m.playNeighbor(-1), true
	}
	return nil, false
}

func (m *Model) handleNavigationKeys(a keymap.Action) (tea.Cmd, bool) {
	n, h := len(m.tracks), m.listHeight()
	switch a { //nolint:exhaustive // only handling navigation actions
	case keymap.ActionMoveDown:
		m.cursor.Move(1, n, h)
	case keymap.ActionMoveUp:
		m.cursor.Move(-1, n, h)
	case keymap.ActionJumpStart:
		m.cursor.Jump(0, n, h)
	case keymap.ActionJumpEnd:
		m.cursor.Jump(n-1, n, h)
	case keymap.ActionPageDown:
		m.cursor.Move(max(h/2, 1), n, h)
	case keymap.ActionPageUp:
		m.cursor.Move(-max(h/2, 1), n, h)
	case keymap.ActionJumpPlay:
		if i := m.indexOf(m.currentPath()); i >= 0 {
			m.cursor.Jump(i, n, h)
		}
	default:
		return nil, false
	}
	return nil, true
}

// helpKeys adapts the resolver to bubbles/help.
type helpKeys struct {
	r *keymap.Resolver
}

func (h helpKeys) ShortHelp() []key.Binding {
	return h.r.Help(
		keymap.ActionSelect, keymap.ActionPlayPause, keymap.ActionStop,
		keymap.ActionNextTrack, keymap.ActionPrevTrack, keymap.ActionRescan, keymap.ActionFilter,
		keymap.ActionHelp, keymap.ActionQuit,
	)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	var groups [][]key.Binding
	for _, ctx := range []string{"playback", "navigation", "library", "global"} {
		var actions []keymap.Action
		for _, b := range keymap.ByContext(ctx) {
			actions = append(actions, b.Action)
		}
		groups = append(groups, h.r.Help(actions...))
	}
	return groups
}
