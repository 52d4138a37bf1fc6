package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	pollInterval = 500 * time.Millisecond
	stateTimeout = 2 * time.Second
)

// Init starts the first scan, polling and the event listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), tickCmd(), m.waitForChanges(), m.waitForIntent())
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) queryStateCmd(poll bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), stateTimeout)
		defer cancel()
		snap, err := svc.PlaybackState(ctx)
		return stateMsg{snap: snap, err: err, poll: poll}
	}
}

func (m Model) scanCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		idx, err := svc.ScanLibrary(context.Background())
		return scanDoneMsg{index: idx, err: err, at: time.Now()}
	}
}

func (m Model) waitForChanges() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return changesClosedMsg{}
		}
		return libraryChangedMsg{index: ev.Index, at: time.Now()}
	}
}

func (m Model) waitForIntent() tea.Cmd {
	ch := m.intents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		i, ok := <-ch
		if !ok {
			return nil
		}
		return intentMsg(i)
	}
}
