package app

import (
	"time"

	"github.com/llehouerou/tunes/internal/library"
	"github.com/llehouerou/tunes/internal/mpris"
	"github.com/llehouerou/tunes/internal/playback"
)

// tickMsg drives state polling.
type tickMsg time.Time

// stateMsg carries a playback snapshot. poll marks replies to the polling
// loop, which reschedule the next tick.
type stateMsg struct {
	snap playback.Snapshot
	err  error
	poll bool
}

// scanDoneMsg is the result of an explicit scan.
type scanDoneMsg struct {
	index *library.Index
	err   error
	at    time.Time
}

// libraryChangedMsg is a reconciliation triggered by the watcher.
type libraryChangedMsg struct {
	index *library.Index
	at    time.Time
}

// changesClosedMsg reports that the change subscription ended.
type changesClosedMsg struct{}

type intentMsg mpris.Intent
