// Package keymap defines key bindings and action dispatch for the TUI.
package keymap

// Action is a user-triggerable action.
type Action string

const (
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback
	ActionSelect    Action = "select" // play the selected track
	ActionPlayPause Action = "play_pause"
	ActionStop      Action = "stop"
	ActionNextTrack Action = "next_track"
	ActionPrevTrack Action = "prev_track"

	// Library
	ActionRescan Action = "rescan"
	ActionFilter Action = "filter" // narrow the list by a typed query

	// Navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionJumpPlay  Action = "jump_playing" // move the cursor to the playing track
)
