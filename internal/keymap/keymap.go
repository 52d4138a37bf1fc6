package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding ties keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "library", "navigation"
}

// All contains every key binding.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	{ActionSelect, []string{"enter"}, "Play selected", "playback"},
	{ActionPlayPause, []string{" "}, "Pause/resume", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p"}, "Previous track", "playback"},

	{ActionRescan, []string{"r"}, "Rescan library", "library"},
	{ActionFilter, []string{"/"}, "Filter tracks", "library"},

	{ActionMoveDown, []string{"j", "down"}, "Move down", "navigation"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "navigation"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "navigation"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "navigation"},
	{ActionPageDown, []string{"ctrl+d", "pgdown"}, "Half page down", "navigation"},
	{ActionPageUp, []string{"ctrl+u", "pgup"}, "Half page up", "navigation"},
	{ActionJumpPlay, []string{"."}, "Go to playing track", "navigation"},
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range All {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}

// KeyBinding converts b for bubbles/help.
func (b Binding) KeyBinding() key.Binding {
	label := b.Keys[0]
	if label == " " {
		label = "space"
	}
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(label, b.Description))
}
