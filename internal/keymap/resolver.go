package keymap

import "github.com/charmbracelet/bubbles/key"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action
	byAction map[Action]Binding
}

// NewResolver creates a resolver from bindings. A key bound twice resolves to
// the later binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action]Binding),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.bindings[k] = b.Action
		}
		r.byAction[b.Action] = b
	}
	return r
}

// Resolve returns the action for a key, or "" if unbound.
func (r *Resolver) Resolve(k string) Action {
	return r.bindings[k]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action].Keys
}

// Help returns bubbles key bindings for the given actions, skipping unbound
// ones.
func (r *Resolver) Help(actions ...Action) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		if b, ok := r.byAction[a]; ok && len(b.Keys) > 0 {
			out = append(out, b.KeyBinding())
		}
	}
	return out
}
