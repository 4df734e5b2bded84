package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the day-selection and application key bindings
type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Pick   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "pick day"),
		),
		Reload: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "refetch"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Pick, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// setSelectionEnabled disables the day-selection bindings while a fetch is pending
func (k *keyMap) setSelectionEnabled(enabled bool) {
	k.Prev.SetEnabled(enabled)
	k.Next.SetEnabled(enabled)
	k.Pick.SetEnabled(enabled)
	k.Reload.SetEnabled(enabled)
}
