package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the terminal frontend's key bindings.
type KeyMap struct {
	Toggle key.Binding
	Start  key.Binding
	Reset  key.Binding
	Reseed key.Binding
	Edit   key.Binding
	Help   key.Binding
	Quit   key.Binding

	// Target form
	Next   key.Binding
	Apply  key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("space", " "),
			key.WithHelp("space", "start/pause"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Reseed: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "new layout"),
		),
		Edit: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "set time"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Edit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Start, k.Reset, k.Reseed},
		{k.Edit, k.Help, k.Quit},
	}
}

type formKeys struct{ KeyMap }

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Apply, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
