package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	CheckIn key.Binding
	SOS     key.Binding
	Relapse key.Binding
	Theme   key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		CheckIn: key.NewBinding(
			key.WithKeys("c", " "),
			key.WithHelp("c", "check in"),
		),
		SOS: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sos"),
		),
		Relapse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "relapse"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "continue"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CheckIn, k.SOS, k.Relapse, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CheckIn, k.SOS, k.Relapse},
		{k.Theme, k.Dismiss},
		{k.Help, k.Quit},
	}
}
