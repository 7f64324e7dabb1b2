package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search   key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	PrevHour key.Binding
	NextHour key.Binding
	Live     key.Binding
	Units    key.Binding
	Details  key.Binding
	Relocate key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		PrevHour: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "earlier"),
		),
		NextHour: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "later"),
		),
		Live: key.NewBinding(
			key.WithKeys("n", "0"),
			key.WithHelp("n", "now"),
		),
		Units: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "°C/°F"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "details"),
		),
		Relocate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "my location"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.PrevHour, k.NextHour, k.Units, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Submit, k.Cancel},
		{k.PrevHour, k.NextHour, k.Live},
		{k.Units, k.Details, k.Relocate},
		{k.Help, k.Quit},
	}
}
