package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Lock     key.Binding
	Search   key.Binding
	Recenter key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Lock:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lock/unlock")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "pick entry")),
		Recenter: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "centre button")),
		Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset saved state")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Lock, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Lock, k.Search, k.Recenter}, {k.Reset, k.Help, k.Quit}}
}
