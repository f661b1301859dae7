package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Yum   key.Binding
	Meh   key.Binding
	Ew    key.Binding
	End   key.Binding
	Share key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Yum:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yum")),
		Meh:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "meh")),
		Ew:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "ew")),
		End:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "end voting")),
		Share: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share link")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yum, k.Meh, k.Ew, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Yum, k.Meh, k.Ew},
		{k.End, k.Share},
		{k.Help, k.Quit},
	}
}
