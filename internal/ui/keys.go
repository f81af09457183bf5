package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Open     key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
	Backward key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Open: key.NewBinding(
			key.WithKeys("m", "shift+f10"),
			key.WithHelp("m", "menu"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Backward: key.NewBinding(
			key.WithKeys("backspace"),
		),
	}
}

// footerHelp renders the hints for the current mode.
func (k keyMap) footerHelp(menuOpen bool) string {
	var bindings []key.Binding
	if menuOpen {
		bindings = []key.Binding{k.Up, k.Down, k.Select, k.Dismiss}
	} else {
		bindings = []key.Binding{k.Up, k.Down, k.Open, k.Quit}
	}
	out := ""
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	if menuOpen {
		out += "  type to jump"
	}
	return out
}
