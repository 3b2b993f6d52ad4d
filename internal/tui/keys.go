package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Pick   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Again  key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		Pick:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "select")),
		Next:   key.NewBinding(key.WithKeys("enter", "right", "n"), key.WithHelp("enter", "next")),
		Prev:   key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "previous")),
		Again:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "try again")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func helpLine(bindings ...key.Binding) string {
	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += " • "
		}
		h := b.Help()
		line += h.Key + " " + h.Desc
	}
	return line
}
