package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Pick     key.Binding
	Confirm  key.Binding
	Next     key.Binding
	Continue key.Binding
	Restart  key.Binding
	Pause    key.Binding
	Reset    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑/↓", "move")),
		Pick:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "choose")),
		Confirm:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "confirm")),
		Next:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "next question")),
		Continue: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next level")),
		Restart:  key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "play again")),
		Pause:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "pause")),
		Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "quit and reset")),
	}
}

// screenKeys is the help.KeyMap shown under one screen.
type screenKeys []key.Binding

func (k screenKeys) ShortHelp() []key.Binding { return k }

func (k screenKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k} }
