package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play       key.Binding
	Step       key.Binding
	Measure    key.Binding
	MeasureAll key.Binding
	Reset      key.Binding
	Clear      key.Binding
	Add        key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Faster     key.Binding
	Slower     key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Play:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "run/pause")),
	Step:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "step")),
	Measure:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "measure qubit")),
	MeasureAll: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "measure all")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear circuit")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add gate")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
	Faster:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
	Slower:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
	Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "confirm")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Step, k.Measure, k.Reset, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Step, k.Reset, k.Faster, k.Slower},
		{k.Measure, k.MeasureAll, k.Up, k.Down},
		{k.Add, k.Clear, k.Help, k.Quit},
	}
}
