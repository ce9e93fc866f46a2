package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit     key.Binding
	BinsUp   key.Binding
	BinsDown key.Binding
	ColorMap key.Binding
	Layout   key.Binding
	Focus    key.Binding
	Edit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		BinsUp:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b/B", "bins")),
		BinsDown: key.NewBinding(key.WithKeys("B")),
		ColorMap: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "colormap")),
		Layout:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layout")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "min/max")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "±0.5")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.BinsUp, k.ColorMap, k.Layout, k.Focus, k.Up, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.BinsUp, k.ColorMap, k.Layout},
		{k.Focus, k.Up, k.Edit},
		{k.Help, k.Quit},
	}
}

// isCancel ends a field edit without applying it.
func isCancel(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc", "ctrl+c":
		return true
	}
	return false
}
