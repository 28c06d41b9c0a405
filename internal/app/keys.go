package app

import "github.com/charmbracelet/bubbles/key"

// keyMap documents the browse-mode bindings for the footer. The update
// loop dispatches on raw key strings; this map only feeds the help
// renderer.
type keyMap struct {
	Move   key.Binding
	Select key.Binding
	Fold   key.Binding
	Rescan key.Binding
	Quit   key.Binding
	Filter key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Move:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("up/down", "move")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Fold:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("left/right", "fold")),
		Rescan: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rescan")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		Filter: key.NewBinding(key.WithKeys("runes"), key.WithHelp("a-z", "filter")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Select, k.Fold, k.Rescan, k.Quit, k.Filter}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Select, k.Fold},
		{k.Rescan, k.Quit, k.Filter},
	}
}
