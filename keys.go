package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Open     key.Binding
	Stage    key.Binding
	Rescan   key.Binding
	Commit   key.Binding
	Push     key.Binding
	Copy     key.Binding
	Focus    key.Binding
	Back     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand / collapse directory")),
		Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse / go to parent")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show diff")),
		Stage:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "stage / unstage file")),
		Rescan:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "rescan")),
		Commit:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit staged changes")),
		Push:     key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "push to remote")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to tree")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll diff up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll diff down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) all() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Expand, k.Collapse, k.Open, k.Stage, k.Rescan,
		k.Commit, k.Push, k.Copy, k.Focus, k.Back, k.PageUp, k.PageDown, k.Help, k.Quit,
	}
}
