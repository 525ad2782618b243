package tui

import "github.com/charmbracelet/bubbles/key"

// SharedKeyMap defines keybindings available in every mode.
type SharedKeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
}

// SharedKeys are available in every mode.
var SharedKeys = SharedKeyMap{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "force quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// PanelKeyMap defines keybindings for browsing applications and permissions.
type PanelKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	SwitchPane  key.Binding
	Search      key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Reset       key.Binding
	CycleLayout key.Binding
}

// PanelKeys are the keybindings for the main panel.
var PanelKeys = PanelKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("h", "left", "backspace"),
		key.WithHelp("h/←", "back"),
	),
	SwitchPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	CycleLayout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "layout"),
	),
}

// SearchKeyMap defines keybindings for search mode.
type SearchKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// SearchKeys are the keybindings for search mode.
var SearchKeys = SearchKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

// TextEditKeyMap defines keybindings when editing a text permission.
type TextEditKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// TextEditKeys are the keybindings for text editing mode.
var TextEditKeys = TextEditKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel edit"),
	),
}

// PanelKeyMapEntry pairs a binding with whether its help is shown.
type PanelKeyMapEntry struct {
	Binding key.Binding
	Show    bool
}
