package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds all key bindings for the browser
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	NextFlavor key.Binding
	PrevFlavor key.Binding

	// Selection
	Toggle  key.Binding
	All     key.Binding
	Confirm key.Binding
	Copy    key.Binding

	// Search and Filter
	Filter key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextFlavor: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next flavor")),
		PrevFlavor: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev flavor")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pick")),
		All:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "pick all accents")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "build")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy build id")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the short help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextFlavor, k.Toggle, k.Confirm, k.Filter, k.Help, k.Quit}
}

// FullHelp returns the full help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFlavor, k.PrevFlavor},
		{k.Toggle, k.All, k.Confirm, k.Copy},
		{k.Filter, k.Help, k.Quit},
	}
}
