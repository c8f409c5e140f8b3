package session

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the machine resolves key events against.
type KeyMap struct {
	Quit    key.Binding
	Down    key.Binding
	Up      key.Binding
	Select  key.Binding
	Refresh key.Binding
	Commit  key.Binding
	Discard key.Binding
	Help    key.Binding // shown by the UI; the machine ignores it

	// Compose mode
	Cancel    key.Binding
	Submit    key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the standard vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("space", "stage/unstage"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "commit"),
		),
		Discard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "discard"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns the browse mode bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Select, k.Commit, k.Discard, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns the bindings of both modes.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), k.ComposeHelp()}
}

// ComposeHelp returns the compose mode bindings.
func (k KeyMap) ComposeHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.ForceQuit}
}

// ForMode returns the bindings active in mode.
func (k KeyMap) ForMode(mode Mode) []key.Binding {
	if mode == ModeComposeCommit {
		return k.ComposeHelp()
	}
	return k.ShortHelp()
}
