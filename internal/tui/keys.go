package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the TUI key bindings.
type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Repeat    key.Binding
	SpeedDown key.Binding
	SpeedUp   key.Binding
	Replay    key.Binding
	PlayPause key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev line"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next line"),
		),
		Repeat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "repeat"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "slower"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "faster"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay line"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy line"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Repeat, k.SpeedDown, k.SpeedUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Replay, k.Repeat},
		{k.SpeedDown, k.SpeedUp, k.PlayPause},
		{k.Copy, k.Help, k.Quit},
	}
}
