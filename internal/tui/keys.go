package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the screen-level key bindings. Grid navigation lives in
// components.GridKeys.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding

	// Categories
	NowPlaying key.Binding
	Popular    key.Binding
	TopRated   key.Binding
	Upcoming   key.Binding
	Sort       key.Binding

	// Actions
	Quit    key.Binding
	Help    key.Binding
	Escape  key.Binding
	Filter  key.Binding
	Retry   key.Binding
	Refresh key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),

		// Categories
		NowPlaying: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "now playing"),
		),
		Popular: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "popular"),
		),
		TopRated: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "top rated"),
		),
		Upcoming: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "upcoming"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "category"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "clear cache + reload"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Sort, k.Filter, k.Retry, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter},
		{k.NowPlaying, k.Popular, k.TopRated, k.Upcoming, k.Sort},
		{k.Filter, k.Retry, k.Refresh, k.Escape, k.Help, k.Quit},
	}
}

// Keys is the package-level key map instance
var Keys = DefaultKeyMap()
