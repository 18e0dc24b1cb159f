// Package keymap holds the keybindings shared by atlas terminal views.
package keymap

import "github.com/charmbracelet/bubbles/key"

// Base contains the standard vim-style keybindings.
type Base struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Quit    key.Binding
	Help    key.Binding
	Back    key.Binding
	Refresh key.Binding
	Search  key.Binding
}

// NewBase creates the default keymap.
func NewBase() Base {
	return Base{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
	}
}

// ShortHelp returns the bindings for the single-line help.
func (k Base) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Refresh, k.Quit}
}

// FullHelp returns the bindings for the expanded help.
func (k Base) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Search, k.Back, k.Refresh},
		{k.Help, k.Quit},
	}
}

// Sections groups the bindings for the help view.
func (k Base) Sections() []Section {
	return []Section{
		NavigationSection(k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom),
		ActionsSection(k.Refresh),
		FilterSection(k.Search, k.Back),
		SystemSection(k.Help, k.Quit),
	}
}
