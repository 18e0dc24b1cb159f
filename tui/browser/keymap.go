package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/atlas/tui/keymap"
)

// KeyMap defines the keybindings for the country browser.
type KeyMap struct {
	keymap.Base
	NextRegion key.Binding
	Clear      key.Binding
	Done       key.Binding
}

// DefaultKeyMap returns the default browser bindings.
func DefaultKeyMap() KeyMap {
	base := keymap.NewBase()
	base.Back = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "leave search"),
	)
	return KeyMap{
		Base: base,
		NextRegion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next region"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "ctrl+l"),
			key.WithHelp("x", "clear filters"),
		),
		Done: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply search"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextRegion, k.Clear, k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Search, k.Done, k.Back, k.NextRegion, k.Clear},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Sections groups the bindings for the full help view.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NavigationSection(k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom),
		keymap.FilterSection(k.Search, k.Done, k.Back, k.NextRegion, k.Clear),
		keymap.ActionsSection(k.Refresh),
		keymap.SystemSection(k.Help, k.Quit),
	}
}
