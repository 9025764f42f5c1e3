// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings for the list and verse screens. The
// chat screen has its own map.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	Back     key.Binding
	Search   key.Binding
	Ask      key.Binding
	Chat     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("left/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("right/l", "next page"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("Esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Ask: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ask AI"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chat"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpFor returns the bindings worth showing on a screen.
func (k KeyMap) helpFor(s Screen) []key.Binding {
	switch s {
	case ScreenWorks:
		return []key.Binding{k.Up, k.Down, k.Select, k.Chat, k.Quit}
	case ScreenChapters:
		return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Select, k.Back}
	case ScreenVerses:
		return []key.Binding{k.Up, k.Down, k.Search, k.Select, k.Back}
	case ScreenVerse:
		return []key.Binding{k.Up, k.Down, k.Ask, k.Back}
	default:
		return []key.Binding{k.Back, k.Quit}
	}
}
