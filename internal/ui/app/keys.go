// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap holds every binding the screens use. Bindings are shared between
// screens where the meaning is the same.
type KeyMap struct {
	// Global
	Quit     key.Binding
	History  key.Binding
	Settings key.Binding
	Tips     key.Binding
	Back     key.Binding

	// Forms
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding

	// Conversation
	PrevComment key.Binding
	NextComment key.Binding
	Regenerate  key.Binding
	Retry       key.Binding
	Copy        key.Binding
	Mood        key.Binding
	Favorite    key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding

	// Lists
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Tab       key.Binding
	ToggleFav key.Binding
	Delete    key.Binding
	DeleteAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "history"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "settings"),
		),
		Tips: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "tips"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("<-", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("->", "next"),
		),
		PrevComment: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "prev comment"),
		),
		NextComment: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "next comment"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "regenerate"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "retry"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy"),
		),
		Mood: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "mood"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "favorite"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "all/favorites"),
		),
		ToggleFav: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		DeleteAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// ShortHelp returns the global bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.History, k.Settings, k.Tips, k.Quit}
}

// FullHelp returns every binding grouped by screen.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.History, k.Settings, k.Tips, k.Back, k.Quit},
		{k.Submit, k.NextField, k.PrevField, k.Left, k.Right},
		{k.PrevComment, k.NextComment, k.Regenerate, k.Retry, k.Copy, k.Mood, k.Favorite},
		{k.Open, k.Tab, k.ToggleFav, k.Delete, k.DeleteAll},
	}
}
