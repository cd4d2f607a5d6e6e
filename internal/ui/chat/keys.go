// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
//
// Terminals cannot report shift+enter, so a line break in the draft is
// alt+enter or ctrl+j; plain enter submits.
type KeyMap struct {
	Submit       key.Binding
	Send         key.Binding
	Newline      key.Binding
	ToggleMode   key.Binding
	ModeShort    key.Binding
	ModeDetailed key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Copy         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("M-enter/C-j", "new line"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "short/detailed"),
		),
		ModeShort: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("M-1", "short answers"),
		),
		ModeDetailed: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("M-2", "detailed answers"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last answer"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.ToggleMode, k.Help, k.Quit}
}

// FullHelp returns the bindings shown when help is expanded.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Draft
		{k.Submit, k.Send, k.Newline},
		// Mode
		{k.ToggleMode, k.ModeShort, k.ModeDetailed},
		// Navigation
		{k.PageUp, k.PageDown},
		// Other
		{k.Copy, k.Help, k.Quit},
	}
}
