// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launcherui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the launcher. Printable characters
// that match no binding are inserted into the text box.
type KeyMap struct {
	// Completion.
	Complete key.Binding // Auto-complete, or take the menu selection.
	Submit   key.Binding // Run the text box, taking the selection first.
	Cancel   key.Binding // Clear the menu selection, or quit.

	// Menu navigation.
	Up   key.Binding
	Down key.Binding

	// Text box editing. Right also takes the menu selection.
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Delete    key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set, with the readline
// movement keys as alternates.
var DefaultKeyMap = KeyMap{
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "complete"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "ctrl+b"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "ctrl+f"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "ctrl+a"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "ctrl+e"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "ctrl+d"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// ShortHelp returns the bindings shown in the status line.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Complete, keys.Up, keys.Down, keys.Submit, keys.Cancel}
}
