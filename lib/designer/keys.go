// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package designer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the designer's key bindings.
type KeyMap struct {
	// Selection movement through panes in depth-first order.
	Next     key.Binding
	Previous key.Binding

	SplitRow    key.Binding // Side by side.
	SplitColumn key.Binding // Stacked.
	Remove      key.Binding
	AddAbove    key.Binding
	AddBelow    key.Binding
	Distribute  key.Binding
	Assign      key.Binding // Opens the widget picker.
	Clear       key.Binding

	Undo      key.Binding
	Save      key.Binding
	Quit      key.Binding // Saves first when there are unsaved changes.
	ForceQuit key.Binding // Quits without saving.

	// Picker navigation (active while the widget picker is open).
	PickerUp     key.Binding
	PickerDown   key.Binding
	PickerSelect key.Binding
	PickerCancel key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "j", "l"),
		key.WithHelp("tab", "next pane"),
	),
	Previous: key.NewBinding(
		key.WithKeys("shift+tab", "k", "h"),
		key.WithHelp("S-tab", "previous pane"),
	),
	SplitRow: key.NewBinding(
		key.WithKeys("|"),
		key.WithHelp("|", "split side by side"),
	),
	SplitColumn: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "split stacked"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	AddAbove: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add above"),
	),
	AddBelow: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "add below"),
	),
	Distribute: key.NewBinding(
		key.WithKeys("="),
		key.WithHelp("=", "distribute"),
	),
	Assign: key.NewBinding(
		key.WithKeys("w", "enter"),
		key.WithHelp("w", "widget"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u", "ctrl+z"),
		key.WithHelp("u", "undo"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "save & quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit without saving"),
	),
	PickerUp: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
	),
	PickerDown: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
	),
	PickerSelect: key.NewBinding(
		key.WithKeys("enter"),
	),
	PickerCancel: key.NewBinding(
		key.WithKeys("esc"),
	),
}

// actionBinding returns the key binding that triggers action.
func (keys KeyMap) actionBinding(action Action) key.Binding {
	switch action {
	case ActionSplitRow:
		return keys.SplitRow
	case ActionSplitColumn:
		return keys.SplitColumn
	case ActionRemove:
		return keys.Remove
	case ActionAddAbove:
		return keys.AddAbove
	case ActionAddBelow:
		return keys.AddBelow
	case ActionDistribute:
		return keys.Distribute
	case ActionAssign:
		return keys.Assign
	case ActionClear:
		return keys.Clear
	}
	return key.Binding{}
}
