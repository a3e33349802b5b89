// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"fmt"

	"github.com/bureau-foundation/hearth/lib/layout"
)

// AssignWidget binds the slot with the given id to widgetID, replacing
// whatever widget or emptiness it held. The slot is found anywhere in
// the tree. A child holding a nested section is not a slot and fails
// with ErrNotSlot. The widget id is not checked against any registry.
func (engine *Engine) AssignWidget(tree *layout.Section, slotID, widgetID string) (*layout.Section, error) {
	if widgetID == "" {
		return tree, ErrWidgetID
	}
	parent, _, ok := tree.FindChild(slotID)
	if !ok {
		return tree, fmt.Errorf("%w: %q", ErrSlotNotFound, slotID)
	}
	return rewriteSection(tree, parent.ID, func(section *layout.Section) error {
		index, err := childIndex(section, slotID)
		if err != nil {
			return err
		}
		if section.Children[index].Content.IsSection() {
			return fmt.Errorf("%w: %q", ErrNotSlot, slotID)
		}
		section.Children[index].Content = layout.Widget(widgetID)
		return nil
	})
}

// ClearSlot turns a widget slot back into an empty slot.
func (engine *Engine) ClearSlot(tree *layout.Section, slotID string) (*layout.Section, error) {
	parent, _, ok := tree.FindChild(slotID)
	if !ok {
		return tree, fmt.Errorf("%w: %q", ErrSlotNotFound, slotID)
	}
	return rewriteSection(tree, parent.ID, func(section *layout.Section) error {
		index, err := childIndex(section, slotID)
		if err != nil {
			return err
		}
		if section.Children[index].Content.IsSection() {
			return fmt.Errorf("%w: %q", ErrNotSlot, slotID)
		}
		section.Children[index].Content = layout.Empty()
		return nil
	})
}
