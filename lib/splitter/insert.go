// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import "github.com/bureau-foundation/hearth/lib/layout"

// AddRowAbove inserts a new empty slot immediately before the target
// child in the same section. "Row" is the designer's name for the
// affordance; the new slot follows the section's axis, whatever it is.
//
// The new slot's flex equals the target's current flex. The target is
// not halved, so the section's total weight grows and every other
// sibling's share shrinks accordingly.
func (engine *Engine) AddRowAbove(tree *layout.Section, sectionID, childID string) (*layout.Section, error) {
	return engine.insertSibling(tree, sectionID, childID, 0)
}

// AddRowBelow inserts a new empty slot immediately after the target
// child. See AddRowAbove for the flex rule.
func (engine *Engine) AddRowBelow(tree *layout.Section, sectionID, childID string) (*layout.Section, error) {
	return engine.insertSibling(tree, sectionID, childID, 1)
}

func (engine *Engine) insertSibling(tree *layout.Section, sectionID, childID string, offset int) (*layout.Section, error) {
	return rewriteSection(tree, sectionID, func(section *layout.Section) error {
		index, err := childIndex(section, childID)
		if err != nil {
			return err
		}
		sibling := layout.Child{
			ID:      engine.newID(),
			Flex:    section.Children[index].Flex,
			Content: layout.Empty(),
		}
		position := index + offset
		children := make([]layout.Child, 0, len(section.Children)+1)
		children = append(children, section.Children[:position]...)
		children = append(children, sibling)
		children = append(children, section.Children[position:]...)
		section.Children = children
		return nil
	})
}
