// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"fmt"

	"github.com/bureau-foundation/hearth/lib/layout"
)

// Split replaces a child with a nested section along axis holding two
// halves: the original content first, a new empty slot second. Each
// half gets the original flex divided by two, and the replaced slot
// keeps its flex in the parent, so the rest of the parent's children
// are unaffected.
//
// The nested section is created even when axis matches the parent's
// axis. Removing the new empty half afterwards does not undo this: the
// wrapper stays behind as a section with a single child, since
// RemoveSlot only collapses a remaining sibling that is itself a
// section.
//
// The half holding the original content keeps the original child id,
// so selections and scripted references follow the content. The
// wrapper slot, the nested section, and the new empty slot get fresh
// ids.
//
// Split fails with ErrBelowMinFlex when a half would fall under the
// flex floor, and with ErrTooDeep when the new section would nest
// deeper than layout.MaxDepth.
func (engine *Engine) Split(tree *layout.Section, sectionID, childID string, axis layout.Axis) (*layout.Section, error) {
	if !axis.Valid() {
		return tree, fmt.Errorf("%w: got %q", ErrInvalidAxis, axis)
	}
	if depth, ok := sectionDepth(tree, sectionID); ok && depth+1 > layout.MaxDepth {
		return tree, fmt.Errorf("%w: section %q is already %d levels deep", ErrTooDeep, sectionID, depth)
	}
	return rewriteSection(tree, sectionID, func(section *layout.Section) error {
		index, err := childIndex(section, childID)
		if err != nil {
			return err
		}
		original := section.Children[index]
		half := original.Flex / 2
		if half < engine.minFlex {
			return fmt.Errorf("%w: splitting %q would leave halves of %g (minimum %g)",
				ErrBelowMinFlex, childID, half, engine.minFlex)
		}

		nested := &layout.Section{
			ID:   engine.newID(),
			Axis: axis,
			Children: []layout.Child{
				{ID: original.ID, Flex: half, Content: original.Content},
				{ID: engine.newID(), Flex: half, Content: layout.Empty()},
			},
		}
		section.Children[index] = layout.Child{
			ID:      engine.newID(),
			Flex:    original.Flex,
			Content: layout.Nested(nested),
		}
		return nil
	})
}

func sectionDepth(tree *layout.Section, sectionID string) (int, bool) {
	found, level := false, 0
	tree.Walk(func(section *layout.Section, depth int) bool {
		if section.ID == sectionID {
			found, level = true, depth
			return false
		}
		return true
	})
	return level, found
}
