// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"fmt"

	"github.com/bureau-foundation/hearth/lib/layout"
)

// RemoveSlot deletes a child from its section. A section never becomes
// empty: removing the only child fails with ErrOnlyChild and returns
// the tree unchanged.
//
// When exactly one sibling remains and it holds a nested section, the
// nested section is collapsed one level: its children (with their flex
// values as they are) and its axis replace the parent's. The parent
// keeps its own id. Adopting the nested axis keeps the remaining panes
// oriented the way they were drawn before the removal.
func (engine *Engine) RemoveSlot(tree *layout.Section, sectionID, childID string) (*layout.Section, error) {
	return rewriteSection(tree, sectionID, func(section *layout.Section) error {
		index, err := childIndex(section, childID)
		if err != nil {
			return err
		}
		if len(section.Children) == 1 {
			return fmt.Errorf("%w: %q is the only child of %q", ErrOnlyChild, childID, sectionID)
		}

		section.Children = append(section.Children[:index], section.Children[index+1:]...)

		if len(section.Children) == 1 && section.Children[0].Content.IsSection() {
			lifted := section.Children[0].Content.Section
			children := make([]layout.Child, len(lifted.Children))
			copy(children, lifted.Children)
			section.Axis = lifted.Axis
			section.Children = children
		}
		return nil
	})
}
