// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

// All lookups are depth-first in child order and return the first
// match. Validated trees have unique ids, so "first" only matters for
// documents that skipped validation.

// FindSection returns the section with the given id, or nil.
func (section *Section) FindSection(id string) *Section {
	if section == nil {
		return nil
	}
	if section.ID == id {
		return section
	}
	for _, child := range section.Children {
		if child.Content.IsSection() {
			if found := child.Content.Section.FindSection(id); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindChild returns the section containing the child with the given
// id and the child's index within it. ok is false when no child
// matches.
func (section *Section) FindChild(id string) (parent *Section, index int, ok bool) {
	if section == nil {
		return nil, -1, false
	}
	for childIndex, child := range section.Children {
		if child.ID == id {
			return section, childIndex, true
		}
		if child.Content.IsSection() {
			if parent, index, ok := child.Content.Section.FindChild(id); ok {
				return parent, index, true
			}
		}
	}
	return nil, -1, false
}

// Walk visits every section depth-first, starting with the receiver
// at depth 0. Returning false from visit stops the walk.
func (section *Section) Walk(visit func(section *Section, depth int) bool) {
	section.walk(visit, 0)
}

func (section *Section) walk(visit func(*Section, int) bool, depth int) bool {
	if section == nil {
		return true
	}
	if !visit(section, depth) {
		return false
	}
	for _, child := range section.Children {
		if child.Content.IsSection() {
			if !child.Content.Section.walk(visit, depth+1) {
				return false
			}
		}
	}
	return true
}

// Leaves returns every child that is not a nested section, in
// depth-first order. These are the panes a renderer paints.
func (section *Section) Leaves() []Child {
	var leaves []Child
	section.Walk(func(current *Section, _ int) bool {
		for _, child := range current.Children {
			if !child.Content.IsSection() {
				leaves = append(leaves, child)
			}
		}
		return true
	})
	return leaves
}

// CountPanes returns the number of leaf panes in the tree.
func (section *Section) CountPanes() int {
	return len(section.Leaves())
}

// WidgetIDs returns the widget ids referenced by the tree, in
// depth-first order, without duplicates.
func (section *Section) WidgetIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, leaf := range section.Leaves() {
		if leaf.Content.IsWidget() && !seen[leaf.Content.WidgetID] {
			seen[leaf.Content.WidgetID] = true
			ids = append(ids, leaf.Content.WidgetID)
		}
	}
	return ids
}

// Depth returns the nesting depth of the deepest section (0 for a
// tree with no nested sections).
func (section *Section) Depth() int {
	deepest := 0
	section.Walk(func(_ *Section, depth int) bool {
		if depth > deepest {
			deepest = depth
		}
		return true
	})
	return deepest
}
