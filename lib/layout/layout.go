// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "fmt"

const (
	// MinFlex is the default floor for a child's flex weight. Panes
	// never shrink below this share of their parent.
	MinFlex = 0.1

	// DefaultFlex is the weight given to the single child of a fresh
	// tree and to every child after DistributeEvenly.
	DefaultFlex = 1.0

	// RootID is the id of the root section of the default tree.
	RootID = "root"

	// MaxDepth bounds section nesting in loaded documents. The
	// designer cannot produce anything close to this; the limit only
	// guards recursion on hostile input.
	MaxDepth = 32
)

// Axis is the direction a section splits its area along.
type Axis string

const (
	// Row lays children out left to right.
	Row Axis = "row"

	// Column lays children out top to bottom.
	Column Axis = "column"
)

// Valid reports whether axis is Row or Column.
func (axis Axis) Valid() bool {
	return axis == Row || axis == Column
}

// ParseAxis accepts "row" or "column" (and the tmux-style aliases
// "horizontal" and "vertical").
func ParseAxis(name string) (Axis, error) {
	switch name {
	case "row", "horizontal":
		return Row, nil
	case "column", "vertical":
		return Column, nil
	default:
		return "", fmt.Errorf("unknown axis %q (want row or column)", name)
	}
}

// ContentKind discriminates the three kinds of child content.
type ContentKind string

const (
	ContentEmpty   ContentKind = "empty"
	ContentWidget  ContentKind = "widget"
	ContentSection ContentKind = "section"
)

// Content is what a child holds. Exactly one shape is meaningful per
// Kind: WidgetID for ContentWidget, Section for ContentSection,
// neither for ContentEmpty.
type Content struct {
	Kind ContentKind `json:"kind"`

	// WidgetID references a widget instance in an external registry.
	WidgetID string `json:"widget_id,omitempty"`

	// Section is the nested split for ContentSection.
	Section *Section `json:"section,omitempty"`
}

// Empty returns empty slot content.
func Empty() Content {
	return Content{Kind: ContentEmpty}
}

// Widget returns content bound to a widget instance id.
func Widget(widgetID string) Content {
	return Content{Kind: ContentWidget, WidgetID: widgetID}
}

// Nested returns content holding a nested section.
func Nested(section *Section) Content {
	return Content{Kind: ContentSection, Section: section}
}

// IsEmpty reports whether the content is an empty slot.
func (content Content) IsEmpty() bool { return content.Kind == ContentEmpty }

// IsWidget reports whether the content is a widget reference.
func (content Content) IsWidget() bool { return content.Kind == ContentWidget }

// IsSection reports whether the content is a nested section.
func (content Content) IsSection() bool {
	return content.Kind == ContentSection && content.Section != nil
}

// Child is one element of a section: a slot or a nested section,
// weighted by Flex relative to its siblings.
type Child struct {
	ID      string  `json:"id"`
	Flex    float64 `json:"flex"`
	Content Content `json:"content"`
}

// Section is a container splitting its area among Children along Axis.
type Section struct {
	ID       string  `json:"id"`
	Axis     Axis    `json:"axis"`
	Children []Child `json:"children"`
}

// Default returns the tree every profile starts with: a row holding
// one full-weight empty pane.
func Default() *Section {
	return &Section{
		ID:   RootID,
		Axis: Row,
		Children: []Child{
			{ID: RootID + "-pane", Flex: DefaultFlex, Content: Empty()},
		},
	}
}

// Copy returns a new section with its own children slice. Nested
// sections are shared with the receiver; callers replacing a nested
// section must install a copy rather than editing the shared one.
func (section *Section) Copy() *Section {
	children := make([]Child, len(section.Children))
	copy(children, section.Children)
	return &Section{ID: section.ID, Axis: section.Axis, Children: children}
}

// Clone returns a deep copy of the tree.
func (section *Section) Clone() *Section {
	if section == nil {
		return nil
	}
	clone := &Section{ID: section.ID, Axis: section.Axis, Children: make([]Child, len(section.Children))}
	for index, child := range section.Children {
		if child.Content.Kind == ContentSection {
			child.Content.Section = child.Content.Section.Clone()
		}
		clone.Children[index] = child
	}
	return clone
}

// TotalFlex returns the sum of the immediate children's flex.
func (section *Section) TotalFlex() float64 {
	var total float64
	for _, child := range section.Children {
		total += child.Flex
	}
	return total
}
