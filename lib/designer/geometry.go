// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package designer

import (
	"math"
	"sort"

	"github.com/bureau-foundation/hearth/lib/drag"
	"github.com/bureau-foundation/hearth/lib/layout"
)

// Rect is a rectangle of terminal cells. X and Y are the top-left
// corner in screen coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
// Empty rectangles contain nothing.
func (rect Rect) Contains(x, y int) bool {
	return x >= rect.X && x < rect.X+rect.Width &&
		y >= rect.Y && y < rect.Y+rect.Height
}

// Empty reports whether the rectangle has no cells.
func (rect Rect) Empty() bool {
	return rect.Width <= 0 || rect.Height <= 0
}

// Pane is a leaf slot placed on screen.
type Pane struct {
	// SectionID and Index locate the slot within its parent section.
	SectionID string
	Index     int

	// Siblings is the number of children in the parent section,
	// including this one.
	Siblings int

	// Depth is the parent section's nesting depth (0 for the root).
	Depth int

	// Axis is the parent section's axis.
	Axis layout.Axis

	Child layout.Child
	Rect  Rect
}

// Handle is the one-cell splitter strip between two adjacent
// children.
type Handle struct {
	Boundary drag.Boundary
	Rect     Rect
}

// Geometry is the screen placement of a tree. Panes and handles tile
// Area exactly: every cell belongs to exactly one pane or handle.
type Geometry struct {
	Area    Rect
	Panes   []Pane
	Handles []Handle
}

// Compute places tree into area. Children get cells along their
// section's axis in proportion to flex, separated by one-cell handles.
// When a section is too short to give every child a cell and still
// draw handles, the handles are dropped and the section cannot be
// resized by pointer at that size. Every pane is listed even when the
// area is too small to give it cells.
func Compute(tree *layout.Section, area Rect) Geometry {
	geometry := Geometry{Area: area}
	if tree == nil {
		return geometry
	}
	if area.Width < 0 {
		area.Width = 0
	}
	if area.Height < 0 {
		area.Height = 0
	}
	geometry.place(tree, area, 0)
	return geometry
}

func (geometry *Geometry) place(section *layout.Section, area Rect, depth int) {
	count := len(section.Children)
	if count == 0 {
		return
	}

	length := area.Width
	if section.Axis == layout.Column {
		length = area.Height
	}

	handles := count - 1
	if length < count+handles {
		handles = 0
	}
	available := length - handles

	flexes := make([]float64, count)
	for index, child := range section.Children {
		flexes[index] = child.Flex
	}
	sizes := Distribute(available, flexes)

	offset := 0
	for index, child := range section.Children {
		rect := slice(area, section.Axis, offset, sizes[index])
		offset += sizes[index]

		if child.Content.IsSection() {
			geometry.place(child.Content.Section, rect, depth+1)
		} else {
			geometry.Panes = append(geometry.Panes, Pane{
				SectionID: section.ID,
				Index:     index,
				Siblings:  count,
				Depth:     depth,
				Axis:      section.Axis,
				Child:     child,
				Rect:      rect,
			})
		}

		if handles > 0 && index < count-1 {
			geometry.Handles = append(geometry.Handles, Handle{
				Boundary: drag.Boundary{
					SectionID:     section.ID,
					ChildIndex:    index,
					Axis:          section.Axis,
					ContainerSize: float64(available),
				},
				Rect: slice(area, section.Axis, offset, 1),
			})
			offset++
		}
	}
}

// slice cuts a strip of size cells at offset along axis out of area.
func slice(area Rect, axis layout.Axis, offset, size int) Rect {
	if axis == layout.Column {
		return Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: size}
	}
	return Rect{X: area.X + offset, Y: area.Y, Width: size, Height: area.Height}
}

// Distribute divides length cells in proportion to weights using the
// largest remainder method. The result always sums to length (for
// non-negative length). Ties in the fractional part go to the earlier
// index. Non-positive total weight splits evenly.
func Distribute(length int, weights []float64) []int {
	sizes := make([]int, len(weights))
	if len(weights) == 0 || length <= 0 {
		return sizes
	}

	total := 0.0
	for _, weight := range weights {
		if weight > 0 && !math.IsInf(weight, 0) {
			total += weight
		}
	}

	type remainder struct {
		index    int
		fraction float64
	}
	remainders := make([]remainder, len(weights))
	assigned := 0
	for index, weight := range weights {
		share := float64(length) / float64(len(weights))
		if total > 0 {
			if weight <= 0 || math.IsInf(weight, 0) {
				weight = 0
			}
			share = float64(length) * weight / total
		}
		whole := math.Floor(share)
		sizes[index] = int(whole)
		assigned += sizes[index]
		remainders[index] = remainder{index: index, fraction: share - whole}
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].fraction > remainders[j].fraction
	})
	for index := 0; assigned < length; index++ {
		sizes[remainders[index%len(remainders)].index]++
		assigned++
	}
	return sizes
}

// PaneAt returns the pane under cell (x, y).
func (geometry Geometry) PaneAt(x, y int) (Pane, bool) {
	for _, pane := range geometry.Panes {
		if pane.Rect.Contains(x, y) {
			return pane, true
		}
	}
	return Pane{}, false
}

// BoundaryAt returns the splitter boundary whose handle covers cell
// (x, y).
func (geometry Geometry) BoundaryAt(x, y int) (drag.Boundary, bool) {
	for _, handle := range geometry.Handles {
		if handle.Rect.Contains(x, y) {
			return handle.Boundary, true
		}
	}
	return drag.Boundary{}, false
}

// Pane returns the placed pane for a child id.
func (geometry Geometry) Pane(childID string) (Pane, bool) {
	for _, pane := range geometry.Panes {
		if pane.Child.ID == childID {
			return pane, true
		}
	}
	return Pane{}, false
}
