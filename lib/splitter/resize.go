// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/hearth/lib/layout"
)

// ResizeSiblings moves the boundary between children childIndex and
// childIndex+1 of a section by pixelDelta, where containerSize is the
// section's length along its axis in the same unit. A positive delta
// grows the first child and shrinks the second by the same flex.
//
// The delta converts to flex through the section's current total:
// flexDelta = pixelDelta * totalFlex / containerSize. The update is
// all or nothing: if either child would fall under the flex floor the
// whole delta is rejected with ErrBelowMinFlex and the tree is
// returned unchanged, rather than clamping one side. When applied, the
// pair's sum is preserved, so no other sibling moves.
//
// Only the adjacent pair is touched, making this cheap enough to run
// on every pointer motion event.
func (engine *Engine) ResizeSiblings(tree *layout.Section, sectionID string, childIndex int, pixelDelta, containerSize float64) (*layout.Section, error) {
	if containerSize <= 0 || math.IsNaN(containerSize) {
		return tree, fmt.Errorf("%w: got %g", ErrContainerSize, containerSize)
	}
	if pixelDelta == 0 {
		if tree.FindSection(sectionID) == nil {
			return tree, fmt.Errorf("%w: %q", ErrSectionNotFound, sectionID)
		}
		return tree, nil
	}
	return rewriteSection(tree, sectionID, func(section *layout.Section) error {
		if childIndex < 0 || childIndex+1 >= len(section.Children) {
			return fmt.Errorf("%w: index %d with %d children in %q",
				ErrChildIndex, childIndex, len(section.Children), sectionID)
		}

		totalFlex := section.TotalFlex()
		pixelsPerFlexUnit := containerSize / totalFlex
		flexDelta := pixelDelta / pixelsPerFlexUnit

		first := &section.Children[childIndex]
		second := &section.Children[childIndex+1]
		pairTotal := first.Flex + second.Flex
		newFirst := first.Flex + flexDelta
		// The pair total holds up to float rounding; the last bit of
		// newFirst+newSecond can differ from pairTotal.
		newSecond := pairTotal - newFirst

		// Negated so a NaN from a non-finite delta is rejected too.
		if !(newFirst >= engine.minFlex) || !(newSecond >= engine.minFlex) {
			return fmt.Errorf("%w: resize would give (%g, %g), minimum %g",
				ErrBelowMinFlex, newFirst, newSecond, engine.minFlex)
		}

		first.Flex = newFirst
		second.Flex = newSecond
		return nil
	})
}
