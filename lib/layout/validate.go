// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformed wraps every validation failure. Callers loading
// documents from storage check for it with errors.Is and substitute
// the default tree.
var ErrMalformed = errors.New("malformed layout")

// Valid reports whether tree passes Validate with the default MinFlex.
func Valid(tree *Section) bool {
	return Validate(tree, MinFlex) == nil
}

// Validate checks the structural and numeric invariants of tree.
// minFlex is the flex floor in force for the editing session; pass
// MinFlex unless the configuration overrides it. Flex must be positive
// whatever the floor, so a floor of zero checks shape alone.
func Validate(tree *Section, minFlex float64) error {
	if tree == nil {
		return fmt.Errorf("%w: tree is nil", ErrMalformed)
	}
	seen := make(map[string]bool)
	return validateSection(tree, minFlex, 0, seen)
}

func validateSection(section *Section, minFlex float64, depth int, seen map[string]bool) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: nesting exceeds %d levels at section %q", ErrMalformed, MaxDepth, section.ID)
	}
	if err := claimID(section.ID, "section", seen); err != nil {
		return err
	}
	if !section.Axis.Valid() {
		return fmt.Errorf("%w: section %q has axis %q (want row or column)", ErrMalformed, section.ID, section.Axis)
	}
	if len(section.Children) == 0 {
		return fmt.Errorf("%w: section %q has no children", ErrMalformed, section.ID)
	}
	for index, child := range section.Children {
		if err := claimID(child.ID, "child", seen); err != nil {
			return err
		}
		if math.IsNaN(child.Flex) || math.IsInf(child.Flex, 0) {
			return fmt.Errorf("%w: child %q has non-finite flex", ErrMalformed, child.ID)
		}
		if child.Flex <= 0 {
			return fmt.Errorf("%w: child %q flex %g is not positive", ErrMalformed, child.ID, child.Flex)
		}
		if child.Flex < minFlex {
			return fmt.Errorf("%w: child %q flex %g is below minimum %g", ErrMalformed, child.ID, child.Flex, minFlex)
		}
		switch child.Content.Kind {
		case ContentEmpty:
			// Valid.
		case ContentWidget:
			if child.Content.WidgetID == "" {
				return fmt.Errorf("%w: child %q is a widget slot without a widget_id", ErrMalformed, child.ID)
			}
		case ContentSection:
			if child.Content.Section == nil {
				return fmt.Errorf("%w: child %q is a section slot without a section", ErrMalformed, child.ID)
			}
			if err := validateSection(child.Content.Section, minFlex, depth+1, seen); err != nil {
				return err
			}
		case "":
			return fmt.Errorf("%w: section %q child %d has no content kind", ErrMalformed, section.ID, index)
		default:
			return fmt.Errorf("%w: child %q has unknown content kind %q", ErrMalformed, child.ID, child.Content.Kind)
		}
	}
	return nil
}

func claimID(id, what string, seen map[string]bool) error {
	if id == "" {
		return fmt.Errorf("%w: %s id is required", ErrMalformed, what)
	}
	if seen[id] {
		return fmt.Errorf("%w: duplicate id %q", ErrMalformed, id)
	}
	seen[id] = true
	return nil
}
