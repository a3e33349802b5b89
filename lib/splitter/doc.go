// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package splitter implements the mutation algorithms for layout trees:
// split, remove, assign, insert, distribute, and the interactive
// resize primitive used by drag handling.
//
// Every operation is a pure function of its inputs. The input tree is
// never modified; the result is a new tree that copies the sections on
// the path from the root to the edited section and shares every other
// subtree with the input. Because the input is untouched, callers can
// keep prior trees as undo history at no extra cost.
//
// Operations are total over well-formed trees. When an operation
// cannot apply (an id is not found, a lone child would be removed, a
// resize would cross the flex floor) it returns the unchanged input
// tree together with a sentinel error. The returned tree is always
// renderable, so callers only need a result check:
//
//	tree, err = engine.RemoveSlot(tree, sectionID, childID)
//	if errors.Is(err, splitter.ErrOnlyChild) {
//	    // nothing happened; tree is the input
//	}
package splitter
