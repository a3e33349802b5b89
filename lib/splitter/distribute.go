// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import "github.com/bureau-foundation/hearth/lib/layout"

// DistributeEvenly gives every immediate child of the section the same
// flex. Only one level changes: nested sections keep their internal
// ratios.
func (engine *Engine) DistributeEvenly(tree *layout.Section, sectionID string) (*layout.Section, error) {
	return rewriteSection(tree, sectionID, func(section *layout.Section) error {
		for index := range section.Children {
			section.Children[index].Flex = engine.distributeFlex
		}
		return nil
	})
}
