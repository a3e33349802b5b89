// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders tree as an indented outline, one line per section
// and child:
//
//	row root
//	  [root-pane] flex=1 section column s1
//	    [c1] flex=0.6 widget clock-1
//	    [c2] flex=0.4 empty
//
// resolve, when non-nil, reports whether a widget id exists; missing
// widgets are marked "(missing)".
func Format(tree *Section, resolve func(widgetID string) bool) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %s\n", tree.Axis, tree.ID)
	formatChildren(&builder, tree, 1, resolve)
	return builder.String()
}

func formatChildren(builder *strings.Builder, section *Section, depth int, resolve func(string) bool) {
	indent := strings.Repeat("  ", depth)
	for _, child := range section.Children {
		flex := strconv.FormatFloat(child.Flex, 'g', 4, 64)
		switch {
		case child.Content.IsSection():
			nested := child.Content.Section
			fmt.Fprintf(builder, "%s[%s] flex=%s section %s %s\n", indent, child.ID, flex, nested.Axis, nested.ID)
			formatChildren(builder, nested, depth+1, resolve)
		case child.Content.IsWidget():
			marker := ""
			if resolve != nil && !resolve(child.Content.WidgetID) {
				marker = " (missing)"
			}
			fmt.Fprintf(builder, "%s[%s] flex=%s widget %s%s\n", indent, child.ID, flex, child.Content.WidgetID, marker)
		default:
			fmt.Fprintf(builder, "%s[%s] flex=%s empty\n", indent, child.ID, flex)
		}
	}
}
