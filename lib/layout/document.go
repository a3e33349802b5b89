// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"
)

// Parse strips JSONC comments and trailing commas from data, decodes
// the result as a layout document, and validates it against minFlex.
// Every failure wraps ErrMalformed.
func Parse(data []byte, minFlex float64) (*Section, error) {
	stripped := jsonc.ToJSON(data)

	var tree Section
	if err := json.Unmarshal(stripped, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := Validate(&tree, minFlex); err != nil {
		return nil, err
	}
	return &tree, nil
}

// ReadFile reads and parses a JSONC layout document from disk.
func ReadFile(path string, minFlex float64) (*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tree, err := Parse(data, minFlex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Marshal encodes tree as indented JSON. The tree is not validated;
// callers persisting a tree should have obtained it from Default,
// Parse, or a splitter operation.
func Marshal(tree *Section) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return data, nil
}

// Load is the recovery path for documents coming from storage. The
// document is checked for shape and positive flex only, because the
// configured floor may have been raised since it was saved; children
// under minFlex are raised to it with RaiseToFloor. A document that
// still fails to parse or validate is replaced by Default and
// recovered is true; the failure is logged at warn level and never
// returned. A nil logger discards the log records.
func Load(data []byte, minFlex float64, logger *slog.Logger) (tree *Section, recovered bool) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tree, err := Parse(data, 0)
	if err != nil {
		logger.Warn("substituting default layout for malformed document",
			"error", err,
			"document_bytes", len(data),
		)
		return Default(), true
	}
	tree, raised := RaiseToFloor(tree, minFlex)
	if raised > 0 {
		logger.Info("raised stored pane weights to the flex floor",
			"children", raised,
			"min_flex", minFlex,
		)
	}
	return tree, false
}

// RaiseToFloor returns tree with every child whose flex is below
// minFlex set to minFlex, and how many children changed. Sections on
// the path to a changed child are copied; when nothing changes, tree
// itself is returned.
func RaiseToFloor(tree *Section, minFlex float64) (*Section, int) {
	raised := 0
	var children []Child
	for index, child := range tree.Children {
		updated := child
		if child.Flex < minFlex {
			updated.Flex = minFlex
		}
		if child.Content.IsSection() {
			nested, count := RaiseToFloor(child.Content.Section, minFlex)
			if count > 0 {
				updated.Content = Nested(nested)
				raised += count
			}
		}
		if updated.Flex != child.Flex {
			raised++
		}
		if updated != child && children == nil {
			children = make([]Child, len(tree.Children))
			copy(children, tree.Children)
		}
		if children != nil {
			children[index] = updated
		}
	}
	if children == nil {
		return tree, 0
	}
	copied := *tree
	copied.Children = children
	return &copied, raised
}
