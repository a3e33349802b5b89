// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bureau-foundation/hearth/lib/layout"
)

// Engine carries the parameters shared by all operations: the flex
// floor, the weight used by DistributeEvenly, and the id generator for
// newly created sections and slots. An Engine holds no tree state and
// is safe for concurrent use when its id generator is.
type Engine struct {
	minFlex        float64
	distributeFlex float64
	newID          func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinFlex overrides the flex floor (default layout.MinFlex).
// Non-positive values are ignored.
func WithMinFlex(minFlex float64) Option {
	return func(engine *Engine) {
		if minFlex > 0 {
			engine.minFlex = minFlex
		}
	}
}

// WithDistributeFlex overrides the weight DistributeEvenly assigns
// (default layout.DefaultFlex). Values below the flex floor are
// raised to it when the engine is built.
func WithDistributeFlex(flex float64) Option {
	return func(engine *Engine) {
		engine.distributeFlex = flex
	}
}

// WithIDGenerator replaces the default UUID id generator. Tests use
// this for deterministic ids.
func WithIDGenerator(generate func() string) Option {
	return func(engine *Engine) {
		if generate != nil {
			engine.newID = generate
		}
	}
}

// New returns an Engine with the given options applied.
func New(options ...Option) *Engine {
	engine := &Engine{
		minFlex:        layout.MinFlex,
		distributeFlex: layout.DefaultFlex,
		newID:          uuid.NewString,
	}
	for _, option := range options {
		option(engine)
	}
	if engine.distributeFlex < engine.minFlex {
		engine.distributeFlex = engine.minFlex
	}
	return engine
}

// MinFlex returns the flex floor the engine enforces.
func (engine *Engine) MinFlex() float64 {
	return engine.minFlex
}

// rewriteSection returns a new tree in which the section with the
// given id is replaced by a copy that edit has modified. Sections on
// the path from the root are copied; everything else is shared with
// tree. If edit returns an error, or the section does not exist, tree
// itself is returned with the error.
func rewriteSection(tree *layout.Section, sectionID string, edit func(section *layout.Section) error) (*layout.Section, error) {
	rewritten, found, err := rewrite(tree, sectionID, edit)
	if !found {
		return tree, fmt.Errorf("%w: %q", ErrSectionNotFound, sectionID)
	}
	if err != nil {
		return tree, err
	}
	return rewritten, nil
}

func rewrite(section *layout.Section, sectionID string, edit func(*layout.Section) error) (*layout.Section, bool, error) {
	if section.ID == sectionID {
		edited := section.Copy()
		if err := edit(edited); err != nil {
			return nil, true, err
		}
		return edited, true, nil
	}
	for index, child := range section.Children {
		if !child.Content.IsSection() {
			continue
		}
		replaced, found, err := rewrite(child.Content.Section, sectionID, edit)
		if !found {
			continue
		}
		if err != nil {
			return nil, true, err
		}
		parent := section.Copy()
		parent.Children[index].Content = layout.Nested(replaced)
		return parent, true, nil
	}
	return nil, false, nil
}

// childIndex returns the index of the child with the given id among
// the section's immediate children.
func childIndex(section *layout.Section, childID string) (int, error) {
	for index, child := range section.Children {
		if child.ID == childID {
			return index, nil
		}
	}
	return -1, fmt.Errorf("%w: child %q in section %q", ErrChildNotFound, childID, section.ID)
}
