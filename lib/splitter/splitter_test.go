// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitter_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/splitter"
	"github.com/bureau-foundation/hearth/lib/testutil"
)

const tolerance = 1e-9

func newEngine() *splitter.Engine {
	return splitter.New(splitter.WithIDGenerator(testutil.Sequence("n")))
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func mustValid(t *testing.T, tree *layout.Section) {
	t.Helper()
	if err := layout.Validate(tree, layout.MinFlex); err != nil {
		t.Fatalf("tree invalid after operation: %v\n%s", err, layout.Format(tree, nil))
	}
}

// twoPaneRow is row root [a flex=1 widget clock-1, b flex=1 empty].
func twoPaneRow() *layout.Section {
	return &layout.Section{
		ID:   "root",
		Axis: layout.Row,
		Children: []layout.Child{
			{ID: "a", Flex: 1, Content: layout.Widget("clock-1")},
			{ID: "b", Flex: 1, Content: layout.Empty()},
		},
	}
}

func TestEndToEndScenario(t *testing.T) {
	engine := newEngine()
	tree := layout.Default()

	tree, err := engine.Split(tree, layout.RootID, "root-pane", layout.Column)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	mustValid(t, tree)
	if len(tree.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(tree.Children))
	}
	wrapper := tree.Children[0]
	if !wrapper.Content.IsSection() {
		t.Fatalf("root child content = %q, want section", wrapper.Content.Kind)
	}
	nested := wrapper.Content.Section
	if nested.Axis != layout.Column {
		t.Errorf("nested axis = %q, want column", nested.Axis)
	}
	if len(nested.Children) != 2 {
		t.Fatalf("nested children = %d, want 2", len(nested.Children))
	}
	for index, child := range nested.Children {
		if !child.Content.IsEmpty() || child.Flex != 0.5 {
			t.Errorf("nested child %d = (%q, %g), want (empty, 0.5)", index, child.Content.Kind, child.Flex)
		}
	}

	firstEmpty := nested.Children[0].ID
	tree, err = engine.AssignWidget(tree, firstEmpty, "clock-1")
	if err != nil {
		t.Fatalf("AssignWidget: %v", err)
	}
	nested = tree.FindSection(nested.ID)
	if got := nested.Children[0].Content; !got.IsWidget() || got.WidgetID != "clock-1" {
		t.Errorf("slot content = %+v, want widget clock-1", got)
	}

	tree, err = engine.ResizeSiblings(tree, nested.ID, 0, 40, 400)
	if err != nil {
		t.Fatalf("ResizeSiblings: %v", err)
	}
	nested = tree.FindSection(nested.ID)
	if !approxEqual(nested.Children[0].Flex, 0.6) || !approxEqual(nested.Children[1].Flex, 0.4) {
		t.Errorf("flex after resize = (%g, %g), want (0.6, 0.4)",
			nested.Children[0].Flex, nested.Children[1].Flex)
	}
	mustValid(t, tree)
}

func TestSplitConservesFlex(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	tree.Children[0].Flex = 2

	result, err := engine.Split(tree, "root", "a", layout.Row)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	mustValid(t, result)

	wrapper := result.Children[0]
	if wrapper.Flex != 2 {
		t.Errorf("wrapper flex = %g, want 2 (unchanged in parent)", wrapper.Flex)
	}
	halves := wrapper.Content.Section.Children
	if halves[0].Flex != 1 || halves[1].Flex != 1 {
		t.Errorf("halves = (%g, %g), want (1, 1)", halves[0].Flex, halves[1].Flex)
	}
	if halves[0].Flex+halves[1].Flex != 2 {
		t.Errorf("halves sum = %g, want 2", halves[0].Flex+halves[1].Flex)
	}
	if halves[0].ID != "a" || halves[0].Content.WidgetID != "clock-1" {
		t.Errorf("first half = %+v, want original slot a with clock-1", halves[0])
	}
	if !halves[1].Content.IsEmpty() {
		t.Errorf("second half kind = %q, want empty", halves[1].Content.Kind)
	}
	// Same axis as the parent is still nested.
	if wrapper.Content.Section.Axis != layout.Row {
		t.Errorf("nested axis = %q, want row", wrapper.Content.Section.Axis)
	}
}

func TestSplitIDs(t *testing.T) {
	engine := newEngine()
	result, err := engine.Split(twoPaneRow(), "root", "b", layout.Column)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	wrapper := result.Children[1]
	if wrapper.ID != "n-3" || wrapper.Content.Section.ID != "n-1" || wrapper.Content.Section.Children[1].ID != "n-2" {
		t.Errorf("ids = wrapper %s, section %s, empty %s; want n-3, n-1, n-2",
			wrapper.ID, wrapper.Content.Section.ID, wrapper.Content.Section.Children[1].ID)
	}
}

func TestSplitRejectsBelowFloor(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	tree.Children[0].Flex = 0.15

	result, err := engine.Split(tree, "root", "a", layout.Column)
	if !errors.Is(err, splitter.ErrBelowMinFlex) {
		t.Fatalf("Split error = %v, want ErrBelowMinFlex", err)
	}
	if result != tree {
		t.Error("rejected split returned a different tree")
	}
}

func TestSplitNotFound(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()

	if result, err := engine.Split(tree, "nope", "a", layout.Row); !errors.Is(err, splitter.ErrSectionNotFound) || result != tree {
		t.Errorf("Split(missing section) = %v", err)
	}
	if result, err := engine.Split(tree, "root", "nope", layout.Row); !errors.Is(err, splitter.ErrChildNotFound) || result != tree {
		t.Errorf("Split(missing child) = %v", err)
	}
	if _, err := engine.Split(tree, "root", "a", "diagonal"); !errors.Is(err, splitter.ErrInvalidAxis) {
		t.Errorf("Split(bad axis) = %v", err)
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	engine := newEngine()
	tree, _ := engine.Split(twoPaneRow(), "root", "b", layout.Column)
	before := layout.Format(tree, nil)
	nestedID := tree.Children[1].Content.Section.ID

	engine.Split(tree, nestedID, "b", layout.Row)
	engine.RemoveSlot(tree, nestedID, "b")
	engine.AssignWidget(tree, "b", "photos")
	engine.AddRowAbove(tree, "root", "a")
	engine.AddRowBelow(tree, nestedID, "b")
	engine.DistributeEvenly(tree, "root")
	engine.ResizeSiblings(tree, nestedID, 0, 10, 100)

	if after := layout.Format(tree, nil); after != before {
		t.Errorf("input tree changed:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestSplitSharesUntouchedSubtrees(t *testing.T) {
	engine := newEngine()
	tree, _ := engine.Split(twoPaneRow(), "root", "a", layout.Column)
	untouched := tree.Children[0].Content.Section

	result, err := engine.AssignWidget(tree, "b", "photos")
	if err != nil {
		t.Fatalf("AssignWidget: %v", err)
	}
	if result.Children[0].Content.Section != untouched {
		t.Error("subtree off the edited path was copied")
	}
	if result == tree {
		t.Error("edited root was not copied")
	}
}

func TestRemoveOnlyChild(t *testing.T) {
	engine := newEngine()
	tree := layout.Default()

	result, err := engine.RemoveSlot(tree, layout.RootID, "root-pane")
	if !errors.Is(err, splitter.ErrOnlyChild) {
		t.Fatalf("RemoveSlot error = %v, want ErrOnlyChild", err)
	}
	if result != tree {
		t.Error("rejected remove returned a different tree")
	}
	if len(result.Children) != 1 {
		t.Errorf("children = %d, want 1", len(result.Children))
	}
}

func TestRemoveKeepsSiblingFlex(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	tree, _ = engine.AddRowBelow(tree, "root", "b")
	tree.Children[0].Flex = 3

	result, err := engine.RemoveSlot(tree, "root", "b")
	if err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	mustValid(t, result)
	if len(result.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(result.Children))
	}
	if result.Children[0].Flex != 3 || result.Children[1].Flex != 1 {
		t.Errorf("flex = (%g, %g), want (3, 1)", result.Children[0].Flex, result.Children[1].Flex)
	}
}

func TestRemoveCollapsesNestedSibling(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	// Split b into a column [b, n-2], then resize so the ratios are
	// distinguishable after the collapse.
	tree, _ = engine.Split(tree, "root", "b", layout.Column)
	nestedID := tree.Children[1].Content.Section.ID
	tree, err := engine.ResizeSiblings(tree, nestedID, 0, 10, 100)
	if err != nil {
		t.Fatalf("ResizeSiblings: %v", err)
	}

	result, err := engine.RemoveSlot(tree, "root", "a")
	if err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	mustValid(t, result)

	if result.ID != "root" {
		t.Errorf("root id = %q, want root", result.ID)
	}
	if result.Axis != layout.Column {
		t.Errorf("root axis = %q, want column (adopted from collapsed section)", result.Axis)
	}
	if len(result.Children) != 2 {
		t.Fatalf("root children = %d, want 2 lifted children", len(result.Children))
	}
	if result.Children[0].ID != "b" {
		t.Errorf("first lifted child = %q, want b", result.Children[0].ID)
	}
	if !approxEqual(result.Children[0].Flex, 0.6) || !approxEqual(result.Children[1].Flex, 0.4) {
		t.Errorf("lifted flex = (%g, %g), want (0.6, 0.4) unnormalized",
			result.Children[0].Flex, result.Children[1].Flex)
	}
}

func TestRemoveDoesNotCollapseSlotSibling(t *testing.T) {
	engine := newEngine()
	result, err := engine.RemoveSlot(twoPaneRow(), "root", "b")
	if err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	if len(result.Children) != 1 || result.Children[0].ID != "a" {
		t.Errorf("children = %+v, want [a]", result.Children)
	}
}

func TestSplitThenRemoveLeavesSingleChildWrapper(t *testing.T) {
	engine := newEngine()
	original := twoPaneRow()
	split, _ := engine.Split(original, "root", "a", layout.Column)
	nestedID := split.Children[0].Content.Section.ID
	newEmpty := split.Children[0].Content.Section.Children[1].ID

	removed, err := engine.RemoveSlot(split, nestedID, newEmpty)
	if err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	// The wrapper section remains with one child: no collapse happens
	// at the wrapper level because the remaining sibling is a slot.
	wrapper := removed.Children[0].Content.Section
	if len(wrapper.Children) != 1 || wrapper.Children[0].ID != "a" {
		t.Errorf("wrapper children = %+v, want [a]", wrapper.Children)
	}
	mustValid(t, removed)
}

func TestAssignOverwrites(t *testing.T) {
	engine := newEngine()
	tree, err := engine.AssignWidget(twoPaneRow(), "b", "weather-1")
	if err != nil {
		t.Fatalf("AssignWidget W1: %v", err)
	}
	tree, err = engine.AssignWidget(tree, "b", "weather-2")
	if err != nil {
		t.Fatalf("AssignWidget W2: %v", err)
	}
	if got := tree.Children[1].Content; got.WidgetID != "weather-2" || got.Section != nil {
		t.Errorf("slot = %+v, want widget weather-2 only", got)
	}
	if ids := tree.WidgetIDs(); len(ids) != 2 || ids[1] != "weather-2" {
		t.Errorf("WidgetIDs = %v, want [clock-1 weather-2]", ids)
	}
}

func TestAssignErrors(t *testing.T) {
	engine := newEngine()
	tree, _ := engine.Split(twoPaneRow(), "root", "a", layout.Column)
	wrapperID := tree.Children[0].ID

	if result, err := engine.AssignWidget(tree, "missing", "x"); !errors.Is(err, splitter.ErrSlotNotFound) || result != tree {
		t.Errorf("AssignWidget(missing) = %v", err)
	}
	if result, err := engine.AssignWidget(tree, wrapperID, "x"); !errors.Is(err, splitter.ErrNotSlot) || result != tree {
		t.Errorf("AssignWidget(section slot) = %v", err)
	}
	if _, err := engine.AssignWidget(tree, "b", ""); !errors.Is(err, splitter.ErrWidgetID) {
		t.Errorf("AssignWidget(empty id) = %v", err)
	}
}

func TestClearSlot(t *testing.T) {
	engine := newEngine()
	tree, err := engine.ClearSlot(twoPaneRow(), "a")
	if err != nil {
		t.Fatalf("ClearSlot: %v", err)
	}
	if !tree.Children[0].Content.IsEmpty() {
		t.Errorf("slot kind = %q, want empty", tree.Children[0].Content.Kind)
	}
}

// The new sibling copies the target's flex rather than taking half of
// it. Pinned as observed behavior: the section's total weight grows.
func TestAddRowCopiesTargetFlex(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	tree.Children[0].Flex = 3

	above, err := engine.AddRowAbove(tree, "root", "a")
	if err != nil {
		t.Fatalf("AddRowAbove: %v", err)
	}
	if len(above.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(above.Children))
	}
	inserted := above.Children[0]
	if inserted.ID != "n-1" || !inserted.Content.IsEmpty() || inserted.Flex != 3 {
		t.Errorf("inserted = %+v, want empty n-1 flex 3", inserted)
	}
	if above.Children[1].ID != "a" || above.Children[1].Flex != 3 {
		t.Errorf("target = %+v, want a with flex 3 (not halved)", above.Children[1])
	}
	if total := above.TotalFlex(); total != 7 {
		t.Errorf("total flex = %g, want 7", total)
	}

	below, err := engine.AddRowBelow(tree, "root", "a")
	if err != nil {
		t.Fatalf("AddRowBelow: %v", err)
	}
	if below.Children[0].ID != "a" || below.Children[1].Flex != 3 || below.Children[2].ID != "b" {
		t.Errorf("AddRowBelow order = %s, %s, %s", below.Children[0].ID, below.Children[1].ID, below.Children[2].ID)
	}
}

func TestAddRowFollowsSectionAxis(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	result, _ := engine.AddRowBelow(tree, "root", "b")
	if result.Axis != layout.Row {
		t.Errorf("axis = %q, want row (insert never changes axis)", result.Axis)
	}
	if _, err := engine.AddRowAbove(tree, "root", "zzz"); !errors.Is(err, splitter.ErrChildNotFound) {
		t.Errorf("AddRowAbove(missing) = %v", err)
	}
}

func TestDistributeIsSingleLevel(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	tree.Children[0].Flex = 4
	tree, _ = engine.Split(tree, "root", "b", layout.Column)
	nestedID := tree.Children[1].Content.Section.ID
	tree, _ = engine.ResizeSiblings(tree, nestedID, 0, 10, 100)
	grandchildren := tree.FindSection(nestedID).Children
	wantFirst, wantSecond := grandchildren[0].Flex, grandchildren[1].Flex

	result, err := engine.DistributeEvenly(tree, "root")
	if err != nil {
		t.Fatalf("DistributeEvenly: %v", err)
	}
	for _, child := range result.Children {
		if child.Flex != layout.DefaultFlex {
			t.Errorf("child %s flex = %g, want %g", child.ID, child.Flex, layout.DefaultFlex)
		}
	}
	after := result.FindSection(nestedID).Children
	if after[0].Flex != wantFirst || after[1].Flex != wantSecond {
		t.Errorf("grandchildren = (%g, %g), want unchanged (%g, %g)",
			after[0].Flex, after[1].Flex, wantFirst, wantSecond)
	}
}

func TestDistributeCustomFlex(t *testing.T) {
	engine := splitter.New(splitter.WithDistributeFlex(2))
	result, _ := engine.DistributeEvenly(twoPaneRow(), "root")
	if result.Children[0].Flex != 2 || result.Children[1].Flex != 2 {
		t.Errorf("flex = (%g, %g), want (2, 2)", result.Children[0].Flex, result.Children[1].Flex)
	}
	if _, err := engine.DistributeEvenly(twoPaneRow(), "missing"); !errors.Is(err, splitter.ErrSectionNotFound) {
		t.Errorf("DistributeEvenly(missing) = %v", err)
	}
}

func TestResizeConservesPair(t *testing.T) {
	engine := newEngine()
	tree := &layout.Section{
		ID:   "root",
		Axis: layout.Column,
		Children: []layout.Child{
			{ID: "a", Flex: 1.3, Content: layout.Empty()},
			{ID: "b", Flex: 0.7, Content: layout.Empty()},
			{ID: "c", Flex: 2, Content: layout.Empty()},
		},
	}
	for _, delta := range []float64{-13, 7.5, 33, -0.25} {
		before := tree
		result, err := engine.ResizeSiblings(tree, "root", 0, delta, 640)
		if err != nil {
			t.Fatalf("ResizeSiblings(%g): %v", delta, err)
		}
		oldSum := before.Children[0].Flex + before.Children[1].Flex
		newSum := result.Children[0].Flex + result.Children[1].Flex
		if !approxEqual(oldSum, newSum) {
			t.Errorf("delta %g: pair sum %g -> %g", delta, oldSum, newSum)
		}
		if result.Children[2].Flex != 2 {
			t.Errorf("delta %g: non-adjacent sibling changed to %g", delta, result.Children[2].Flex)
		}
		tree = result
	}
}

func TestResizeRejectsAtFloor(t *testing.T) {
	engine := newEngine()
	tree := &layout.Section{
		ID:   "root",
		Axis: layout.Row,
		Children: []layout.Child{
			{ID: "a", Flex: 0.15, Content: layout.Empty()},
			{ID: "b", Flex: 3.0, Content: layout.Empty()},
		},
	}
	// 3.15 flex across 315px: 1px per 0.01 flex. -10px would take a to 0.05.
	result, err := engine.ResizeSiblings(tree, "root", 0, -10, 315)
	if !errors.Is(err, splitter.ErrBelowMinFlex) {
		t.Fatalf("error = %v, want ErrBelowMinFlex", err)
	}
	if result != tree || result.Children[0].Flex != 0.15 || result.Children[1].Flex != 3.0 {
		t.Errorf("pair = (%g, %g), want unchanged (0.15, 3)", result.Children[0].Flex, result.Children[1].Flex)
	}

	// A smaller step stays above the floor and applies in full.
	result, err = engine.ResizeSiblings(tree, "root", 0, -4, 315)
	if err != nil {
		t.Fatalf("ResizeSiblings(-4): %v", err)
	}
	if !approxEqual(result.Children[0].Flex, 0.11) {
		t.Errorf("a = %g, want 0.11", result.Children[0].Flex)
	}

	// The other side of the pair is guarded too.
	if _, err := engine.ResizeSiblings(tree, "root", 0, 400, 315); !errors.Is(err, splitter.ErrBelowMinFlex) {
		t.Errorf("growing past b's floor = %v, want ErrBelowMinFlex", err)
	}
}

func TestResizeArgumentErrors(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	tests := []struct {
		name      string
		section   string
		index     int
		container float64
		want      error
	}{
		{"last index has no pair", "root", 1, 100, splitter.ErrChildIndex},
		{"negative index", "root", -1, 100, splitter.ErrChildIndex},
		{"zero container", "root", 0, 0, splitter.ErrContainerSize},
		{"missing section", "nope", 0, 100, splitter.ErrSectionNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := engine.ResizeSiblings(tree, test.section, test.index, 5, test.container)
			if !errors.Is(err, test.want) {
				t.Errorf("error = %v, want %v", err, test.want)
			}
			if result != tree {
				t.Error("failed resize returned a different tree")
			}
		})
	}
}

func TestResizeZeroDelta(t *testing.T) {
	engine := newEngine()
	tree := twoPaneRow()
	result, err := engine.ResizeSiblings(tree, "root", 0, 0, 100)
	if err != nil || result != tree {
		t.Errorf("zero delta = (%p, %v), want input tree and nil", result, err)
	}
}

func TestCustomMinFlex(t *testing.T) {
	engine := splitter.New(splitter.WithMinFlex(0.5))
	if engine.MinFlex() != 0.5 {
		t.Fatalf("MinFlex = %g, want 0.5", engine.MinFlex())
	}
	// 1.0 halves to 0.5, exactly the floor: allowed.
	tree, err := engine.Split(layout.Default(), layout.RootID, "root-pane", layout.Row)
	if err != nil {
		t.Fatalf("Split at floor: %v", err)
	}
	nested := tree.Children[0].Content.Section
	if _, err := engine.Split(tree, nested.ID, "root-pane", layout.Row); !errors.Is(err, splitter.ErrBelowMinFlex) {
		t.Errorf("second split = %v, want ErrBelowMinFlex", err)
	}
}

// Random operation sequences never produce a tree that violates the
// flex floor, leaves a section empty, or duplicates an id.
func TestRandomOperationsPreserveInvariants(t *testing.T) {
	engine := newEngine()
	random := rand.New(rand.NewPCG(7, 11))
	tree := layout.Default()

	for step := 0; step < 2000; step++ {
		var sections []*layout.Section
		tree.Walk(func(section *layout.Section, _ int) bool {
			sections = append(sections, section)
			return true
		})
		section := sections[random.IntN(len(sections))]
		child := section.Children[random.IntN(len(section.Children))]
		axis := layout.Row
		if random.IntN(2) == 0 {
			axis = layout.Column
		}

		var next *layout.Section
		var err error
		switch random.IntN(7) {
		case 0:
			next, err = engine.Split(tree, section.ID, child.ID, axis)
		case 1, 2:
			next, err = engine.RemoveSlot(tree, section.ID, child.ID)
		case 3:
			next, err = engine.AssignWidget(tree, child.ID, "widget")
		case 4:
			if random.IntN(2) == 0 {
				next, err = engine.AddRowAbove(tree, section.ID, child.ID)
			} else {
				next, err = engine.AddRowBelow(tree, section.ID, child.ID)
			}
		case 5:
			next, err = engine.DistributeEvenly(tree, section.ID)
		case 6:
			index := random.IntN(len(section.Children))
			delta := random.Float64()*200 - 100
			next, err = engine.ResizeSiblings(tree, section.ID, index, delta, 400)
		}
		if next == nil {
			t.Fatalf("step %d returned nil tree (err %v)", step, err)
		}
		if err != nil && next != tree {
			t.Fatalf("step %d failed with %v but returned a new tree", step, err)
		}
		if verr := layout.Validate(next, engine.MinFlex()); verr != nil {
			t.Fatalf("step %d: %v\n%s", step, verr, layout.Format(next, nil))
		}
		tree = next
	}
}
