// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package designer

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/hearth/lib/drag"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/splitter"
)

// Intent is one user gesture, expressed independently of how a
// renderer captured it. Apply turns intents into new trees.
type Intent interface {
	intent()
}

// SplitIntent wraps a slot in a new section along Axis.
type SplitIntent struct {
	SectionID string
	ChildID   string
	Axis      layout.Axis
}

// RemoveIntent removes a child from its section.
type RemoveIntent struct {
	SectionID string
	ChildID   string
}

// AssignIntent places a widget into a slot.
type AssignIntent struct {
	SlotID   string
	WidgetID string
}

// ClearIntent empties a slot.
type ClearIntent struct {
	SlotID string
}

// InsertIntent adds an empty sibling before the child, or after it
// when Below is set.
type InsertIntent struct {
	SectionID string
	ChildID   string
	Below     bool
}

// DistributeIntent resets a section's children to equal flex.
type DistributeIntent struct {
	SectionID string
}

// DragStartIntent is a pointer press on a splitter handle. Coordinate
// is the pointer position along the boundary's axis.
type DragStartIntent struct {
	Boundary   drag.Boundary
	Coordinate float64
}

// DragMoveIntent is pointer motion during a drag.
type DragMoveIntent struct {
	Coordinate float64
}

// DragEndIntent is the pointer release that ends a drag, wherever it
// happens.
type DragEndIntent struct{}

func (SplitIntent) intent()      {}
func (RemoveIntent) intent()     {}
func (AssignIntent) intent()     {}
func (ClearIntent) intent()      {}
func (InsertIntent) intent()     {}
func (DistributeIntent) intent() {}
func (DragStartIntent) intent()  {}
func (DragMoveIntent) intent()   {}
func (DragEndIntent) intent()    {}

// Editor applies intents with one engine and one drag controller. It
// holds no tree: callers pass the current tree in and keep what comes
// back. An Editor is not safe for concurrent use.
type Editor struct {
	engine *splitter.Engine
	drag   *drag.Controller
	logger *slog.Logger
}

// NewEditor returns an editor over engine. A nil logger discards.
func NewEditor(engine *splitter.Engine, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Editor{
		engine: engine,
		drag:   drag.NewController(engine, logger),
		logger: logger,
	}
}

// Engine returns the engine intents are applied with.
func (editor *Editor) Engine() *splitter.Engine {
	return editor.engine
}

// Dragging reports whether a drag session is open, and returns it.
func (editor *Editor) Dragging() (drag.Session, bool) {
	return editor.drag.Session()
}

// Apply performs intent against tree and returns the resulting tree.
// On failure the returned tree is the input and the error says why;
// the result is always renderable.
func (editor *Editor) Apply(tree *layout.Section, intent Intent) (*layout.Section, error) {
	switch intent := intent.(type) {
	case SplitIntent:
		return editor.engine.Split(tree, intent.SectionID, intent.ChildID, intent.Axis)
	case RemoveIntent:
		return editor.engine.RemoveSlot(tree, intent.SectionID, intent.ChildID)
	case AssignIntent:
		return editor.engine.AssignWidget(tree, intent.SlotID, intent.WidgetID)
	case ClearIntent:
		return editor.engine.ClearSlot(tree, intent.SlotID)
	case InsertIntent:
		if intent.Below {
			return editor.engine.AddRowBelow(tree, intent.SectionID, intent.ChildID)
		}
		return editor.engine.AddRowAbove(tree, intent.SectionID, intent.ChildID)
	case DistributeIntent:
		return editor.engine.DistributeEvenly(tree, intent.SectionID)
	case DragStartIntent:
		editor.drag.Begin(intent.Boundary, intent.Coordinate)
		return tree, nil
	case DragMoveIntent:
		return editor.drag.Move(tree, intent.Coordinate)
	case DragEndIntent:
		editor.drag.End()
		return tree, nil
	case nil:
		return tree, fmt.Errorf("nil intent")
	default:
		return tree, fmt.Errorf("unsupported intent %T", intent)
	}
}

// Cancel drops any open drag session.
func (editor *Editor) Cancel() {
	editor.drag.Cancel()
}

// Action is an editing affordance offered for a selected pane.
type Action int

const (
	ActionSplitRow Action = iota
	ActionSplitColumn
	ActionRemove
	ActionAddAbove
	ActionAddBelow
	ActionDistribute
	ActionAssign
	ActionClear
)

func (action Action) String() string {
	switch action {
	case ActionSplitRow:
		return "split side by side"
	case ActionSplitColumn:
		return "split stacked"
	case ActionRemove:
		return "remove"
	case ActionAddAbove:
		return "add above"
	case ActionAddBelow:
		return "add below"
	case ActionDistribute:
		return "distribute"
	case ActionAssign:
		return "assign widget"
	case ActionClear:
		return "clear"
	default:
		return fmt.Sprintf("Action(%d)", int(action))
	}
}

// Affordances lists the actions that would succeed on pane. Actions
// that would fail, such as removing the only child of a section, are
// left out so a renderer never offers them.
func (editor *Editor) Affordances(pane Pane) []Action {
	var actions []Action
	if pane.Depth+1 <= layout.MaxDepth && pane.Child.Flex/2 >= editor.engine.MinFlex() {
		actions = append(actions, ActionSplitRow, ActionSplitColumn)
	}
	if pane.Siblings > 1 {
		actions = append(actions, ActionRemove)
	}
	actions = append(actions, ActionAddAbove, ActionAddBelow)
	if pane.Siblings > 1 {
		actions = append(actions, ActionDistribute)
	}
	actions = append(actions, ActionAssign)
	if pane.Child.Content.IsWidget() {
		actions = append(actions, ActionClear)
	}
	return actions
}

// Intent converts an action on pane into the intent that performs it.
// ActionAssign needs a widget id and is built by the caller.
func (action Action) Intent(pane Pane) (Intent, bool) {
	switch action {
	case ActionSplitRow:
		return SplitIntent{SectionID: pane.SectionID, ChildID: pane.Child.ID, Axis: layout.Row}, true
	case ActionSplitColumn:
		return SplitIntent{SectionID: pane.SectionID, ChildID: pane.Child.ID, Axis: layout.Column}, true
	case ActionRemove:
		return RemoveIntent{SectionID: pane.SectionID, ChildID: pane.Child.ID}, true
	case ActionAddAbove:
		return InsertIntent{SectionID: pane.SectionID, ChildID: pane.Child.ID}, true
	case ActionAddBelow:
		return InsertIntent{SectionID: pane.SectionID, ChildID: pane.Child.ID, Below: true}, true
	case ActionDistribute:
		return DistributeIntent{SectionID: pane.SectionID}, true
	case ActionClear:
		return ClearIntent{SlotID: pane.Child.ID}, true
	default:
		return nil, false
	}
}
