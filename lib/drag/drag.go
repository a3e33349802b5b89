// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package drag

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/splitter"
)

// State is the controller's interaction state.
type State int

const (
	Idle State = iota
	Dragging
)

func (state State) String() string {
	switch state {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

// Boundary identifies the splitter between children ChildIndex and
// ChildIndex+1 of a section.
type Boundary struct {
	SectionID  string
	ChildIndex int

	// Axis is the section's axis. Row boundaries move horizontally,
	// column boundaries vertically.
	Axis layout.Axis

	// ContainerSize is the section's length along Axis, in the same
	// unit as pointer coordinates.
	ContainerSize float64
}

// Coordinate picks the component of a pointer position that moves
// this boundary: x for a row, y for a column.
func (boundary Boundary) Coordinate(x, y float64) float64 {
	if boundary.Axis == layout.Column {
		return y
	}
	return x
}

// Session is one drag gesture, created on pointer-down and discarded
// on pointer-up or cancel.
type Session struct {
	Boundary Boundary

	// Origin is the coordinate at pointer-down; Last is the coordinate
	// of the most recent move.
	Origin float64
	Last   float64

	// Applied and Rejected count resize ticks. Rejected ticks are the
	// ones dropped at the flex floor.
	Applied  int
	Rejected int
}

// Resizer is the resize primitive a controller drives.
// *splitter.Engine implements it.
type Resizer interface {
	ResizeSiblings(tree *layout.Section, sectionID string, childIndex int, pixelDelta, containerSize float64) (*layout.Section, error)
}

// Controller is the per-boundary drag state machine. It is not safe
// for concurrent use; an editing session owns exactly one.
type Controller struct {
	resizer Resizer
	logger  *slog.Logger
	session *Session
}

// NewController returns an idle controller. A nil logger discards.
func NewController(resizer Resizer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{resizer: resizer, logger: logger}
}

// State reports whether a drag is in progress.
func (controller *Controller) State() State {
	if controller.session == nil {
		return Idle
	}
	return Dragging
}

// Session returns a copy of the active session. ok is false when idle.
func (controller *Controller) Session() (session Session, ok bool) {
	if controller.session == nil {
		return Session{}, false
	}
	return *controller.session, true
}

// Begin starts a drag on boundary at coordinate. A session still open
// from a missed pointer-up is replaced.
func (controller *Controller) Begin(boundary Boundary, coordinate float64) {
	if controller.session != nil {
		controller.logger.Debug("replacing unfinished drag session",
			"section", controller.session.Boundary.SectionID,
			"child_index", controller.session.Boundary.ChildIndex,
		)
	}
	controller.session = &Session{
		Boundary: boundary,
		Origin:   coordinate,
		Last:     coordinate,
	}
}

// Move applies one resize tick for a pointer at coordinate and returns
// the resulting tree. When idle, tree is returned as is.
//
// The last coordinate advances on every move, whether or not the tick
// applied, so each tick sees only the motion since the previous event.
// A tick rejected at the flex floor is not an error. Any other resize
// failure (the boundary's section was removed, the pair no longer
// exists) ends the session and is returned with the unchanged tree.
func (controller *Controller) Move(tree *layout.Section, coordinate float64) (*layout.Section, error) {
	session := controller.session
	if session == nil {
		return tree, nil
	}

	delta := coordinate - session.Last
	session.Last = coordinate
	if delta == 0 {
		return tree, nil
	}

	boundary := session.Boundary
	result, err := controller.resizer.ResizeSiblings(tree, boundary.SectionID, boundary.ChildIndex, delta, boundary.ContainerSize)
	switch {
	case err == nil:
		session.Applied++
		return result, nil
	case errors.Is(err, splitter.ErrBelowMinFlex):
		session.Rejected++
		return tree, nil
	default:
		controller.session = nil
		controller.logger.Warn("drag ended by failed resize",
			"section", boundary.SectionID,
			"child_index", boundary.ChildIndex,
			"error", err,
		)
		return tree, fmt.Errorf("drag on %q: %w", boundary.SectionID, err)
	}
}

// End finishes the drag and returns the completed session. ok is
// false when no drag was in progress.
func (controller *Controller) End() (session Session, ok bool) {
	if controller.session == nil {
		return Session{}, false
	}
	session = *controller.session
	controller.session = nil
	controller.logger.Debug("drag finished",
		"section", session.Boundary.SectionID,
		"child_index", session.Boundary.ChildIndex,
		"travel", session.Last-session.Origin,
		"applied", session.Applied,
		"rejected", session.Rejected,
	)
	return session, true
}

// Cancel discards any active session without reporting it. Owners
// call this on teardown.
func (controller *Controller) Cancel() {
	controller.session = nil
}
