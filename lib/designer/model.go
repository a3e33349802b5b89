// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package designer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/hearth/lib/clock"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/splitter"
	"github.com/bureau-foundation/hearth/lib/tui"
	"github.com/bureau-foundation/hearth/lib/widget"
)

const (
	// undoLimit bounds the undo stack. Trees share structure, so each
	// entry costs only the path an edit copied.
	undoLimit = 200

	saveTimeout = 10 * time.Second
	tickPeriod  = time.Second
)

// SaveFunc persists the edited tree.
type SaveFunc func(ctx context.Context, tree *layout.Section) error

// Config configures a designer Model.
type Config struct {
	// Profile names the layout being edited, for display.
	Profile string

	// Tree is the starting layout. Nil starts from layout.Default().
	Tree *layout.Section

	// Engine performs edits. Nil uses splitter.New().
	Engine *splitter.Engine

	// Catalog resolves widget ids and feeds the widget picker. Nil
	// behaves as an empty catalog.
	Catalog *widget.Catalog

	Clock clock.Clock
	Theme *tui.Theme

	// Save persists the layout on ctrl+s and on quit. Nil disables
	// saving; quit then exits directly.
	Save SaveFunc

	Logger *slog.Logger
}

type tickMsg time.Time

type saveResultMsg struct {
	tree *layout.Section
	quit bool
	err  error
}

// Model is the bubbletea model for the interactive layout designer.
// The screen has a one-line header, the layout canvas, and a one-line
// action bar listing only the actions valid for the selected pane.
type Model struct {
	editor  *Editor
	catalog *widget.Catalog
	clock   clock.Clock
	theme   tui.Theme
	keys    KeyMap
	save    SaveFunc
	logger  *slog.Logger
	profile string

	tree  *layout.Section
	saved *layout.Section // Tree at the last successful save; dirty when different.

	// history holds prior trees, most recent last. dragBefore is the
	// tree at the start of an open drag; the whole gesture is one undo
	// step.
	history    []*layout.Section
	dragBefore *layout.Section

	selectedID string
	geometry   Geometry

	width  int
	height int
	ready  bool

	picker *tui.Menu

	status      string
	statusError bool
	saving      bool
}

// NewModel creates a designer model.
func NewModel(config Config) Model {
	tree := config.Tree
	if tree == nil {
		tree = layout.Default()
	}
	engine := config.Engine
	if engine == nil {
		engine = splitter.New()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	theme := tui.DefaultTheme
	if config.Theme != nil {
		theme = *config.Theme
	}
	catalog := config.Catalog
	if catalog == nil {
		catalog, _ = widget.NewCatalog()
	}

	model := Model{
		editor:  NewEditor(engine, logger),
		catalog: catalog,
		clock:   clk,
		theme:   theme,
		keys:    DefaultKeyMap,
		save:    config.Save,
		logger:  logger,
		profile: config.Profile,
		tree:    tree,
		saved:   tree,
	}
	if leaves := tree.Leaves(); len(leaves) > 0 {
		model.selectedID = leaves[0].ID
	}
	model.relayout()
	return model
}

// Tree returns the current layout.
func (model Model) Tree() *layout.Section { return model.tree }

// Selected returns the id of the selected pane.
func (model Model) Selected() string { return model.selectedID }

// Dirty reports whether the tree differs from the last save.
func (model Model) Dirty() bool { return model.tree != model.saved }

// Init implements tea.Model. Starts the clock tick that repaints time
// widgets.
func (model Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickPeriod, func(now time.Time) tea.Msg { return tickMsg(now) })
}

// canvas is the screen area the layout is drawn into: everything
// between the header line and the action bar.
func (model Model) canvas() Rect {
	if model.height < 3 {
		return Rect{}
	}
	return Rect{X: 0, Y: 1, Width: model.width, Height: model.height - 2}
}

func (model *Model) relayout() {
	model.geometry = Compute(model.tree, model.canvas())
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.relayout()

	case tea.KeyMsg:
		if model.picker != nil {
			return model.handlePickerKeys(message)
		}
		return model.handleKeys(message)

	case tea.MouseMsg:
		model.handleMouse(message)

	case tickMsg:
		return model, tick()

	case saveResultMsg:
		model.saving = false
		if message.err != nil {
			model.setError(fmt.Errorf("save failed: %w", message.err))
			return model, nil
		}
		model.saved = message.tree
		model.setStatus("saved")
		if message.quit {
			return model, tea.Quit
		}
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	model.status = ""

	switch {
	case key.Matches(message, model.keys.ForceQuit):
		model.editor.Cancel()
		return model, tea.Quit

	case key.Matches(message, model.keys.Quit):
		model.editor.Cancel()
		if model.save == nil || !model.Dirty() {
			return model, tea.Quit
		}
		return model, model.saveCmd(true)

	case key.Matches(message, model.keys.Save):
		if model.save == nil {
			model.setError(errors.New("saving is not configured"))
			return model, nil
		}
		return model, model.saveCmd(false)

	case key.Matches(message, model.keys.Undo):
		model.undo()

	case key.Matches(message, model.keys.Next):
		model.moveSelection(1)

	case key.Matches(message, model.keys.Previous):
		model.moveSelection(-1)

	default:
		for _, action := range []Action{
			ActionSplitRow, ActionSplitColumn, ActionRemove, ActionAddAbove,
			ActionAddBelow, ActionDistribute, ActionAssign, ActionClear,
		} {
			if key.Matches(message, model.keys.actionBinding(action)) {
				model.perform(action)
				break
			}
		}
	}
	return model, nil
}

// perform runs action on the selected pane, if the pane offers it.
func (model *Model) perform(action Action) {
	pane, ok := model.geometry.Pane(model.selectedID)
	if !ok {
		return
	}
	offered := false
	for _, candidate := range model.editor.Affordances(pane) {
		if candidate == action {
			offered = true
			break
		}
	}
	if !offered {
		model.setStatus(action.String() + " is not available here")
		return
	}

	if action == ActionAssign {
		model.openPicker()
		return
	}
	intent, _ := action.Intent(pane)
	model.apply(intent)
}

// apply runs an edit intent and records it for undo.
func (model *Model) apply(intent Intent) {
	before := model.tree
	after, err := model.editor.Apply(before, intent)
	if err != nil {
		if errors.Is(err, splitter.ErrBelowMinFlex) {
			model.setStatus("pane is too small for that")
		} else {
			model.setError(err)
		}
		model.logger.Debug("edit rejected", "intent", fmt.Sprintf("%T", intent), "error", err)
		return
	}
	if after == before {
		return
	}
	model.pushHistory(before)
	model.tree = after

	if _, ok := intent.(InsertIntent); ok {
		if id := newLeaf(before, after); id != "" {
			model.selectedID = id
		}
	}
	model.relayout()
	model.fixSelection()
}

func (model *Model) pushHistory(tree *layout.Section) {
	model.history = append(model.history, tree)
	if len(model.history) > undoLimit {
		model.history = model.history[len(model.history)-undoLimit:]
	}
}

func (model *Model) undo() {
	if len(model.history) == 0 {
		model.setStatus("nothing to undo")
		return
	}
	model.editor.Cancel()
	model.dragBefore = nil
	model.tree = model.history[len(model.history)-1]
	model.history = model.history[:len(model.history)-1]
	model.relayout()
	model.fixSelection()
}

// fixSelection keeps the selection on a pane that still exists,
// falling back to the first pane.
func (model *Model) fixSelection() {
	if _, ok := model.geometry.Pane(model.selectedID); ok {
		return
	}
	for _, leaf := range model.tree.Leaves() {
		if leaf.ID == model.selectedID {
			return
		}
	}
	if leaves := model.tree.Leaves(); len(leaves) > 0 {
		model.selectedID = leaves[0].ID
	}
}

func (model *Model) moveSelection(step int) {
	leaves := model.tree.Leaves()
	if len(leaves) == 0 {
		return
	}
	current := 0
	for index, leaf := range leaves {
		if leaf.ID == model.selectedID {
			current = index
			break
		}
	}
	next := (current + step + len(leaves)) % len(leaves)
	model.selectedID = leaves[next].ID
}

// newLeaf returns the first leaf id in after that is absent from
// before.
func newLeaf(before, after *layout.Section) string {
	existing := make(map[string]bool)
	for _, leaf := range before.Leaves() {
		existing[leaf.ID] = true
	}
	for _, leaf := range after.Leaves() {
		if !existing[leaf.ID] {
			return leaf.ID
		}
	}
	return ""
}

func (model *Model) setStatus(text string) {
	model.status = text
	model.statusError = false
}

func (model *Model) setError(err error) {
	model.status = err.Error()
	model.statusError = true
}

func (model *Model) saveCmd(quit bool) tea.Cmd {
	model.saving = true
	tree, save, logger := model.tree, model.save, model.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		err := save(ctx, tree)
		if err != nil {
			logger.Error("saving layout failed", "error", err)
		}
		return saveResultMsg{tree: tree, quit: quit, err: err}
	}
}

// --- Widget picker ---

func (model *Model) openPicker() {
	instances := model.catalog.List()
	options := make([]tui.MenuOption, len(instances))
	for index, instance := range instances {
		options[index] = tui.MenuOption{
			Label:  instance.Label(),
			Value:  instance.ID,
			Detail: string(instance.Kind),
		}
	}
	model.picker = tui.NewMenu("Widget", options)
	model.positionPicker()
}

func (model *Model) positionPicker() {
	if model.picker == nil {
		return
	}
	canvas := model.canvas()
	model.picker.AnchorX = canvas.X + (canvas.Width-model.picker.Width())/2
	model.picker.AnchorY = canvas.Y + 1
	if model.picker.AnchorX < 0 {
		model.picker.AnchorX = 0
	}
}

func (model Model) handlePickerKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.PickerCancel):
		model.picker = nil
	case key.Matches(message, model.keys.PickerSelect):
		model.choose()
	case key.Matches(message, model.keys.PickerUp):
		model.picker.MoveUp()
	case key.Matches(message, model.keys.PickerDown):
		model.picker.MoveDown()
	case message.Type == tea.KeyBackspace:
		model.picker.Backspace()
	case message.Type == tea.KeySpace:
		model.picker.Type(' ')
	case message.Type == tea.KeyRunes:
		model.picker.Type(message.Runes...)
	}
	model.positionPicker()
	return model, nil
}

// choose assigns the highlighted picker option to the selected pane
// and closes the picker.
func (model *Model) choose() {
	option, ok := model.picker.Selected()
	model.picker = nil
	if !ok {
		return
	}
	model.apply(AssignIntent{SlotID: model.selectedID, WidgetID: option.Value})
}

// --- Mouse ---

func (model *Model) handleMouse(message tea.MouseMsg) {
	// An open drag owns the pointer: motion resizes, release anywhere
	// ends it.
	if session, dragging := model.editor.Dragging(); dragging {
		coordinate := session.Boundary.Coordinate(float64(message.X), float64(message.Y))
		if message.Action == tea.MouseActionRelease {
			model.endDrag()
			return
		}
		if message.Action != tea.MouseActionMotion {
			return
		}
		tree, err := model.editor.Apply(model.tree, DragMoveIntent{Coordinate: coordinate})
		if err != nil {
			model.setError(err)
			model.endDrag()
			return
		}
		model.tree = tree
		model.relayout()
		return
	}

	if message.Button != tea.MouseButtonLeft || message.Action != tea.MouseActionPress {
		return
	}

	if model.picker != nil {
		if model.picker.Contains(message.X, message.Y) {
			if index := model.picker.OptionAtY(message.Y); index >= 0 {
				model.picker.Cursor = index
				model.choose()
			}
			return
		}
		model.picker = nil
	}

	if boundary, ok := model.geometry.BoundaryAt(message.X, message.Y); ok {
		model.dragBefore = model.tree
		model.editor.Apply(model.tree, DragStartIntent{
			Boundary:   boundary,
			Coordinate: boundary.Coordinate(float64(message.X), float64(message.Y)),
		})
		return
	}
	if pane, ok := model.geometry.PaneAt(message.X, message.Y); ok {
		model.selectedID = pane.Child.ID
		model.status = ""
	}
}

func (model *Model) endDrag() {
	model.editor.Apply(model.tree, DragEndIntent{})
	if model.dragBefore != nil && model.dragBefore != model.tree {
		model.pushHistory(model.dragBefore)
	}
	model.dragBefore = nil
}
