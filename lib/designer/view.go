// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package designer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/hearth/lib/drag"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/tui"
	"github.com/bureau-foundation/hearth/lib/widget"
)

// region is a rendered rectangle of the canvas: one line per row,
// each exactly Rect.Width columns.
type region struct {
	rect  Rect
	lines []string
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}
	if model.height < 3 || model.width < 1 {
		return tui.FitLine("window too small", model.width)
	}

	lines := make([]string, 0, model.height)
	lines = append(lines, model.renderHeader())
	lines = append(lines, model.renderCanvas()...)
	lines = append(lines, model.renderFooter())
	view := strings.Join(lines, "\n")

	if model.picker != nil {
		view = tui.SpliceOverlay(view, model.picker.Render(model.theme), model.picker.AnchorX, model.picker.AnchorY)
	}
	return view
}

func (model Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render("hearth")
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	profile := model.profile
	if profile == "" {
		profile = "unsaved"
	}
	header := title + faint.Render(fmt.Sprintf(" · %s · %d panes", profile, len(model.geometry.Panes)))
	if model.Dirty() {
		header += lipgloss.NewStyle().Foreground(model.theme.SplitterActive).Render(" ●")
	}
	if model.saving {
		header += faint.Render(" saving…")
	}
	return tui.FitLine(header, model.width)
}

// renderCanvas draws every pane and handle, then stitches rows
// together left to right. Geometry tiles the canvas, so each row is
// the concatenation of the regions crossing it.
func (model Model) renderCanvas() []string {
	canvas := model.canvas()
	var regions []region

	activeBoundary, dragging := model.activeBoundary()
	for _, handle := range model.geometry.Handles {
		if handle.Rect.Empty() {
			continue
		}
		active := dragging && handle.Boundary.SectionID == activeBoundary.SectionID &&
			handle.Boundary.ChildIndex == activeBoundary.ChildIndex
		regions = append(regions, region{rect: handle.Rect, lines: model.renderHandle(handle, active)})
	}
	for _, pane := range model.geometry.Panes {
		if pane.Rect.Empty() {
			continue
		}
		regions = append(regions, region{rect: pane.Rect, lines: model.renderPane(pane)})
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i].rect.X < regions[j].rect.X })

	rows := make([]string, canvas.Height)
	for row := range rows {
		y := canvas.Y + row
		var line strings.Builder
		for _, current := range regions {
			if y < current.rect.Y || y >= current.rect.Y+current.rect.Height {
				continue
			}
			line.WriteString(current.lines[y-current.rect.Y])
		}
		rows[row] = tui.FitLine(line.String(), canvas.Width)
	}
	return rows
}

func (model Model) activeBoundary() (drag.Boundary, bool) {
	session, ok := model.editor.Dragging()
	return session.Boundary, ok
}

func (model Model) renderHandle(handle Handle, active bool) []string {
	color := model.theme.Splitter
	if active {
		color = model.theme.SplitterActive
	}
	style := lipgloss.NewStyle().Foreground(color)

	lines := make([]string, handle.Rect.Height)
	for index := range lines {
		if handle.Boundary.Axis == layout.Column {
			lines[index] = style.Render(strings.Repeat("─", handle.Rect.Width))
		} else {
			lines[index] = style.Render("│")
		}
	}
	return lines
}

// renderPane draws a title bar and the pane body. An empty slot and a
// slot whose widget id does not resolve draw the same empty body; the
// title bar names the unresolved id.
func (model Model) renderPane(pane Pane) []string {
	width, height := pane.Rect.Width, pane.Rect.Height
	selected := pane.Child.ID == model.selectedID

	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Background(model.theme.TooltipBackground)
	if selected {
		titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(model.theme.SelectedForeground).
			Background(model.theme.PaneSelectedBorder)
	}

	var instance widget.Instance
	resolved := false
	label := "empty"
	if pane.Child.Content.IsWidget() {
		instance, resolved = model.catalog.Lookup(pane.Child.Content.WidgetID)
		if resolved {
			label = instance.Label()
		} else {
			label = "missing " + pane.Child.Content.WidgetID
			if !selected {
				titleStyle = titleStyle.Foreground(model.theme.MissingWidget)
			}
		}
	}
	title := titleStyle.Render(tui.FitLine(fmt.Sprintf(" %s  %.2f", label, pane.Child.Flex), width))

	lines := []string{title}
	if height == 1 {
		return lines
	}

	if resolved {
		return append(lines, widget.Render(instance, model.clock.Now(), model.theme, width, height-1)...)
	}
	return append(lines, model.renderEmptyBody(width, height-1, selected)...)
}

func (model Model) renderEmptyBody(width, height int, selected bool) []string {
	body := make([]string, height)
	for index := range body {
		body[index] = strings.Repeat(" ", width)
	}
	faint := lipgloss.NewStyle().Foreground(model.theme.EmptyPaneText)
	middle := height / 2
	body[middle] = tui.CenterLine(faint.Render("·"), width)
	if selected && middle+1 < height {
		hint := model.keys.Assign.Help().Key + " assign a widget"
		body[middle+1] = tui.CenterLine(faint.Render(hint), width)
	}
	return body
}

// renderFooter shows the status message when one is set, otherwise
// the actions available for the selected pane.
func (model Model) renderFooter() string {
	if model.status != "" {
		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if model.statusError {
			style = style.Foreground(model.theme.ErrorText)
		}
		return tui.FitLine(style.Render(model.status), model.width)
	}

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.NormalText)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var parts []string
	if pane, ok := model.geometry.Pane(model.selectedID); ok {
		for _, action := range model.editor.Affordances(pane) {
			binding := model.keys.actionBinding(action)
			parts = append(parts, keyStyle.Render(binding.Help().Key)+" "+helpStyle.Render(binding.Help().Desc))
		}
	}
	for _, binding := range []struct{ key, desc string }{
		{model.keys.Undo.Help().Key, model.keys.Undo.Help().Desc},
		{model.keys.Save.Help().Key, model.keys.Save.Help().Desc},
		{model.keys.Quit.Help().Key, model.keys.Quit.Help().Desc},
	} {
		parts = append(parts, keyStyle.Render(binding.key)+" "+helpStyle.Render(binding.desc))
	}
	return tui.FitLine(strings.Join(parts, "  "), model.width)
}
