// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"
)

// MenuOption is a single selectable item in a Menu.
type MenuOption struct {
	Label  string // Display text, also the text the filter matches against.
	Value  string // Value returned on selection.
	Detail string // Optional faint annotation shown after the label.
}

type menuMatch struct {
	option    int
	score     int
	positions []int
}

// Menu is a floating pick list with a fuzzy filter line. It captures
// keyboard input while open: typing narrows the list, up/down move the
// cursor, enter selects, escape dismisses. The owning model routes
// input to it and splices Render output over its own view.
type Menu struct {
	Title   string
	Options []MenuOption
	Cursor  int // Index into the visible (filtered) options.
	AnchorX int
	AnchorY int

	query   []rune
	visible []menuMatch
	slab    *util.Slab
}

// NewMenu creates a menu showing every option in order.
func NewMenu(title string, options []MenuOption) *Menu {
	menu := &Menu{Title: title, Options: options, slab: NewSlab()}
	menu.refilter()
	return menu
}

// Query returns the current filter text.
func (menu *Menu) Query() string { return string(menu.query) }

// SetQuery replaces the filter text and resets the cursor.
func (menu *Menu) SetQuery(query string) {
	menu.query = []rune(query)
	menu.refilter()
}

// Type appends runes to the filter.
func (menu *Menu) Type(runes ...rune) {
	menu.query = append(menu.query, runes...)
	menu.refilter()
}

// Backspace removes the last filter rune. Returns false when the
// filter was already empty.
func (menu *Menu) Backspace() bool {
	if len(menu.query) == 0 {
		return false
	}
	menu.query = menu.query[:len(menu.query)-1]
	menu.refilter()
	return true
}

// refilter recomputes the visible options. With an empty query every
// option is visible in its original order; otherwise matches are
// ordered by descending score, ties keeping their original order.
func (menu *Menu) refilter() {
	menu.visible = menu.visible[:0]
	for index, option := range menu.Options {
		result := FuzzyMatch(option.Label, menu.query, menu.slab)
		if !result.Matched {
			continue
		}
		menu.visible = append(menu.visible, menuMatch{
			option:    index,
			score:     result.Score,
			positions: result.Positions,
		})
	}
	if len(menu.query) > 0 {
		sort.SliceStable(menu.visible, func(i, j int) bool {
			return menu.visible[i].score > menu.visible[j].score
		})
	}
	menu.Cursor = 0
}

// Visible returns the options that pass the current filter.
func (menu *Menu) Visible() []MenuOption {
	options := make([]MenuOption, len(menu.visible))
	for index, match := range menu.visible {
		options[index] = menu.Options[match.option]
	}
	return options
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (menu *Menu) MoveUp() {
	if len(menu.visible) == 0 {
		return
	}
	menu.Cursor--
	if menu.Cursor < 0 {
		menu.Cursor = len(menu.visible) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (menu *Menu) MoveDown() {
	if len(menu.visible) == 0 {
		return
	}
	menu.Cursor++
	if menu.Cursor >= len(menu.visible) {
		menu.Cursor = 0
	}
}

// Selected returns the highlighted option. The second result is false
// when the filter matches nothing.
func (menu *Menu) Selected() (MenuOption, bool) {
	if menu.Cursor < 0 || menu.Cursor >= len(menu.visible) {
		return MenuOption{}, false
	}
	return menu.Options[menu.visible[menu.Cursor].option], true
}

func (menu *Menu) header() string {
	return menu.Title + ": " + string(menu.query) + "▏"
}

// Width returns the rendered width in columns, for hit testing.
func (menu *Menu) Width() int {
	inner := ansi.StringWidth(menu.header())
	for _, option := range menu.Options {
		// "> " marker, label, two spaces, detail.
		optionWidth := 2 + ansi.StringWidth(option.Label)
		if option.Detail != "" {
			optionWidth += 2 + ansi.StringWidth(option.Detail)
		}
		if optionWidth > inner {
			inner = optionWidth
		}
	}
	return inner + 2
}

// Height returns the rendered height in rows: the filter line plus one
// row per visible option, with a placeholder row when nothing matches.
func (menu *Menu) Height() int {
	if len(menu.visible) == 0 {
		return 2
	}
	return 1 + len(menu.visible)
}

// Contains reports whether the screen coordinate falls on the menu.
func (menu *Menu) Contains(x, y int) bool {
	return x >= menu.AnchorX && x < menu.AnchorX+menu.Width() &&
		y >= menu.AnchorY && y < menu.AnchorY+menu.Height()
}

// OptionAtY returns the visible option index at screen row y, or -1.
func (menu *Menu) OptionAtY(y int) int {
	index := y - menu.AnchorY - 1
	if index < 0 || index >= len(menu.visible) {
		return -1
	}
	return index
}

// Render produces the menu lines for SpliceOverlay. Every line has the
// same visible width.
func (menu *Menu) Render(theme Theme) []string {
	innerWidth := menu.Width() - 2
	background := lipgloss.NewStyle().
		Background(theme.TooltipBackground).
		Foreground(theme.TooltipForeground)
	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	faint := background.Foreground(theme.FaintText)

	lines := []string{PadOverlayLine(background.Bold(true).Render(menu.header()), innerWidth, background)}

	if len(menu.visible) == 0 {
		lines = append(lines, PadOverlayLine(faint.Render("(no matches)"), innerWidth, background))
		return lines
	}

	for index, match := range menu.visible {
		option := menu.Options[match.option]
		style := background
		marker := "  "
		if index == menu.Cursor {
			style = selected
			marker = "> "
		}
		content := style.Render(marker) + highlightPositions(option.Label, match.positions, style, style.Foreground(theme.MatchForeground))
		if option.Detail != "" {
			content += style.Render("  ") + style.Foreground(theme.FaintText).Render(option.Detail)
		}
		lines = append(lines, PadOverlayLine(content, innerWidth, style))
	}
	return lines
}

// highlightPositions renders label with the runes at the given
// positions in the match style.
func highlightPositions(label string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(label)
	}
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}
	var result strings.Builder
	for index, r := range []rune(label) {
		if marked[index] {
			result.WriteString(match.Render(string(r)))
		} else {
			result.WriteString(base.Render(string(r)))
		}
	}
	return result.String()
}
