// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/hearth/lib/tui"
)

// Render draws instance into a width by height cell area. The result
// always has exactly height lines, each exactly width columns wide.
// now is only consulted by clock widgets.
func Render(instance Instance, now time.Time, theme tui.Theme, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	var lines []string
	switch instance.Kind {
	case KindClock:
		lines = renderClock(instance, now, theme, width, height)
	case KindLabel:
		title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(instance.Label())
		lines = verticallyCentered([]string{tui.CenterLine(title, width)}, height)
	case KindText:
		lines = withTitle(instance, theme, width, strings.Split(ansi.Wrap(instance.Text, width, " ,.;-+|"), "\n"))
	case KindNote:
		lines = withTitle(instance, theme, width, strings.Split(renderMarkdown(instance.Text, theme, width), "\n"))
	}
	return fill(lines, width, height)
}

func renderClock(instance Instance, now time.Time, theme tui.Theme, width, height int) []string {
	layout := instance.Format
	if layout == "" {
		layout = DefaultClockFormat
	}
	reading := lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText).Render(now.Format(layout))
	body := []string{tui.CenterLine(reading, width)}
	if instance.Title != "" && height > 2 {
		title := lipgloss.NewStyle().Foreground(theme.FaintText).Render(instance.Title)
		body = append([]string{tui.CenterLine(title, width)}, body...)
	}
	return verticallyCentered(body, height)
}

// withTitle prefixes body with a faint title row when the instance
// has a title.
func withTitle(instance Instance, theme tui.Theme, width int, body []string) []string {
	if instance.Title == "" {
		return body
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.FaintText).Render(instance.Title)
	return append([]string{tui.FitLine(title, width)}, body...)
}

func verticallyCentered(body []string, height int) []string {
	top := (height - len(body)) / 2
	if top <= 0 {
		return body
	}
	return append(make([]string, top), body...)
}

// fill clips or pads lines to exactly height rows of width columns.
func fill(lines []string, width, height int) []string {
	result := make([]string, height)
	for index := range result {
		line := ""
		if index < len(lines) {
			line = lines[index]
		}
		result[index] = tui.FitLine(line, width)
	}
	return result
}
