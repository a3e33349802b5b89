// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed starting at (anchorX, anchorY). Truncation is
// ANSI-aware, so escape sequences in the underlying view survive on
// both sides of the overlay.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	if anchorX < 0 {
		anchorX = 0
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}

		line := viewLines[row]
		lineWidth := ansi.StringWidth(line)

		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(line, anchorX, ""))
			if lineWidth < anchorX {
				result.WriteString(strings.Repeat(" ", anchorX-lineWidth))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < lineWidth {
			result.WriteString(ansi.TruncateLeft(line, suffixStart, ""))
		}

		viewLines[row] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// FitLine truncates or pads styled content to exactly width visible
// columns. Truncated content ends in an ellipsis.
func FitLine(content string, width int) string {
	if width <= 0 {
		return ""
	}
	contentWidth := ansi.StringWidth(content)
	if contentWidth > width {
		if width == 1 {
			return ansi.Truncate(content, 1, "")
		}
		return ansi.Truncate(content, width-1, "…")
	}
	return content + strings.Repeat(" ", width-contentWidth)
}

// CenterLine centers content within width columns, truncating when it
// does not fit.
func CenterLine(content string, width int) string {
	contentWidth := ansi.StringWidth(content)
	if contentWidth >= width {
		return FitLine(content, width)
	}
	left := (width - contentWidth) / 2
	return FitLine(strings.Repeat(" ", left)+content, width)
}

// PadOverlayLine pads styled content for a floating box out to the box
// width, painting the padding with the background style. The result is
// " content  " with one column of margin on the left.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := innerWidth - ansi.StringWidth(styledContent)
	if rightPad < 0 {
		styledContent = ansi.Truncate(styledContent, innerWidth, "")
		rightPad = 0
	}
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}
