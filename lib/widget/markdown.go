// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/hearth/lib/tui"
)

var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func parser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// renderMarkdown renders note text for a pane of the given width. Soft
// line breaks become spaces so notes reflow when the pane is resized.
func renderMarkdown(input string, theme tui.Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	// lipgloss re-detects the profile from the environment unless it is
	// set explicitly, which would strip color under tests and pipes.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &noteRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// noteRenderer walks a goldmark AST. Inline content accumulates per
// block and is wrapped as a unit when the block closes.
type noteRenderer struct {
	source      []byte
	theme       tui.Theme
	width       int
	lipRenderer *lipgloss.Renderer

	output   strings.Builder
	inline   strings.Builder
	trailing int

	prefix        string
	prefixLevels  []prefixLevel
	pendingBullet string
	lists         []noteList

	bold, italic, struck int
}

type prefixLevel struct {
	bytes   int
	columns int
}

type noteList struct {
	ordered bool
	counter int
	tight   bool
}

func (renderer *noteRenderer) style() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *noteRenderer) prefixWidth() int {
	total := 0
	for _, level := range renderer.prefixLevels {
		total += level.columns
	}
	return total
}

func (renderer *noteRenderer) contentWidth() int {
	width := renderer.width - renderer.prefixWidth()
	if width < 8 {
		width = 8
	}
	return width
}

func (renderer *noteRenderer) push(prefix string) {
	renderer.prefix += prefix
	renderer.prefixLevels = append(renderer.prefixLevels, prefixLevel{
		bytes:   len(prefix),
		columns: ansi.StringWidth(prefix),
	})
}

func (renderer *noteRenderer) pop() {
	if len(renderer.prefixLevels) == 0 {
		return
	}
	last := renderer.prefixLevels[len(renderer.prefixLevels)-1]
	renderer.prefixLevels = renderer.prefixLevels[:len(renderer.prefixLevels)-1]
	renderer.prefix = renderer.prefix[:len(renderer.prefix)-last.bytes]
}

func (renderer *noteRenderer) tight() bool {
	return len(renderer.lists) > 0 && renderer.lists[len(renderer.lists)-1].tight
}

func (renderer *noteRenderer) write(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	newlines := len(s) - len(trimmed)
	if trimmed == "" {
		renderer.trailing += newlines
	} else {
		renderer.trailing = newlines
	}
}

func (renderer *noteRenderer) newline() {
	if renderer.trailing < 1 {
		renderer.write("\n")
	}
}

func (renderer *noteRenderer) blankLine() {
	if renderer.output.Len() == 0 {
		return
	}
	for renderer.trailing < 2 {
		renderer.write("\n")
	}
}

// prefixed applies the line prefix to every line of content, using a
// pending list bullet for the first line when one is set.
func (renderer *noteRenderer) prefixed(content string) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		prefix := renderer.prefix
		if index == 0 && renderer.pendingBullet != "" {
			prefix = renderer.pendingBullet
			renderer.pendingBullet = ""
		}
		lines[index] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (renderer *noteRenderer) flush() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}
	renderer.write(renderer.prefixed(ansi.Wrap(content, renderer.contentWidth(), " ,.;-+|")))
	renderer.newline()
	if !renderer.tight() {
		renderer.blankLine()
	}
}

func (renderer *noteRenderer) styled(content string) string {
	style := renderer.style().Foreground(renderer.theme.NormalText)
	if renderer.bold > 0 {
		style = style.Bold(true)
	}
	if renderer.italic > 0 {
		style = style.Italic(true)
	}
	if renderer.struck > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (renderer *noteRenderer) lines(node ast.Node) string {
	var content strings.Builder
	segments := node.Lines()
	for index := 0; index < segments.Len(); index++ {
		segment := segments.At(index)
		content.Write(segment.Value(renderer.source))
	}
	return content.String()
}

func (renderer *noteRenderer) highlight(code, language string) string {
	faint := renderer.style().Foreground(renderer.theme.FaintText)
	if language == "" {
		return faint.Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return faint.Render(code)
	}
	return buffer.String()
}

func (renderer *noteRenderer) codeBlock(code string) {
	renderer.blankLine()
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		renderer.write(renderer.prefixed(line))
		renderer.newline()
	}
	renderer.blankLine()
}

func (renderer *noteRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.flush()
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
			return ast.WalkContinue, nil
		}
		content := ansi.Strip(renderer.inline.String())
		renderer.inline.Reset()
		style := renderer.style().Bold(true).Foreground(renderer.theme.NormalText)
		if node.(*ast.Heading).Level <= 2 {
			style = style.Foreground(renderer.theme.HeaderForeground).Underline(true)
		}
		renderer.blankLine()
		renderer.write(renderer.prefixed(ansi.Wrap(style.Render(content), renderer.contentWidth(), " ")))
		renderer.newline()
		renderer.blankLine()

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			renderer.codeBlock(renderer.highlight(renderer.lines(block), string(block.Language(renderer.source))))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindCodeBlock:
		if entering {
			renderer.codeBlock(renderer.highlight(renderer.lines(node), ""))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindBlockquote:
		if entering {
			renderer.push("│ ")
		} else {
			renderer.pop()
			renderer.blankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			renderer.lists = append(renderer.lists, noteList{ordered: list.IsOrdered(), counter: list.Start, tight: list.IsTight})
		} else {
			renderer.lists = renderer.lists[:len(renderer.lists)-1]
			if !renderer.tight() {
				renderer.blankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			bullet := "- "
			if top := &renderer.lists[len(renderer.lists)-1]; top.ordered {
				bullet = fmt.Sprintf("%d. ", top.counter)
				top.counter++
			}
			renderer.pendingBullet = renderer.prefix + bullet
			renderer.push(strings.Repeat(" ", len(bullet)))
		} else {
			renderer.pop()
			if renderer.tight() {
				renderer.newline()
			} else {
				renderer.blankLine()
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := renderer.style().Foreground(renderer.theme.BorderColor).Render(strings.Repeat("─", renderer.contentWidth()))
			renderer.blankLine()
			renderer.write(renderer.prefixed(rule))
			renderer.newline()
			renderer.blankLine()
		}

	case ast.KindHTMLBlock, ast.KindRawHTML:
		return ast.WalkSkipChildren, nil

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styled(string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.(*ast.Emphasis).Level >= 2 {
			renderer.bold += delta
		} else {
			renderer.italic += delta
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.struck++
		} else {
			renderer.struck--
		}

	case extast.KindTaskCheckBox:
		if entering {
			box := "[ ] "
			if node.(*extast.TaskCheckBox).IsChecked {
				box = "[x] "
			}
			renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.MatchForeground).Render(box))
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(renderer.source))
				}
			}
			renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.FaintText).Render(code.String()))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(renderer.source))
			renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.FaintText).Render(url))
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}
