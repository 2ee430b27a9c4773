package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// DrawPane renders a bordered pane of the given size with optional
// centered title and content lines, returning the rows joined with
// newlines. Focus bolds the border and title only; content keeps its
// own colors. Panes too small to hold a border render as nothing.
func DrawPane(width, height int, title string, focused bool, lines []Line) string {
	if width < 2 || height < 2 {
		return ""
	}

	border := BorderStyle
	if focused {
		border = BorderFocusedStyle
	}

	rows := make([]string, 0, height)
	rows = append(rows, topBorder(width, title, border))

	// Content sits inside the border with one column of padding.
	innerWidth := width - 4
	contentRows := height - 2

	for i := 0; i < contentRows; i++ {
		var content string
		if i < len(lines) && innerWidth > 0 {
			content = renderLine(lines[i], innerWidth)
		}
		pad := width - 4 - ansi.StringWidth(content)
		if pad < 0 {
			pad = 0
		}
		rows = append(rows, border.Render("│")+" "+content+strings.Repeat(" ", pad)+" "+border.Render("│"))
	}

	rows = append(rows, border.Render("└"+strings.Repeat("─", width-2)+"┘"))
	return strings.Join(rows, "\n")
}

// topBorder builds the top edge, embedding " title " centered when it
// fits with at least four columns of border around it.
func topBorder(width int, title string, border lipgloss.Style) string {
	inner := width - 2
	if title != "" && len(title)+4 < width {
		label := " " + title + " "
		start := (width - len(label)) / 2
		if start < 1 {
			start = 1
		}
		left := start - 1
		right := inner - left - len(label)
		if right < 0 {
			right = 0
		}
		return border.Render("┌" + strings.Repeat("─", left) + label + strings.Repeat("─", right) + "┐")
	}
	return border.Render("┌" + strings.Repeat("─", inner) + "┐")
}

// renderLine styles a line's runs and clips the result to maxWidth
// columns, ANSI-aware so truncation never splits an escape sequence.
func renderLine(l Line, maxWidth int) string {
	var b strings.Builder
	for _, seg := range l.Runs() {
		if seg.Text == "" {
			continue
		}
		if l.IsPlain() || seg.Color == ColorDefault {
			b.WriteString(seg.Text)
		} else {
			b.WriteString(styleFor(seg.Color).Render(seg.Text))
		}
	}
	return ansi.Truncate(b.String(), maxWidth, "")
}
