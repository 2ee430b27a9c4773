package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the number of terminal columns text occupies.
// Wide CJK runes count as 2, zero-width runes as 0.
func DisplayWidth(text string) int {
	w := runewidth.StringWidth(text)
	if w < 0 {
		return 0
	}
	return w
}

// WordWrap wraps text to the given display width, breaking on spaces.
// A single token wider than the width is hard-broken at the width
// boundary so the concatenation of the returned lines reconstitutes
// the token exactly. Width <= 0 or text that already fits returns the
// text as a single line.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	if text == "" {
		return []string{""}
	}
	if DisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	var line string
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := DisplayWidth(word)

		if wordWidth > width {
			// Flush the current line, then hard-break the long token.
			if line != "" {
				lines = append(lines, line)
				line = ""
				lineWidth = 0
			}
			parts := breakToken(word, width)
			for _, part := range parts[:len(parts)-1] {
				lines = append(lines, part)
			}
			line = parts[len(parts)-1]
			lineWidth = DisplayWidth(line)
			continue
		}

		switch {
		case line == "":
			line = word
			lineWidth = wordWidth
		case lineWidth+1+wordWidth <= width:
			line += " " + word
			lineWidth += 1 + wordWidth
		default:
			lines = append(lines, line)
			line = word
			lineWidth = wordWidth
		}
	}

	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// breakToken splits a single token into chunks no wider than width
// display columns, keeping grapheme clusters intact.
func breakToken(token string, width int) []string {
	var parts []string
	var chunk strings.Builder
	chunkWidth := 0

	g := uniseg.NewGraphemes(token)
	for g.Next() {
		cluster := g.Str()
		w := DisplayWidth(cluster)
		if chunkWidth+w > width && chunk.Len() > 0 {
			parts = append(parts, chunk.String())
			chunk.Reset()
			chunkWidth = 0
		}
		chunk.WriteString(cluster)
		chunkWidth += w
	}
	if chunk.Len() > 0 {
		parts = append(parts, chunk.String())
	}
	if len(parts) == 0 {
		parts = append(parts, "")
	}
	return parts
}

// TruncateWithEllipsis shortens text to at most width display columns,
// appending the ellipsis when truncation happens.
func TruncateWithEllipsis(text string, width int, ellipsis string) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}

	ellWidth := DisplayWidth(ellipsis)
	if width <= ellWidth {
		if width == 1 && ellipsis != "" {
			g := uniseg.NewGraphemes(ellipsis)
			if g.Next() {
				return g.Str()
			}
		}
		return ""
	}

	target := width - ellWidth
	var b strings.Builder
	acc := 0

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := DisplayWidth(cluster)
		if acc+w > target {
			break
		}
		b.WriteString(cluster)
		acc += w
	}
	return b.String() + ellipsis
}
