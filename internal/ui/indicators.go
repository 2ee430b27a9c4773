package ui

// Selection and cursor glyphs shared by the list panes.
const (
	SelectedBox   = "[x]"
	UnselectedBox = "[ ]"

	CursorArrow    = ">"
	CursorTriangle = "▶"
	CursorBullet   = "•"
	CursorNone     = " "

	VisualModeBanner = "-- VISUAL --"
)

// CursorStyle selects the glyph FormatCursor renders for the current item.
type CursorStyle int

const (
	CursorStyleArrow CursorStyle = iota
	CursorStyleTriangle
	CursorStyleBullet
)

// FormatSelectionBox renders the checkbox indicator for an item.
func FormatSelectionBox(selected bool) string {
	if selected {
		return SelectedBox
	}
	return UnselectedBox
}

// FormatCursor renders the cursor indicator, padding with a space when
// the item is not under the cursor so columns stay aligned.
func FormatCursor(current bool, style CursorStyle) string {
	if !current {
		return CursorNone
	}
	switch style {
	case CursorStyleTriangle:
		return CursorTriangle
	case CursorStyleBullet:
		return CursorBullet
	default:
		return CursorArrow
	}
}
