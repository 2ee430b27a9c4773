// Package ui implements the scroll, selection, layout, and pane
// engines shared by the store and view TUIs, plus the views and
// Bubble Tea apps built on them.
package ui

// Minimum terminal size. Smaller terminals get a resize prompt
// instead of panes.
const (
	MinTerminalWidth  = 80
	MinTerminalHeight = 24
)

// Chrome sizes shared by the views.
const (
	// BorderSize is the rows consumed by a pane's top and bottom border.
	BorderSize = 2

	// StatusBarHeight is the reverse-video help line under the panes.
	StatusBarHeight = 1

	// FooterReserve is the in-pane row holding the "(n/total)" counter.
	FooterReserve = 1

	// VisualBannerHeight is the blank line plus "-- VISUAL --" banner
	// appended while visual selection is active.
	VisualBannerHeight = 2
)

// Commit subject ellipsis used when titles overflow their column.
const Ellipsis = "..."
