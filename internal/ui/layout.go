package ui

// Column width bounds for the three-pane layouts. The commits column
// is content-driven between its min and max, the logs column is fixed
// width, and the messages column absorbs the remainder.
const (
	MinCommitWidth  = 27
	MaxCommitWidth  = 48
	MinMessageWidth = 25
	LogWidth        = 18
)

// Layout computes pane column widths for a terminal width and caches
// the result until the width changes. Recomputation is always full,
// never an incremental patch of the cached widths.
type Layout struct {
	cached      bool
	widths      [3]int
	sourceWidth int
	sourceLogs  int
}

// NeedsRecalculation reports whether the cache is missing or was built
// for a different terminal width or log count. The log count is part
// of the key because logs appearing or disappearing adds or removes
// the log column.
func (l *Layout) NeedsRecalculation(screenWidth, logCount int) bool {
	return !l.cached || l.sourceWidth != screenWidth || l.sourceLogs != logCount
}

// Invalidate drops the cached widths, forcing the next ColumnWidths
// call to recompute.
func (l *Layout) Invalidate() { l.cached = false }

// CachedWidths returns the last computed (commit, message, log) widths.
func (l *Layout) CachedWidths() (commit, message, log int) {
	return l.widths[0], l.widths[1], l.widths[2]
}

// ColumnWidths computes (commit, message, log) widths summing exactly
// to screenWidth. The commit column targets 40% of the non-log width,
// clamped to [MinCommitWidth, MaxCommitWidth]; read-only mode trims
// the checkbox prefix, non-read-only gains one column for it. When the
// message column would fall under its minimum the commit column gives
// the space back. logCount == 0 drops the log column entirely.
func (l *Layout) ColumnWidths(screenWidth, logCount int, readOnly bool) (commit, message, log int) {
	if logCount > 0 {
		log = LogWidth
	}

	ideal := (screenWidth - log) * 40 / 100
	if ideal > MaxCommitWidth {
		ideal = MaxCommitWidth
	}
	commit = ideal
	if commit < MinCommitWidth {
		commit = MinCommitWidth
	}

	if readOnly {
		commit -= 6
		if commit < MinCommitWidth-6 {
			commit = MinCommitWidth - 6
		}
	} else {
		commit++
		if commit > MaxCommitWidth {
			commit = MaxCommitWidth
		}
	}

	message = screenWidth - commit - log

	if message < MinMessageWidth {
		commit = screenWidth - log - MinMessageWidth
		if commit < MinCommitWidth {
			commit = MinCommitWidth
		}
		message = screenWidth - commit - log
	}

	l.cached = true
	l.sourceWidth = screenWidth
	l.sourceLogs = logCount
	l.widths = [3]int{commit, message, log}
	return commit, message, log
}

// ScrollText formats a single line for horizontal scrolling within
// maxWidth columns. When the text overflows, the visible window starts
// at offset and its first/last columns are replaced by ◀/▶ markers
// showing that more content exists in that direction.
func ScrollText(text string, maxWidth, offset int) (display string, canLeft, canRight bool) {
	if len(text) <= maxWidth {
		return text, false, false
	}
	if maxWidth < 3 {
		if maxWidth < 0 {
			maxWidth = 0
		}
		return text[:maxWidth], offset > 0, true
	}

	contentWidth := maxWidth - 2
	if offset > len(text)-contentWidth {
		offset = len(text) - contentWidth
	}
	if offset < 0 {
		offset = 0
	}

	canLeft = offset > 0
	canRight = offset+maxWidth < len(text)

	visible := text[offset : offset+contentWidth]

	// At widths of 3 and 4 the visible window is no wider than the two
	// indicator columns, so the slices below clamp to empty.
	var tail, head string
	if len(visible) > 2 {
		tail = visible[2:]
		head = visible[:len(visible)-2]
	}

	switch {
	case canLeft && canRight:
		return "◀▶" + tail, true, true
	case canLeft:
		return "◀ " + tail, true, false
	default:
		return head + " ▶", false, true
	}
}
