package ui

import "testing"

func TestColumnWidths_SumToScreenWidth(t *testing.T) {
	var l Layout
	for _, width := range []int{80, 81, 100, 120, 160, 200, 73, 250} {
		for _, logCount := range []int{0, 3} {
			for _, readOnly := range []bool{false, true} {
				commit, message, log := l.ColumnWidths(width, logCount, readOnly)
				if commit+message+log != width {
					t.Errorf("width %d logs %d readOnly %v: %d+%d+%d = %d",
						width, logCount, readOnly, commit, message, log, commit+message+log)
				}
			}
		}
	}
}

func TestColumnWidths_LogColumn(t *testing.T) {
	var l Layout
	_, _, log := l.ColumnWidths(120, 2, false)
	if log != LogWidth {
		t.Errorf("log = %d, want %d", log, LogWidth)
	}
	_, _, log = l.ColumnWidths(120, 0, false)
	if log != 0 {
		t.Errorf("log = %d, want 0 when no logs exist", log)
	}
}

func TestColumnWidths_CommitBounds(t *testing.T) {
	var l Layout

	commit, _, _ := l.ColumnWidths(300, 0, false)
	if commit > MaxCommitWidth {
		t.Errorf("commit = %d, exceeds max %d", commit, MaxCommitWidth)
	}

	commit, _, _ = l.ColumnWidths(80, 3, false)
	if commit < MinCommitWidth {
		t.Errorf("commit = %d, below min %d", commit, MinCommitWidth)
	}
}

func TestColumnWidths_ReadOnlyNarrower(t *testing.T) {
	var a, b Layout
	rw, _, _ := a.ColumnWidths(120, 0, false)
	ro, _, _ := b.ColumnWidths(120, 0, true)
	if ro >= rw {
		t.Errorf("read-only commit %d should be narrower than %d", ro, rw)
	}
}

func TestLayout_Cache(t *testing.T) {
	var l Layout
	if !l.NeedsRecalculation(100, 2) {
		t.Error("fresh layout should need recalculation")
	}

	c1, m1, g1 := l.ColumnWidths(100, 2, false)
	if l.NeedsRecalculation(100, 2) {
		t.Error("same width and log count should hit the cache")
	}
	c2, m2, g2 := l.CachedWidths()
	if c1 != c2 || m1 != m2 || g1 != g2 {
		t.Errorf("cached widths (%d,%d,%d) differ from computed (%d,%d,%d)", c2, m2, g2, c1, m1, g1)
	}

	if !l.NeedsRecalculation(140, 2) {
		t.Error("different width should miss the cache")
	}

	l.Invalidate()
	if !l.NeedsRecalculation(100, 2) {
		t.Error("invalidated layout should need recalculation")
	}
}

func TestLayout_CacheMissesWhenLogsAppear(t *testing.T) {
	var l Layout
	l.ColumnWidths(100, 0, false)

	if !l.NeedsRecalculation(100, 1) {
		t.Fatal("log discovery at the same width should miss the cache")
	}

	_, _, log := l.ColumnWidths(100, 1, false)
	if log != LogWidth {
		t.Errorf("log = %d, want %d after logs appear", log, LogWidth)
	}
	if !l.NeedsRecalculation(100, 0) {
		t.Error("last log disappearing should miss the cache")
	}
}

func TestScrollText_Fits(t *testing.T) {
	display, left, right := ScrollText("short", 20, 0)
	if display != "short" || left || right {
		t.Errorf("got %q left=%v right=%v", display, left, right)
	}
}

func TestScrollText_AtStart(t *testing.T) {
	display, left, right := ScrollText("abcdefghijklmnop", 10, 0)
	if left {
		t.Error("no content to the left at offset 0")
	}
	if !right {
		t.Error("overflow should flag content to the right")
	}
	if len(display) != 10 {
		t.Errorf("display %q has length %d, want 10", display, len(display))
	}
	if display[len(display)-1:] != "▶"[len("▶")-1:] && display[len(display)-3:] != "▶" {
		t.Errorf("display %q should end with the right marker", display)
	}
}

func TestScrollText_Scrolled(t *testing.T) {
	display, left, right := ScrollText("abcdefghijklmnopqrstuvwxyz", 10, 5)
	if !left || !right {
		t.Errorf("mid-scroll should flag both directions, got left=%v right=%v", left, right)
	}
	if display[:len("◀▶")] != "◀▶" {
		t.Errorf("display %q should start with both markers", display)
	}
}

func TestScrollText_NarrowWidths(t *testing.T) {
	// The visible window can be shorter than the two indicator columns.
	tests := []struct {
		width, offset int
		want          string
		left, right   bool
	}{
		{3, 0, " ▶", false, true},
		{3, 2, "◀▶", true, true},
		{3, 5, "◀ ", true, false},
		{4, 0, " ▶", false, true},
		{5, 0, "a ▶", false, true},
	}
	for _, tt := range tests {
		display, left, right := ScrollText("abcdef", tt.width, tt.offset)
		if display != tt.want || left != tt.left || right != tt.right {
			t.Errorf("ScrollText(abcdef, %d, %d) = %q, %v, %v, want %q, %v, %v",
				tt.width, tt.offset, display, left, right, tt.want, tt.left, tt.right)
		}
	}
}

func TestScrollText_AtEnd(t *testing.T) {
	text := "abcdefghijklmnop"
	display, left, right := ScrollText(text, 10, 99)
	if !left {
		t.Error("scrolled to end should flag content to the left")
	}
	if right {
		t.Error("no content to the right at the end")
	}
	if display[len(display)-1] != text[len(text)-1] {
		t.Errorf("display %q should end with the text's last character", display)
	}
}
