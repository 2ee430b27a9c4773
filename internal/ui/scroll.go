package ui

// ScrollState holds the cursor and scroll offset for a list pane.
// Views embed it by value; the algorithms below never touch the item
// list itself, only its length and per-item heights.
type ScrollState struct {
	Cursor int
	Offset int
}

// Reset returns the cursor and offset to the top of the list.
func (s *ScrollState) Reset() {
	s.Cursor = 0
	s.Offset = 0
}

// ClampCursor forces the cursor into [0, total-1]. Callers invoke this
// after a reload shrinks the list; VisibleRange assumes a valid cursor.
func (s *ScrollState) ClampCursor(total int) {
	if total <= 0 {
		s.Cursor = 0
		return
	}
	if s.Cursor >= total {
		s.Cursor = total - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// VisibleRange maps the cursor onto a fixed-capacity window, adjusting
// the offset with minimal movement so the cursor stays visible. The
// viewport height is the pane height; borderSize rows of chrome are
// subtracted. Returns the visible item count and the [start, end)
// window into the list.
func (s *ScrollState) VisibleRange(total, viewportHeight, borderSize int) (count, start, end int) {
	if total == 0 {
		s.Offset = 0
		return 0, 0, 0
	}

	capacity := viewportHeight - borderSize
	if capacity > total {
		capacity = total
	}
	if capacity < 0 {
		capacity = 0
	}

	if s.Cursor < s.Offset {
		s.Offset = s.Cursor
	} else if capacity > 0 && s.Cursor >= s.Offset+capacity {
		s.Offset = s.Cursor - capacity + 1
	}

	maxOffset := total - capacity
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.Offset > maxOffset {
		s.Offset = maxOffset
	}
	if s.Offset < 0 {
		s.Offset = 0
	}

	end = s.Offset + capacity
	if end > total {
		end = total
	}
	return capacity, s.Offset, end
}

// ScrollToBottom moves the cursor to the last item and the offset so
// the tail of the list fills the window.
func (s *ScrollState) ScrollToBottom(total, viewportHeight, borderSize int) {
	if total == 0 {
		s.Reset()
		return
	}

	capacity := viewportHeight - borderSize
	if capacity > total {
		capacity = total
	}
	if capacity < 1 {
		capacity = 1
	}

	s.Offset = total - capacity
	if s.Offset < 0 {
		s.Offset = 0
	}
	s.Cursor = s.Offset + capacity - 1
	if s.Cursor > total-1 {
		s.Cursor = total - 1
	}
}

// itemsThatFit counts how many items starting at start fit within the
// row budget, accumulating per-item heights.
func itemsThatFit(start int, heights []int, available int) int {
	count := 0
	current := 0
	for i := start; i < len(heights); i++ {
		if current+heights[i] <= available {
			current += heights[i]
			count++
		} else {
			break
		}
	}
	return count
}

// startToIncludeCursor walks backward from the cursor to find the
// earliest start index whose cumulative height still fits the budget
// with the cursor's item included.
func startToIncludeCursor(cursor int, heights []int, available int) int {
	if cursor >= len(heights) {
		return cursor
	}

	start := cursor
	height := heights[cursor]

	for start > 0 {
		prev := heights[start-1]
		if height+prev > available {
			break
		}
		height += prev
		start--
	}
	return start
}

// VisibleRangeVariable maps the cursor onto a window of variable-height
// items. heights carries one row count per item (header + wrapped
// content + separator). The cursor's item is always within the window;
// an item taller than the whole viewport degenerates to a single-item
// window. Heights must be recomputed by the caller whenever content or
// width changes.
func (s *ScrollState) VisibleRangeVariable(viewportHeight, borderSize int, heights []int) (count, start, end int) {
	total := len(heights)
	if total == 0 {
		s.Offset = 0
		return 0, 0, 0
	}

	available := viewportHeight - borderSize
	if available < 0 {
		available = 0
	}

	if s.Cursor < total && available > 0 && heights[s.Cursor] >= available {
		s.Offset = s.Cursor
		return 1, s.Cursor, s.Cursor + 1
	}

	if s.Offset > total-1 {
		s.Offset = total - 1
	}
	if s.Offset < 0 {
		s.Offset = 0
	}

	end = s.Offset + itemsThatFit(s.Offset, heights, available)

	if s.Cursor < s.Offset {
		s.Offset = s.Cursor
	} else if s.Cursor >= end {
		s.Offset = startToIncludeCursor(s.Cursor, heights, available)
	}

	end = s.Offset + itemsThatFit(s.Offset, heights, available)
	if end > total {
		end = total
	}
	if end <= s.Offset {
		end = s.Offset + 1
	}
	return end - s.Offset, s.Offset, end
}

// ViewScroll is a line-based scroll position for read-only content
// panes (commit details, rendered chat) where there is no item cursor.
type ViewScroll struct {
	Offset int
}

// ScrollUp moves the view toward the start. Reports whether it moved.
func (v *ViewScroll) ScrollUp(lines int) bool {
	if v.Offset <= 0 {
		return false
	}
	v.Offset -= lines
	if v.Offset < 0 {
		v.Offset = 0
	}
	return true
}

// ScrollDown moves the view toward the end, keeping the last content
// line reachable. Reports whether it moved.
func (v *ViewScroll) ScrollDown(lines, totalLines, viewportHeight int) bool {
	maxOffset := totalLines - viewportHeight + 2
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset >= maxOffset {
		return false
	}
	v.Offset += lines
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	return true
}

// Visible returns the [start, end) slice bounds of the content lines
// currently in view. Two border rows are reserved.
func (v *ViewScroll) Visible(totalLines, viewportHeight int) (start, end int) {
	contentHeight := viewportHeight - 2
	if contentHeight < 0 {
		contentHeight = 0
	}
	end = v.Offset + contentHeight
	if end > totalLines {
		end = totalLines
	}
	if v.Offset > end {
		return end, end
	}
	return v.Offset, end
}

// Reset returns the view to the top.
func (v *ViewScroll) Reset() { v.Offset = 0 }
