package ui

import "sort"

// SelectionState tracks marked item indices plus an optional visual
// range anchored like visual-line mode in a modal editor. Operations
// are pure state transitions; rendering reads them via IsSelected.
type SelectionState struct {
	Selected   map[int]bool
	VisualMode bool
	Anchor     int
}

// NewSelectionState returns an empty selection.
func NewSelectionState() SelectionState {
	return SelectionState{Selected: make(map[int]bool)}
}

// IsSelected reports whether index is marked, either in the committed
// set or inside the pending visual range.
func (s *SelectionState) IsSelected(index, cursor int) bool {
	if s.Selected[index] {
		return true
	}
	if s.VisualMode {
		lo, hi := s.Anchor, cursor
		if lo > hi {
			lo, hi = hi, lo
		}
		return index >= lo && index <= hi
	}
	return false
}

// Toggle flips membership of index and leaves visual mode.
func (s *SelectionState) Toggle(index, total int) {
	if index < 0 || index >= total {
		return
	}
	if s.Selected[index] {
		delete(s.Selected, index)
	} else {
		s.Selected[index] = true
	}
	s.VisualMode = false
}

// EnterVisual starts visual mode anchored at the cursor.
func (s *SelectionState) EnterVisual(cursor int) {
	s.VisualMode = true
	s.Anchor = cursor
}

// ExitVisual leaves visual mode. When confirm is true the anchored
// range is added to the selection (force-add, bounded by total);
// otherwise the pending range is discarded.
func (s *SelectionState) ExitVisual(confirm bool, cursor, total int) {
	if s.VisualMode && confirm {
		lo, hi := s.Anchor, cursor
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi >= total {
			hi = total - 1
		}
		for i := lo; i <= hi; i++ {
			if i >= 0 {
				s.Selected[i] = true
			}
		}
	}
	s.VisualMode = false
	s.Anchor = 0
}

// ToggleVisual enters visual mode, or confirms and exits when already
// active. Reports whether a range was committed.
func (s *SelectionState) ToggleVisual(cursor, total int) bool {
	if s.VisualMode {
		s.ExitVisual(true, cursor, total)
		return true
	}
	s.EnterVisual(cursor)
	return false
}

// Clear empties the selection and leaves visual mode.
func (s *SelectionState) Clear() {
	s.Selected = make(map[int]bool)
	s.VisualMode = false
}

// SelectAll marks every index and leaves visual mode.
func (s *SelectionState) SelectAll(total int) {
	for i := 0; i < total; i++ {
		s.Selected[i] = true
	}
	s.VisualMode = false
}

// Indices returns the committed selection in ascending order.
func (s *SelectionState) Indices() []int {
	var out []int
	for i := range s.Selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Count returns the number of committed selections.
func (s *SelectionState) Count() int { return len(s.Selected) }
