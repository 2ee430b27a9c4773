package ui

import "testing"

func TestToggle(t *testing.T) {
	s := NewSelectionState()

	s.Toggle(3, 10)
	if !s.IsSelected(3, 0) {
		t.Error("index 3 should be selected after toggle")
	}

	s.Toggle(3, 10)
	if s.IsSelected(3, 0) {
		t.Error("second toggle should deselect index 3")
	}
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0", s.Count())
	}
}

func TestToggle_OutOfRange(t *testing.T) {
	s := NewSelectionState()
	s.Toggle(-1, 10)
	s.Toggle(10, 10)
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0", s.Count())
	}
}

func TestToggle_ExitsVisualMode(t *testing.T) {
	s := NewSelectionState()
	s.EnterVisual(2)
	s.Toggle(5, 10)
	if s.VisualMode {
		t.Error("toggle should leave visual mode")
	}
}

func TestVisualRange_PendingSelection(t *testing.T) {
	s := NewSelectionState()
	s.EnterVisual(2)

	// Cursor at 5: indices 2..5 show as selected, nothing committed.
	for i := 2; i <= 5; i++ {
		if !s.IsSelected(i, 5) {
			t.Errorf("index %d should be in the visual range", i)
		}
	}
	if s.IsSelected(1, 5) || s.IsSelected(6, 5) {
		t.Error("indices outside the range should not be selected")
	}
	if s.Count() != 0 {
		t.Errorf("committed count = %d, want 0", s.Count())
	}
}

func TestVisualRange_Reversed(t *testing.T) {
	s := NewSelectionState()
	s.EnterVisual(5)
	if !s.IsSelected(3, 2) {
		t.Error("range should cover cursor above anchor")
	}
}

func TestExitVisual_ConfirmCommitsRange(t *testing.T) {
	s := NewSelectionState()
	s.EnterVisual(1)
	s.ExitVisual(true, 3, 10)

	if s.VisualMode {
		t.Error("visual mode should be off")
	}
	for i := 1; i <= 3; i++ {
		if !s.Selected[i] {
			t.Errorf("index %d should be committed", i)
		}
	}
	if s.Count() != 3 {
		t.Errorf("count = %d, want 3", s.Count())
	}
}

func TestExitVisual_ForceAddKeepsExisting(t *testing.T) {
	s := NewSelectionState()
	s.Toggle(2, 10)
	s.EnterVisual(1)
	s.ExitVisual(true, 3, 10)

	// Confirming re-adds 2 rather than toggling it off.
	if !s.Selected[2] {
		t.Error("index 2 should remain selected after the range commit")
	}
}

func TestExitVisual_CancelDiscardsRange(t *testing.T) {
	s := NewSelectionState()
	s.EnterVisual(1)
	s.ExitVisual(false, 5, 10)

	if s.Count() != 0 {
		t.Errorf("count = %d, want 0 after cancel", s.Count())
	}
	if s.VisualMode {
		t.Error("visual mode should be off")
	}
}

func TestExitVisual_BoundedByTotal(t *testing.T) {
	s := NewSelectionState()
	s.EnterVisual(3)
	s.ExitVisual(true, 99, 5)

	if s.Selected[5] {
		t.Error("commit must not reach past the last index")
	}
	if !s.Selected[4] {
		t.Error("last valid index should be committed")
	}
}

func TestToggleVisual(t *testing.T) {
	s := NewSelectionState()

	if s.ToggleVisual(2, 10) {
		t.Error("first press enters visual mode, commits nothing")
	}
	if !s.VisualMode || s.Anchor != 2 {
		t.Errorf("anchor = %d, visual = %v", s.Anchor, s.VisualMode)
	}

	if !s.ToggleVisual(4, 10) {
		t.Error("second press should commit the range")
	}
	if s.Count() != 3 {
		t.Errorf("count = %d, want 3", s.Count())
	}
}

func TestSelectAllThenClear(t *testing.T) {
	s := NewSelectionState()
	s.SelectAll(10)
	if s.Count() != 10 {
		t.Errorf("count = %d, want 10", s.Count())
	}

	s.Clear()
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0 after clear", s.Count())
	}
	for i := 0; i < 10; i++ {
		if s.IsSelected(i, 0) {
			t.Errorf("index %d still selected after clear", i)
		}
	}
}

func TestIndices_Sorted(t *testing.T) {
	s := NewSelectionState()
	for _, i := range []int{7, 1, 4, 0, 9} {
		s.Toggle(i, 10)
	}

	got := s.Indices()
	want := []int{0, 1, 4, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("indices = %v, want %v", got, want)
			break
		}
	}
}
