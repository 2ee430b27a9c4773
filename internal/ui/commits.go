package ui

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textinput"

	"github.com/tigs-dev/tigs/internal/git"
	"github.com/tigs-dev/tigs/internal/logger"
)

// CommitsView shows the repository's recent commits with selection
// checkboxes and a chat marker. In read-only mode (the view app) the
// checkboxes disappear and the cursor drives the other panes instead.
type CommitsView struct {
	Commits  []git.Commit
	ReadOnly bool

	Scroll    ScrollState
	Selection SelectionState

	repo  *git.Repo
	limit int
	all   []git.Commit

	search    textinput.Model
	searching bool
	query     string
}

// NewCommitsView builds a commits view over the given repository.
func NewCommitsView(repo *git.Repo, limit int, readOnly bool) *CommitsView {
	ti := textinput.New()
	ti.Placeholder = "search commits"
	ti.CharLimit = 128

	v := &CommitsView{
		Selection: NewSelectionState(),
		ReadOnly:  readOnly,
		repo:      repo,
		limit:     limit,
		search:    ti,
	}
	v.Load()
	return v
}

// Load reloads the commit list, resetting cursor, scroll, selection,
// and any active search filter.
func (v *CommitsView) Load() {
	commits, err := v.repo.ListCommits(context.Background(), v.limit)
	if err != nil {
		logger.Warn("CommitsView: failed to load commits: %v", err)
		commits = nil
	}
	v.all = commits
	v.query = ""
	v.applyFilter()
}

// applyFilter rebuilds the visible list from the full list and the
// current query. Indices change, so all positional state resets.
func (v *CommitsView) applyFilter() {
	if v.query == "" {
		v.Commits = v.all
	} else {
		q := strings.ToLower(v.query)
		var filtered []git.Commit
		for _, c := range v.all {
			if strings.Contains(strings.ToLower(c.Subject), q) ||
				strings.Contains(strings.ToLower(c.Author), q) {
				filtered = append(filtered, c)
			}
		}
		v.Commits = filtered
	}
	v.Scroll.Reset()
	v.Selection.Clear()
}

// SelectedSHAs returns the full SHAs of the selected commits.
func (v *CommitsView) SelectedSHAs() []string {
	var shas []string
	for _, i := range v.Selection.Indices() {
		if i < len(v.Commits) {
			shas = append(shas, v.Commits[i].SHA)
		}
	}
	return shas
}

// CursorSHA returns the full SHA of the commit under the cursor.
func (v *CommitsView) CursorSHA() string {
	if v.Scroll.Cursor >= 0 && v.Scroll.Cursor < len(v.Commits) {
		return v.Commits[v.Scroll.Cursor].SHA
	}
	return ""
}

// IsSearching reports whether the search input owns keystrokes.
func (v *CommitsView) IsSearching() bool { return v.searching }

// SearchInput exposes the textinput for the app to update while the
// search prompt is active.
func (v *CommitsView) SearchInput() *textinput.Model { return &v.search }

// StartSearch opens the search prompt.
func (v *CommitsView) StartSearch() {
	v.searching = true
	v.search.SetValue(v.query)
	v.search.Focus()
}

// ApplySearch commits the typed query as the active filter.
func (v *CommitsView) ApplySearch() {
	v.searching = false
	v.search.Blur()
	v.query = strings.TrimSpace(v.search.Value())
	v.applyFilter()
}

// CancelSearch closes the prompt without changing the filter.
func (v *CommitsView) CancelSearch() {
	v.searching = false
	v.search.Blur()
	v.search.SetValue("")
}

// Query returns the active search filter, "" when unfiltered.
func (v *CommitsView) Query() string { return v.query }

// HandleKey interprets a keystroke. Reports whether the cursor or
// selection changed, so the app can refresh dependent panes.
func (v *CommitsView) HandleKey(key string, paneHeight int) bool {
	if len(v.Commits) == 0 {
		return false
	}

	switch key {
	case "up", "k":
		if v.Scroll.Cursor > 0 {
			v.Scroll.Cursor--
			return true
		}
	case "down", "j":
		if v.Scroll.Cursor < len(v.Commits)-1 {
			v.Scroll.Cursor++
			return true
		}
	default:
		if !v.ReadOnly {
			return v.handleSelectionKey(key)
		}
	}
	return false
}

// handleSelectionKey maps selection keystrokes onto SelectionState.
func (v *CommitsView) handleSelectionKey(key string) bool {
	switch key {
	case "space", " ":
		v.Selection.Toggle(v.Scroll.Cursor, len(v.Commits))
		return true
	case "v":
		return v.Selection.ToggleVisual(v.Scroll.Cursor, len(v.Commits))
	case "esc":
		if v.Selection.VisualMode {
			v.Selection.ExitVisual(false, v.Scroll.Cursor, len(v.Commits))
			return true
		}
	case "a":
		v.Selection.SelectAll(len(v.Commits))
		return true
	case "c":
		v.Selection.Clear()
		return true
	}
	return false
}

// DisplayLines formats the visible commits for a pane of the given
// size, with the position counter pinned to the pane's bottom row.
// Commit subjects word-wrap under the prefix; wrapped continuation
// lines align with the datetime column.
func (v *CommitsView) DisplayLines(height, width int) []Line {
	if len(v.Commits) == 0 {
		if v.query != "" {
			return []Line{Plain("(No commits match /" + v.query + ")")}
		}
		return []Line{Plain("(No commits to display)")}
	}

	available := height - BorderSize - FooterReserve
	if available < 0 {
		available = 0
	}

	heights := v.commitHeights(width)
	_, start, end := v.Scroll.VisibleRangeVariable(height-FooterReserve, BorderSize, heights)

	var lines []Line
	for i := start; i < end; i++ {
		lines = append(lines, v.commitLines(i, width)...)
	}

	if v.Selection.VisualMode && !v.ReadOnly && len(lines) < available {
		lines = append(lines, Plain(""), Plain(VisualModeBanner))
	}

	for len(lines) < available {
		lines = append(lines, Plain(""))
	}
	lines = append(lines, Styled(FormatCounter(v.Scroll.Cursor, len(v.Commits), width), ColorMetadata))
	return lines
}

// prefixParts returns the indicator prefix and layout widths for one
// commit row.
func (v *CommitsView) prefixParts(i int, width int) (indicator, datetime, author string, indent, firstLineWidth, contentWidth int) {
	c := v.Commits[i]
	cursor := FormatCursor(i == v.Scroll.Cursor, CursorStyleArrow)
	datetime = c.Time.Format("01-02 15:04")
	author = c.Author

	if v.ReadOnly {
		noteChar := "•"
		if c.HasChat {
			noteChar = "*"
		}
		indicator = cursor + noteChar + " "
		indent = DisplayWidth(indicator)
	} else {
		box := FormatSelectionBox(v.Selection.IsSelected(i, v.Scroll.Cursor))
		noteChar := " "
		if c.HasChat {
			noteChar = "*"
		}
		indicator = cursor + box + noteChar
		indent = DisplayWidth(indicator)
	}

	prefixWidth := DisplayWidth(indicator) + DisplayWidth(datetime) + 1 + DisplayWidth(author) + 1
	firstLineWidth = width - prefixWidth - 4
	if firstLineWidth < 0 {
		firstLineWidth = 0
	}
	contentWidth = width - 6
	if contentWidth < 0 {
		contentWidth = 0
	}
	return indicator, datetime, author, indent, firstLineWidth, contentWidth
}

// headerLine builds the colored first row of a commit: indicators in
// the default color, the datetime in the metadata color, the author in
// the author color, and any leading title text in the default color.
func headerLine(indicator, datetime, author, title string) Line {
	segs := []Segment{
		{Text: indicator, Color: ColorDefault},
		{Text: datetime + " ", Color: ColorMetadata},
		{Text: author + " ", Color: ColorAuthor},
	}
	if title != "" {
		segs = append(segs, Segment{Text: title, Color: ColorDefault})
	}
	return Segments(segs...)
}

// commitLines formats one commit as its header row plus wrapped title
// continuation rows.
func (v *CommitsView) commitLines(i, width int) []Line {
	indicator, datetime, author, indent, firstLineWidth, contentWidth := v.prefixParts(i, width)

	wrapWidth := contentWidth
	if firstLineWidth > wrapWidth {
		wrapWidth = firstLineWidth
	}
	wrapped := WordWrap(v.Commits[i].Subject, wrapWidth)
	if len(wrapped) == 1 && wrapped[0] == "" {
		return []Line{headerLine(indicator, datetime, author, "")}
	}

	var lines []Line
	cont := func(text string) Line {
		return Segments(Segment{Text: strings.Repeat(" ", indent), Color: ColorDefault}, Segment{Text: text, Color: ColorDefault})
	}

	if firstLineWidth >= 10 {
		first := wrapped[0]
		if DisplayWidth(first) <= firstLineWidth {
			lines = append(lines, headerLine(indicator, datetime, author, first))
			for _, rest := range wrapped[1:] {
				lines = append(lines, cont(rest))
			}
			return lines
		}

		// Fit as many leading words as possible on the header row,
		// then rewrap the remainder at the continuation width.
		words := strings.Fields(first)
		var fit []string
		length := 0
		for _, w := range words {
			space := 0
			if len(fit) > 0 {
				space = 1
			}
			if length+space+DisplayWidth(w) > firstLineWidth {
				break
			}
			fit = append(fit, w)
			length += space + DisplayWidth(w)
		}

		if len(fit) > 0 {
			lines = append(lines, headerLine(indicator, datetime, author, strings.Join(fit, " ")))
			remaining := make([]string, 0, len(words)-len(fit)+len(wrapped)-1)
			remaining = append(remaining, words[len(fit):]...)
			remaining = append(remaining, wrapped[1:]...)
			if len(remaining) > 0 {
				for _, rest := range WordWrap(strings.Join(remaining, " "), width-indent-4) {
					lines = append(lines, cont(rest))
				}
			}
			return lines
		}

		lines = append(lines, headerLine(indicator, datetime, author, ""))
		for _, rest := range wrapped {
			lines = append(lines, cont(rest))
		}
		return lines
	}

	// Too narrow for inline titles: prefix row, then all title rows.
	lines = append(lines, headerLine(indicator, datetime, author, ""))
	for _, rest := range wrapped {
		lines = append(lines, cont(rest))
	}
	return lines
}

// commitHeights mirrors commitLines so the variable-height scroll
// window matches the rendered rows exactly.
func (v *CommitsView) commitHeights(width int) []int {
	heights := make([]int, len(v.Commits))
	for i := range v.Commits {
		heights[i] = len(v.commitLines(i, width))
	}
	return heights
}
