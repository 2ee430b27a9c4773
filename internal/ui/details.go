package ui

import (
	"context"
	"strings"

	"github.com/tigs-dev/tigs/internal/git"
)

// DetailsView shows one commit's header, message, and diffstat with
// line-based scrolling and no cursor.
type DetailsView struct {
	View ViewScroll

	repo       *git.Repo
	currentSHA string
	rawLines   []string

	wrapped   []string
	lastWidth int
}

// NewDetailsView builds a details view over the given repository.
func NewDetailsView(repo *git.Repo) *DetailsView {
	return &DetailsView{repo: repo}
}

// Load fetches the details of a commit. Reloading the same SHA is a
// no-op so cursor movement elsewhere stays cheap.
func (v *DetailsView) Load(sha string) {
	if sha == v.currentSHA {
		return
	}
	v.currentSHA = sha

	lines, err := v.repo.CommitDetails(context.Background(), sha)
	if err != nil {
		v.rawLines = []string{"Error loading commit details"}
	} else {
		v.rawLines = lines
	}
	v.wrapped = nil
	v.lastWidth = 0
	v.View.Reset()
}

// HandleKey scrolls the view. Reports whether the view moved.
func (v *DetailsView) HandleKey(key string, paneHeight int) bool {
	switch key {
	case "up", "k":
		return v.View.ScrollUp(1)
	case "down", "j":
		return v.View.ScrollDown(1, len(v.wrappedLines(v.lastWidth)), paneHeight)
	}
	return false
}

// wrappedLines word-wraps the raw detail lines to the pane width,
// cached per width. Content changes reset the cache in Load.
func (v *DetailsView) wrappedLines(width int) []string {
	if v.wrapped != nil && v.lastWidth == width {
		return v.wrapped
	}
	contentWidth := width - 4
	var out []string
	for _, line := range v.rawLines {
		if len(line) <= contentWidth {
			out = append(out, line)
		} else {
			out = append(out, WordWrap(line, contentWidth)...)
		}
	}
	v.wrapped = out
	v.lastWidth = width
	return out
}

// DisplayLines renders the visible slice of the commit details.
func (v *DetailsView) DisplayLines(height, width int) []Line {
	if v.currentSHA == "" {
		return []Line{Plain("No commit selected")}
	}
	if len(v.rawLines) == 0 {
		return []Line{Plain("Loading...")}
	}

	all := v.wrappedLines(width)
	start, end := v.View.Visible(len(all), height)

	lines := make([]Line, 0, end-start)
	for _, raw := range all[start:end] {
		lines = append(lines, colorizeDetailLine(raw))
	}
	return lines
}

// colorizeDetailLine maps one detail row to its colored form: header
// lines carry the tig scheme, diffstat rows split into filename and
// +/- segments, everything else (including message lines that happen
// to contain a pipe) stays plain.
func colorizeDetailLine(line string) Line {
	switch {
	case strings.HasPrefix(line, "commit "):
		return Styled(line, ColorCommit)
	case strings.HasPrefix(line, "Refs: "):
		return Styled(line, ColorRefs)
	case strings.HasPrefix(line, "Author:"):
		return Styled(line, ColorAuthor)
	case strings.HasPrefix(line, "Date:"):
		return Styled(line, ColorDate)
	}

	if segs, ok := statSegments(line); ok {
		return Segments(segs...)
	}
	return Plain(line)
}

// statSegments recognizes `git show --stat` file rows, which are
// indented by exactly one space and carry " | " before a change count
// ("12 +++--", "0", "Bin 10 -> 20 bytes"). Commit message lines are
// indented deeper, so a message containing a pipe never matches.
func statSegments(line string) ([]Segment, bool) {
	if !strings.HasPrefix(line, " ") || strings.HasPrefix(line, "  ") {
		return nil, false
	}

	idx := strings.Index(line, " | ")
	if idx < 0 {
		return nil, false
	}

	stats := line[idx+3:]
	trimmed := strings.TrimSpace(stats)
	if trimmed == "" {
		return nil, false
	}
	if !(trimmed[0] >= '0' && trimmed[0] <= '9') && !strings.HasPrefix(trimmed, "Bin") {
		return nil, false
	}

	segs := []Segment{
		{Text: line[:idx], Color: ColorMetadata},
		{Text: " | ", Color: ColorDefault},
	}

	// Split the change summary into plus, minus, and neutral runs.
	var run strings.Builder
	var runColor Color = ColorDefault
	flush := func() {
		if run.Len() > 0 {
			segs = append(segs, Segment{Text: run.String(), Color: runColor})
			run.Reset()
		}
	}
	for _, r := range stats {
		var c Color
		switch r {
		case '+':
			c = ColorCommit
		case '-':
			c = ColorDelete
		default:
			c = ColorDefault
		}
		if c != runColor {
			flush()
			runColor = c
		}
		run.WriteRune(r)
	}
	flush()

	return segs, true
}
