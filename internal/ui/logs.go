package ui

import (
	"context"

	"github.com/tigs-dev/tigs/internal/chat"
)

// LogsView lists the provider session logs, newest first. Each entry
// takes two rows: provider and date, then the time indented below.
type LogsView struct {
	Logs []chat.LogInfo

	Scroll ScrollState

	parser *chat.MultiParser
}

// NewLogsView builds a logs view backed by the given parser.
func NewLogsView(parser *chat.MultiParser) *LogsView {
	return &LogsView{parser: parser}
}

// Load refreshes the log list. The previously selected log stays
// selected when it still exists; otherwise selection resets to the
// newest log.
func (v *LogsView) Load() {
	if v.parser == nil {
		v.Logs = nil
		return
	}

	selected := v.SelectedURI()
	v.Logs = v.parser.ListLogs(context.Background())

	v.Scroll.Reset()
	if selected != "" {
		for i, l := range v.Logs {
			if l.URI == selected {
				v.Scroll.Cursor = i
				break
			}
		}
	}
}

// SelectedURI returns the URI of the log under the cursor.
func (v *LogsView) SelectedURI() string {
	if v.Scroll.Cursor >= 0 && v.Scroll.Cursor < len(v.Logs) {
		return v.Logs[v.Scroll.Cursor].URI
	}
	return ""
}

// HandleKey moves the log cursor. Reports whether the selection
// changed, so the app can reload the messages pane.
func (v *LogsView) HandleKey(key string) bool {
	if len(v.Logs) == 0 {
		return false
	}
	switch key {
	case "up", "k":
		if v.Scroll.Cursor > 0 {
			v.Scroll.Cursor--
			return true
		}
	case "down", "j":
		if v.Scroll.Cursor < len(v.Logs)-1 {
			v.Scroll.Cursor++
			return true
		}
	}
	return false
}

// DisplayLines renders the visible logs plus the position counter.
func (v *LogsView) DisplayLines(height, width int) []Line {
	if len(v.Logs) == 0 {
		if v.parser == nil || !v.parser.HasProviders() {
			return []Line{Plain("No providers")}
		}
		return []Line{Plain("No logs found")}
	}

	available := height - BorderSize - FooterReserve
	if available < 0 {
		available = 0
	}

	const linesPerLog = 2
	_, start, end := v.Scroll.VisibleRange(len(v.Logs), available/linesPerLog, 0)

	var lines []Line
	for i := start; i < end; i++ {
		l := v.Logs[i]

		prefix := " "
		if i == v.Scroll.Cursor {
			prefix = CursorTriangle
		}

		stamp := l.Modified.Format("01-02 15:04")
		datePart, timePart := stamp[:5], stamp[6:]

		first := l.Label
		if first == "" {
			first = l.Provider
		}
		if first != "" {
			first += " " + datePart
		} else {
			first = datePart
		}

		lines = append(lines, Plain(TruncateWithEllipsis(prefix+" "+first, width-4, Ellipsis)))
		lines = append(lines, Plain("  "+timePart))
	}

	for len(lines) < available {
		lines = append(lines, Plain(""))
	}

	lines = append(lines, Styled(FormatCounter(v.Scroll.Cursor, len(v.Logs), width), ColorMetadata))
	return lines
}
