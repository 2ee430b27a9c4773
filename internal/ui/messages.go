package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tigs-dev/tigs/internal/chat"
)

// MessagesView shows the messages of one or more session logs with
// line-based scrolling. In the store app it carries selection state;
// in the view app it is read-only and renders stored chats.
type MessagesView struct {
	Messages []chat.Message
	ReadOnly bool

	Selection SelectionState
	Cursor    int

	// CurrentLogURI is the log the displayed messages came from, used
	// when composing the note content.
	CurrentLogURI string

	parser *chat.MultiParser

	scrollOffset   int
	separators     map[int]string
	lastWidth      int
	needsInit      bool
	lastKey        string
	defaultToFirst bool
}

// NewMessagesView builds a messages view backed by the given parser.
// The parser may be nil when no provider is available.
func NewMessagesView(parser *chat.MultiParser) *MessagesView {
	return &MessagesView{
		Selection:  NewSelectionState(),
		parser:     parser,
		separators: map[int]string{},
	}
}

// LoadLog replaces the message list with the contents of one session
// log. Cursor lands on the newest message; selection resets.
func (v *MessagesView) LoadLog(uri string) {
	if v.parser == nil {
		v.Messages = nil
		return
	}

	messages, err := v.parser.Parse(context.Background(), uri)
	if err != nil {
		v.Messages = nil
		return
	}

	v.Messages = messages
	v.CurrentLogURI = uri
	v.Cursor = len(v.Messages) - 1
	if v.Cursor < 0 {
		v.Cursor = 0
	}
	v.scrollOffset = 0
	v.Selection.Clear()
	v.separators = map[int]string{}
	v.needsInit = true
}

// SetMessages replaces the list with already-parsed messages (the view
// app decomposes stored notes itself) and resets to the top.
func (v *MessagesView) SetMessages(messages []chat.Message) {
	v.Messages = messages
	v.Cursor = 0
	v.scrollOffset = 0
	v.Selection.Clear()
	v.separators = map[int]string{}
	v.needsInit = true
	v.prepareForDisplay()
}

// prepareForDisplay groups messages by their source log when a stored
// chat spans several logs, inserting a separator after each group.
func (v *MessagesView) prepareForDisplay() {
	v.separators = map[int]string{}
	if len(v.Messages) == 0 {
		return
	}

	uris := map[string]bool{}
	var order []string
	for _, m := range v.Messages {
		if !uris[m.LogURI] {
			uris[m.LogURI] = true
			order = append(order, m.LogURI)
		}
	}
	if len(order) <= 1 {
		return
	}

	groups := map[string][]chat.Message{}
	for _, m := range v.Messages {
		groups[m.LogURI] = append(groups[m.LogURI], m)
	}

	var regrouped []chat.Message
	for _, uri := range order {
		group := groups[uri]
		sort.SliceStable(group, func(i, j int) bool {
			ti, tj := group[i].Timestamp, group[j].Timestamp
			if ti == nil {
				return tj != nil
			}
			if tj == nil {
				return false
			}
			return ti.Before(*tj)
		})
		regrouped = append(regrouped, group...)
		v.separators[len(regrouped)-1] = uri
	}
	v.Messages = regrouped
}

// SelectedIndices returns the committed selection.
func (v *MessagesView) SelectedIndices() []int { return v.Selection.Indices() }

func formatMessageTimestamp(m chat.Message) string {
	if m.Timestamp == nil {
		return ""
	}
	return " " + m.Timestamp.Format("01-02 15:04")
}

func roleText(role chat.Role) string {
	switch role {
	case chat.RoleUser:
		return "User"
	case chat.RoleAssistant:
		return "Assistant"
	case chat.RoleSystem:
		return "System"
	default:
		s := string(role)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// contentWidth is the wrap width for message bodies inside a pane.
func messageContentWidth(paneWidth int) int {
	w := paneWidth - 6
	if w < 10 {
		w = 10
	}
	return w
}

// headerFor builds one message's header row.
func (v *MessagesView) headerFor(i int) Line {
	m := v.Messages[i]

	var cursor, box string
	if v.ReadOnly {
		cursor = "  "
		if i == v.Cursor {
			cursor = CursorBullet + " "
		}
	} else {
		cursor = FormatCursor(i == v.Cursor, CursorStyleTriangle)
		box = FormatSelectionBox(v.Selection.IsSelected(i, v.Cursor))
	}

	segs := []Segment{
		{Text: cursor + box + " ", Color: ColorDefault},
		{Text: roleText(m.Role), Color: RoleColor(string(m.Role))},
	}
	if ts := formatMessageTimestamp(m); ts != "" {
		segs = append(segs, Segment{Text: ts, Color: ColorMetadata})
	}
	segs = append(segs, Segment{Text: ":", Color: ColorDefault})
	return Segments(segs...)
}

// allLines renders every message to rows: header, indented wrapped
// content, a blank separator, and log separators between groups.
func (v *MessagesView) allLines(width int) []Line {
	contentWidth := messageContentWidth(width)
	var lines []Line

	for i, m := range v.Messages {
		lines = append(lines, v.headerFor(i))

		for _, raw := range strings.Split(m.Content, "\n") {
			for _, wrapped := range WordWrap(raw, contentWidth) {
				lines = append(lines, Plain("    "+wrapped))
			}
		}

		if i < len(v.Messages)-1 {
			lines = append(lines, Plain(""))
		}

		if uri, ok := v.separators[i]; ok {
			lines = append(lines, Plain(""), Styled(logSeparator(uri, width), ColorMetadata), Plain(""))
		}
	}

	if v.Selection.VisualMode && !v.ReadOnly {
		lines = append(lines, Plain(""), Plain(VisualModeBanner))
	}
	return lines
}

// logSeparator centers " log_uri: <uri> " in a full-width run of
// >>>/<<< fill characters.
func logSeparator(uri string, width int) string {
	center := fmt.Sprintf(" log_uri: %s ", uri)
	total := width - 4
	if total < 0 {
		total = 0
	}
	if len(center) >= total {
		return center[:total]
	}
	remaining := total - len(center)
	left := remaining / 2
	right := remaining - left
	return strings.Repeat(">", left) + center + strings.Repeat("<", right)
}

// contentHeight is the rows left for message content after borders,
// the visual banner, and the footer counter.
func (v *MessagesView) contentHeight(paneHeight int) int {
	h := paneHeight - BorderSize
	if v.Selection.VisualMode && !v.ReadOnly {
		h -= VisualBannerHeight
	}
	h -= FooterReserve
	if h < 0 {
		h = 0
	}
	return h
}

// DisplayLines renders the visible window of messages plus the
// position counter pinned to the pane's bottom row.
func (v *MessagesView) DisplayLines(height, width int) []Line {
	v.lastWidth = width

	if len(v.Messages) == 0 {
		return []Line{Plain("(No messages to display)")}
	}

	if v.needsInit {
		v.initView(height)
		v.needsInit = false
	}

	all := v.allLines(width)
	available := v.contentHeight(height)

	maxStart := len(all) - available
	if maxStart < 0 {
		maxStart = 0
	}
	if v.scrollOffset > maxStart {
		v.scrollOffset = maxStart
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}

	end := v.scrollOffset + available
	if end > len(all) {
		end = len(all)
	}
	lines := make([]Line, 0, available+1)
	lines = append(lines, all[v.scrollOffset:end]...)

	if len(lines) > available {
		lines = lines[:available]
	}
	for len(lines) < available {
		lines = append(lines, Plain(""))
	}

	lines = append(lines, Styled(FormatCounter(v.Cursor, len(v.Messages), width), ColorMetadata))
	return lines
}

// HandleKey interprets a keystroke: arrows jump between messages, j/k
// scroll by line, gg/GG jump to the ends, the rest is selection.
func (v *MessagesView) HandleKey(key string, paneHeight int) {
	if len(v.Messages) == 0 {
		return
	}

	if key == "g" && v.lastKey == "g" {
		v.Cursor = 0
		v.scrollToMessage(v.Cursor)
		v.lastKey = ""
		return
	}
	if key == "G" && v.lastKey == "G" {
		v.Cursor = len(v.Messages) - 1
		v.scrollToMessage(v.Cursor)
		v.lastKey = ""
		return
	}
	v.lastKey = key

	switch key {
	case "up":
		if v.Cursor > 0 {
			v.Cursor--
			v.scrollToMessage(v.Cursor)
		}
	case "down":
		if v.Cursor < len(v.Messages)-1 {
			v.Cursor++
			v.scrollToMessage(v.Cursor)
		}
	case "j":
		total := len(v.allLines(v.lastWidth))
		maxOffset := total - v.contentHeight(paneHeight)
		if maxOffset < 0 {
			maxOffset = 0
		}
		if v.scrollOffset < maxOffset {
			v.scrollOffset++
		}
	case "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	default:
		if !v.ReadOnly {
			v.handleSelectionKey(key)
		}
	}
}

func (v *MessagesView) handleSelectionKey(key string) {
	switch key {
	case "space", " ":
		v.Selection.Toggle(v.Cursor, len(v.Messages))
	case "v":
		v.Selection.ToggleVisual(v.Cursor, len(v.Messages))
	case "esc":
		v.Selection.ExitVisual(false, v.Cursor, len(v.Messages))
	case "a":
		v.Selection.SelectAll(len(v.Messages))
	case "c":
		v.Selection.Clear()
	}
}

// initView places the cursor at the configured end of the conversation
// once the first real pane height is known.
func (v *MessagesView) initView(height int) {
	if len(v.Messages) == 0 {
		v.Cursor = 0
		v.scrollOffset = 0
		return
	}
	if v.defaultToFirst {
		v.Cursor = 0
	} else {
		v.Cursor = len(v.Messages) - 1
	}
	v.scrollToMessage(v.Cursor)
}

// scrollToMessage positions the scroll offset so the message's header
// sits near the top of the viewport.
func (v *MessagesView) scrollToMessage(index int) {
	if len(v.Messages) == 0 || v.lastWidth == 0 {
		return
	}

	contentWidth := messageContentWidth(v.lastWidth)
	offset := 0
	for i := 0; i < index && i < len(v.Messages); i++ {
		offset++ // header
		for _, raw := range strings.Split(v.Messages[i].Content, "\n") {
			offset += len(WordWrap(raw, contentWidth))
		}
		if i < len(v.Messages)-1 {
			offset++ // separator
		}
	}

	offset -= 2
	if offset < 0 {
		offset = 0
	}
	v.scrollOffset = offset
}

// ScrollToCursor re-anchors the viewport on the cursor, used after a
// terminal resize.
func (v *MessagesView) ScrollToCursor() {
	v.scrollToMessage(v.Cursor)
}
