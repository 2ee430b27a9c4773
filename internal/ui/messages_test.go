package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/tigs-dev/tigs/internal/chat"
)

func testMessages(n int) []chat.Message {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := make([]chat.Message, n)
	for i := range msgs {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		ts := base.Add(time.Duration(i) * time.Minute)
		msgs[i] = chat.Message{
			Role:      role,
			Content:   "message body",
			Timestamp: &ts,
		}
	}
	return msgs
}

func newTestMessagesView(n int) *MessagesView {
	v := NewMessagesView(nil)
	v.Messages = testMessages(n)
	v.lastWidth = 60
	return v
}

func TestMessagesView_HeaderShowsRoleAndTimestamp(t *testing.T) {
	v := newTestMessagesView(2)

	header := v.headerFor(0)
	text := header.Text()
	if !strings.Contains(text, "User") {
		t.Errorf("header = %q, want the role name", text)
	}
	if !strings.Contains(text, "06-01 12:00") {
		t.Errorf("header = %q, want the timestamp", text)
	}
	if !strings.HasSuffix(text, ":") {
		t.Errorf("header = %q, want a trailing colon", text)
	}

	// The cursor starts on index 0, so it carries the triangle.
	if !strings.HasPrefix(text, CursorTriangle) {
		t.Errorf("header = %q, want the cursor glyph", text)
	}
}

func TestMessagesView_ReadOnlyHeader(t *testing.T) {
	v := newTestMessagesView(2)
	v.ReadOnly = true

	if got := v.headerFor(0).Text(); !strings.HasPrefix(got, CursorBullet+" ") {
		t.Errorf("cursor header = %q, want the bullet prefix", got)
	}
	if got := v.headerFor(1).Text(); !strings.HasPrefix(got, "  ") {
		t.Errorf("non-cursor header = %q, want a blank prefix", got)
	}
	if strings.Contains(v.headerFor(0).Text(), "[") {
		t.Error("read-only headers should not carry checkboxes")
	}
}

func TestMessagesView_ContentIndented(t *testing.T) {
	v := newTestMessagesView(1)
	lines := v.allLines(60)
	if len(lines) < 2 {
		t.Fatalf("lines = %d, want header plus content", len(lines))
	}
	if !strings.HasPrefix(lines[1].Text(), "    message body") {
		t.Errorf("content = %q, want four-space indent", lines[1].Text())
	}
}

func TestMessagesView_MultilineContent(t *testing.T) {
	v := newTestMessagesView(1)
	v.Messages[0].Content = "first\nsecond"
	lines := v.allLines(60)
	if lines[1].Text() != "    first" || lines[2].Text() != "    second" {
		t.Errorf("lines = %q, %q", lines[1].Text(), lines[2].Text())
	}
}

func TestMessagesView_KeyboardNavigation(t *testing.T) {
	v := newTestMessagesView(5)

	v.HandleKey("down", 20)
	if v.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", v.Cursor)
	}
	v.HandleKey("up", 20)
	if v.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", v.Cursor)
	}
	v.HandleKey("up", 20)
	if v.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 at the top", v.Cursor)
	}
}

func TestMessagesView_GGJumps(t *testing.T) {
	v := newTestMessagesView(10)

	v.HandleKey("G", 20)
	v.HandleKey("G", 20)
	if v.Cursor != 9 {
		t.Errorf("cursor = %d, want 9 after GG", v.Cursor)
	}

	v.HandleKey("g", 20)
	v.HandleKey("g", 20)
	if v.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 after gg", v.Cursor)
	}
}

func TestMessagesView_LineScroll(t *testing.T) {
	v := newTestMessagesView(20)

	v.HandleKey("j", 10)
	if v.scrollOffset != 1 {
		t.Errorf("offset = %d, want 1 after j", v.scrollOffset)
	}
	v.HandleKey("k", 10)
	if v.scrollOffset != 0 {
		t.Errorf("offset = %d, want 0 after k", v.scrollOffset)
	}
	v.HandleKey("k", 10)
	if v.scrollOffset != 0 {
		t.Errorf("offset = %d, want 0 at the top", v.scrollOffset)
	}
}

func TestMessagesView_SelectionKeys(t *testing.T) {
	v := newTestMessagesView(5)

	v.HandleKey(" ", 20)
	if !v.Selection.IsSelected(0, 0) {
		t.Error("space should select the cursor message")
	}

	v.HandleKey("a", 20)
	if v.Selection.Count() != 5 {
		t.Errorf("count = %d, want 5", v.Selection.Count())
	}
	v.HandleKey("c", 20)
	if v.Selection.Count() != 0 {
		t.Errorf("count = %d, want 0", v.Selection.Count())
	}
}

func TestMessagesView_ReadOnlyIgnoresSelection(t *testing.T) {
	v := newTestMessagesView(5)
	v.ReadOnly = true
	v.HandleKey(" ", 20)
	v.HandleKey("a", 20)
	if v.Selection.Count() != 0 {
		t.Errorf("count = %d, want 0 in read-only mode", v.Selection.Count())
	}
}

func TestMessagesView_EmptyDisplay(t *testing.T) {
	v := NewMessagesView(nil)
	lines := v.DisplayLines(10, 40)
	if len(lines) != 1 || lines[0].Text() != "(No messages to display)" {
		t.Errorf("lines = %v", lines)
	}
}

func TestMessagesView_FooterCounter(t *testing.T) {
	v := newTestMessagesView(7)
	v.Cursor = 2

	lines := v.DisplayLines(15, 40)
	last := lines[len(lines)-1].Text()
	if !strings.Contains(last, "(3/7)") {
		t.Errorf("footer = %q, want the position counter", last)
	}
}

func TestMessagesView_SetMessagesGroupsByLog(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := base.Add(time.Hour)
	msgs := []chat.Message{
		{Role: chat.RoleUser, Content: "a", LogURI: "claude-code:one", Timestamp: &later},
		{Role: chat.RoleUser, Content: "b", LogURI: "claude-code:two", Timestamp: &base},
		{Role: chat.RoleUser, Content: "c", LogURI: "claude-code:one", Timestamp: &base},
	}

	v := NewMessagesView(nil)
	v.SetMessages(msgs)

	// Groups keep first-seen log order; within a group the messages
	// sort by timestamp.
	if v.Messages[0].Content != "c" || v.Messages[1].Content != "a" || v.Messages[2].Content != "b" {
		t.Errorf("order = %q %q %q", v.Messages[0].Content, v.Messages[1].Content, v.Messages[2].Content)
	}

	if v.separators[1] != "claude-code:one" {
		t.Errorf("separators = %v, want one after index 1", v.separators)
	}
	if v.separators[2] != "claude-code:two" {
		t.Errorf("separators = %v, want two after index 2", v.separators)
	}
}

func TestMessagesView_SingleLogNoSeparators(t *testing.T) {
	msgs := testMessages(3)
	for i := range msgs {
		msgs[i].LogURI = "claude-code:one"
	}
	v := NewMessagesView(nil)
	v.SetMessages(msgs)
	if len(v.separators) != 0 {
		t.Errorf("separators = %v, want none for a single log", v.separators)
	}
}

func TestLogSeparator(t *testing.T) {
	sep := logSeparator("claude-code:abc", 60)
	if len(sep) != 56 {
		t.Errorf("separator length = %d, want 56", len(sep))
	}
	if !strings.Contains(sep, " log_uri: claude-code:abc ") {
		t.Errorf("separator = %q", sep)
	}
	if !strings.HasPrefix(sep, ">") || !strings.HasSuffix(sep, "<") {
		t.Errorf("separator = %q, want >>> <<< fill", sep)
	}
}

func TestMessagesView_VisualBanner(t *testing.T) {
	v := newTestMessagesView(2)
	v.HandleKey("v", 20)

	lines := v.allLines(60)
	if lines[len(lines)-1].Text() != VisualModeBanner {
		t.Errorf("last line = %q, want the visual banner", lines[len(lines)-1].Text())
	}
}
