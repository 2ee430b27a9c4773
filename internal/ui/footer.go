package ui

import (
	"fmt"
	"strings"
	"time"
)

// FormatCounter renders the "(position/total)" footer for a list pane,
// right-aligned within the pane's usable width (pane width minus the
// border and padding columns) and truncated when it cannot fit.
func FormatCounter(cursor, total, paneWidth int) string {
	status := fmt.Sprintf("(%d/%d)", cursor+1, total)

	usable := paneWidth - 4
	if usable < 1 {
		usable = 1
	}
	if len(status) > usable {
		status = status[:usable]
	}

	padding := usable - len(status)
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat(" ", padding) + status
}

// statusMessageTTL is how long a transient status message stays up
// before the bar falls back to contextual help.
const statusMessageTTL = 5 * time.Second

// StatusBar is the reverse-video bottom line: contextual help for the
// focused pane, overridden by transient status messages, with a size
// warning when the terminal nears the minimum.
type StatusBar struct {
	width   int
	message string
	setAt   time.Time

	now func() time.Time // test seam
}

// NewStatusBar builds an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{now: time.Now}
}

// SetWidth sets the render width.
func (b *StatusBar) SetWidth(width int) { b.width = width }

// SetMessage shows a transient message for the next few seconds.
func (b *StatusBar) SetMessage(msg string) {
	b.message = msg
	b.setAt = b.now()
}

// ClearMessage drops any transient message immediately.
func (b *StatusBar) ClearMessage() {
	b.message = ""
}

// Message returns the active transient message, or "" if none or expired.
func (b *StatusBar) Message() string {
	if b.message == "" {
		return ""
	}
	if b.now().Sub(b.setAt) >= statusMessageTTL {
		b.message = ""
		return ""
	}
	return b.message
}

// View renders the bar: the transient message if fresh, otherwise the
// given contextual help, plus a size warning when near the minimum.
func (b *StatusBar) View(help string, termWidth, termHeight int) string {
	text := b.Message()
	if text == "" {
		text = help
	}

	if termWidth < MinTerminalWidth+10 || termHeight < MinTerminalHeight+5 {
		text += fmt.Sprintf(" | Size: %dx%d (min: %dx%d)", termWidth, termHeight, MinTerminalWidth, MinTerminalHeight)
	}

	if b.width > 0 {
		if len(text) > b.width-1 {
			text = text[:b.width-1]
		}
		text += strings.Repeat(" ", b.width-len(text))
	}
	return StatusBarStyle.Render(text)
}
