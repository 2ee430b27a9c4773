// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/tigs-dev/tigs/internal/logger"
)

// notifyFunc mirrors beeep.Notify so tests can substitute a mock.
type notifyFunc func(title, message string, icon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification delivery function. For tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the default beeep-based delivery.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	// Use empty string for icon - beeep handles platform defaults
	err := notifier(title, message, "")
	if err != nil {
		logger.Debug("Notification: Failed to send: %v", err)
	}
	return err
}

// ChatStored sends a notification that a chat was attached to a commit.
func ChatStored(summary string) error {
	return Send("Tigs", summary)
}
