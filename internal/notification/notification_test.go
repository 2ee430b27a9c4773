package notification

import (
	"errors"
	"testing"

	"github.com/gen2brain/beeep"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
		icon    any
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
		icon    any
	}{title, message, icon})
	return m.err
}

// The package default must satisfy the seam type, so a drift between
// notifyFunc and the beeep signature fails to compile here.
var _ notifyFunc = beeep.Notify

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:        "successful notification",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:        "empty title",
			title:       "",
			message:     "Message with empty title",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "unicode content",
			title:       "通知",
			message:     "🎉 Notification with emoji",
			mockErr:     nil,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.title {
				t.Errorf("title = %q, want %q", call.title, tt.title)
			}
			if call.message != tt.message {
				t.Errorf("message = %q, want %q", call.message, tt.message)
			}
		})
	}
}

func TestChatStored(t *testing.T) {
	tests := []struct {
		name            string
		summary         string
		expectedTitle   string
		expectedMessage string
	}{
		{
			name:            "stored messages",
			summary:         "Stored 4 messages to abc1234",
			expectedTitle:   "Tigs",
			expectedMessage: "Stored 4 messages to abc1234",
		},
		{
			name:            "removed messages",
			summary:         "Removed messages from abc1234",
			expectedTitle:   "Tigs",
			expectedMessage: "Removed messages from abc1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			if err := ChatStored(tt.summary); err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.expectedTitle {
				t.Errorf("title = %q, want %q", call.title, tt.expectedTitle)
			}
			if call.message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", call.message, tt.expectedMessage)
			}
		})
	}
}
