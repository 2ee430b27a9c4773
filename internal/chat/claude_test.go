package chat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleSession = `{"type":"user","uuid":"u1","timestamp":"2026-03-01T10:00:00Z","message":{"role":"user","content":"fix the bug"}}
{"type":"assistant","uuid":"a1","timestamp":"2026-03-01T10:00:05Z","message":{"role":"assistant","model":"m","content":[{"type":"text","text":"Looking at it"},{"type":"tool_use","id":"t1","name":"Read"}]}}
{"type":"user","uuid":"u2","isMeta":true,"message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1","content":"file contents"}]}}
{"type":"user","uuid":"u3","timestamp":"2026-03-01T10:01:00Z","message":{"role":"user","content":"<system-reminder>ignore me</system-reminder>"}}
{"type":"assistant","uuid":"a2","timestamp":"2026-03-01T10:01:05Z","message":{"role":"assistant","model":"<synthetic>","content":"synthetic"}}
{"type":"user","uuid":"u4","isSidechain":true,"message":{"role":"user","content":"sidechain"}}
{"type":"summary","uuid":"s1"}
not json at all
{"type":"assistant","uuid":"a3","timestamp":"2026-03-01T10:02:00Z","message":{"role":"assistant","model":"m","content":"Fixed it"}}
`

func writeSession(t *testing.T, dir, sessionID, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, sessionID+".jsonl"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write session file: %v", err)
	}
}

func TestClaudeProvider_Parse(t *testing.T) {
	dir := t.TempDir()
	sessionID := "4f6e1c7a-0000-4000-8000-000000000001"
	writeSession(t, dir, sessionID, sampleSession)

	p := &ClaudeProvider{projectDir: dir}
	messages, err := p.Parse(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Expect: user "fix the bug", assistant "Looking at it", assistant "Fixed it".
	// Meta, sidechain, synthetic, reminder, summary, and junk lines are dropped.
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d: %+v", len(messages), messages)
	}
	if messages[0].Role != RoleUser || messages[0].Content != "fix the bug" {
		t.Errorf("messages[0] = %+v", messages[0])
	}
	if messages[1].Role != RoleAssistant || messages[1].Content != "Looking at it" {
		t.Errorf("messages[1] = %+v", messages[1])
	}
	if messages[2].Content != "Fixed it" {
		t.Errorf("messages[2] = %+v", messages[2])
	}
	if messages[0].Timestamp == nil || messages[0].Timestamp.IsZero() {
		t.Error("Timestamps should be parsed")
	}
}

func TestClaudeProvider_Parse_MissingSession(t *testing.T) {
	p := &ClaudeProvider{projectDir: t.TempDir()}
	if _, err := p.Parse(context.Background(), "no-such-session"); err == nil {
		t.Error("Parse should fail for a missing session file")
	}
}

func TestClaudeProvider_ListLogs(t *testing.T) {
	dir := t.TempDir()

	older := "4f6e1c7a-0000-4000-8000-000000000001"
	newer := "4f6e1c7a-0000-4000-8000-000000000002"
	writeSession(t, dir, older, sampleSession)
	writeSession(t, dir, newer, sampleSession)

	// Not UUID-named, must be skipped
	writeSession(t, dir, "notes", "{}")

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(dir, older+".jsonl"), past, past); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	p := &ClaudeProvider{projectDir: dir}
	logs, err := p.ListLogs(context.Background())
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("Expected 2 logs, got %d", len(logs))
	}
	if !strings.HasSuffix(logs[0].URI, newer) {
		t.Errorf("Newest log should be first, got %q", logs[0].URI)
	}
	if logs[0].Provider != "claude-code" || logs[0].Label != "Claude" {
		t.Errorf("Log metadata = %+v", logs[0])
	}
	if !logs[0].Modified.After(logs[1].Modified) {
		t.Error("Logs should be sorted newest first")
	}
}

func TestClaudeProvider_ListLogs_MissingDir(t *testing.T) {
	p := &ClaudeProvider{projectDir: filepath.Join(t.TempDir(), "nope")}
	logs, err := p.ListLogs(context.Background())
	if err != nil {
		t.Fatalf("Missing project dir should not be an error, got %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("Expected no logs, got %d", len(logs))
	}
}

func TestEncodeProjectPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/Users/kyle/Code/proj", "-Users-kyle-Code-proj"},
		{"/Users/kyle/.config/nvim", "-Users-kyle--config-nvim"},
		{"/home/dev/my.project_name", "-home-dev-my-project-name"},
	}

	for _, tt := range tests {
		if got := encodeProjectPath(tt.path); got != tt.want {
			t.Errorf("encodeProjectPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
