package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClaudeProvider reads Claude Code session logs. Sessions live at
// ~/.claude/projects/<encoded-cwd>/<uuid>.jsonl, one JSON entry per line.
type ClaudeProvider struct {
	projectDir string
}

// NewClaudeProvider builds a provider scoped to the current working
// directory's project.
func NewClaudeProvider() (*ClaudeProvider, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return NewClaudeProviderForPath(cwd)
}

// NewClaudeProviderForPath builds a provider scoped to the project
// containing the given directory.
func NewClaudeProviderForPath(path string) (*ClaudeProvider, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".claude", "projects", encodeProjectPath(path))
	return &ClaudeProvider{projectDir: dir}, nil
}

// encodeProjectPath converts an absolute path to Claude Code's project
// directory name: every character outside [A-Za-z0-9] becomes a dash.
func encodeProjectPath(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range filepath.Clean(path) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Name returns the canonical provider name.
func (p *ClaudeProvider) Name() string { return "claude-code" }

// ProjectDir returns the directory holding this project's session files.
// Used by the log watcher.
func (p *ClaudeProvider) ProjectDir() string { return p.projectDir }

// ListLogs returns the project's session logs, newest first. Session
// files are named by UUID; anything else in the directory is skipped.
func (p *ClaudeProvider) ListLogs(ctx context.Context) ([]LogInfo, error) {
	entries, err := os.ReadDir(p.projectDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var logs []LogInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		sessionID := strings.TrimSuffix(entry.Name(), ".jsonl")
		if _, err := uuid.Parse(sessionID); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logs = append(logs, LogInfo{
			URI:      PrefixURI(p.Name(), sessionID),
			Provider: p.Name(),
			Label:    Label(p.Name()),
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Modified.After(logs[j].Modified)
	})
	return logs, nil
}

// claudeEntry is one JSONL line of a session file. Only the fields tigs
// cares about are mapped.
type claudeEntry struct {
	Type        string `json:"type"`
	UUID        string `json:"uuid"`
	Timestamp   string `json:"timestamp"`
	IsSidechain bool   `json:"isSidechain"`
	IsMeta      bool   `json:"isMeta"`
	Message     struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
		Model   string          `json:"model"`
	} `json:"message"`
}

// Parse reads the user and assistant text messages of one session.
func (p *ClaudeProvider) Parse(ctx context.Context, sessionID string) ([]Message, error) {
	path := filepath.Join(p.projectDir, sessionID+".jsonl")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	var messages []Message

	scanner := bufio.NewScanner(f)
	// Session lines can be very long (tool outputs), bump past the 64KB default.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry claudeEntry
		if err := json.Unmarshal(line, &entry); err != nil || entry.UUID == "" {
			continue
		}
		if entry.IsSidechain || entry.IsMeta {
			continue
		}
		if entry.Type != "user" && entry.Type != "assistant" {
			continue
		}
		if entry.Type == "assistant" && entry.Message.Model == "<synthetic>" {
			continue
		}

		text := strings.TrimSpace(extractText(entry.Message.Content))
		if text == "" || isSystemText(text) {
			continue
		}

		role := RoleUser
		if entry.Type == "assistant" {
			role = RoleAssistant
		}
		msg := Message{Role: role, Content: text}
		if ts := parseTimestamp(entry.Timestamp); !ts.IsZero() {
			t := ts
			msg.Timestamp = &t
		}
		messages = append(messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// extractText flattens message content: either a plain JSON string or an
// array of content blocks whose text blocks are joined with newlines.
func extractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// isSystemText filters entries that carry tool plumbing rather than
// conversation: command output wrappers, reminders, and interruptions.
func isSystemText(text string) bool {
	for _, prefix := range []string{
		"<local-command-stdout>",
		"<local-command-stderr>",
		"<local-command-caveat>",
		"<command-name>",
		"<system-reminder>",
		"[Request interrupted by user",
	} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// parseTimestamp parses an ISO 8601 timestamp. Returns zero time on failure.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
