// Package chat implements the tigs.chat/v1 document format and the
// session-log providers that feed it.
package chat

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SchemaV1 identifies the chat document format stored in git notes.
const SchemaV1 = "tigs.chat/v1"

// Role is the speaker of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// validRole reports whether r is one of the three known roles.
func validRole(r Role) bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is a single chat message. Provider and LogURI record where the
// message came from so storing can rewrite one log's messages without
// touching those merged in from other logs.
type Message struct {
	Role      Role       `yaml:"role"`
	Content   string     `yaml:"content"`
	Provider  string     `yaml:"provider,omitempty"`
	LogURI    string     `yaml:"log_uri,omitempty"`
	Timestamp *time.Time `yaml:"timestamp,omitempty"`
}

// Chat is a parsed tigs.chat/v1 document.
type Chat struct {
	Schema   string    `yaml:"schema"`
	Messages []Message `yaml:"messages"`
}

// Compose serializes messages into a tigs.chat/v1 YAML document. Messages
// are ordered by timestamp; messages without one sort first, keeping their
// relative order.
func Compose(messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages selected for composition")
	}

	sorted := make([]Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].Timestamp, sorted[j].Timestamp
		if ti == nil {
			return tj != nil
		}
		if tj == nil {
			return false
		}
		return ti.Before(*tj)
	})

	doc := Chat{Schema: SchemaV1, Messages: sorted}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize chat: %w", err)
	}
	return string(out), nil
}

// Decompose parses a tigs.chat/v1 YAML document and validates it.
func Decompose(doc string) (*Chat, error) {
	var chat Chat
	if err := yaml.Unmarshal([]byte(doc), &chat); err != nil {
		return nil, fmt.Errorf("invalid YAML format: %w", err)
	}

	if chat.Schema != SchemaV1 {
		return nil, fmt.Errorf("expected schema %q, got %q", SchemaV1, chat.Schema)
	}

	for i := range chat.Messages {
		m := &chat.Messages[i]
		m.Role = Role(strings.ToLower(string(m.Role)))
		if m.Role == "" {
			return nil, fmt.Errorf("message %d must have a role", i)
		}
		if !validRole(m.Role) {
			return nil, fmt.Errorf("message %d has invalid role %q", i, m.Role)
		}
		m.Content = strings.TrimSpace(m.Content)
	}

	return &chat, nil
}
