package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tigs-dev/tigs/internal/logger"
)

// NotesRef is the notes namespace where chats are stored.
const NotesRef = "refs/notes/chats"

// ErrNoChat is returned when a commit has no chat attached.
var ErrNoChat = errors.New("no chat found for commit")

// ErrChatExists is returned by AddChat when the commit already has a chat
// and overwrite was not requested.
var ErrChatExists = errors.New("commit already has a chat")

// AddChat attaches chat content to a commit as a git note. Returns the
// resolved commit SHA. When overwrite is false and the commit already has
// a chat, ErrChatExists is returned.
func (r *Repo) AddChat(ctx context.Context, commit, content string, overwrite bool) (string, error) {
	sha, err := r.ResolveCommit(ctx, commit)
	if err != nil {
		return "", err
	}

	args := []string{"notes", "--ref=" + NotesRef, "add", "-m", content, sha}
	if overwrite {
		args = []string{"notes", "--ref=" + NotesRef, "add", "-f", "-m", content, sha}
	}
	if _, err := r.run(ctx, args...); err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "found existing notes") || strings.Contains(msg, "already has a note") {
			return "", fmt.Errorf("%w: %s", ErrChatExists, sha)
		}
		return "", fmt.Errorf("failed to add chat: %w", err)
	}

	logger.Debug("Git: added chat note to %s", sha)
	return sha, nil
}

// ShowChat returns the chat content attached to a commit, or ErrNoChat.
func (r *Repo) ShowChat(ctx context.Context, commit string) (string, error) {
	sha, err := r.ResolveCommit(ctx, commit)
	if err != nil {
		return "", err
	}

	out, err := r.run(ctx, "notes", "--ref="+NotesRef, "show", sha)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoChat, sha)
	}
	// git notes appends exactly one trailing newline, strip only that one
	return strings.TrimSuffix(out, "\n"), nil
}

// ListChats returns the SHAs of all commits that have chats attached.
func (r *Repo) ListChats(ctx context.Context) ([]string, error) {
	return r.listChatSHAs(ctx), nil
}

// listChatSHAs parses `git notes list` output. An empty notes ref is not
// an error, it just means no chats exist yet.
func (r *Repo) listChatSHAs(ctx context.Context) []string {
	out, err := r.run(ctx, "notes", "--ref="+NotesRef, "list")
	if err != nil {
		return nil
	}

	var shas []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		// Each line is "<note blob sha> <commit sha>"
		fields := strings.Fields(line)
		if len(fields) == 2 {
			shas = append(shas, fields[1])
		}
	}
	return shas
}

// RemoveChat removes the chat attached to a commit, or returns ErrNoChat.
func (r *Repo) RemoveChat(ctx context.Context, commit string) (string, error) {
	sha, err := r.ResolveCommit(ctx, commit)
	if err != nil {
		return "", err
	}

	if _, err := r.run(ctx, "notes", "--ref="+NotesRef, "remove", sha); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoChat, sha)
	}

	logger.Debug("Git: removed chat note from %s", sha)
	return sha, nil
}
