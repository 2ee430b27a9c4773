// Package git wraps the git command line for the repository operations
// tigs needs: commit listing, commit details, and the chat notes store.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tigs-dev/tigs/internal/logger"
)

// Commit is one entry from the commit log.
type Commit struct {
	SHA     string
	Subject string
	Author  string
	Time    time.Time
	HasChat bool
}

// Repo is a handle to a local git repository.
type Repo struct {
	path string
}

// Open verifies that path is inside a git repository and returns a handle.
func Open(path string) (*Repo, error) {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = path
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("not a git repository: %s", path)
	}
	return &Repo{path: path}, nil
}

// Path returns the repository path the handle was opened with.
func (r *Repo) Path() string {
	return r.path
}

// run executes a git command in the repository and returns its stdout.
// stderr is folded into the returned error.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.path
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return string(out), nil
}

// ResolveCommit resolves a ref (HEAD, branch name, abbreviated SHA) to a
// full commit SHA.
func (r *Repo) ResolveCommit(ctx context.Context, ref string) (string, error) {
	out, err := r.run(ctx, "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("invalid commit: %s", ref)
	}
	return strings.TrimSpace(out), nil
}

// ListCommits returns up to limit commits in date order, newest first.
// Each commit is marked with whether it has a chat attached.
func (r *Repo) ListCommits(ctx context.Context, limit int) ([]Commit, error) {
	out, err := r.run(ctx, "log", "--oneline", "--date-order",
		fmt.Sprintf("-%d", limit), "--format=%H|%s|%an|%at")
	if err != nil {
		return nil, err
	}

	withChats := make(map[string]bool)
	for _, sha := range r.listChatSHAs(ctx) {
		withChats[sha] = true
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 4)
		if len(parts) != 4 {
			logger.Warn("Git: skipping malformed log line: %q", line)
			continue
		}
		c := Commit{
			SHA:     parts[0],
			Subject: parts[1],
			Author:  parts[2],
			HasChat: withChats[parts[0]],
		}
		if secs, err := strconv.ParseInt(parts[3], 10, 64); err == nil {
			c.Time = time.Unix(secs, 0)
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// CommitDetails returns the formatted detail lines for a commit: the
// header (with the author date relabeled and committer fields dropped),
// a Refs line when branches or tags point at the commit, the message,
// and the diffstat.
func (r *Repo) CommitDetails(ctx context.Context, sha string) ([]string, error) {
	out, err := r.run(ctx, "show", "--stat", "--format=fuller", sha)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(out, "\n")
	var formatted []string

	inHeader := true
	inMessage := false
	var message []string

	for _, line := range lines {
		switch {
		case inHeader:
			switch {
			case strings.HasPrefix(line, "Commit:"), strings.HasPrefix(line, "CommitDate:"):
				// Only the author side is shown
			case strings.HasPrefix(line, "AuthorDate:"):
				formatted = append(formatted, strings.Replace(line, "AuthorDate:", "Date:", 1))
			case line == "":
				inHeader = false
				inMessage = true
				formatted = append(formatted, "")
			default:
				formatted = append(formatted, line)
			}
		case inMessage:
			// The diffstat section starts at the first non-indented line
			// containing a pipe.
			if line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") && strings.Contains(line, "|") {
				inMessage = false
				formatted = append(formatted, message...)
				formatted = append(formatted, "", line)
				message = nil
			} else {
				message = append(message, line)
			}
		default:
			formatted = append(formatted, line)
		}
	}
	if inMessage && len(message) > 0 {
		formatted = append(formatted, message...)
	}

	if refs := r.refsFor(ctx, sha); len(refs) > 0 {
		for i, line := range formatted {
			if strings.HasPrefix(line, "commit ") {
				refsLine := "Refs: " + strings.Join(refs, ", ")
				formatted = append(formatted[:i+1], append([]string{refsLine}, formatted[i+1:]...)...)
				break
			}
		}
	}

	return formatted, nil
}

// refsFor returns decorated ref names pointing at the commit: [branch],
// <tag>, and {remote/branch}.
func (r *Repo) refsFor(ctx context.Context, sha string) []string {
	out, err := r.run(ctx, "show-ref", "--dereference")
	if err != nil {
		return nil
	}

	var refs []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, sha) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSuffix(parts[1], "^{}")
		switch {
		case strings.HasPrefix(name, "refs/heads/"):
			refs = append(refs, "["+strings.TrimPrefix(name, "refs/heads/")+"]")
		case strings.HasPrefix(name, "refs/tags/"):
			refs = append(refs, "<"+strings.TrimPrefix(name, "refs/tags/")+">")
		case strings.HasPrefix(name, "refs/remotes/"):
			refs = append(refs, "{"+strings.TrimPrefix(name, "refs/remotes/")+"}")
		}
	}
	return refs
}
