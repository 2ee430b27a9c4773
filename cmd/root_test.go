package cmd

import (
	"strings"
	"testing"
)

func TestCommitArg(t *testing.T) {
	if got := commitArg(nil); got != "HEAD" {
		t.Errorf("commitArg(nil) = %q, want HEAD", got)
	}
	if got := commitArg([]string{"abc123"}); got != "abc123" {
		t.Errorf("commitArg = %q, want abc123", got)
	}
}

func TestVersionTemplate(t *testing.T) {
	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "tigs 1.2.3\n" {
		t.Errorf("versionTemplate = %q", got)
	}

	SetVersionInfo("1.2.3", "deadbeef", "2025-06-01")
	got := versionTemplate()
	if !strings.Contains(got, "deadbeef") || !strings.Contains(got, "2025-06-01") {
		t.Errorf("versionTemplate = %q, want commit and date", got)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"store", "view", "add-chat", "show-chat", "list-chats", "remove-chat"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
