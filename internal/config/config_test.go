package config

import (
	"testing"
)

func TestConfig_EffectiveProviders_Default(t *testing.T) {
	t.Setenv(ProvidersEnvVar, "")

	cfg := &Config{}
	got := cfg.EffectiveProviders()
	if len(got) != 1 || got[0] != "claude" {
		t.Errorf("Expected default [claude], got %v", got)
	}
}

func TestConfig_EffectiveProviders_FromConfig(t *testing.T) {
	t.Setenv(ProvidersEnvVar, "")

	cfg := &Config{Providers: []string{"claude-code", "codex-cli"}}
	got := cfg.EffectiveProviders()
	if len(got) != 2 || got[0] != "claude-code" || got[1] != "codex-cli" {
		t.Errorf("Expected configured providers, got %v", got)
	}

	// The returned slice must be a copy
	got[0] = "mutated"
	if cfg.Providers[0] != "claude-code" {
		t.Error("EffectiveProviders should return a copy, not the backing slice")
	}
}

func TestConfig_EffectiveProviders_EnvOverride(t *testing.T) {
	t.Setenv(ProvidersEnvVar, "gemini, qwen ,")

	cfg := &Config{Providers: []string{"claude"}}
	got := cfg.EffectiveProviders()
	if len(got) != 2 || got[0] != "gemini" || got[1] != "qwen" {
		t.Errorf("Expected env providers [gemini qwen], got %v", got)
	}
}

func TestConfig_CommitLimit(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetCommitLimit(); got != DefaultCommitLimit {
		t.Errorf("Expected default limit %d, got %d", DefaultCommitLimit, got)
	}

	cfg.SetCommitLimit(200)
	if got := cfg.GetCommitLimit(); got != 200 {
		t.Errorf("Expected limit 200, got %d", got)
	}

	cfg.SetCommitLimit(0)
	if got := cfg.GetCommitLimit(); got != DefaultCommitLimit {
		t.Errorf("Expected default limit after reset, got %d", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"empty config", &Config{}, false},
		{"valid providers", &Config{Providers: []string{"claude", "codex"}}, false},
		{"blank provider", &Config{Providers: []string{"claude", "  "}}, true},
		{"negative limit", &Config{CommitLimit: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Notifications(t *testing.T) {
	cfg := &Config{}
	if cfg.GetNotificationsEnabled() {
		t.Error("Notifications should default to disabled")
	}
	cfg.SetNotificationsEnabled(true)
	if !cfg.GetNotificationsEnabled() {
		t.Error("Notifications should be enabled after SetNotificationsEnabled(true)")
	}
}
