// Package config manages the tigs configuration file at ~/.tigs/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultCommitLimit is how many commits the TUIs load when no limit is
// configured.
const DefaultCommitLimit = 50

// ProvidersEnvVar overrides the configured chat providers when set. Its
// value is a comma-separated list of provider names or aliases.
const ProvidersEnvVar = "TIGS_CHAT_PROVIDERS"

// Config holds the application configuration
type Config struct {
	Providers            []string `json:"providers,omitempty"`             // Chat providers to read session logs from
	NotificationsEnabled bool     `json:"notifications_enabled,omitempty"` // Desktop notifications when a chat is stored
	CommitLimit          int      `json:"commit_limit,omitempty"`          // Max commits to load in the TUIs

	mu       sync.RWMutex
	filePath string
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tigs"), nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Providers: []string{},
		filePath:  path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Providers == nil {
		cfg.Providers = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.CommitLimit < 0 {
		return fmt.Errorf("commit_limit must not be negative, got %d", c.CommitLimit)
	}
	for _, p := range c.Providers {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("empty provider name found")
		}
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// EffectiveProviders returns the chat providers to use, in priority order:
// the TIGS_CHAT_PROVIDERS environment variable, then the config file, then
// the "claude" default.
func (c *Config) EffectiveProviders() []string {
	if env := os.Getenv(ProvidersEnvVar); env != "" {
		return splitProviderList(env)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.Providers) > 0 {
		out := make([]string, len(c.Providers))
		copy(out, c.Providers)
		return out
	}
	return []string{"claude"}
}

func splitProviderList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetProviders replaces the configured provider list
func (c *Config) SetProviders(providers []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Providers = append([]string{}, providers...)
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetCommitLimit returns the configured commit limit, or the default
func (c *Config) GetCommitLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.CommitLimit <= 0 {
		return DefaultCommitLimit
	}
	return c.CommitLimit
}

// SetCommitLimit sets the commit limit. Zero restores the default.
func (c *Config) SetCommitLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CommitLimit = limit
}
