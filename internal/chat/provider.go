package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tigs-dev/tigs/internal/logger"
)

// providerAliases maps short names users type to canonical provider names.
var providerAliases = map[string]string{
	"claude":      "claude-code",
	"claude-code": "claude-code",
	"codex":       "codex-cli",
	"codex-cli":   "codex-cli",
	"gemini":      "gemini-cli",
	"gemini-cli":  "gemini-cli",
	"qwen":        "qwen-code",
	"qwen-code":   "qwen-code",
}

// providerLabels are the short display names shown in the logs pane.
var providerLabels = map[string]string{
	"claude-code": "Claude",
	"codex-cli":   "Codex",
	"gemini-cli":  "Gemini",
	"qwen-code":   "Qwen",
}

// DefaultProviderOrder is the canonical order when "all" is requested.
var DefaultProviderOrder = []string{"claude-code", "codex-cli", "gemini-cli", "qwen-code"}

// Canonical resolves a provider name or alias to its canonical form.
// Returns "" for names that are not known providers.
func Canonical(name string) string {
	return providerAliases[strings.ToLower(strings.TrimSpace(name))]
}

// Label returns the display label for a canonical provider name.
func Label(provider string) string {
	if l, ok := providerLabels[provider]; ok {
		return l
	}
	words := strings.Split(strings.ReplaceAll(provider, "-", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// LogInfo describes one session log available from a provider.
type LogInfo struct {
	URI      string // provider-prefixed, e.g. "claude-code:4f6e..."
	Provider string
	Label    string
	Modified time.Time
}

// Provider reads session logs for one AI CLI tool.
type Provider interface {
	Name() string
	ListLogs(ctx context.Context) ([]LogInfo, error)
	Parse(ctx context.Context, rawURI string) ([]Message, error)
}

// providerFactories builds the providers that have native readers.
// Providers listed in the alias table but absent here are recognized
// names whose log format has no reader yet; configuring one yields a
// warning rather than an error.
var providerFactories = map[string]func() (Provider, error){
	"claude-code": func() (Provider, error) { return NewClaudeProvider() },
}

// MultiParser aggregates session logs across the configured providers.
type MultiParser struct {
	order    []string
	byName   map[string]Provider
	warnings []string
}

// NewMultiParser builds a parser for the given provider names or aliases.
// Unknown or unavailable providers are skipped with a warning.
func NewMultiParser(names []string) *MultiParser {
	p := &MultiParser{byName: make(map[string]Provider)}

	var unique []string
	seen := make(map[string]bool)
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			for _, canonical := range DefaultProviderOrder {
				if !seen[canonical] {
					unique = append(unique, canonical)
					seen[canonical] = true
				}
			}
			continue
		}
		canonical := Canonical(name)
		if canonical == "" {
			p.warnings = append(p.warnings, fmt.Sprintf("Unknown provider '%s' ignored", name))
			continue
		}
		if !seen[canonical] {
			unique = append(unique, canonical)
			seen[canonical] = true
		}
	}

	if len(unique) == 0 {
		p.warnings = append(p.warnings, "No valid chat providers configured")
		return p
	}

	for _, name := range unique {
		factory, ok := providerFactories[name]
		if !ok {
			p.warnings = append(p.warnings, fmt.Sprintf("Provider '%s' has no log reader", name))
			continue
		}
		provider, err := factory()
		if err != nil {
			p.warnings = append(p.warnings, fmt.Sprintf("Failed to initialize provider '%s': %v", name, err))
			continue
		}
		p.order = append(p.order, name)
		p.byName[name] = provider
	}

	if len(p.order) == 0 {
		p.warnings = append(p.warnings, "Failed to initialize any chat providers")
	}
	return p
}

// Warnings returns any problems encountered while configuring providers.
func (p *MultiParser) Warnings() []string {
	return p.warnings
}

// HasProviders reports whether at least one provider initialized.
func (p *MultiParser) HasProviders() bool {
	return len(p.order) > 0
}

// Providers returns the canonical names of the active providers.
func (p *MultiParser) Providers() []string {
	return append([]string{}, p.order...)
}

// WatchDirs returns the directories holding the active providers'
// session files, for filesystem watching.
func (p *MultiParser) WatchDirs() []string {
	var dirs []string
	for _, name := range p.order {
		if wd, ok := p.byName[name].(interface{ ProjectDir() string }); ok {
			dirs = append(dirs, wd.ProjectDir())
		}
	}
	return dirs
}

// ListLogs returns all available session logs across providers, newest
// first. Provider errors are logged and skipped so one broken provider
// does not hide the others.
func (p *MultiParser) ListLogs(ctx context.Context) []LogInfo {
	var logs []LogInfo
	for _, name := range p.order {
		provider := p.byName[name]
		providerLogs, err := provider.ListLogs(ctx)
		if err != nil {
			logger.Warn("Chat: provider %s failed to list logs: %v", name, err)
			continue
		}
		logs = append(logs, providerLogs...)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Modified.After(logs[j].Modified)
	})
	return logs
}

// Parse reads the messages of a provider-prefixed log URI. Each message
// comes back tagged with its provider and prefixed log URI.
func (p *MultiParser) Parse(ctx context.Context, uri string) ([]Message, error) {
	name, raw, err := p.splitURI(uri)
	if err != nil {
		return nil, err
	}

	messages, err := p.byName[name].Parse(ctx, raw)
	if err != nil {
		return nil, err
	}

	for i := range messages {
		messages[i].Provider = name
		messages[i].LogURI = PrefixURI(name, raw)
	}
	return messages, nil
}

// PrefixURI prepends the provider name to a raw log URI unless it is
// already prefixed.
func PrefixURI(provider, rawURI string) string {
	if strings.HasPrefix(rawURI, provider+":") {
		return rawURI
	}
	return provider + ":" + rawURI
}

// splitURI separates a provider-prefixed URI. A bare URI falls through to
// the first configured provider.
func (p *MultiParser) splitURI(uri string) (string, string, error) {
	if !strings.Contains(uri, ":") {
		if len(p.order) == 0 {
			return "", "", fmt.Errorf("log URI must include provider prefix (e.g. 'claude-code:session')")
		}
		return p.order[0], uri, nil
	}

	prefix, raw, _ := strings.Cut(uri, ":")
	canonical := Canonical(prefix)
	if _, ok := p.byName[canonical]; !ok {
		return "", "", fmt.Errorf("unknown provider prefix '%s'", prefix)
	}
	return canonical, raw, nil
}
