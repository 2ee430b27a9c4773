package ui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/tigs-dev/tigs/internal/chat"
	"github.com/tigs-dev/tigs/internal/clipboard"
	"github.com/tigs-dev/tigs/internal/config"
	"github.com/tigs-dev/tigs/internal/git"
	"github.com/tigs-dev/tigs/internal/keys"
	"github.com/tigs-dev/tigs/internal/logger"
	"github.com/tigs-dev/tigs/internal/notification"
)

// Pane focus order in the store app.
const (
	focusCommits = iota
	focusMessages
	focusLogs
	paneCount
)

// logsChangedMsg is posted when the filesystem watcher sees session
// log activity.
type logsChangedMsg struct{}

// statusTickMsg triggers a redraw so expired status messages clear
// without waiting for a keystroke.
type statusTickMsg struct{}

// StoreModel is the `tigs store` TUI: commits, messages, and logs
// panes, with Enter attaching the selected messages to the selected
// commit as a git note.
type StoreModel struct {
	repo   *git.Repo
	cfg    *config.Config
	parser *chat.MultiParser

	commits  *CommitsView
	messages *MessagesView
	logs     *LogsView

	layout    Layout
	statusBar *StatusBar
	watcher   *chat.Watcher

	focus  int
	width  int
	height int

	confirm        *huh.Form
	confirmValue   bool
	pendingSHA     string
	pendingSummary string
}

// NewStoreModel builds the store app over a repository and config.
func NewStoreModel(repo *git.Repo, cfg *config.Config) *StoreModel {
	parser := chat.NewMultiParser(cfg.EffectiveProviders())
	for _, w := range parser.Warnings() {
		logger.Warn("Store: %s", w)
	}

	m := &StoreModel{
		repo:      repo,
		cfg:       cfg,
		parser:    parser,
		commits:   NewCommitsView(repo, cfg.GetCommitLimit(), false),
		messages:  NewMessagesView(parser),
		logs:      NewLogsView(parser),
		statusBar: NewStatusBar(),
		watcher:   chat.NewWatcher(parser.WatchDirs()),
	}

	if !parser.HasProviders() {
		if warnings := parser.Warnings(); len(warnings) > 0 {
			m.statusBar.SetMessage(warnings[0])
		}
	}

	m.logs.Load()
	if uri := m.logs.SelectedURI(); uri != "" {
		m.messages.LoadLog(uri)
		m.syncStoredSelection()
	}
	return m
}

// Init starts the log watcher.
func (m *StoreModel) Init() tea.Cmd {
	go m.watcher.Run()
	return tea.Batch(m.waitForLogChange(), statusTick())
}

func (m *StoreModel) waitForLogChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.watcher.Events; !ok {
			return nil
		}
		return logsChangedMsg{}
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// Update handles one message.
func (m *StoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.Invalidate()
		m.statusBar.SetWidth(msg.Width)
		m.messages.ScrollToCursor()
		return m, nil

	case statusTickMsg:
		return m, statusTick()

	case logsChangedMsg:
		m.logs.Load()
		if uri := m.logs.SelectedURI(); uri != "" && uri != m.messages.CurrentLogURI {
			m.messages.LoadLog(uri)
			m.syncStoredSelection()
		}
		return m, m.waitForLogChange()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m *StoreModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	key := msg.String()

	if m.commits.IsSearching() {
		switch key {
		case keys.Enter:
			m.commits.ApplySearch()
			m.refreshDependentPanes()
		case keys.Escape:
			m.commits.CancelSearch()
		default:
			var cmd tea.Cmd
			*m.commits.SearchInput(), cmd = m.commits.SearchInput().Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key {
	case "q", "Q", keys.CtrlC:
		m.watcher.Stop()
		return m, tea.Quit

	case keys.Enter:
		return m.beginStore()

	case keys.Tab:
		m.focus = (m.focus + 1) % paneCount
		return m, nil

	case keys.ShiftTab:
		m.focus = (m.focus + paneCount - 1) % paneCount
		return m, nil
	}

	switch m.focus {
	case focusCommits:
		switch key {
		case "/":
			m.commits.StartSearch()
		case "y":
			m.copyCursorSHA()
		default:
			if m.commits.HandleKey(key, m.paneHeight()) {
				m.syncStoredSelection()
			}
		}

	case focusMessages:
		m.messages.HandleKey(key, m.paneHeight())

	case focusLogs:
		if m.logs.HandleKey(key) {
			if uri := m.logs.SelectedURI(); uri != "" {
				m.messages.LoadLog(uri)
				m.syncStoredSelection()
			}
		}
	}
	return m, nil
}

func (m *StoreModel) paneHeight() int {
	return m.height - StatusBarHeight
}

func (m *StoreModel) copyCursorSHA() {
	sha := m.commits.CursorSHA()
	if sha == "" {
		return
	}
	if err := clipboard.WriteText(sha); err != nil {
		m.statusBar.SetMessage("Error: clipboard unavailable")
		return
	}
	m.statusBar.SetMessage(fmt.Sprintf("Copied %s", sha[:7]))
}

// beginStore validates the selection and either runs the store
// operation or raises the overwrite confirmation first.
func (m *StoreModel) beginStore() (tea.Model, tea.Cmd) {
	selected := m.commits.SelectedSHAs()
	if len(selected) == 0 {
		m.statusBar.SetMessage("Error: No commit selected")
		return m, nil
	}
	if m.logs.SelectedURI() == "" {
		m.statusBar.SetMessage("Error: No log selected")
		return m, nil
	}

	sha := selected[0]

	if m.wouldReplaceStored(sha) {
		m.pendingSHA = sha
		m.confirmValue = false
		m.confirm = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Replace stored messages on %s?", sha[:7])).
				Description("This commit already has messages stored for the selected log.").
				Affirmative("Replace").
				Negative("Cancel").
				Value(&m.confirmValue),
		)).WithTheme(huh.ThemeFunc(huh.ThemeBase))
		return m, m.confirm.Init()
	}

	m.performStore(sha)
	return m, nil
}

func (m *StoreModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}
	if m.confirm.State == huh.StateCompleted {
		sha := m.pendingSHA
		m.confirm = nil
		m.pendingSHA = ""
		if m.confirmValue {
			m.performStore(sha)
		}
		return m, nil
	}
	return m, cmd
}

// wouldReplaceStored reports whether the commit already has stored
// messages for the currently selected log.
func (m *StoreModel) wouldReplaceStored(sha string) bool {
	content, err := m.repo.ShowChat(context.Background(), sha)
	if err != nil {
		return false
	}
	stored, err := chat.Decompose(content)
	if err != nil {
		return false
	}
	uri := m.logs.SelectedURI()
	for _, msg := range stored.Messages {
		if msg.LogURI == uri {
			return true
		}
	}
	return false
}

// performStore rewrites the current log's messages in the commit's
// stored chat and reports the outcome on the status bar.
func (m *StoreModel) performStore(sha string) {
	uri := m.logs.SelectedURI()
	count := m.messages.Selection.Count()

	changed, err := m.storeMessages(sha, uri)
	switch {
	case err != nil:
		m.statusBar.SetMessage(fmt.Sprintf("Error: %s: %v", sha[:7], err))
		return
	case !changed:
		m.statusBar.SetMessage(fmt.Sprintf("No changes made to %s", sha[:7]))
		return
	case count > 0:
		m.statusBar.SetMessage(fmt.Sprintf("Stored %d messages → %s (log: %s)", count, sha[:7], uri))
	default:
		m.statusBar.SetMessage(fmt.Sprintf("Removed messages from %s (log: %s)", sha[:7], uri))
	}

	if m.cfg.GetNotificationsEnabled() {
		summary := fmt.Sprintf("Stored %d messages to %s", count, sha[:7])
		if count == 0 {
			summary = fmt.Sprintf("Removed messages from %s", sha[:7])
		}
		if err := notification.ChatStored(summary); err != nil {
			logger.Debug("Store: notification failed: %v", err)
		}
	}

	m.commits.Selection.Clear()
	m.messages.Selection.Clear()
	m.commits.Load()
}

// storeMessages merges the selected messages into the commit's chat:
// messages from other logs are kept, the current log's messages are
// replaced by the selection, and an empty result removes the note.
func (m *StoreModel) storeMessages(sha, uri string) (bool, error) {
	ctx := context.Background()

	existing, err := m.repo.ShowChat(ctx, sha)
	if err != nil && !errors.Is(err, git.ErrNoChat) {
		return false, err
	}
	hadChat := err == nil

	var kept []chat.Message
	if hadChat {
		if stored, derr := chat.Decompose(existing); derr == nil {
			for _, msg := range stored.Messages {
				if msg.LogURI != uri {
					kept = append(kept, msg)
				}
			}
		}
	}

	for _, idx := range m.messages.SelectedIndices() {
		if idx < len(m.messages.Messages) {
			kept = append(kept, m.messages.Messages[idx])
		}
	}

	if len(kept) == 0 {
		if hadChat {
			if _, err := m.repo.RemoveChat(ctx, sha); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}

	content, err := chat.Compose(kept)
	if err != nil {
		return false, err
	}
	if _, err := m.repo.AddChat(ctx, sha, content, hadChat); err != nil {
		return false, err
	}
	return true, nil
}

var trailingSpaceRe = regexp.MustCompile(`[ \t]+$`)

// normalizeContent strips line-ending and trailing-space differences
// so stored messages match their live counterparts.
func normalizeContent(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n"), "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = trailingSpaceRe.ReplaceAllString(l, "")
	}
	return strings.Join(lines, "\n")
}

// syncStoredSelection pre-selects the messages already stored on the
// selected commit for the active log, matching by role and normalized
// content.
func (m *StoreModel) syncStoredSelection() {
	if len(m.messages.Messages) == 0 {
		return
	}
	m.messages.Selection.Clear()

	selected := m.commits.SelectedSHAs()
	if len(selected) == 0 {
		return
	}
	uri := m.logs.SelectedURI()
	if uri == "" {
		return
	}

	content, err := m.repo.ShowChat(context.Background(), selected[0])
	if err != nil {
		return
	}
	stored, err := chat.Decompose(content)
	if err != nil {
		return
	}

	for _, sm := range stored.Messages {
		if sm.LogURI != uri {
			continue
		}
		want := normalizeContent(sm.Content)
		for i, cm := range m.messages.Messages {
			if cm.LogURI != uri || cm.Role != sm.Role {
				continue
			}
			if normalizeContent(cm.Content) == want {
				m.messages.Selection.Selected[i] = true
				break
			}
		}
	}
}

// refreshDependentPanes re-syncs selection state after the commit list
// changes under a search filter.
func (m *StoreModel) refreshDependentPanes() {
	m.syncStoredSelection()
}

func (m *StoreModel) contextualHelp() string {
	base := "Tab: switch | Enter: store | q: quit"
	switch m.focus {
	case focusCommits:
		return "Space: select | /: search | y: copy sha | " + base
	case focusMessages:
		return "Space: select | ↑/↓: jump messages | j/k: scroll | " + base
	case focusLogs:
		return "↑/↓: navigate | " + base
	}
	return base
}

// View renders the three panes over the status bar, or a resize prompt
// when the terminal is under the minimum size.
func (m *StoreModel) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		v.SetContent(resizePrompt(m.width, m.height))
		return v
	}

	paneHeight := m.paneHeight()
	logCount := len(m.logs.Logs)

	var commitWidth, messageWidth, logWidth int
	if m.layout.NeedsRecalculation(m.width, logCount) {
		commitWidth, messageWidth, logWidth = m.layout.ColumnWidths(m.width, logCount, false)
	} else {
		commitWidth, messageWidth, logWidth = m.layout.CachedWidths()
	}

	panes := []string{
		DrawPane(commitWidth, paneHeight, "Commits", m.focus == focusCommits, m.commits.DisplayLines(paneHeight, commitWidth)),
		DrawPane(messageWidth, paneHeight, "Messages", m.focus == focusMessages, m.messages.DisplayLines(paneHeight, messageWidth)),
	}
	if logWidth >= 2 {
		panes = append(panes, DrawPane(logWidth, paneHeight, "Logs", m.focus == focusLogs, m.logs.DisplayLines(paneHeight, logWidth)))
	}

	var bottom string
	if m.commits.IsSearching() {
		bottom = "/" + m.commits.SearchInput().View()
	} else {
		bottom = m.statusBar.View(m.contextualHelp(), m.width, m.height)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		bottom,
	)

	if m.confirm != nil {
		v.SetContent(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View()))
		return v
	}

	v.SetContent(content)
	return v
}

// resizePrompt is shown instead of panes when the terminal is too small.
func resizePrompt(width, height int) string {
	return fmt.Sprintf(
		"Terminal too small!\n\nRequired: %dx%d\nCurrent:  %dx%d\n\nPlease resize terminal\nor press 'q' to quit",
		MinTerminalWidth, MinTerminalHeight, width, height,
	)
}
