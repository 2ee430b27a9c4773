package ui

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tigs-dev/tigs/internal/chat"
	"github.com/tigs-dev/tigs/internal/clipboard"
	"github.com/tigs-dev/tigs/internal/config"
	"github.com/tigs-dev/tigs/internal/git"
	"github.com/tigs-dev/tigs/internal/keys"
	"github.com/tigs-dev/tigs/internal/logger"
)

// Pane focus order in the view app.
const (
	viewFocusCommits = iota
	viewFocusDetails
	viewFocusChat
	viewPaneCount
)

// ViewModel is the `tigs view` TUI: a read-only commits pane driving
// a commit-details pane and a chat pane showing the stored messages.
type ViewModel struct {
	repo *git.Repo

	commits *CommitsView
	details *DetailsView
	chat    *MessagesView

	layout    Layout
	statusBar *StatusBar

	focus  int
	width  int
	height int
}

// NewViewModel builds the view app over a repository and config.
func NewViewModel(repo *git.Repo, cfg *config.Config) *ViewModel {
	parser := chat.NewMultiParser(cfg.EffectiveProviders())
	for _, w := range parser.Warnings() {
		logger.Debug("View: %s", w)
	}

	m := &ViewModel{
		repo:      repo,
		commits:   NewCommitsView(repo, cfg.GetCommitLimit(), true),
		details:   NewDetailsView(repo),
		chat:      NewMessagesView(parser),
		statusBar: NewStatusBar(),
	}
	m.chat.ReadOnly = true

	if sha := m.commits.CursorSHA(); sha != "" {
		m.details.Load(sha)
		m.loadChatFor(sha)
	}
	return m
}

// loadChatFor decomposes the commit's stored chat into the chat pane.
// Parse failures surface as a system message rather than an error.
func (m *ViewModel) loadChatFor(sha string) {
	content, err := m.repo.ShowChat(context.Background(), sha)
	if err != nil {
		if !errors.Is(err, git.ErrNoChat) {
			m.chat.SetMessages([]chat.Message{{
				Role:    chat.RoleSystem,
				Content: fmt.Sprintf("Error loading chat: %v", err),
			}})
			return
		}
		m.chat.SetMessages(nil)
		return
	}

	stored, err := chat.Decompose(content)
	if err != nil {
		m.chat.SetMessages([]chat.Message{{
			Role:    chat.RoleSystem,
			Content: fmt.Sprintf("Failed to parse chat: %v\n\nRaw content:\n%s", err, content),
		}})
		return
	}
	m.chat.SetMessages(stored.Messages)
}

// Init implements tea.Model.
func (m *ViewModel) Init() tea.Cmd { return nil }

// Update handles one message.
func (m *ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.Invalidate()
		m.statusBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m *ViewModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "Q", keys.CtrlC:
		return m, tea.Quit
	case keys.Tab:
		m.focus = (m.focus + 1) % viewPaneCount
		return m, nil
	case keys.ShiftTab:
		m.focus = (m.focus + viewPaneCount - 1) % viewPaneCount
		return m, nil
	}

	paneHeight := m.height - StatusBarHeight

	switch m.focus {
	case viewFocusCommits:
		if key == "y" {
			if sha := m.commits.CursorSHA(); sha != "" {
				if err := clipboard.WriteText(sha); err == nil {
					m.statusBar.SetMessage(fmt.Sprintf("Copied %s", sha[:7]))
				}
			}
			return m, nil
		}
		if m.commits.HandleKey(key, paneHeight) {
			if sha := m.commits.CursorSHA(); sha != "" {
				m.details.Load(sha)
				m.loadChatFor(sha)
			}
		}
	case viewFocusDetails:
		m.details.HandleKey(key, paneHeight)
	case viewFocusChat:
		m.chat.HandleKey(key, paneHeight)
	}
	return m, nil
}

func (m *ViewModel) contextualHelp() string {
	if m.focus == viewFocusCommits {
		return "↑/↓: navigate commits | Tab: switch pane | q: quit"
	}
	return "↑/↓: scroll | Tab: switch pane | q: quit"
}

// View renders the three panes over the status bar.
func (m *ViewModel) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		v.SetContent(fmt.Sprintf("Terminal too small: %dx%d (min: %dx%d)",
			m.width, m.height, MinTerminalWidth, MinTerminalHeight))
		return v
	}

	var commitWidth, remaining int
	if m.layout.NeedsRecalculation(m.width, 0) {
		commitWidth, remaining, _ = m.layout.ColumnWidths(m.width, 0, true)
	} else {
		commitWidth, remaining, _ = m.layout.CachedWidths()
	}

	detailsWidth := remaining / 2
	chatWidth := remaining - detailsWidth
	paneHeight := m.height - StatusBarHeight

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			DrawPane(commitWidth, paneHeight, "Commits", m.focus == viewFocusCommits, m.commits.DisplayLines(paneHeight, commitWidth)),
			DrawPane(detailsWidth, paneHeight, "Commit Details", m.focus == viewFocusDetails, m.details.DisplayLines(paneHeight, detailsWidth)),
			DrawPane(chatWidth, paneHeight, "Chat", m.focus == viewFocusChat, m.chat.DisplayLines(paneHeight, chatWidth)),
		),
		m.statusBar.View(m.contextualHelp(), m.width, m.height),
	)

	v.SetContent(content)
	return v
}
