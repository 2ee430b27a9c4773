package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/tigs-dev/tigs/internal/clipboard"
	"github.com/tigs-dev/tigs/internal/config"
	"github.com/tigs-dev/tigs/internal/logger"
	"github.com/tigs-dev/tigs/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Launch the interactive TUI for exploring commits and their chats",
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := clipboard.Init(); err != nil {
		logger.Debug("View: clipboard unavailable: %v", err)
	}

	defer logger.Close()

	m := ui.NewViewModel(repo, cfg)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running view TUI: %w", err)
	}
	return nil
}
