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

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Launch the interactive TUI for selecting commits and messages",
	RunE:  runStore,
}

func init() {
	rootCmd.AddCommand(storeCmd)
}

func runStore(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := clipboard.Init(); err != nil {
		logger.Debug("Store: clipboard unavailable: %v", err)
	}

	defer logger.Close()

	m := ui.NewStoreModel(repo, cfg)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running store TUI: %w", err)
	}
	return nil
}
