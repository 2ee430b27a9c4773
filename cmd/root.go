package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tigs-dev/tigs/internal/git"
	"github.com/tigs-dev/tigs/internal/logger"
)

var (
	repoPath              string
	debugMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "tigs",
	Short: "Store and browse AI chat logs attached to Git commits",
	Long: `Tigs attaches AI assistant conversations to Git commits using Git notes.

Running tigs with no subcommand launches the interactive store TUI for
selecting commits and chat messages. Stored chats travel with the
repository under refs/notes/chats.`,
	RunE:          runStore,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "r", "", "Path to Git repository (defaults to current directory)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func initLogging() {
	if debugMode {
		logger.SetDebug(true)
	}
}

// openRepo opens the repository named by --repo, or the working directory.
func openRepo() (*git.Repo, error) {
	path := repoPath
	if path == "" {
		path = "."
	}
	return git.Open(path)
}

// commitArg returns the commit-ish positional argument, defaulting to HEAD.
func commitArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "HEAD"
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("tigs %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("tigs %s\n", version)
}
