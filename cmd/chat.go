package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tigs-dev/tigs/internal/git"
)

var chatMessage string

var addChatCmd = &cobra.Command{
	Use:   "add-chat [commit]",
	Short: "Add chat content to a commit",
	Long: `Add chat content to a commit (defaults to HEAD).

Content comes from --message, or from stdin when the flag is omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAddChat,
}

var showChatCmd = &cobra.Command{
	Use:   "show-chat [commit]",
	Short: "Show chat content for a commit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShowChat,
}

var listChatsCmd = &cobra.Command{
	Use:   "list-chats",
	Short: "List all commits that have chats",
	Args:  cobra.NoArgs,
	RunE:  runListChats,
}

var removeChatCmd = &cobra.Command{
	Use:   "remove-chat [commit]",
	Short: "Remove chat from a commit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRemoveChat,
}

func init() {
	addChatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Chat content (read from stdin if not provided)")
	rootCmd.AddCommand(addChatCmd, showChatCmd, listChatsCmd, removeChatCmd)
}

func runAddChat(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	content := chatMessage
	if content == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		content = string(data)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("no content provided")
	}

	sha, err := repo.AddChat(cmd.Context(), commitArg(args), content, true)
	if err != nil {
		return err
	}
	fmt.Printf("Added chat to commit: %s\n", sha)
	return nil
}

func runShowChat(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	commit := commitArg(args)
	content, err := repo.ShowChat(cmd.Context(), commit)
	if err != nil {
		if errors.Is(err, git.ErrNoChat) {
			return fmt.Errorf("no chat found for commit: %s", commit)
		}
		return err
	}
	fmt.Print(content)
	return nil
}

func runListChats(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	shas, err := repo.ListChats(cmd.Context())
	if err != nil {
		return err
	}
	for _, sha := range shas {
		fmt.Println(sha)
	}
	return nil
}

func runRemoveChat(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	commit := commitArg(args)
	sha, err := repo.RemoveChat(cmd.Context(), commit)
	if err != nil {
		if errors.Is(err, git.ErrNoChat) {
			return fmt.Errorf("no chat found for commit: %s", commit)
		}
		return err
	}
	fmt.Printf("Removed chat from commit: %s\n", sha)
	return nil
}
