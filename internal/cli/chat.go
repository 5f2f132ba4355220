package cli

import (
	"fmt"

	"github.com/agentx-labs/expertkit/internal/chat"
	"github.com/spf13/cobra"
)

var chatSession string

func init() {
	addProjectFlag(chatCmd)
	chatCmd.Flags().StringVar(&chatSession, "session", "", "Session ID to continue (default: a new session)")
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the project's expert agent in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		rt, err := buildRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		sessionID := chatSession
		if sessionID == "" {
			sessionID = chat.NewSessionID()
		}
		if err := chat.REPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), rt.Chat, sessionID, rt.UI()); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		return nil
	},
}
