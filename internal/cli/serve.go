package cli

import (
	"github.com/agentx-labs/expertkit/internal/chat"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	addProjectFlag(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr from project.yaml)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web chat UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		rt, err := buildRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := firstNonEmpty(serveAddr, rt.Project.Config.Server.Addr)
		srv := chat.NewServer(rt.Chat, rt.UI(), rt.Log.Logger)
		printf(cmd, "%s chat UI on http://%s (Ctrl+C to stop)\n", rt.Project.Name(), addr)
		return srv.Run(ctx, addr)
	},
}
