package cli

import (
	"os"
	"path/filepath"

	"github.com/agentx-labs/expertkit/internal/envfile"
	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/paths"
	"github.com/spf13/cobra"
)

var envShowNoRedact bool

func init() {
	addProjectFlag(envShowCmd)
	envShowCmd.Flags().BoolVar(&envShowNoRedact, "no-redact", false, "Show values without redaction")

	envCmd.AddCommand(envShowCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect the project .env file",
}

var envShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the project .env with secrets redacted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}

		envPath := filepath.Join(p.Dir, paths.EnvFile)
		if _, err := os.Stat(envPath); err != nil {
			return errors.FromFS(err, errors.EFileNotFound, "reading", envPath)
		}

		printf(cmd, "# %s\n", paths.AbbreviateHome(envPath))
		for _, e := range p.Env.Entries() {
			value := e.Value
			if !envShowNoRedact {
				value = envfile.RedactValue(e.Key, value)
			}
			printf(cmd, "%s=%s\n", e.Key, value)
		}
		return nil
	},
}
