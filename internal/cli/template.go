package cli

import (
	"github.com/agentx-labs/expertkit/internal/paths"
	"github.com/agentx-labs/expertkit/internal/scaffold"
	"github.com/spf13/cobra"
)

var templateInstallForce bool

func init() {
	templateInstallCmd.Flags().BoolVar(&templateInstallForce, "force", false, "Replace an existing template")

	templateCmd.AddCommand(templateInstallCmd)
	templateCmd.AddCommand(templatePathCmd)
	rootCmd.AddCommand(templateCmd)
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the project template",
	Long: `New projects are copied from the template directory, ~/agents/templates/project_template
by default. The install subcommand writes the template bundled with this binary there.`,
}

var templateInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the bundled project template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := toolSettings()
		if err != nil {
			return err
		}
		files, err := scaffold.InstallTemplate(settings.TemplateDir, templateInstallForce)
		if err != nil {
			return err
		}
		printf(cmd, "Installed template at %s (%d files)\n", paths.AbbreviateHome(settings.TemplateDir), len(files))
		return nil
	},
}

var templatePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the template directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := toolSettings()
		if err != nil {
			return err
		}
		printf(cmd, "%s\n", settings.TemplateDir)
		return nil
	},
}
