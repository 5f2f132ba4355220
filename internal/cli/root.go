package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/agentx-labs/expertkit/internal/branding"
	"github.com/agentx-labs/expertkit/internal/config"
	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/logging"
	"github.com/agentx-labs/expertkit/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootTemplateDir string
	rootProjectsDir string
	rootVerbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootTemplateDir, "template-dir", "", "Template directory (default ~/agents/templates/project_template)")
	rootCmd.PersistentFlags().StringVar(&rootProjectsDir, "projects-dir", "", "Directory new projects are created in (default ~/agents/projects)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Log scaffolding steps to stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <domain> [port]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a ready-to-run expert agent project for a domain and runs it.

Given a domain, it copies the project template to ~/agents/projects/<domain>-expert,
fills in the domain and database port, and creates the data directories.`,
	Example: "  " + branding.CLIName() + " pinescript\n  " + branding.CLIName() + " python 54323",
	Args:          createArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := toolSettings()
		if err != nil {
			return err
		}

		spec, err := parseCreateArgs(args, settings.DefaultPort)
		if err != nil {
			return err
		}

		s := scaffold.New(scaffold.Options{
			TemplateDir: settings.TemplateDir,
			ProjectsDir: settings.ProjectsDir,
			Logger:      logging.Verbose(os.Stderr, rootVerbose),
		})
		result, err := s.Create(spec)
		if err != nil {
			return err
		}

		scaffold.WriteSummary(cmd.OutOrStdout(), result)
		return nil
	},
}

// createArgs requires <domain> [port].
func createArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.Newf(errors.EUsage, "usage: %s <domain> [port] (got %d arguments)", branding.CLIName(), len(args))
	}
	return nil
}

// parseCreateArgs turns <domain> [port] into a ProjectSpec.
func parseCreateArgs(args []string, defaultPort int) (scaffold.ProjectSpec, error) {
	if len(args) < 1 || len(args) > 2 {
		return scaffold.ProjectSpec{}, errors.Newf(errors.EUsage, "usage: %s <domain> [port]", branding.CLIName())
	}
	port := defaultPort
	if len(args) == 2 {
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return scaffold.ProjectSpec{}, errors.Newf(errors.EUsage, "invalid port %q: must be a number", args[1])
		}
		port = p
	}
	return scaffold.NewProjectSpec(args[0], port)
}

// toolSettings loads the settings file and applies the persistent flags.
func toolSettings() (*config.Settings, error) {
	store, err := config.Open()
	if err != nil {
		return nil, errors.Wrap(errors.EInvalidConfig, err.Error(), err)
	}
	settings, err := store.Settings()
	if err != nil {
		return nil, errors.Wrap(errors.EInvalidConfig, err.Error(), err)
	}
	settings.TemplateDir = firstNonEmpty(rootTemplateDir, settings.TemplateDir)
	settings.ProjectsDir = firstNonEmpty(rootProjectsDir, settings.ProjectsDir)
	return settings, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
