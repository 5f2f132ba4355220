package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentx-labs/expertkit/internal/branding"
	"github.com/agentx-labs/expertkit/internal/envfile"
	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/manifest"
	"github.com/agentx-labs/expertkit/internal/paths"
	"github.com/agentx-labs/expertkit/internal/project"
	"github.com/spf13/cobra"
)

func init() {
	addProjectFlag(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the template and the current project",
	Long: `Check that the project template is installed and, when run inside a project
(or with --project), that the project layout is complete and configs/project.yaml is valid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := toolSettings()
		if err != nil {
			return err
		}

		d := &doctor{w: cmd.OutOrStdout()}
		d.checkTemplate(settings.TemplateDir)

		start := projectDir
		if start == "" {
			start, _ = os.Getwd()
		}
		dir, findErr := project.Find(start)
		if findErr != nil {
			fmt.Fprintln(d.w, "Project check:")
			if projectDir != "" {
				d.fail("no %s found in %s", paths.ProjectConfigFile, projectDir)
			} else {
				d.skip("not inside a project")
			}
		} else {
			d.checkProject(dir)
		}

		if d.failures > 0 {
			return errors.Newf(errors.EInvalidConfig, "doctor found %d problem(s)", d.failures)
		}
		return nil
	},
}

// templateRequired are the template files the scaffolder cannot do without.
var templateRequired = []string{paths.EnvExampleFile, paths.ReadmeFile, paths.ProjectConfigFile}

type doctor struct {
	w        io.Writer
	failures int
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.w, "  [ OK ] "+format+"\n", args...)
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.w, "  [WARN] "+format+"\n", args...)
}

func (d *doctor) skip(format string, args ...any) {
	fmt.Fprintf(d.w, "  [SKIP] "+format+"\n", args...)
}

func (d *doctor) fail(format string, args ...any) {
	d.failures++
	fmt.Fprintf(d.w, "  [FAIL] "+format+"\n", args...)
}

func (d *doctor) checkTemplate(dir string) {
	fmt.Fprintln(d.w, "Template check:")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		d.fail("template not found at %s (run `%s template install`)", paths.AbbreviateHome(dir), branding.CLIName())
		return
	}
	d.ok("template found at %s", paths.AbbreviateHome(dir))
	for _, rel := range templateRequired {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			d.fail("template is missing %s", rel)
		}
	}
}

func (d *doctor) checkProject(dir string) {
	fmt.Fprintf(d.w, "Project check: %s\n", paths.AbbreviateHome(dir))

	missing := 0
	for _, rel := range []string{paths.EnvFile, paths.ReadmeFile, paths.ProjectConfigFile} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			d.fail("missing file %s", rel)
			missing++
		}
	}
	for _, rel := range paths.DataDirs {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil || !info.IsDir() {
			d.fail("missing directory %s/", rel)
			missing++
		}
	}
	if missing == 0 {
		d.ok("project layout complete")
	}

	configPath := filepath.Join(dir, filepath.FromSlash(paths.ProjectConfigFile))
	result, err := manifest.ValidateFile(configPath)
	switch {
	case err != nil:
		d.fail("cannot validate %s: %v", paths.ProjectConfigFile, err)
	case result.Valid:
		d.ok("%s is valid", paths.ProjectConfigFile)
	default:
		d.fail("%s has %d validation issue(s):", paths.ProjectConfigFile, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(d.w, "    - %s\n", issue.String())
		}
	}

	env, err := envfile.Load(filepath.Join(dir, paths.EnvFile))
	if err != nil {
		return
	}
	for _, key := range []string{envfile.KeyDatabaseURL, envfile.KeyOpenAIAPIKey} {
		if env.Get(key) == "" {
			d.warn("%s is empty in .env", key)
		} else {
			d.ok("%s is set", key)
		}
	}
}
