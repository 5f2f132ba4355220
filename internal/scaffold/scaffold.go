package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/manifest"
	"github.com/agentx-labs/expertkit/internal/paths"
	"github.com/agentx-labs/expertkit/internal/platform"
)

// Step names reported in error details.
const (
	StepResolve     = "resolve"
	StepPreflight   = "preflight"
	StepMaterialize = "materialize"
	StepSubstitute  = "substitute"
	StepProvision   = "provision"
	StepValidate    = "validate"
)

// Options configures a Scaffolder. Empty directories fall back to the
// defaults under ~/agents.
type Options struct {
	TemplateDir string
	ProjectsDir string
	Logger      zerolog.Logger
}

// Scaffolder creates projects from a template directory.
type Scaffolder struct {
	templateDir string
	projectsDir string
	log         zerolog.Logger
}

// Result holds the outcome of a Create call.
type Result struct {
	Spec        ProjectSpec
	ProjectDir  string
	TemplateDir string
	Files       []string // copied template entries, relative to ProjectDir
	Dirs        []string // provisioned data directories, relative to ProjectDir
	Warnings    []string
}

// New returns a Scaffolder for opts.
func New(opts Options) *Scaffolder {
	return &Scaffolder{
		templateDir: opts.TemplateDir,
		projectsDir: opts.ProjectsDir,
		log:         opts.Logger,
	}
}

// Create scaffolds the project described by spec. Steps run in order and the
// first failure aborts without undoing earlier steps. Problems found while
// validating the generated configs/project.yaml are returned as warnings.
func (s *Scaffolder) Create(spec ProjectSpec) (*Result, error) {
	templateDir, projectDir, err := s.resolve(spec)
	if err != nil {
		return nil, errors.WithStep(StepResolve, err)
	}
	s.log.Debug().Str("step", StepResolve).Str("template", templateDir).Str("project", projectDir).Msg("resolved paths")

	if err := preflight(templateDir, projectDir); err != nil {
		return nil, errors.WithStep(StepPreflight, err)
	}
	s.log.Debug().Str("step", StepPreflight).Msg("preconditions hold")

	result := &Result{Spec: spec, ProjectDir: projectDir, TemplateDir: templateDir}

	files, err := Materialize(templateDir, projectDir)
	result.Files = files
	if err != nil {
		return nil, errors.WithStep(StepMaterialize, err)
	}
	s.log.Debug().Str("step", StepMaterialize).Int("entries", len(files)).Msg("copied template")

	if err := substituteProject(projectDir, spec); err != nil {
		return nil, errors.WithStep(StepSubstitute, err)
	}
	s.log.Debug().Str("step", StepSubstitute).Msg("substituted tokens")

	dirs, err := provision(projectDir)
	result.Dirs = dirs
	if err != nil {
		return nil, errors.WithStep(StepProvision, err)
	}
	s.log.Debug().Str("step", StepProvision).Strs("dirs", dirs).Msg("created data directories")

	result.Warnings = validateProject(projectDir)
	for _, w := range result.Warnings {
		s.log.Debug().Str("step", StepValidate).Msg(w)
	}

	return result, nil
}

func (s *Scaffolder) resolve(spec ProjectSpec) (string, string, error) {
	templateDir := s.templateDir
	if templateDir == "" {
		dir, err := paths.DefaultTemplateDir()
		if err != nil {
			return "", "", errors.Wrap(errors.EIO, err.Error(), err)
		}
		templateDir = dir
	}
	projectsDir := s.projectsDir
	if projectsDir == "" {
		dir, err := paths.DefaultProjectsDir()
		if err != nil {
			return "", "", errors.Wrap(errors.EIO, err.Error(), err)
		}
		projectsDir = dir
	}
	return templateDir, filepath.Join(projectsDir, spec.Name()), nil
}

// preflight checks both preconditions before anything is written, so a
// missing template never leaves an empty projects directory behind.
func preflight(templateDir, projectDir string) error {
	info, err := os.Stat(templateDir)
	if err != nil && !os.IsNotExist(err) {
		return errors.FromFS(err, errors.ETemplateNotFound, "reading template", templateDir)
	}
	if err != nil || !info.IsDir() {
		return errors.NewWithDetails(errors.ETemplateNotFound,
			"template not found at "+templateDir, map[string]string{errors.DetailPath: templateDir})
	}
	if _, err := os.Lstat(projectDir); err == nil {
		return destinationExists(projectDir)
	}
	return nil
}

func substituteProject(projectDir string, spec ProjectSpec) error {
	envPath := filepath.Join(projectDir, paths.EnvFile)
	examplePath := filepath.Join(projectDir, paths.EnvExampleFile)
	if err := detachSymlink(envPath); err != nil {
		return err
	}
	if err := copyFile(examplePath, envPath); err != nil {
		return err
	}
	if err := platform.SecureFile(envPath); err != nil {
		return errors.FromFS(err, errors.EIO, "securing", envPath)
	}

	targets := []struct {
		path string
		subs SubstitutionMap
	}{
		{envPath, EnvSubstitutions(spec)},
		{filepath.Join(projectDir, paths.ReadmeFile), ReadmeSubstitutions(spec)},
		{filepath.Join(projectDir, filepath.FromSlash(paths.ProjectConfigFile)), ConfigSubstitutions(spec)},
	}
	for _, t := range targets {
		if err := SubstituteFile(t.path, t.subs); err != nil {
			return err
		}
	}
	return nil
}

func provision(projectDir string) ([]string, error) {
	var created []string
	for _, dir := range paths.DataDirs {
		target := filepath.Join(projectDir, filepath.FromSlash(dir))
		if err := os.MkdirAll(target, paths.DirPerm); err != nil {
			return created, errors.FromFS(err, errors.EIO, "creating directory", target)
		}
		created = append(created, dir)
	}
	return created, nil
}

func validateProject(projectDir string) []string {
	configPath := filepath.Join(projectDir, filepath.FromSlash(paths.ProjectConfigFile))
	result, err := manifest.ValidateFile(configPath)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate %s: %v", paths.ProjectConfigFile, err)}
	}
	var warnings []string
	for _, issue := range result.Issues {
		warnings = append(warnings, paths.ProjectConfigFile+" "+issue.String())
	}
	return warnings
}
