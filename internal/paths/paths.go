package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/expertkit/internal/branding"
)

// Directory names below the agents root.
const (
	TemplatesDir = "templates"
	TemplateName = "project_template"
	ProjectsDir  = "projects"
)

// Generated project layout, relative to the project root.
const (
	EnvFile           = ".env"
	EnvExampleFile    = ".env.example"
	ReadmeFile        = "README.md"
	ConfigsDir        = "configs"
	ProjectConfigFile = "configs/project.yaml"
	InitDBScript      = "scripts/init_db.sql"
	PostgresDataDir   = "postgres_data"
	KnowledgeDir      = "knowledge"
	MemoryDir         = "knowledge/memory"
	LogsDir           = "logs"
)

// DefaultPort is the database port written into new projects when the caller
// supplies none. It matches the port the template ships with.
const DefaultPort = 54322

// DataDirs are the empty working directories every generated project gets,
// in creation order.
var DataDirs = []string{PostgresDataDir, KnowledgeDir, MemoryDir, LogsDir}

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// AgentsRoot returns ~/agents.
func AgentsRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.AgentsDir()), nil
}

// DefaultTemplateDir returns ~/agents/templates/project_template.
func DefaultTemplateDir() (string, error) {
	root, err := AgentsRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, TemplatesDir, TemplateName), nil
}

// DefaultProjectsDir returns ~/agents/projects.
func DefaultProjectsDir() (string, error) {
	root, err := AgentsRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ProjectsDir), nil
}

// ConfigPath returns the tool settings file, ~/agents/config.yaml.
func ConfigPath() (string, error) {
	root, err := AgentsRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, branding.ConfigFile()), nil
}

// ProjectName returns the directory name for a domain, e.g. "pinescript-expert".
func ProjectName(domain string) string {
	return domain + branding.ProjectSuffix()
}

// AbbreviateHome rewrites a path under the home directory as "~/...".
// Paths outside home are returned unchanged.
func AbbreviateHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(rel)
}
