// Package branding provides compile-time identity values for the CLI.
//
// Edit branding.yaml in this directory to rebrand; Go's //go:embed bakes it
// into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	AgentsDir     string `yaml:"agents_dir"`
	ProjectSuffix string `yaml:"project_suffix"`
	ConfigFile    string `yaml:"config_file"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "expertkit",
			DisplayName:   "ExpertKit",
			Description:   "Scaffold and run domain-expert agent projects",
			AgentsDir:     "agents",
			ProjectSuffix: "-expert",
			ConfigFile:    "config.yaml",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "expertkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "ExpertKit").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// AgentsDir returns the directory name under $HOME that holds templates and
// projects (e.g., "agents").
func AgentsDir() string { load(); return defaults.AgentsDir }

// ProjectSuffix returns the suffix appended to a domain to form the project
// name (e.g., "-expert").
func ProjectSuffix() string { load(); return defaults.ProjectSuffix }

// ConfigFile returns the tool settings file name inside AgentsDir.
func ConfigFile() string { load(); return defaults.ConfigFile }

// Command returns a follow-up command line prefixed with the CLI name,
// e.g., Command("db", "init") → "expertkit db init".
func Command(args ...string) string {
	load()
	return strings.Join(append([]string{defaults.CLIName}, args...), " ")
}
