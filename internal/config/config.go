package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/agentx-labs/expertkit/internal/paths"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyDefaultPort = "default_port"
	KeyTemplateDir = "template_dir"
	KeyProjectsDir = "projects_dir"
)

var knownKeys = map[string]bool{
	KeyDefaultPort: true,
	KeyTemplateDir: true,
	KeyProjectsDir: true,
}

// Settings are the resolved tool settings.
type Settings struct {
	DefaultPort int
	TemplateDir string
	ProjectsDir string
}

// Store reads and writes the settings file.
type Store struct {
	v    *viper.Viper
	path string
}

// Open returns a Store backed by the default settings file. A missing file is
// not an error.
func Open() (*Store, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return OpenFile(path)
}

// OpenFile returns a Store backed by the given settings file.
func OpenFile(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetDefault(KeyDefaultPort, paths.DefaultPort)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return &Store{v: v, path: path}, nil
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// Settings resolves the stored values, filling unset directories with the
// defaults under ~/agents.
func (s *Store) Settings() (*Settings, error) {
	out := &Settings{
		DefaultPort: s.v.GetInt(KeyDefaultPort),
		TemplateDir: s.v.GetString(KeyTemplateDir),
		ProjectsDir: s.v.GetString(KeyProjectsDir),
	}
	if out.DefaultPort <= 0 || out.DefaultPort > 65535 {
		return nil, fmt.Errorf("%s in %s must be between 1 and 65535, got %d", KeyDefaultPort, s.path, out.DefaultPort)
	}
	if out.TemplateDir == "" {
		dir, err := paths.DefaultTemplateDir()
		if err != nil {
			return nil, err
		}
		out.TemplateDir = dir
	}
	if out.ProjectsDir == "" {
		dir, err := paths.DefaultProjectsDir()
		if err != nil {
			return nil, err
		}
		out.ProjectsDir = dir
	}
	return out, nil
}

// Get returns a config value by key. Returns empty string if not set.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Set validates and writes a config key-value pair, then saves the file.
func (s *Store) Set(key, value string) error {
	if !knownKeys[key] {
		return fmt.Errorf("unknown config key %q (known: %v)", key, Keys())
	}
	if key == KeyDefaultPort {
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%s must be a port number between 1 and 65535, got %q", key, value)
		}
		s.v.Set(key, port)
	} else {
		s.v.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), paths.DirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Keys returns the recognised setting keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
