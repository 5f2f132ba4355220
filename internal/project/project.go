package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/expertkit/internal/agent"
	"github.com/agentx-labs/expertkit/internal/envfile"
	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/manifest"
	"github.com/agentx-labs/expertkit/internal/memory"
	"github.com/agentx-labs/expertkit/internal/paths"
)

// Project is an opened project directory.
type Project struct {
	Dir    string
	Config *manifest.Project
	Env    envfile.Env
}

// Find walks up from start to the nearest directory containing
// configs/project.yaml.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(errors.EIO, err.Error(), err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(paths.ProjectConfigFile))); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.NewWithDetails(errors.EProjectNotFound,
				"no "+paths.ProjectConfigFile+" found in "+start+" or any parent directory",
				map[string]string{errors.DetailPath: start})
		}
		dir = parent
	}
}

// Open loads the project rooted at dir. The config must pass validation.
// A missing .env yields an empty Env.
func Open(dir string) (*Project, error) {
	configPath := filepath.Join(dir, filepath.FromSlash(paths.ProjectConfigFile))
	if _, err := os.Stat(configPath); err != nil {
		return nil, errors.FromFS(err, errors.EProjectNotFound, "opening project config", configPath)
	}

	result, err := manifest.ValidateFile(configPath)
	if err != nil {
		return nil, errors.WrapWithDetails(errors.EInvalidConfig, err.Error(), err,
			map[string]string{errors.DetailPath: configPath})
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, errors.NewWithDetails(errors.EInvalidConfig,
			configPath+" is invalid: "+strings.Join(msgs, "; "),
			map[string]string{errors.DetailPath: configPath})
	}

	cfg, err := manifest.ParseFile(configPath)
	if err != nil {
		return nil, errors.Wrap(errors.EInvalidConfig, err.Error(), err)
	}

	env := envfile.New(nil)
	envPath := filepath.Join(dir, paths.EnvFile)
	if _, statErr := os.Stat(envPath); statErr == nil {
		env, err = envfile.Load(envPath)
		if err != nil {
			return nil, errors.WrapWithDetails(errors.EInvalidConfig, err.Error(), err,
				map[string]string{errors.DetailPath: envPath})
		}
	}

	return &Project{Dir: dir, Config: cfg, Env: env}, nil
}

// Path resolves a project-relative path. Absolute paths are returned as is.
func (p *Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Dir, filepath.FromSlash(rel))
}

// Name returns the configured project name.
func (p *Project) Name() string { return p.Config.Project.Name }

// Credentials returns the provider keys from the project .env.
func (p *Project) Credentials() agent.Credentials {
	return agent.Credentials{
		OpenAIAPIKey:    p.Env.Get(envfile.KeyOpenAIAPIKey),
		AnthropicAPIKey: p.Env.Get(envfile.KeyAnthropicAPIKey),
	}
}

// AgentConfig returns the agent settings.
func (p *Project) AgentConfig() agent.Config {
	cfg := agent.Config{
		Model:     p.Config.Agent.Model,
		MaxTokens: p.Config.Agent.MaxTokens,
	}
	if p.Config.Agent.Temperature != nil {
		cfg.Temperature = *p.Config.Agent.Temperature
	}
	return cfg
}

// DatabaseURL returns DATABASE_URL from the project .env.
func (p *Project) DatabaseURL() (string, error) {
	dsn := p.Env.Get(envfile.KeyDatabaseURL)
	if dsn == "" {
		return "", errors.New(errors.EInvalidConfig, "DATABASE_URL is not set in the project .env")
	}
	return dsn, nil
}

// OpenMemory opens the configured memory backend.
func (p *Project) OpenMemory(ctx context.Context) (memory.Store, error) {
	store, err := memory.Open(ctx, memory.Options{
		Settings:   p.Config.Memory,
		ProjectDir: p.Dir,
		RedisURL:   p.Env.Get(envfile.KeyRedisURL),
	})
	if err != nil {
		return nil, errors.Wrap(errors.EMemory, err.Error(), err)
	}
	return store, nil
}
