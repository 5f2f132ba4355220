package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentx-labs/expertkit/internal/errors"
)

// Defaults for Config fields.
const (
	DefaultModel       = "openai:gpt-4o-mini"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 1024
)

// Config selects the model and sampling parameters.
type Config struct {
	Model       string  // "provider:model"
	Temperature float64 // 0..1
	MaxTokens   int
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return c
}

// Agent answers queries with a fixed system prompt.
type Agent struct {
	name         string
	systemPrompt string
	model        string
	cfg          Config
	provider     Provider
	log          zerolog.Logger
}

// DefaultSystemPrompt returns the prompt used when a project does not set
// one.
func DefaultSystemPrompt(name string) string {
	return fmt.Sprintf("You are an expert in %s. Provide clear, accurate, and helpful responses.", name)
}

// New builds an Agent for cfg.Model using creds.
func New(name, systemPrompt string, cfg Config, creds Credentials) (*Agent, error) {
	cfg = cfg.withDefaults()
	providerName, _, err := ParseModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	provider, err := NewProvider(providerName, creds)
	if err != nil {
		return nil, err
	}
	return NewWithProvider(name, systemPrompt, cfg, provider)
}

// NewWithProvider builds an Agent on an existing provider.
func NewWithProvider(name, systemPrompt string, cfg Config, provider Provider) (*Agent, error) {
	cfg = cfg.withDefaults()
	_, model, err := ParseModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.Temperature < 0 || cfg.Temperature > 1 {
		return nil, errors.Newf(errors.EInvalidConfig, "temperature %v is outside [0, 1]", cfg.Temperature)
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt(name)
	}
	return &Agent{
		name:         name,
		systemPrompt: systemPrompt,
		model:        model,
		cfg:          cfg,
		provider:     provider,
		log:          zerolog.Nop(),
	}, nil
}

// WithLogger returns a copy of a that logs calls to l.
func (a *Agent) WithLogger(l zerolog.Logger) *Agent {
	cp := *a
	cp.log = l
	return &cp
}

// Name returns the agent name.
func (a *Agent) Name() string { return a.name }

// SystemPrompt returns the system prompt sent with every call.
func (a *Agent) SystemPrompt() string { return a.systemPrompt }

// Model returns the configured "provider:model" identifier.
func (a *Agent) Model() string { return a.cfg.Model }

// Run answers a single query.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	return a.Chat(ctx, []Message{{Role: RoleUser, Content: query}})
}

// Chat answers the last user message given the preceding history.
func (a *Agent) Chat(ctx context.Context, messages []Message) (string, error) {
	req := Request{
		Model:        a.model,
		SystemPrompt: a.systemPrompt,
		Messages:     messages,
		Temperature:  a.cfg.Temperature,
		MaxTokens:    a.cfg.MaxTokens,
	}
	resp, err := a.provider.Complete(ctx, req)
	if err != nil {
		a.log.Error().Err(err).Str("provider", a.provider.Name()).Str("model", a.model).Msg("completion failed")
		return "", errors.Wrap(errors.EModel, fmt.Sprintf("%s completion failed: %v", a.provider.Name(), err), err)
	}
	a.log.Debug().
		Str("provider", a.provider.Name()).
		Str("model", a.model).
		Int("input_tokens", resp.Usage.InputTokens).
		Int("output_tokens", resp.Usage.OutputTokens).
		Msg("completion")
	return resp.Content, nil
}
