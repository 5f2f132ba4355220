package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentx-labs/expertkit/internal/errors"
)

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Provider performs completions against one model vendor.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Credentials holds provider API keys. BaseURL overrides the vendor
// endpoint and is mainly useful for proxies and tests.
type Credentials struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
	BaseURL         string
}

// ParseModel splits "provider:model". A bare model name is treated as an
// OpenAI model.
func ParseModel(id string) (provider, model string, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", errors.New(errors.EInvalidConfig, "model must not be empty")
	}
	provider, model, ok := strings.Cut(id, ":")
	if !ok {
		return ProviderOpenAI, id, nil
	}
	if model == "" {
		return "", "", errors.Newf(errors.EInvalidConfig, "model %q has no model name after the provider", id)
	}
	switch provider {
	case ProviderOpenAI, ProviderAnthropic:
		return provider, model, nil
	default:
		return "", "", errors.Newf(errors.EInvalidConfig, "unsupported model provider %q in %q", provider, id)
	}
}

// NewProvider returns the provider named by name using creds.
func NewProvider(name string, creds Credentials) (Provider, error) {
	switch name {
	case ProviderOpenAI:
		if creds.OpenAIAPIKey == "" {
			return nil, errors.New(errors.EInvalidConfig, "OPENAI_API_KEY is not set in the project .env")
		}
		return NewOpenAIProvider(creds.OpenAIAPIKey, creds.BaseURL), nil
	case ProviderAnthropic:
		if creds.AnthropicAPIKey == "" {
			return nil, errors.New(errors.EInvalidConfig, "ANTHROPIC_API_KEY is not set in the project .env")
		}
		return NewAnthropicProvider(creds.AnthropicAPIKey, creds.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
