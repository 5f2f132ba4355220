package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/expertkit/internal/errors"
)

type fakeProvider struct {
	reply string
	err   error
	got   []Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req Request) (*Response, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	return &Response{Content: f.reply}, nil
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		id           string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{"openai:gpt-4o-mini", ProviderOpenAI, "gpt-4o-mini", false},
		{"anthropic:claude-3-5-haiku-latest", ProviderAnthropic, "claude-3-5-haiku-latest", false},
		{"gpt-4o", ProviderOpenAI, "gpt-4o", false},
		{"", "", "", true},
		{"openai:", "", "", true},
		{"mistral:large", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			provider, model, err := ParseModel(tt.id)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.EInvalidConfig), "error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, provider)
			assert.Equal(t, tt.wantModel, model)
		})
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New("pinescript", "", Config{Model: "openai:gpt-4o-mini"}, Credentials{})
	assert.True(t, errors.Is(err, errors.EInvalidConfig))

	_, err = New("pinescript", "", Config{Model: "anthropic:claude"}, Credentials{OpenAIAPIKey: "sk"})
	assert.True(t, errors.Is(err, errors.EInvalidConfig))
}

func TestNew_SelectsProvider(t *testing.T) {
	a, err := New("pinescript", "", Config{Model: "anthropic:claude"}, Credentials{AnthropicAPIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, a.provider.Name())

	a, err = New("pinescript", "", Config{}, Credentials{OpenAIAPIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, a.provider.Name())
	assert.Equal(t, DefaultModel, a.Model())
}

func TestNewWithProvider_Temperature(t *testing.T) {
	_, err := NewWithProvider("x", "", Config{Temperature: 1.5}, &fakeProvider{})
	assert.True(t, errors.Is(err, errors.EInvalidConfig))

	_, err = NewWithProvider("x", "", Config{Temperature: 0}, &fakeProvider{})
	assert.NoError(t, err)
}

func TestRun(t *testing.T) {
	fp := &fakeProvider{reply: "use ta.sma"}
	a, err := NewWithProvider("pinescript", "", Config{Model: "openai:gpt-4o-mini", Temperature: 0.3}, fp)
	require.NoError(t, err)

	out, err := a.Run(context.Background(), "how do I compute a moving average?")
	require.NoError(t, err)
	assert.Equal(t, "use ta.sma", out)

	require.Len(t, fp.got, 1)
	req := fp.got[0]
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, DefaultSystemPrompt("pinescript"), req.SystemPrompt)
	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "how do I compute a moving average?"}}, req.Messages)
}

func TestRun_ProviderError(t *testing.T) {
	a, err := NewWithProvider("x", "custom prompt", Config{}, &fakeProvider{err: fmt.Errorf("rate limited")})
	require.NoError(t, err)
	assert.Equal(t, "custom prompt", a.SystemPrompt())

	_, err = a.Run(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.EModel))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestDefaultSystemPrompt(t *testing.T) {
	assert.Equal(t,
		"You are an expert in pinescript. Provide clear, accurate, and helpful responses.",
		DefaultSystemPrompt("pinescript"))
}
