package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/saori/pkg/log"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

// ProviderConfig does not mark keys as required: a missing key is reported
// per request as a configuration error instead of killing the process.
type ProviderConfig struct {
	Provider string `env:"SAORI_LLM_PROVIDER" envDefault:"openai"`
	Model    string `env:"SAORI_LLM_MODEL"`

	OpenAIAPIKey     string `env:"SAORI_OPENAI_API_KEY" redact:"true"`
	OpenRouterAPIKey string `env:"SAORI_OPENROUTER_API_KEY" redact:"true"`
	AnthropicAPIKey  string `env:"SAORI_ANTHROPIC_API_KEY" redact:"true"`

	OllamaBaseURL string `env:"SAORI_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`

	CustomBaseURL string `env:"SAORI_CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey  string `env:"SAORI_CUSTOM_OPENAI_API_KEY" redact:"true"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c ProviderConfig) GetProvider() string {
	return c.Provider
}

func (c ProviderConfig) GetModel() string {
	return c.Model
}

func (c ProviderConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

func (c ProviderConfig) GetOpenRouterAPIKey() string {
	return c.OpenRouterAPIKey
}

func (c ProviderConfig) GetAnthropicAPIKey() string {
	return c.AnthropicAPIKey
}

func (c ProviderConfig) GetOllamaBaseURL() string {
	return c.OllamaBaseURL
}

func (c ProviderConfig) GetCustomOpenAIBaseURL() string {
	return c.CustomBaseURL
}

func (c ProviderConfig) GetCustomOpenAIAPIKey() string {
	return c.CustomAPIKey
}

