package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/saori/internal/config"
	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/pkg/log"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	// Ollama ignores the key but the SDK requires one.
	ollamaPlaceholderKey = "ollama"
)

var defaultModels = map[string]string{
	config.ProviderOpenAI:     "gpt-4o-mini",
	config.ProviderOpenRouter: "openai/gpt-4o-mini",
	config.ProviderAnthropic:  "claude-3-5-haiku-latest",
	config.ProviderOllama:     "llama3.2",
	config.ProviderCustom:     "gpt-4o-mini",
}

var suggestedModels = map[string][]string{
	config.ProviderOpenAI:     {"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini"},
	config.ProviderOpenRouter: {"openai/gpt-4o-mini", "anthropic/claude-3.5-haiku", "meta-llama/llama-3.1-8b-instruct"},
	config.ProviderAnthropic:  {"claude-3-5-haiku-latest", "claude-3-5-sonnet-latest"},
	config.ProviderOllama:     {"llama3.2", "mistral", "qwen2.5"},
}

// SuggestedModels lists known-good models for provider, the default first.
// Custom endpoints have no suggestions.
func SuggestedModels(provider string) []string {
	return suggestedModels[provider]
}

// NewProvider creates the AIProvider selected by configuration. Missing
// credentials are reported as core.ErrConfigurationMissing.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.AIProvider, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.GetProvider()))
	model := cfg.GetModel()
	if model == "" {
		model = defaultModels[provider]
	}

	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Str("model", model).
		Msg("starting llm provider")

	switch provider {
	case config.ProviderOpenAI:
		if cfg.GetOpenAIAPIKey() == "" {
			return nil, missing("SAORI_OPENAI_API_KEY")
		}
		return NewOpenAI(OpenAIConfig{APIKey: cfg.GetOpenAIAPIKey(), Model: model}), nil

	case config.ProviderOpenRouter:
		if cfg.GetOpenRouterAPIKey() == "" {
			return nil, missing("SAORI_OPENROUTER_API_KEY")
		}
		return NewOpenAI(OpenAIConfig{
			BaseURL: openRouterBaseURL,
			APIKey:  cfg.GetOpenRouterAPIKey(),
			Model:   model,
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.SaoriRepositoryURL,
				"X-Title":      core.SaoriName,
			},
		}), nil

	case config.ProviderAnthropic:
		if cfg.GetAnthropicAPIKey() == "" {
			return nil, missing("SAORI_ANTHROPIC_API_KEY")
		}
		return NewAnthropic(cfg.GetAnthropicAPIKey(), model, ""), nil

	case config.ProviderOllama:
		if cfg.GetOllamaBaseURL() == "" {
			return nil, missing("SAORI_OLLAMA_BASE_URL")
		}
		return NewOpenAI(OpenAIConfig{
			BaseURL: ollamaOpenAIURL(cfg.GetOllamaBaseURL()),
			APIKey:  ollamaPlaceholderKey,
			Model:   model,
		}), nil

	case config.ProviderCustom:
		if cfg.GetCustomOpenAIBaseURL() == "" {
			return nil, missing("SAORI_CUSTOM_OPENAI_BASE_URL")
		}
		return NewOpenAI(OpenAIConfig{
			BaseURL: cfg.GetCustomOpenAIBaseURL(),
			APIKey:  cfg.GetCustomOpenAIAPIKey(),
			Model:   model,
		}), nil

	default:
		return nil, fmt.Errorf("unknown llm provider %q: %w", provider, core.ErrConfigurationMissing)
	}
}

func missing(key string) error {
	return fmt.Errorf("%s is not set: %w", key, core.ErrConfigurationMissing)
}

// ollamaOpenAIURL maps an Ollama host to its OpenAI compatible prefix.
func ollamaOpenAIURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/v1") {
		return base
	}
	return base + "/v1"
}
