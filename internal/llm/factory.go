package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Configured reports whether config carries what its provider needs to make a call.
// Ollama runs locally and needs a model name instead of a credential.
func Configured(config Config) bool {
	switch strings.ToLower(config.Provider) {
	case "gemini", "google", "openai", "anthropic", "claude":
		return config.APIKey != ""
	case "ollama":
		return config.Model != ""
	default:
		return false
	}
}

// NewProvider creates a provider based on configuration.
// It returns nil with no error when no provider is selected or its credential is missing.
func NewProvider(ctx context.Context, config Config, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "":
		return nil, nil

	case "gemini", "google", "openai", "anthropic", "claude", "ollama":
		if !Configured(config) {
			logger.Info("Insight provider not configured, using fallback insight",
				zap.String("provider", provider))
			return nil, nil
		}

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: gemini, openai, anthropic, ollama)", config.Provider)
	}

	switch provider {
	case "gemini", "google":
		p, err := NewGeminiProvider(ctx, config, logger)
		if err != nil {
			return nil, err
		}
		return p, nil

	case "openai":
		p, err := NewOpenAIProvider(config, logger)
		if err != nil {
			return nil, err
		}
		return p, nil

	case "anthropic", "claude":
		p, err := NewAnthropicProvider(config, logger)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		p, err := NewOllamaProvider(config, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
