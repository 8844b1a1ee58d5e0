// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/llm/openai"
	"github.com/salesmate-labs/salesmate-cli/internal/adapters/driven/llm/retry"
	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the configured provider adapter, wrapped with
// the retry-and-throttle decorator.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	var (
		svc driven.LLMService
		err error
	)

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewService(openaillm.Config{
			APIKey:           settings.APIKey,
			BaseURL:          settings.BaseURL,
			Model:            settings.Model,
			Timeout:          settings.Timeout,
			Temperature:      settings.Temperature,
			TopP:             settings.TopP,
			FrequencyPenalty: settings.FrequencyPenalty,
			PresencePenalty:  settings.PresencePenalty,
			MaxTokens:        settings.MaxTokens,
		})

	case domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewService(anthropicllm.Config{
			APIKey:      settings.APIKey,
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			Timeout:     settings.Timeout,
			Temperature: settings.Temperature,
			TopP:        settings.TopP,
			MaxTokens:   settings.MaxTokens,
		})

	case domain.AIProviderOllama:
		svc, err = ollamallm.NewService(ollamallm.Config{
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			Timeout:     settings.Timeout,
			Temperature: settings.Temperature,
			TopP:        settings.TopP,
			MaxTokens:   settings.MaxTokens,
		})

	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", domain.ErrConfig, settings.Provider)
	}

	if err != nil {
		return nil, err
	}

	return retry.NewService(svc, retry.Config{MaxRetries: settings.MaxRetries}), nil
}

// CreateAndValidateLLMService creates the LLM service and validates
// connectivity, so misconfiguration fails at startup rather than on the
// first conversation turn.
func CreateAndValidateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%s service unreachable: %w", settings.Provider, err)
	}

	return svc, nil
}
