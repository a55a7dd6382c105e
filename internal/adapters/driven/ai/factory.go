// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/groundplane/webrag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/groundplane/webrag/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/groundplane/webrag/internal/adapters/driven/llm/ollama"
	openaillm "github.com/groundplane/webrag/internal/adapters/driven/llm/openai"
	"github.com/groundplane/webrag/internal/config"
	"github.com/groundplane/webrag/internal/core/domain"
	"github.com/groundplane/webrag/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService builds the embedding adapter named by the
// configuration and validates connectivity before returning it.
func CreateEmbeddingService(cfg *config.Config) (driven.EmbeddingService, error) {
	var svc driven.EmbeddingService

	switch cfg.EmbedProvider {
	case "openai":
		s, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.EmbedAPIKey,
			BaseURL: cfg.EmbedBaseURL,
			Model:   cfg.EmbedModel,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		svc = s
	case "ollama":
		svc = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.EmbedBaseURL,
			Model:   cfg.EmbedModel,
		})
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrEmbeddingUnavailable, cfg.EmbedProvider)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateLLMService builds the LLM adapter named by the configuration
// and validates connectivity before returning it.
func CreateLLMService(cfg *config.Config) (driven.LLMService, error) {
	var svc driven.LLMService

	switch cfg.LLMProvider {
	case "openai":
		s, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
		}
		svc = s
	case "ollama":
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
		})
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrLLMUnavailable, cfg.LLMProvider)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}
