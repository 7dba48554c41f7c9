package ai

import (
	"context"
	"fmt"

	"telegram-post-curator/internal/config"
	"telegram-post-curator/internal/domain/ports/adapter"
)

// New builds the completion service selected by cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (adapter.CompletionService, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIAdapter(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxOutputTokens)
	case config.ProviderGemini:
		return NewGeminiAdapter(ctx, cfg.GeminiKey, cfg.GeminiURL, cfg.Model, cfg.MaxOutputTokens)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
