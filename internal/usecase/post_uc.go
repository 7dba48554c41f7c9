package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-post-curator/internal/domain/ports/adapter"
	"telegram-post-curator/internal/infra/logging"
	"telegram-post-curator/internal/infra/metrics"
)

const (
	SystemPrompt = "You are a senior copywriter."
	PromptHeader = "Write 3 engaging social media posts for LinkedIn, Facebook, and Twitter. Do not mention time. Use these events:\n"
	// NoResponse is returned when the service answers without any text.
	NoResponse = "No response."
)

var _ PostUseCase = (*postUC)(nil)

// PostUseCase drafts social posts from a day's event texts.
type PostUseCase interface {
	ComposePosts(ctx context.Context, eventTexts []string) (string, error)
}

type postUC struct {
	ai  adapter.CompletionService
	log *zerolog.Logger
}

func NewPostUseCase(ai adapter.CompletionService, logger *zerolog.Logger) *postUC {
	return &postUC{ai: ai, log: logger}
}

// BuildPrompt renders one "- " line per event under the fixed instruction.
func BuildPrompt(eventTexts []string) string {
	lines := make([]string, len(eventTexts))
	for i, t := range eventTexts {
		lines[i] = "- " + t
	}
	return PromptHeader + strings.Join(lines, "\n")
}

// ComposePosts makes exactly one completion call. Errors are returned as-is
// from the adapter and carry domain.KindCompletionService.
func (p *postUC) ComposePosts(ctx context.Context, eventTexts []string) (string, error) {
	defer logging.TraceDuration(p.log, "PostUC.ComposePosts")()

	msgs := []adapter.Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: BuildPrompt(eventTexts)},
	}

	start := time.Now()
	res, err := p.ai.Complete(ctx, msgs)
	latency := time.Since(start).Milliseconds()
	metrics.ObserveCompletion(p.ai.Provider(), p.ai.Model(), res.Usage.PromptTokens, res.Usage.CompletionTokens, latency, err == nil)
	if err != nil {
		return "", err
	}

	logging.With(ctx, p.log).Debug().
		Str("provider", p.ai.Provider()).
		Int("events", len(eventTexts)).
		Int("tokens_in", res.Usage.PromptTokens).
		Int("tokens_out", res.Usage.CompletionTokens).
		Int64("latency_ms", latency).
		Msg("posts composed")

	if strings.TrimSpace(res.Text) == "" {
		return NoResponse, nil
	}
	return res.Text, nil
}
