package ai

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/openai/openai-go/v2"
	"google.golang.org/genai"

	"telegram-post-curator/internal/domain"
)

// maxErrorBody caps how much of a failed response ends up in logs.
const maxErrorBody = 4096

// completionErr wraps err for op, lifting provider API errors into
// *domain.CompletionError so the status and body reach the log.
func completionErr(op string, err error) error {
	if ce := toCompletionError(err); ce != nil {
		return domain.E(domain.KindCompletionService, op, ce)
	}
	return domain.E(domain.KindCompletionService, op, err)
}

func toCompletionError(err error) *domain.CompletionError {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return &domain.CompletionError{StatusCode: oaErr.StatusCode, Body: openAIErrorBody(oaErr)}
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return &domain.CompletionError{StatusCode: gErr.Code, Body: geminiErrorBody(gErr)}
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) && gErrPtr != nil {
		return &domain.CompletionError{StatusCode: gErrPtr.Code, Body: geminiErrorBody(*gErrPtr)}
	}
	return nil
}

// openAIErrorBody prefers the raw response body, which the SDK rewinds after
// decoding; RawJSON only holds the "error" object and is empty for non-JSON bodies.
func openAIErrorBody(e *openai.Error) string {
	if e.Response != nil && e.Response.Body != nil {
		b, err := io.ReadAll(io.LimitReader(e.Response.Body, maxErrorBody))
		if err == nil && len(strings.TrimSpace(string(b))) > 0 {
			return string(b)
		}
	}
	return truncate(e.RawJSON(), maxErrorBody)
}

func geminiErrorBody(e genai.APIError) string {
	b, err := json.Marshal(map[string]any{
		"code":    e.Code,
		"status":  e.Status,
		"message": e.Message,
		"details": e.Details,
	})
	if err != nil {
		return truncate(e.Message, maxErrorBody)
	}
	return truncate(string(b), maxErrorBody)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
