package adapter

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Usage for a single completion call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is the text of the first returned choice plus reported usage.
// Text is empty when the provider returned no choice.
type Completion struct {
	Text  string
	Usage Usage
}

// CompletionService is the port for the text-completion provider.
// Implementations make exactly one request per call and never retry.
type CompletionService interface {
	Provider() string
	Model() string
	Complete(ctx context.Context, messages []Message) (Completion, error)
}
