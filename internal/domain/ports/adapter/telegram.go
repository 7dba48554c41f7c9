// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

// Messenger is the outbound side of the chat transport.
// Send methods return the platform message id so it can be retracted later.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) (int, error)
	SendSticker(ctx context.Context, chatID int64, fileID string) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}
