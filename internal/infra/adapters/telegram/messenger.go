package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/ports/adapter"
	"telegram-post-curator/internal/infra/metrics"
)

// maxMessageRunes is Telegram's limit for a single text message.
const maxMessageRunes = 4096

var _ adapter.Messenger = (*Messenger)(nil)

// Messenger implements adapter.Messenger. Every failure is a transport error.
type Messenger struct {
	api botAPI
}

func NewMessenger(api botAPI) *Messenger {
	return &Messenger{api: api}
}

// SendText sends text, split into several messages when it is too long for
// one, and returns the id of the first.
func (m *Messenger) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	first := 0
	for i, part := range splitText(text, maxMessageRunes) {
		if err := ctx.Err(); err != nil {
			return first, transportErr("send_text", err)
		}
		sent, err := m.api.Send(tgbotapi.NewMessage(chatID, part))
		if err != nil {
			return first, transportErr("send_text", err)
		}
		if i == 0 {
			first = sent.MessageID
		}
	}
	return first, nil
}

func (m *Messenger) SendSticker(ctx context.Context, chatID int64, fileID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, transportErr("send_sticker", err)
	}
	sent, err := m.api.Send(tgbotapi.NewSticker(chatID, tgbotapi.FileID(fileID)))
	if err != nil {
		return 0, transportErr("send_sticker", err)
	}
	return sent.MessageID, nil
}

func (m *Messenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return transportErr("delete_message", err)
	}
	if _, err := m.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return transportErr("delete_message", err)
	}
	return nil
}

func transportErr(op string, err error) error {
	metrics.IncTelegramSendFailure(op)
	return domain.E(domain.KindTransport, "telegram."+op, err)
}

// splitText cuts s into chunks of at most n runes. Empty input yields one empty chunk.
func splitText(s string, n int) []string {
	r := []rune(s)
	if len(r) <= n {
		return []string{s}
	}
	var out []string
	for len(r) > 0 {
		end := n
		if end > len(r) {
			end = len(r)
		}
		out = append(out, string(r[:end]))
		r = r[end:]
	}
	return out
}
