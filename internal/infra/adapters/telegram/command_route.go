package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-post-curator/internal/domain/model"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message, p model.Profile) error

// commandRoutes defines the bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":    r.handleStartCommand,
		"generate": r.handleGenerateCommand,
	}
}

// route picks the handler for a text message. Unknown commands are plain text.
func (r *RealTelegramBotAdapter) route(message *tgbotapi.Message) (string, commandHandler) {
	if message.IsCommand() {
		if h, ok := r.commandRoutes()[message.Command()]; ok {
			return message.Command(), h
		}
	}
	return "text", r.handleTextMessage
}

func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message, p model.Profile) error {
	return r.facade.HandleStart(ctx, message.Chat.ID, p)
}

func (r *RealTelegramBotAdapter) handleGenerateCommand(ctx context.Context, message *tgbotapi.Message, p model.Profile) error {
	return r.facade.HandleGenerate(ctx, message.Chat.ID, p)
}

func (r *RealTelegramBotAdapter) handleTextMessage(ctx context.Context, message *tgbotapi.Message, p model.Profile) error {
	return r.facade.HandleText(ctx, message.Chat.ID, p, message.Text)
}

func profileOf(u *tgbotapi.User) model.Profile {
	return model.Profile{
		TelegramID: u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsBot:      u.IsBot,
		Username:   u.UserName,
	}
}
