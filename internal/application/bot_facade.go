package application

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/adapter"
	"telegram-post-curator/internal/infra/i18n"
	"telegram-post-curator/internal/infra/logging"
	"telegram-post-curator/internal/infra/metrics"
)

// Generate outcomes, used as metric labels.
const (
	OutcomeOK              = "ok"
	OutcomeNoEvents        = "no_events"
	OutcomeStoreError      = "store_error"
	OutcomeCompletionError = "completion_error"
	OutcomeTransportError  = "transport_error"
)

// BotFacade turns the three supported inbound shapes into use case calls and
// chat replies. It holds no per-user state.
//
// Handler errors are transport failures only: every other failure is logged
// and answered with a generic reply.
type BotFacade struct {
	users     UserRegistry
	events    EventLog
	posts     PostComposer
	messenger adapter.Messenger
	tr        Translator
	stickerID string
	log       *zerolog.Logger
	now       func() time.Time
}

func NewBotFacade(
	users UserRegistry,
	events EventLog,
	posts PostComposer,
	messenger adapter.Messenger,
	tr Translator,
	stickerID string,
	logger *zerolog.Logger,
) *BotFacade {
	return &BotFacade{
		users:     users,
		events:    events,
		posts:     posts,
		messenger: messenger,
		tr:        tr,
		stickerID: stickerID,
		log:       logger,
		now:       time.Now,
	}
}

// WithClock replaces the reference clock used to pick "today".
func (b *BotFacade) WithClock(now func() time.Time) *BotFacade {
	b.now = now
	return b
}

// HandleStart registers the sender on first contact and greets them.
func (b *BotFacade) HandleStart(ctx context.Context, chatID int64, p model.Profile) error {
	log := logging.With(ctx, b.log)

	if _, err := b.users.OnFirstContact(ctx, p); err != nil {
		log.Error().Err(err).Str("kind", string(domain.KindOf(err))).Msg("start: register user failed")
		return b.reply(ctx, chatID, b.tr.T(i18n.KeyStartFailed))
	}
	return b.reply(ctx, chatID, b.tr.T(i18n.KeyWelcome, p.DisplayName()))
}

// HandleText stores any non-command text as an event.
func (b *BotFacade) HandleText(ctx context.Context, chatID int64, p model.Profile, text string) error {
	log := logging.With(ctx, b.log)

	if _, err := b.events.Record(ctx, p.TelegramID, text); err != nil {
		log.Error().Err(err).Str("kind", string(domain.KindOf(err))).Msg("text: record event failed")
		return b.reply(ctx, chatID, b.tr.T(i18n.KeyEventSaveFailed))
	}
	return b.reply(ctx, chatID, b.tr.T(i18n.KeyEventSaved))
}

// HandleGenerate drafts posts from today's events. Both placeholder messages
// are always retracted before the final reply, whatever the outcome.
func (b *BotFacade) HandleGenerate(ctx context.Context, chatID int64, p model.Profile) error {
	log := logging.With(ctx, b.log)

	waitID, err := b.messenger.SendText(ctx, chatID, b.tr.T(i18n.KeyGenerateWait, p.DisplayName()))
	if err != nil {
		metrics.IncGenerate(OutcomeTransportError)
		return err
	}
	stickerMsgID, err := b.messenger.SendSticker(ctx, chatID, b.stickerID)
	if err != nil {
		metrics.IncGenerate(OutcomeTransportError)
		b.retract(ctx, chatID, waitID)
		return err
	}
	placeholders := []int{waitID, stickerMsgID}

	events, err := b.events.EventsForDay(ctx, p.TelegramID, b.now())
	if err != nil {
		log.Error().Err(err).Str("kind", string(domain.KindOf(err))).Msg("generate: fetch events failed")
		return b.finish(ctx, chatID, placeholders, OutcomeStoreError, b.tr.T(i18n.KeyGenerateFailed))
	}
	if len(events) == 0 {
		return b.finish(ctx, chatID, placeholders, OutcomeNoEvents, b.tr.T(i18n.KeyGenerateNoEvents))
	}

	posts, err := b.posts.ComposePosts(ctx, model.Texts(events))
	if err != nil {
		ev := log.Error().Err(err).Str("kind", string(domain.KindOf(err))).Int("events", len(events))
		var ce *domain.CompletionError
		if errors.As(err, &ce) {
			ev = ev.Int("status", ce.StatusCode).Str("body", ce.Body)
		}
		ev.Msg("generate: compose posts failed")
		return b.finish(ctx, chatID, placeholders, OutcomeCompletionError, b.tr.T(i18n.KeyGenerateFailed))
	}

	log.Info().Int("events", len(events)).Msg("generate: posts delivered")
	return b.finish(ctx, chatID, placeholders, OutcomeOK, posts)
}

// finish retracts the placeholders, then sends the terminal reply.
func (b *BotFacade) finish(ctx context.Context, chatID int64, placeholders []int, outcome, text string) error {
	for _, id := range placeholders {
		b.retract(ctx, chatID, id)
	}
	metrics.IncGenerate(outcome)
	return b.reply(ctx, chatID, text)
}

// retract failures are logged only; the flow continues.
func (b *BotFacade) retract(ctx context.Context, chatID int64, messageID int) {
	if err := b.messenger.DeleteMessage(ctx, chatID, messageID); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Int("message_id", messageID).Msg("retract placeholder failed")
	}
}

func (b *BotFacade) reply(ctx context.Context, chatID int64, text string) error {
	_, err := b.messenger.SendText(ctx, chatID, text)
	return err
}
