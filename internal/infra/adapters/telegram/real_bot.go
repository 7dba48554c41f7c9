package telegram

import (
	"context"
	"errors"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/infra/logging"
	"telegram-post-curator/internal/infra/metrics"
	"telegram-post-curator/internal/infra/worker"
)

// Dispatcher is implemented by application.BotFacade.
type Dispatcher interface {
	HandleStart(ctx context.Context, chatID int64, p model.Profile) error
	HandleGenerate(ctx context.Context, chatID int64, p model.Profile) error
	HandleText(ctx context.Context, chatID int64, p model.Profile, text string) error
}

// Submitter queues update handling; implemented by worker.Pool.
type Submitter interface {
	Submit(ctx context.Context, task worker.Task) error
}

// Deduper drops redelivered updates; implemented by redis.UpdateGuard.
type Deduper interface {
	FirstSeen(ctx context.Context, updateID int) bool
}

// RealTelegramBotAdapter receives updates (long polling or webhook) and hands
// each one to the Dispatcher on the worker pool.
type RealTelegramBotAdapter struct {
	api    updateAPI
	facade Dispatcher
	pool   Submitter
	guard  Deduper
	log    *zerolog.Logger

	mu            sync.Mutex
	cancelPolling context.CancelFunc
}

// NewRealTelegramBotAdapter wires the adapter. guard may be nil.
func NewRealTelegramBotAdapter(api updateAPI, facade Dispatcher, pool Submitter, guard Deduper, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if api == nil {
		return nil, errors.New("telegram api is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if pool == nil {
		return nil, errors.New("worker pool is nil")
	}
	return &RealTelegramBotAdapter{
		api:    api,
		facade: facade,
		pool:   pool,
		guard:  guard,
		log:    logger,
	}, nil
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func (r *RealTelegramBotAdapter) RegisterCommands() error {
	_, err := r.api.Request(tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Register and see what I can do"},
		tgbotapi.BotCommand{Command: "generate", Description: "Draft posts from today's events"},
	))
	return err
}

// SetWebhook points Telegram at endpoint.
func (r *RealTelegramBotAdapter) SetWebhook(endpoint string) error {
	wh, err := tgbotapi.NewWebhook(endpoint)
	if err != nil {
		return err
	}
	_, err = r.api.Request(wh)
	return err
}

// StartPolling long-polls until ctx is cancelled or StopPolling is called.
// Any registered webhook is removed first, since Telegram refuses getUpdates
// while one is set.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if _, err := r.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		r.log.Warn().Err(err).Msg("failed to delete webhook before polling")
	}

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancelPolling = cancel
	r.mu.Unlock()
	defer cancel()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.api.GetUpdatesChan(u)
	r.log.Info().Msg("telegram long polling started")

	for {
		select {
		case <-ctx.Done():
			r.api.StopReceivingUpdates()
			r.log.Info().Msg("telegram long polling stopped")
			return nil
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			if err := r.dispatch(ctx, up); err != nil && ctx.Err() == nil {
				r.log.Error().Err(err).Int("update_id", up.UpdateID).Msg("failed to queue update")
			}
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// WebhookHandler decodes a Telegram update from the request body and queues it.
func (r *RealTelegramBotAdapter) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		up, err := r.api.HandleUpdate(req)
		if err != nil {
			r.log.Warn().Err(err).Msg("webhook: bad update payload")
			http.Error(w, "bad update", http.StatusBadRequest)
			return
		}
		if err := r.dispatch(req.Context(), *up); err != nil {
			r.log.Error().Err(err).Int("update_id", up.UpdateID).Msg("webhook: failed to queue update")
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// dispatch blocks until a worker accepts the update or ctx ends.
func (r *RealTelegramBotAdapter) dispatch(ctx context.Context, up tgbotapi.Update) error {
	return r.pool.Submit(ctx, func(taskCtx context.Context) error {
		r.handleUpdate(taskCtx, up)
		return nil
	})
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if r.guard != nil && !r.guard.FirstSeen(ctx, update.UpdateID) {
		return
	}

	message := update.Message
	if message == nil || message.From == nil || message.Chat == nil || message.Text == "" {
		metrics.IncTelegramUpdate("ignored")
		return
	}

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithUpdateID(ctx, update.UpdateID)
	ctx = logging.WithTgID(ctx, message.From.ID)
	ctx = logging.WithChatID(ctx, message.Chat.ID)
	log := logging.With(ctx, r.log)

	kind, handler := r.route(message)
	metrics.IncTelegramUpdate(kind)
	log.Debug().Str("kind", kind).Msg("update received")

	if err := handler(ctx, message, profileOf(message.From)); err != nil {
		if domain.IsKind(err, domain.KindTransport) {
			log.Error().Err(err).Str("kind", kind).Msg("update dropped: reply could not be delivered")
			return
		}
		log.Error().Err(err).Str("kind", kind).Msg("update dropped")
	}
}
