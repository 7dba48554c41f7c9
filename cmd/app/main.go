// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-post-curator/internal/application"
	"telegram-post-curator/internal/config"
	aiAdapters "telegram-post-curator/internal/infra/adapters/ai"
	tele "telegram-post-curator/internal/infra/adapters/telegram"
	"telegram-post-curator/internal/infra/db"
	httpapi "telegram-post-curator/internal/infra/http"
	"telegram-post-curator/internal/infra/i18n"
	"telegram-post-curator/internal/infra/logging"
	"telegram-post-curator/internal/infra/metrics"
	red "telegram-post-curator/internal/infra/redis"
	"telegram-post-curator/internal/infra/scheduler"
	"telegram-post-curator/internal/infra/worker"
	"telegram-post-curator/internal/usecase"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (full message text in logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		// no logger yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] enabled")
	}
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("timezone")
	}

	// ---- Store ----
	store, err := db.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("store connection failed")
	}
	defer func() {
		cctx, ccancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer ccancel()
		if err := store.Close(cctx); err != nil {
			logger.Warn().Err(err).Msg("store close")
		}
	}()

	probe := scheduler.NewScheduler(cfg.Database.ProbeInterval, scheduler.NewStoreProbe(store.Backend, store), logger)
	probe.Start(ctx)
	defer probe.Stop()

	// ---- Redis (optional) ----
	var guard tele.Deduper
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable; update de-duplication disabled")
		} else {
			defer redisClient.Close()
			guard = red.NewUpdateGuard(redisClient, cfg.Redis.TTL, logger)
		}
	}

	// ---- Completion service ----
	ai, err := aiAdapters.New(ctx, cfg.AI)
	if err != nil {
		logger.Fatal().Err(err).Msg("completion service")
	}
	logger.Info().Str("provider", ai.Provider()).Str("model", ai.Model()).Msg("completion service ready")

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(store.Users, logger)
	eventUC := usecase.NewEventUseCase(store.Events, loc, logger, cfg.Runtime.Dev)
	postUC := usecase.NewPostUseCase(ai, logger)

	tr, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Language)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}
	logger.Info().Str("lang", tr.Lang()).Msg("reply catalogue loaded")

	// ---- Telegram ----
	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	bot.Debug = cfg.Runtime.Dev
	logger.Info().Str("username", bot.Self.UserName).Msg("authorized on telegram")

	facade := application.NewBotFacade(userUC, eventUC, postUC, tele.NewMessenger(bot), tr, cfg.Bot.StickerID, logger)

	pool := worker.NewPool(cfg.Bot.Workers, logger)
	pool.Start(context.Background())

	botAdapter, err := tele.NewRealTelegramBotAdapter(bot, facade, pool, guard, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram adapter")
	}
	if err := botAdapter.RegisterCommands(); err != nil {
		logger.Warn().Err(err).Msg("failed to register bot commands")
	}

	// ---- HTTP: health, metrics and (in webhook mode) updates ----
	var webhook http.Handler
	if cfg.Bot.Mode == config.ModeWebhook {
		webhook = botAdapter.WebhookHandler()
	}
	server := httpapi.NewServer(cfg.Bot.Port, httpapi.NewRouter(store, webhook, logger), logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	switch cfg.Bot.Mode {
	case config.ModeWebhook:
		if err := botAdapter.SetWebhook(cfg.WebhookEndpoint()); err != nil {
			logger.Fatal().Err(err).Msg("set webhook")
		}
		logger.Info().Str("endpoint", cfg.WebhookEndpoint()).Msg("webhook registered")
	default:
		go func() {
			if err := botAdapter.StartPolling(ctx); err != nil {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sigc:
		logger.Info().Str("signal", s.String()).Msg("shutdown requested")
	case <-ctx.Done():
	}

	botAdapter.StopPolling()
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()
	if err := server.Shutdown(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	pool.Stop()
	logger.Info().Msg("bye")
}
