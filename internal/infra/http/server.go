package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"telegram-post-curator/internal/config"
	"telegram-post-curator/internal/infra/metrics"
)

// Pinger is satisfied by the record store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter mounts /healthz, /metrics and, when webhook is non-nil, the
// Telegram webhook at config.WebhookPath.
func NewRouter(store Pinger, webhook http.Handler, logger *zerolog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(TraceID, Recover(logger), RequestLog(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("health check: store unreachable")
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	if webhook != nil {
		r.Method(http.MethodPost, config.WebhookPath, webhook)
	}
	return r
}

type Server struct {
	server *http.Server
	log    *zerolog.Logger
}

func NewServer(port int, handler http.Handler, logger *zerolog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: logger,
	}
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
