package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
	"telegram-post-curator/internal/infra/logging"
	"telegram-post-curator/internal/infra/metrics"
)

var _ EventUseCase = (*eventUC)(nil)

// EventUseCase is the per-user, append-only event log.
type EventUseCase interface {
	Record(ctx context.Context, tgID int64, text string) (*model.Event, error)
	// EventsForDay returns the user's events on the calendar day containing ref,
	// ordered by creation time.
	EventsForDay(ctx context.Context, tgID int64, ref time.Time) ([]*model.Event, error)
}

type eventUC struct {
	events repository.EventRepository
	loc    *time.Location
	log    *zerolog.Logger
	dev    bool
}

// NewEventUseCase builds the event log. loc is the zone that defines a day;
// nil means process local time.
func NewEventUseCase(events repository.EventRepository, loc *time.Location, logger *zerolog.Logger, devMode bool) *eventUC {
	if loc == nil {
		loc = time.Local
	}
	return &eventUC{
		events: events,
		loc:    loc,
		log:    logger,
		dev:    devMode,
	}
}

func (u *eventUC) Record(ctx context.Context, tgID int64, text string) (*model.Event, error) {
	defer logging.TraceDuration(u.log, "EventUC.Record")()

	ev, err := model.NewEvent(tgID, text)
	if err != nil {
		return nil, err
	}
	if err := u.events.Insert(ctx, ev); err != nil {
		return nil, err
	}
	metrics.IncEventRecorded()
	logging.With(ctx, u.log).Debug().
		Str("event_id", ev.ID).
		Str("text", logging.Redact(text, u.dev)).
		Msg("event recorded")
	return ev, nil
}

func (u *eventUC) EventsForDay(ctx context.Context, tgID int64, ref time.Time) ([]*model.Event, error) {
	defer logging.TraceDuration(u.log, "EventUC.EventsForDay")()

	start, end := model.DayWindow(ref, u.loc)
	return u.events.FindByTelegramIDBetween(ctx, tgID, start, end)
}
