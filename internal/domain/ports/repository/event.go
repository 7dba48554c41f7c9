package repository

import (
	"context"
	"time"

	"telegram-post-curator/internal/domain/model"
)

// -----------------------------
// Events
// -----------------------------

type EventRepository interface {
	// Insert appends e. The store assigns e.CreatedAt when it is zero.
	Insert(ctx context.Context, e *model.Event) error
	// FindByTelegramIDBetween returns the user's events with
	// start <= CreatedAt <= end, oldest first.
	FindByTelegramIDBetween(ctx context.Context, tgID int64, start, end time.Time) ([]*model.Event, error)
}
