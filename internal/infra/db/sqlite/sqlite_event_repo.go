package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"

	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Insert(ctx context.Context, e *model.Event) error {
	row := eventRow{
		ID:         e.ID,
		TelegramID: e.TelegramID,
		Text:       e.Text,
		CreatedAt:  toMillis(e.CreatedAt),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return storeErr("EventRepo.Insert", err)
	}
	e.CreatedAt = fromMillis(row.CreatedAt)
	return nil
}

func (r *EventRepo) FindByTelegramIDBetween(ctx context.Context, tgID int64, start, end time.Time) ([]*model.Event, error) {
	var rows []eventRow
	err := r.db.WithContext(ctx).
		Where("telegram_id = ? AND created_at >= ? AND created_at <= ?", tgID, start.UnixMilli(), end.UnixMilli()).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("EventRepo.FindByTelegramIDBetween", err)
	}

	out := make([]*model.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}
