package sqlite

import (
	"time"

	"telegram-post-curator/internal/domain/model"
)

// Timestamps are unix milliseconds so range filters compare numerically.

type userRow struct {
	TelegramID int64  `gorm:"column:telegram_id;primaryKey;autoIncrement:false"`
	FirstName  string `gorm:"column:first_name;not null;default:''"`
	LastName   string `gorm:"column:last_name;not null;default:''"`
	IsBot      bool   `gorm:"column:is_bot;not null;default:false"`
	Username   string `gorm:"column:username;not null;default:''"`
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:milli"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) toModel() *model.User {
	return &model.User{
		TelegramID: r.TelegramID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		IsBot:      r.IsBot,
		Username:   r.Username,
		CreatedAt:  fromMillis(r.CreatedAt),
	}
}

type eventRow struct {
	ID         string `gorm:"column:id;primaryKey"`
	TelegramID int64  `gorm:"column:telegram_id;not null;index:idx_events_telegram_created,priority:1"`
	Text       string `gorm:"column:text;not null"`
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:milli;index:idx_events_telegram_created,priority:2"`
}

func (eventRow) TableName() string { return "events" }

func (r eventRow) toModel() *model.Event {
	return &model.Event{
		ID:         r.ID,
		TelegramID: r.TelegramID,
		Text:       r.Text,
		CreatedAt:  fromMillis(r.CreatedAt),
	}
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
