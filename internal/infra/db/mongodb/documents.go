package mongodb

import (
	"time"

	"telegram-post-curator/internal/domain/model"
)

type userDoc struct {
	TelegramID int64     `bson:"tg_id"`
	FirstName  string    `bson:"first_name"`
	LastName   string    `bson:"last_name,omitempty"`
	IsBot      bool      `bson:"is_bot"`
	Username   string    `bson:"username,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
}

func toUserDoc(u *model.User) userDoc {
	return userDoc{
		TelegramID: u.TelegramID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsBot:      u.IsBot,
		Username:   u.Username,
		CreatedAt:  u.CreatedAt,
	}
}

func (d userDoc) toModel() *model.User {
	return &model.User{
		TelegramID: d.TelegramID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		IsBot:      d.IsBot,
		Username:   d.Username,
		CreatedAt:  d.CreatedAt,
	}
}

type eventDoc struct {
	ID         string    `bson:"_id"`
	TelegramID int64     `bson:"tg_id"`
	Text       string    `bson:"text"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d eventDoc) toModel() *model.Event {
	return &model.Event{
		ID:         d.ID,
		TelegramID: d.TelegramID,
		Text:       d.Text,
		CreatedAt:  d.CreatedAt,
	}
}

// storeNow matches BSON date precision so a read returns exactly what was written.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
