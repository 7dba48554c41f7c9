package application

import (
	"context"
	"time"

	"telegram-post-curator/internal/domain/model"
)

// ---- small interfaces to decouple the facade from concrete usecase structs ----
// They describe the minimal surface the facade needs, so tests can pass light-weight mocks.

type UserRegistry interface {
	OnFirstContact(ctx context.Context, p model.Profile) (bool, error)
}

type EventLog interface {
	Record(ctx context.Context, tgID int64, text string) (*model.Event, error)
	EventsForDay(ctx context.Context, tgID int64, ref time.Time) ([]*model.Event, error)
}

type PostComposer interface {
	ComposePosts(ctx context.Context, eventTexts []string) (string, error)
}

type Translator interface {
	T(key string, args ...interface{}) string
}
