package repository

import (
	"context"

	"telegram-post-curator/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	// InsertIfAbsent stores u only when no user with the same TelegramID
	// exists. Existing records are left untouched. created reports whether
	// a new record was written.
	InsertIfAbsent(ctx context.Context, u *model.User) (created bool, err error)
	FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
}
