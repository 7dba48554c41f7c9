package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
	"telegram-post-curator/internal/infra/metrics"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) InsertIfAbsent(ctx context.Context, u *model.User) (bool, error) {
	row := userRow{
		TelegramID: u.TelegramID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsBot:      u.IsBot,
		Username:   u.Username,
		CreatedAt:  toMillis(u.CreatedAt),
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "telegram_id"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return false, storeErr("UserRepo.InsertIfAbsent", res.Error)
	}
	if res.RowsAffected == 1 {
		u.CreatedAt = fromMillis(row.CreatedAt)
		return true, nil
	}
	return false, nil
}

func (r *UserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("telegram_id = ?", tgID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("UserRepo.FindByTelegramID", err)
	}
	return row.toModel(), nil
}

func storeErr(op string, err error) error {
	metrics.IncStoreError(backend, op)
	return domain.E(domain.KindStoreOperation, "sqlite."+op, err)
}
