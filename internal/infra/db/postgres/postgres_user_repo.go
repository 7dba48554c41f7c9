package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) InsertIfAbsent(ctx context.Context, u *model.User) (bool, error) {
	const q = `
INSERT INTO users (telegram_id, first_name, last_name, is_bot, username)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (telegram_id) DO NOTHING;
`
	tag, err := r.pool.Exec(ctx, q, u.TelegramID, u.FirstName, u.LastName, u.IsBot, u.Username)
	if err != nil {
		return false, storeErr("UserRepo.InsertIfAbsent", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	const q = `
SELECT telegram_id, first_name, last_name, is_bot, username, created_at
  FROM users WHERE telegram_id=$1;
`
	var u model.User
	err := r.pool.QueryRow(ctx, q, tgID).Scan(&u.TelegramID, &u.FirstName, &u.LastName, &u.IsBot, &u.Username, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("UserRepo.FindByTelegramID", err)
	}
	return &u, nil
}
