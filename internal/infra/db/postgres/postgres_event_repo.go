package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
)

var _ repository.EventRepository = (*PostgresEventRepo)(nil)

type PostgresEventRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresEventRepo(pool *pgxpool.Pool) *PostgresEventRepo {
	return &PostgresEventRepo{pool: pool}
}

func (r *PostgresEventRepo) Insert(ctx context.Context, e *model.Event) error {
	const q = `
INSERT INTO events (id, telegram_id, text, created_at)
VALUES ($1,$2,$3, COALESCE($4::timestamptz, now()))
RETURNING created_at;
`
	var at *time.Time
	if !e.CreatedAt.IsZero() {
		at = &e.CreatedAt
	}
	if err := r.pool.QueryRow(ctx, q, e.ID, e.TelegramID, e.Text, at).Scan(&e.CreatedAt); err != nil {
		return storeErr("EventRepo.Insert", err)
	}
	return nil
}

func (r *PostgresEventRepo) FindByTelegramIDBetween(ctx context.Context, tgID int64, start, end time.Time) ([]*model.Event, error) {
	const q = `
SELECT id, telegram_id, text, created_at
  FROM events
 WHERE telegram_id=$1 AND created_at >= $2 AND created_at <= $3
 ORDER BY created_at ASC, id ASC;
`
	rows, err := r.pool.Query(ctx, q, tgID, start, end)
	if err != nil {
		return nil, storeErr("EventRepo.FindByTelegramIDBetween", err)
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.TelegramID, &e.Text, &e.CreatedAt); err != nil {
			return nil, storeErr("EventRepo.FindByTelegramIDBetween", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("EventRepo.FindByTelegramIDBetween", err)
	}
	return out, nil
}
