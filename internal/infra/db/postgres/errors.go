package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/infra/metrics"
)

// storeErr tags err as a store operation failure, keeping the SQLSTATE when there is one.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	metrics.IncStoreError(backend, op)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		err = fmt.Errorf("sqlstate %s: %w", pgErr.Code, err)
	}
	return domain.E(domain.KindStoreOperation, "postgres."+op, err)
}
