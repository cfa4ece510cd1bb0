package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Kardex-mvc/internal/domain"
)

// persistenceErr envuelve err como *domain.PersistenceError, agregando el SQLSTATE si viene de PostgreSQL.
func persistenceErr(op, what string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return domain.NewPersistenceError(op, fmt.Errorf("%s (sqlstate %s): %w", what, pgErr.Code, err))
	}
	return domain.NewPersistenceError(op, fmt.Errorf("%s: %w", what, err))
}
