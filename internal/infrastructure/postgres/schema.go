package postgres

import (
	"context"
)

const createKardexTable = `
	CREATE TABLE IF NOT EXISTS Kardex (
		IdKardex SERIAL PRIMARY KEY,
		Curso    TEXT NOT NULL,
		Semestre INT  NOT NULL,
		Nota     INT  NOT NULL
	)`

// EnsureSchema crea la tabla Kardex si todavía no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, createKardexTable); err != nil {
		return persistenceErr("schema", "create table Kardex", err)
	}
	return nil
}
