package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
	"github.com/jhoicas/Kardex-mvc/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// Sentencias de la tabla Kardex. El orden de columnas y de parámetros es parte del contrato.
const (
	listKardexSQL   = `SELECT IdKardex, Curso, Semestre, Nota FROM Kardex`
	insertKardexSQL = `INSERT INTO Kardex (Curso, Semestre, Nota) VALUES ($1, $2, $3) RETURNING IdKardex`
	updateKardexSQL = `UPDATE Kardex SET Curso=$1, Semestre=$2, Nota=$3 WHERE IdKardex = $4`
	deleteKardexSQL = `DELETE FROM Kardex WHERE IdKardex = $1`
)

// KardexRepo implementación del puerto KardexRepository sobre PostgreSQL (usable con pool o tx).
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// List lee la tabla completa; el orden lo decide la base de datos.
// Nota (INT) se lee y se escribe como decimal.Decimal con el codec registrado en NewPool.
func (r *KardexRepo) List(ctx context.Context) ([]*entity.Kardex, error) {
	rows, err := r.q.Query(ctx, listKardexSQL)
	if err != nil {
		return nil, persistenceErr("list", "query kardex", err)
	}
	defer rows.Close()

	list := make([]*entity.Kardex, 0)
	for rows.Next() {
		var (
			k        entity.Kardex
			course   pgtype.Text
			semester pgtype.Int4
			grade    decimal.NullDecimal
		)
		if err := rows.Scan(&k.ID, &course, &semester, &grade); err != nil {
			return nil, persistenceErr("list", "scan kardex", err)
		}
		k.Course = course.String
		k.Semester = int(semester.Int32)
		k.Grade = grade.Decimal
		list = append(list, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list", "iterate kardex", err)
	}
	return list, nil
}

// Create inserta el registro y asigna en k.ID el valor autoincremental.
func (r *KardexRepo) Create(ctx context.Context, k *entity.Kardex) error {
	var id int
	err := r.q.QueryRow(ctx, insertKardexSQL, k.Course, k.Semester, k.Grade).Scan(&id)
	if err != nil {
		return persistenceErr("create", "insert kardex", err)
	}
	k.ID = id
	return nil
}

// Update actualiza Curso, Semestre y Nota del registro k.ID.
func (r *KardexRepo) Update(ctx context.Context, k *entity.Kardex) (int64, error) {
	cmd, err := r.q.Exec(ctx, updateKardexSQL, k.Course, k.Semester, k.Grade, k.ID)
	if err != nil {
		return 0, persistenceErr("update", "update kardex", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina el registro por ID con parámetro enlazado.
func (r *KardexRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.q.Exec(ctx, deleteKardexSQL, id); err != nil {
		return persistenceErr("delete", "delete kardex", err)
	}
	return nil
}
