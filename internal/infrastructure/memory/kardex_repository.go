// Package memory implementa el puerto KardexRepository en memoria.
// Se usa con STORAGE_DRIVER=memory (demostraciones, sin PostgreSQL) y en los tests.
// Los IDs se asignan de forma autoincremental como en la tabla real y nunca se reutilizan.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
	"github.com/jhoicas/Kardex-mvc/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// state guarda las filas en orden de inserción.
type state struct {
	rows   []entity.Kardex
	nextID int
}

func (s *state) clone() state {
	rows := make([]entity.Kardex, len(s.rows))
	copy(rows, s.rows)
	return state{rows: rows, nextID: s.nextID}
}

func (s *state) list() []*entity.Kardex {
	out := make([]*entity.Kardex, 0, len(s.rows))
	for i := range s.rows {
		k := s.rows[i]
		out = append(out, &k)
	}
	return out
}

func (s *state) create(k *entity.Kardex) {
	s.nextID++
	k.ID = s.nextID
	s.rows = append(s.rows, *k)
}

func (s *state) update(k *entity.Kardex) int64 {
	for i := range s.rows {
		if s.rows[i].ID == k.ID {
			s.rows[i] = *k
			return 1
		}
	}
	return 0
}

func (s *state) delete(id int) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return
		}
	}
}

// KardexRepo almacén en memoria seguro para uso concurrente.
type KardexRepo struct {
	mu sync.Mutex
	st state
}

// NewKardexRepository construye un almacén vacío.
func NewKardexRepository() *KardexRepo {
	return &KardexRepo{}
}

// List devuelve copias de todas las filas en orden de inserción.
func (r *KardexRepo) List(_ context.Context) ([]*entity.Kardex, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.list(), nil
}

// Create asigna el siguiente ID y guarda una copia del registro.
func (r *KardexRepo) Create(_ context.Context, k *entity.Kardex) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.create(k)
	return nil
}

// Update reemplaza la fila con el mismo ID; devuelve 0 si no existe.
func (r *KardexRepo) Update(_ context.Context, k *entity.Kardex) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.update(k), nil
}

// Delete elimina la fila si existe.
func (r *KardexRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.st.delete(id)
	return nil
}

// RunKardex ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// Mantiene el candado durante toda la transacción.
func (r *KardexRepo) RunKardex(_ context.Context, fn func(repo repository.KardexRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	work := r.st.clone()
	if err := fn(&txRepo{st: &work}); err != nil {
		return err
	}
	r.st = work
	return nil
}

// txRepo opera sobre el estado de trabajo de una transacción (sin candado propio).
type txRepo struct {
	st *state
}

func (t *txRepo) List(_ context.Context) ([]*entity.Kardex, error) { return t.st.list(), nil }

func (t *txRepo) Create(_ context.Context, k *entity.Kardex) error {
	t.st.create(k)
	return nil
}

func (t *txRepo) Update(_ context.Context, k *entity.Kardex) (int64, error) {
	return t.st.update(k), nil
}

func (t *txRepo) Delete(_ context.Context, id int) error {
	t.st.delete(id)
	return nil
}
