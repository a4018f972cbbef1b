package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

// SnapshotRepository guarda el documento solo en memoria (STORE_DRIVER=memory y tests).
type SnapshotRepository struct {
	mu    sync.Mutex
	doc   *entity.Snapshot
	saves int
}

// NewSnapshotRepository crea el repositorio vacío.
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// Load devuelve una copia del último snapshot guardado o nil si no hay ninguno.
func (r *SnapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc.Clone(), nil
}

// Save reemplaza el documento guardado.
func (r *SnapshotRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = s.Clone()
	r.saves++
	return nil
}

// Saves cantidad de guardados realizados.
func (r *SnapshotRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
