package repository

import (
	"context"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// SnapshotRepository define el puerto de persistencia del agregado completo (DIP).
// Load devuelve nil, nil cuando todavía no hay nada guardado.
type SnapshotRepository interface {
	Load(ctx context.Context) (*entity.Snapshot, error)
	Save(ctx context.Context, snapshot *entity.Snapshot) error
}
