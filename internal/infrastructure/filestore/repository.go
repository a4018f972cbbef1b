// Package filestore persiste el agregado como un documento JSON en disco.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

// SnapshotRepository guarda el snapshot en <dir>/<name>.json.
// La escritura va a un archivo temporal que luego se renombra, así un corte a mitad
// de Save nunca deja un documento truncado.
type SnapshotRepository struct {
	fs   afero.Fs
	dir  string
	name string
}

// NewSnapshotRepository construye el repositorio sobre fs (afero.NewOsFs en producción,
// afero.NewMemMapFs en tests).
func NewSnapshotRepository(fs afero.Fs, dir, name string) *SnapshotRepository {
	if name == "" {
		name = entity.SnapshotName
	}
	return &SnapshotRepository{fs: fs, dir: dir, name: name}
}

// Path ruta del documento.
func (r *SnapshotRepository) Path() string {
	return filepath.Join(r.dir, r.name+".json")
}

// Load lee el documento. nil, nil si todavía no existe.
func (r *SnapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	data, err := afero.ReadFile(r.fs, r.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var s entity.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decodificar snapshot %s: %w", r.Path(), err)
	}
	return &s, nil
}

// Save escribe el documento completo.
func (r *SnapshotRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", r.dir, err)
	}
	tmp := r.Path() + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := r.fs.Rename(tmp, r.Path()); err != nil {
		_ = r.fs.Remove(tmp)
		return fmt.Errorf("reemplazar snapshot: %w", err)
	}
	return nil
}
