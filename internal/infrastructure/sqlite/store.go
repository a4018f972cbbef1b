// Package sqlite persiste el agregado en una base SQLite local.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	name       TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SnapshotRepository guarda el documento JSON en la tabla snapshots.
type SnapshotRepository struct {
	db   *sql.DB
	name string
}

// Open crea o abre la base en path, aplica pragmas y esquema.
//
// La conexión se limita a una: SQLite admite un solo escritor y el persister ya
// serializa los guardados.
func Open(path, name string) (*SnapshotRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("conectar base: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear esquema: %w", err)
	}
	if name == "" {
		name = entity.SnapshotName
	}
	return &SnapshotRepository{db: db, name: name}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("aplicar %q: %w", pragma, err)
		}
	}
	return nil
}

// Close cierra la base.
func (r *SnapshotRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Load devuelve el documento guardado o nil, nil si no hay fila.
func (r *SnapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE name = ?`, r.name).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	var s entity.Snapshot
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	return &s, nil
}

// Save reemplaza el documento (upsert).
func (r *SnapshotRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		r.name, string(doc), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("guardar snapshot: %w", err)
	}
	return nil
}
