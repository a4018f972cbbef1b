package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS biocat_snapshots (
	name       TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS biocat_inventory (
	snapshot_name TEXT NOT NULL REFERENCES biocat_snapshots(name) ON DELETE CASCADE,
	product_id    TEXT NOT NULL,
	name          TEXT NOT NULL,
	quantity      INTEGER NOT NULL,
	cost          NUMERIC(14,4) NOT NULL,
	price         NUMERIC(14,4) NOT NULL,
	location      TEXT NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (snapshot_name, product_id)
);`

var inventoryColumns = []string{"snapshot_name", "product_id", "name", "quantity", "cost", "price", "location", "updated_at"}

// SnapshotRepository guarda el agregado como JSONB en una fila y, en la misma
// transacción, proyecta el inventario en biocat_inventory para consultas SQL externas.
type SnapshotRepository struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	name string
}

// NewSnapshotRepository construye el repositorio. Llamar EnsureSchema antes de usarlo.
func NewSnapshotRepository(pool *pgxpool.Pool, name string) *SnapshotRepository {
	if name == "" {
		name = entity.SnapshotName
	}
	return &SnapshotRepository{pool: pool, tx: NewTxRunner(pool), name: name}
}

// EnsureSchema crea las tablas si no existen.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}

// Load devuelve el documento guardado o nil, nil si no hay fila (o tabla).
func (r *SnapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM biocat_snapshots WHERE name = $1`, r.name).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	var s entity.Snapshot
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	return &s, nil
}

// Save reemplaza documento y proyección en una sola transacción.
func (r *SnapshotRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	now := time.Now().UTC()
	return r.tx.Run(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO biocat_snapshots (name, document, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
			r.name, doc, now)
		if err != nil {
			return fmt.Errorf("guardar snapshot: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM biocat_inventory WHERE snapshot_name = $1`, r.name); err != nil {
			return fmt.Errorf("limpiar proyección: %w", err)
		}
		rows := inventoryRows(r.name, s.Inventory)
		if len(rows) == 0 {
			return nil
		}
		if _, err := q.CopyFrom(ctx, pgx.Identifier{"biocat_inventory"}, inventoryColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("proyectar inventario: %w", err)
		}
		return nil
	})
}

// inventoryRows arma las filas de la proyección en el orden de inventoryColumns.
func inventoryRows(snapshotName string, products []entity.Product) [][]any {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{snapshotName, p.ID, p.Name, p.Quantity, p.Cost, p.Price, p.Location, p.UpdatedAt})
	}
	return rows
}
