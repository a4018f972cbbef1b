// Package redisstore persiste el agregado como una clave JSON en Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/repository"
	"github.com/jhoicas/biocat-api/pkg/config"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

// ErrLocked otro proceso está guardando el mismo documento.
var ErrLocked = errors.New("snapshot bloqueado por otro proceso")

const lockTTL = 10 * time.Second

// SnapshotRepository guarda el documento en la clave <name>. Cada Save toma un lock
// distribuido (<name>:lock) para que dos instancias no se pisen a mitad de escritura.
type SnapshotRepository struct {
	rdb    redis.UniversalClient
	locker *redislock.Client
	key    string
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("conectar redis %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// NewSnapshotRepository construye el repositorio sobre un cliente ya conectado.
func NewSnapshotRepository(rdb redis.UniversalClient, name string) *SnapshotRepository {
	if name == "" {
		name = entity.SnapshotName
	}
	return &SnapshotRepository{rdb: rdb, locker: redislock.New(rdb), key: name}
}

// Load devuelve el documento o nil, nil si la clave no existe.
func (r *SnapshotRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	val, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	var s entity.Snapshot
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	return &s, nil
}

// Save escribe el documento sin expiración bajo el lock.
func (r *SnapshotRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	lock, err := r.locker.Obtain(ctx, r.key+":lock", lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 20),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrLocked
	}
	if err != nil {
		return fmt.Errorf("obtener lock: %w", err)
	}
	defer func() { _ = lock.Release(context.WithoutCancel(ctx)) }()

	if err := r.rdb.Set(ctx, r.key, doc, 0).Err(); err != nil {
		return fmt.Errorf("guardar snapshot: %w", err)
	}
	return nil
}
