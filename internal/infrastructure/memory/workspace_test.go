package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// recordingRepo registra la cantidad de productos de cada snapshot guardado.
type recordingRepo struct {
	mu     sync.Mutex
	counts []int
	delay  time.Duration
	fail   error
}

func (r *recordingRepo) Load(ctx context.Context) (*entity.Snapshot, error) { return nil, nil }

func (r *recordingRepo) Save(ctx context.Context, s *entity.Snapshot) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.fail != nil {
		return r.fail
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, len(s.Inventory))
	return nil
}

func (r *recordingRepo) saved() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.counts...)
}

func addProduct(id string) func(*entity.Snapshot) error {
	return func(draft *entity.Snapshot) error {
		draft.Inventory = append(draft.Inventory, entity.Product{ID: id})
		return nil
	}
}

func TestWorkspace_Run_ConfirmaBorrador(t *testing.T) {
	ctx := context.Background()
	ws := memory.NewWorkspace(nil, nil, logger.Nop())

	require.NoError(t, ws.Run(ctx, addProduct("p1")))

	var ids []string
	require.NoError(t, ws.View(ctx, func(s *entity.Snapshot) {
		for _, p := range s.Inventory {
			ids = append(ids, p.ID)
		}
	}))
	assert.Equal(t, []string{"p1"}, ids)
}

func TestWorkspace_Run_ErrorDescartaBorrador(t *testing.T) {
	ctx := context.Background()
	ws := memory.NewWorkspace(&entity.Snapshot{Inventory: []entity.Product{{ID: "p1", Quantity: 5}}}, nil, logger.Nop())

	boom := errors.New("boom")
	err := ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Inventory[0].Quantity = 0
		draft.Inventory = append(draft.Inventory, entity.Product{ID: "p2"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	snap := ws.Snapshot()
	require.Len(t, snap.Inventory, 1)
	assert.Equal(t, 5, snap.Inventory[0].Quantity, "un Run fallido no debe dejar cambios parciales")
}

func TestWorkspace_Run_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ws := memory.NewWorkspace(nil, nil, logger.Nop())

	called := false
	err := ws.Run(ctx, func(*entity.Snapshot) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWorkspace_Snapshot_EsCopia(t *testing.T) {
	ws := memory.NewWorkspace(&entity.Snapshot{Inventory: []entity.Product{{ID: "p1", Quantity: 5}}}, nil, logger.Nop())

	snap := ws.Snapshot()
	snap.Inventory[0].Quantity = 99

	assert.Equal(t, 5, ws.Snapshot().Inventory[0].Quantity)
}

func TestWorkspace_PersisteEnOrdenDeConfirmacion(t *testing.T) {
	ctx := context.Background()
	repo := &recordingRepo{delay: time.Millisecond}
	persister := memory.NewPersister(repo, logger.Nop(), 2)
	ws := memory.NewWorkspace(nil, persister, logger.Nop())

	for i := 0; i < 10; i++ {
		require.NoError(t, ws.Run(ctx, addProduct("p")))
	}
	require.NoError(t, ws.Flush(ctx))

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, repo.saved(),
		"cada guardado debe ver un estado posterior al anterior")
	require.NoError(t, ws.Close(ctx))
}

func TestWorkspace_RunConcurrentes_SinPerdidas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	ws := memory.NewWorkspace(nil, memory.NewPersister(repo, logger.Nop(), 8), logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ws.Run(ctx, addProduct("p"))
		}()
	}
	wg.Wait()
	require.NoError(t, ws.Close(ctx))

	assert.Len(t, ws.Snapshot().Inventory, 50)
	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Len(t, saved.Inventory, 50, "el último guardado debe ser el último estado confirmado")
	assert.Equal(t, 50, repo.Saves())
}

func TestPersister_FlushDevuelveErrorDeGuardado(t *testing.T) {
	ctx := context.Background()
	repo := &recordingRepo{fail: errors.New("disco lleno")}
	persister := memory.NewPersister(repo, logger.Nop(), 1)
	ws := memory.NewWorkspace(nil, persister, logger.Nop())

	require.NoError(t, ws.Run(ctx, addProduct("p1")), "el cambio se confirma en memoria aunque el guardado falle")
	err := ws.Flush(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco lleno")

	assert.NoError(t, ws.Flush(ctx), "el error se informa una sola vez")
	assert.Len(t, ws.Snapshot().Inventory, 1)
	require.NoError(t, ws.Close(ctx))
}

func TestPersister_CerradoRechazaEncolar(t *testing.T) {
	ctx := context.Background()
	persister := memory.NewPersister(memory.NewSnapshotRepository(), logger.Nop(), 1)
	require.NoError(t, persister.Close(ctx))
	require.NoError(t, persister.Close(ctx), "Close es idempotente")

	assert.ErrorIs(t, persister.Enqueue(&entity.Snapshot{}), memory.ErrPersisterClosed)
	assert.ErrorIs(t, persister.Flush(ctx), memory.ErrPersisterClosed)
}

func TestSessionStore_InvalidateAvanzaEpoca(t *testing.T) {
	store := memory.NewSessionStore(100)

	s := store.Start(entity.Session{Username: "Anahi"})
	assert.Equal(t, int64(100), s.Epoch)
	require.NotNil(t, store.Current())

	store.Clear()
	assert.Nil(t, store.Current())
	assert.Equal(t, int64(100), store.Epoch(), "logout no cambia la época")

	store.Start(entity.Session{Username: "Anahi"})
	assert.Equal(t, int64(101), store.Invalidate())
	assert.Nil(t, store.Current())
	assert.Equal(t, int64(101), store.Epoch())
}

func TestWorkspace_Run_SinCambiosNoPersiste(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	ws := memory.NewWorkspace(nil, memory.NewPersister(repo, logger.Nop(), 1), logger.Nop())

	err := ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Inventory = append(draft.Inventory, entity.Product{ID: "p1"})
		return ports.ErrNoChange
	})
	require.NoError(t, err)
	require.NoError(t, ws.Close(ctx))

	assert.Empty(t, ws.Snapshot().Inventory)
	assert.Equal(t, 0, repo.Saves())
}
