package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

var _ ports.Workspace = (*Workspace)(nil)

// Workspace mantiene el agregado vigente. Un snapshot confirmado nunca se muta: cada
// Run trabaja sobre un clon y lo reemplaza completo, por eso el mismo puntero puede
// entregarse al persister sin copiarlo otra vez.
type Workspace struct {
	mu        sync.RWMutex
	state     *entity.Snapshot
	persister *Persister
	log       *logger.Logger
}

// NewWorkspace construye el workspace a partir del estado inicial (ya cargado o
// sembrado). persister puede ser nil para trabajar sin persistencia.
func NewWorkspace(initial *entity.Snapshot, persister *Persister, log *logger.Logger) *Workspace {
	if initial == nil {
		initial = &entity.Snapshot{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Workspace{
		state:     initial.Clone(),
		persister: persister,
		log:       log.Component("workspace"),
	}
}

// Run ejecuta fn sobre un borrador con bloqueo exclusivo y lo confirma si fn no falla.
func (w *Workspace) Run(ctx context.Context, fn func(draft *entity.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	draft := w.state.Clone()
	if err := fn(draft); err != nil {
		if errors.Is(err, ports.ErrNoChange) {
			return nil
		}
		return err
	}
	w.state = draft
	if w.persister != nil {
		// Se encola con el lock tomado: el orden de la cola es el orden de confirmación.
		if err := w.persister.Enqueue(draft); err != nil {
			w.log.Warn().Err(err).Msg("snapshot confirmado sin encolar")
		}
	}
	return nil
}

// View entrega el estado vigente con bloqueo de lectura.
func (w *Workspace) View(ctx context.Context, fn func(current *entity.Snapshot)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.state)
	return nil
}

// Snapshot devuelve una copia profunda del estado vigente.
func (w *Workspace) Snapshot() *entity.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// Flush espera a que los cambios confirmados queden guardados.
func (w *Workspace) Flush(ctx context.Context) error {
	if w.persister == nil {
		return nil
	}
	return w.persister.Flush(ctx)
}

// Close guarda lo pendiente y libera el persister.
func (w *Workspace) Close(ctx context.Context) error {
	if w.persister == nil {
		return nil
	}
	return w.persister.Close(ctx)
}
