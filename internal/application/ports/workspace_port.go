package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// ErrNoChange lo devuelve fn dentro de Workspace.Run para terminar sin confirmar el
// borrador; Run lo traduce a nil.
var ErrNoChange = errors.New("sin cambios")

// Workspace es el dueño del agregado en memoria y serializa todas las mutaciones.
//
// Run entrega a fn un borrador (copia profunda) bajo un bloqueo exclusivo. Si fn
// devuelve nil el borrador pasa a ser el estado vigente y se encola su persistencia;
// si devuelve error el estado queda intacto. Validar y aplicar dentro de un mismo Run
// garantiza que ambos pasos ven el mismo inventario.
//
// View entrega el estado vigente bajo un bloqueo de lectura. fn no debe mutarlo ni
// retener referencias después de retornar.
type Workspace interface {
	Run(ctx context.Context, fn func(draft *entity.Snapshot) error) error
	View(ctx context.Context, fn func(current *entity.Snapshot)) error
}

// SessionStore guarda la sesión activa (única) y su época. Invalidate cambia la época
// para que cualquier sesión o token emitido antes deje de ser válido.
type SessionStore interface {
	Start(session entity.Session) entity.Session
	Current() *entity.Session
	Clear()
	Invalidate() int64
	Epoch() int64
}
