package backup

import (
	"context"

	"github.com/jhoicas/biocat-api/internal/application/auth"
	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// BackupUseCase exportación, restauración y carga de datos de ejemplo.
type BackupUseCase struct {
	ws       ports.Workspace
	sessions ports.SessionStore
	ids      ledger.IDGenerator
	clock    ledger.Clock
	log      *logger.Logger
}

// NewBackupUseCase construye el caso de uso. sessions puede ser nil (CLI).
func NewBackupUseCase(ws ports.Workspace, sessions ports.SessionStore, ids ledger.IDGenerator, clock ledger.Clock, log *logger.Logger) *BackupUseCase {
	return &BackupUseCase{ws: ws, sessions: sessions, ids: ids, clock: clock, log: log.Component("backup")}
}

// Export copia profunda del agregado (sin el tema) con la fecha de exportación.
func (uc *BackupUseCase) Export(ctx context.Context) (*dto.Backup, error) {
	var out dto.Backup
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		c := s.Clone()
		out = dto.Backup{
			ExportedAt: uc.clock.Now(),
			Inventory:  c.Inventory,
			Clients:    c.Clients,
			Orders:     c.Orders,
			Auth:       dto.BackupAuth{Credentials: c.Auth.Credentials},
			Settings:   c.Settings,
		}
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Restore reemplaza el agregado con el contenido de un respaldo JSON.
//
// Un documento vacío, null, ilegible o que no es objeto devuelve ErrInvalidBackup sin
// tocar nada. Si no, inventario, clientes y órdenes se reemplazan completos (una
// sección que no es arreglo queda vacía y los elementos mal formados se corrigen o se
// descartan); las credenciales solo se reemplazan si vienen; el umbral se sanea con el
// valor actual como respaldo. El tema no cambia. La sesión activa se invalida.
func (uc *BackupUseCase) Restore(ctx context.Context, payload []byte) (*dto.RestoreResponse, error) {
	doc, ok := parseDocument(payload)
	if !ok {
		return nil, domain.ErrInvalidBackup
	}

	creds, hasCreds := credentials(doc)
	if hasCreds {
		if err := auth.NormalizeCredentials(&creds); err != nil {
			return nil, err
		}
	}

	dec := recordDecoder{ids: uc.ids, now: uc.clock.Now()}
	inventory := make([]entity.Product, 0)
	for _, m := range doc.objects("inventory") {
		inventory = append(inventory, dec.product(m))
	}
	clients := make([]entity.Client, 0)
	for _, m := range doc.objects("clients") {
		clients = append(clients, dec.client(m))
	}
	orders := make([]entity.Order, 0)
	for _, m := range doc.objects("orders") {
		orders = append(orders, dec.order(m))
	}
	threshold := thresholdValue(doc)

	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Inventory = inventory
		draft.Clients = clients
		draft.Orders = orders
		if hasCreds {
			draft.Auth.Credentials = creds
		}
		draft.Settings.LowStockThreshold = ledger.SanitizeThreshold(threshold, draft.Settings.LowStockThreshold)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.sessions != nil {
		uc.sessions.Invalidate()
	}
	uc.log.Info().
		Int("products", len(inventory)).
		Int("clients", len(clients)).
		Int("orders", len(orders)).
		Bool("credentials", hasCreds).
		Msg("respaldo restaurado")
	return &dto.RestoreResponse{Products: len(inventory), Clients: len(clients), Orders: len(orders)}, nil
}

// LoadDemoData reemplaza inventario, clientes y órdenes con los datos de ejemplo.
// Credenciales, configuración y tema no cambian.
func (uc *BackupUseCase) LoadDemoData(ctx context.Context) error {
	products, clients, orders := DemoData(uc.clock.Now())
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Inventory = products
		draft.Clients = clients
		draft.Orders = orders
		return nil
	})
	if err == nil {
		uc.log.Info().Msg("datos de ejemplo cargados")
	}
	return err
}
