package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
)

// ReceiptRenderer genera el documento del comprobante (PDF en producción).
type ReceiptRenderer interface {
	RenderOrderReceipt(ctx context.Context, receipt dto.OrderReceipt) ([]byte, error)
}

// ReceiptUseCase arma el comprobante de una orden con los datos vigentes del cliente.
type ReceiptUseCase struct {
	ws           ports.Workspace
	renderer     ReceiptRenderer
	clock        ledger.Clock
	businessName string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(ws ports.Workspace, renderer ReceiptRenderer, clock ledger.Clock, businessName string) *ReceiptUseCase {
	return &ReceiptUseCase{ws: ws, renderer: renderer, clock: clock, businessName: businessName}
}

// Download devuelve el documento y el nombre de archivo sugerido.
// domain.ErrOrderNotFound si la orden no existe. Sirve para órdenes pendientes y completadas;
// un cliente eliminado aparece como "N/A" sin teléfono ni dirección.
func (uc *ReceiptUseCase) Download(ctx context.Context, orderID string) ([]byte, string, error) {
	var (
		receipt dto.OrderReceipt
		found   bool
	)
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		i := s.FindOrder(orderID)
		if i < 0 {
			return
		}
		found = true
		o := s.Orders[i]
		receipt = dto.OrderReceipt{
			BusinessName: uc.businessName,
			Order:        dto.NewOrderResponse(o, s.ClientName(o.ClientID)),
			IssuedAt:     uc.clock.Now(),
		}
		if j := s.FindClient(o.ClientID); j >= 0 {
			receipt.ClientPhone = s.Clients[j].Phone
			receipt.ClientAddress = s.Clients[j].Address
		}
	})
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", domain.ErrOrderNotFound
	}

	doc, err := uc.renderer.RenderOrderReceipt(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generar documento: %w", err)
	}
	return doc, fmt.Sprintf("orden-%s.pdf", orderID), nil
}
