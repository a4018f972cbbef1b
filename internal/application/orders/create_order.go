package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
)

// Create registra una orden Pendiente. Las líneas cuyo producto no existe o cuya
// cantidad saneada es 0 se descartan; precio, nombre y ubicación se copian del catálogo.
// Falla sin confirmar nada si el cliente falta o no existe, o si no queda ninguna línea.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId requerido", domain.ErrInvalidInput)
	}

	var out dto.OrderResponse
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		if draft.FindClient(clientID) < 0 {
			return domain.ErrClientNotFound
		}
		lines := ledger.BuildLines(toLineRequests(in.Items), draft.Inventory)
		if len(lines) == 0 {
			return domain.ErrEmptyOrder
		}
		now := uc.clock.Now()
		order := entity.Order{
			ID:            uc.ids.NewID(),
			ClientID:      clientID,
			Items:         lines,
			Status:        entity.OrderStatusPending,
			PaymentMethod: entity.NormalizePaymentMethod(in.PaymentMethod),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		ledger.Recompute(&order, in.Discount)
		draft.Orders = append([]entity.Order{order}, draft.Orders...)
		out = dto.NewOrderResponse(order, draft.ClientName(clientID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", out.ID).
		Str("client_id", out.ClientID).
		Int("lines", len(out.Items)).
		Str("total", out.Total.String()).
		Msg("orden creada")
	return &out, nil
}
