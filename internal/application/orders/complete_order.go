package orders

import (
	"context"
	"errors"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
)

// MessageAlreadyCompleted nota devuelta al completar una orden ya Completada.
const MessageAlreadyCompleted = "La orden ya estaba completada"

// Complete pasa la orden a Completada descontando el stock de cada línea.
//
// Primero valida todas las líneas contra el inventario y, si alguna no alcanza, falla
// con un *domain.StockError que lista cada faltante sin modificar nada. Si todas
// alcanzan, descuenta el stock y marca la orden en el mismo borrador. Completar una
// orden ya completada no es error: devuelve AlreadyCompleted y no toca el stock.
func (uc *OrderUseCase) Complete(ctx context.Context, id string) (*dto.CompletionResult, error) {
	var result dto.CompletionResult
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		i := draft.FindOrder(id)
		if i < 0 {
			return domain.ErrOrderNotFound
		}
		order := &draft.Orders[i]
		if order.IsCompleted() {
			res := dto.NewOrderResponse(*order, draft.ClientName(order.ClientID))
			result = dto.CompletionResult{Order: &res, AlreadyCompleted: true, Message: MessageAlreadyCompleted}
			return ports.ErrNoChange
		}
		if err := ledger.CheckCompletion(*order, draft.Inventory); err != nil {
			return err
		}
		ledger.ApplyCompletion(order, draft.Inventory, uc.clock.Now())
		res := dto.NewOrderResponse(*order, draft.ClientName(order.ClientID))
		result = dto.CompletionResult{Order: &res}
		return nil
	})
	if err != nil {
		var stockErr *domain.StockError
		if errors.As(err, &stockErr) {
			uc.log.Warn().Str("order_id", id).Strs("missing", stockErr.Lines).Msg("orden sin stock suficiente")
		}
		return nil, err
	}
	if !result.AlreadyCompleted {
		uc.log.Info().Str("order_id", id).Msg("orden completada")
	}
	return &result, nil
}
