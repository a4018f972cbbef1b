package orders

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// OrderUseCase libro de órdenes: alta, edición, completado y borrado.
// Toda mutación corre dentro de Workspace.Run, que hace de transacción: validar y
// aplicar ven el mismo inventario y se confirman juntos o no se confirman.
type OrderUseCase struct {
	ws    ports.Workspace
	ids   ledger.IDGenerator
	clock ledger.Clock
	log   *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(ws ports.Workspace, ids ledger.IDGenerator, clock ledger.Clock, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{ws: ws, ids: ids, clock: clock, log: log.Component("orders")}
}

// Update edita una orden Pendiente. Si vienen items se reconstruyen las líneas con los
// precios vigentes; si viene discount se vuelve a acotar. Subtotal y total siempre se
// recalculan. Devuelve nil, nil si la orden no existe.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		i := draft.FindOrder(id)
		if i < 0 {
			return ports.ErrNoChange
		}
		o := &draft.Orders[i]
		if o.IsCompleted() {
			return domain.ErrOrderCompleted
		}
		if in.ClientID != nil {
			clientID := strings.TrimSpace(*in.ClientID)
			if clientID == "" {
				return domain.ErrInvalidInput
			}
			if draft.FindClient(clientID) < 0 {
				return domain.ErrClientNotFound
			}
			o.ClientID = clientID
		}
		if in.Items != nil {
			lines := ledger.BuildLines(toLineRequests(*in.Items), draft.Inventory)
			if len(lines) == 0 {
				return domain.ErrEmptyOrder
			}
			o.Items = lines
		}
		if in.PaymentMethod != nil && strings.TrimSpace(*in.PaymentMethod) != "" {
			o.PaymentMethod = entity.NormalizePaymentMethod(*in.PaymentMethod)
		}
		var discount any = o.Discount
		if in.Discount != nil {
			discount = in.Discount
		}
		ledger.Recompute(o, discount)
		o.UpdatedAt = uc.clock.Now()

		res := dto.NewOrderResponse(*o, draft.ClientName(o.ClientID))
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove elimina la orden si existe. No devuelve stock aunque estuviera completada.
func (uc *OrderUseCase) Remove(ctx context.Context, id string) error {
	return uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		i := draft.FindOrder(id)
		if i < 0 {
			return ports.ErrNoChange
		}
		draft.Orders = append(draft.Orders[:i], draft.Orders[i+1:]...)
		return nil
	})
}

// Clear elimina todas las órdenes sin tocar el inventario.
func (uc *OrderUseCase) Clear(ctx context.Context) error {
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Orders = []entity.Order{}
		return nil
	})
	if err == nil {
		uc.log.Warn().Msg("órdenes eliminadas")
	}
	return err
}

// GetByID obtiene una orden; nil, nil si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		if i := s.FindOrder(id); i >= 0 {
			res := dto.NewOrderResponse(s.Orders[i], s.ClientName(s.Orders[i].ClientID))
			out = &res
		}
	})
	return out, err
}

// List lista las órdenes (más recientes primero). status vacío no filtra.
func (uc *OrderUseCase) List(ctx context.Context, status string) (*dto.OrderListResponse, error) {
	out := &dto.OrderListResponse{Items: []dto.OrderResponse{}}
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		for _, o := range s.Orders {
			if status != "" && o.Status != status {
				continue
			}
			out.Items = append(out.Items, dto.NewOrderResponse(o, s.ClientName(o.ClientID)))
		}
	})
	if err != nil {
		return nil, err
	}
	out.Total = len(out.Items)
	return out, nil
}

// StatusCounts cantidad de órdenes por estado (ambos estados siempre presentes).
func (uc *OrderUseCase) StatusCounts(ctx context.Context) (map[string]int, error) {
	var counts map[string]int
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		counts = CountByStatus(s.Orders)
	})
	return counts, err
}

// Timeline total de cada orden en su fecha de creación, de la más antigua a la más nueva.
func (uc *OrderUseCase) Timeline(ctx context.Context) ([]dto.TimelinePoint, error) {
	var points []dto.TimelinePoint
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		points = BuildTimeline(s.Orders)
	})
	return points, err
}

// CountByStatus cuenta órdenes por estado.
func CountByStatus(orders []entity.Order) map[string]int {
	counts := map[string]int{
		entity.OrderStatusPending:   0,
		entity.OrderStatusCompleted: 0,
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// BuildTimeline ordena los totales por fecha de creación.
func BuildTimeline(orders []entity.Order) []dto.TimelinePoint {
	points := make([]dto.TimelinePoint, 0, len(orders))
	for _, o := range orders {
		points = append(points, dto.TimelinePoint{OrderID: o.ID, Date: o.CreatedAt, Total: o.Total})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func toLineRequests(items []dto.OrderLineRequest) []ledger.LineRequest {
	out := make([]ledger.LineRequest, 0, len(items))
	for _, it := range items {
		out = append(out, ledger.LineRequest{ProductID: strings.TrimSpace(it.ProductID), Quantity: it.Quantity})
	}
	return out
}
