// Package analytics contiene los casos de uso de solo lectura para el tablero del
// negocio.
package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/orders"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

const (
	dashboardRecentOrders = 5 // órdenes en el widget "últimas órdenes"
	dashboardLowStock     = 5 // productos en el widget de stock bajo
	dashboardTopProducts  = 5 // productos con más unidades
)

// DashboardUseCase genera el resumen del tablero.
//
// Fuente de datos: el agregado vigente, leído de una sola vez con Workspace.View para
// que todos los totales salgan del mismo estado.
type DashboardUseCase struct {
	ws ports.Workspace
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(ws ports.Workspace) *DashboardUseCase {
	return &DashboardUseCase{ws: ws}
}

// Summary construye el DashboardSummary.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	var out *dto.DashboardSummary
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		out = buildSummary(s)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func buildSummary(s *entity.Snapshot) *dto.DashboardSummary {
	threshold := s.LowStockThreshold()
	sum := &dto.DashboardSummary{
		ProductCount:      len(s.Inventory),
		ClientCount:       len(s.Clients),
		OrderCount:        len(s.Orders),
		InventoryValue:    decimal.Zero,
		PotentialIncome:   decimal.Zero,
		CompletedSales:    decimal.Zero,
		LowStockThreshold: threshold,
		StatusCounts:      orders.CountByStatus(s.Orders),
		RecentOrders:      []dto.OrderResponse{},
		LowStock:          []dto.ProductResponse{},
		TopProducts:       []dto.ProductResponse{},
		Timeline:          orders.BuildTimeline(s.Orders),
	}

	// ── Inventario ────────────────────────────────────────────────────────────
	for _, p := range s.Inventory {
		qty := decimal.NewFromInt(int64(p.Quantity))
		sum.TotalUnits += p.Quantity
		sum.InventoryValue = sum.InventoryValue.Add(qty.Mul(p.Cost))
		sum.PotentialIncome = sum.PotentialIncome.Add(qty.Mul(p.Price))
		if p.IsLowStock(threshold) && len(sum.LowStock) < dashboardLowStock {
			sum.LowStock = append(sum.LowStock, dto.NewProductResponse(p, threshold))
		}
	}

	top := make([]entity.Product, len(s.Inventory))
	copy(top, s.Inventory)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	for i := 0; i < len(top) && i < dashboardTopProducts; i++ {
		sum.TopProducts = append(sum.TopProducts, dto.NewProductResponse(top[i], threshold))
	}

	// ── Órdenes ───────────────────────────────────────────────────────────────
	for _, o := range s.Orders {
		if o.IsCompleted() {
			sum.CompletedSales = sum.CompletedSales.Add(o.Total)
		} else {
			sum.PendingOrders++
		}
	}

	recent := make([]entity.Order, len(s.Orders))
	copy(recent, s.Orders)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	for i := 0; i < len(recent) && i < dashboardRecentOrders; i++ {
		sum.RecentOrders = append(sum.RecentOrders, dto.NewOrderResponse(recent[i], s.ClientName(recent[i].ClientID)))
	}
	return sum
}
