package backup

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
)

// DemoData devuelve el catálogo, clientes y órdenes de ejemplo con marca de tiempo now.
func DemoData(now time.Time) ([]entity.Product, []entity.Client, []entity.Order) {
	products := []entity.Product{
		demoProduct("prod-1", "Arena Premium Lavanda 6kg", 160, "7.5", "13.9", "Depósito Centro", now),
		demoProduct("prod-2", "Arena Carbón Activo 3kg", 95, "4.2", "8.7", "Depósito Norte", now),
		demoProduct("prod-3", "Arena Sensitive Kitten 5kg", 60, "6.1", "11.4", "Depósito Sur", now),
	}
	clients := []entity.Client{
		{ID: "client-1", Name: "Veterinaria Patitas", Phone: "+54 9 351 555-0112", Address: "Córdoba Capital", CreatedAt: now, UpdatedAt: now},
		{ID: "client-2", Name: "Pet Shop Felinus", Phone: "+54 9 11 4001-2200", Address: "Buenos Aires", CreatedAt: now, UpdatedAt: now},
	}

	pending := entity.Order{
		ID:            "order-1",
		ClientID:      "client-1",
		Status:        entity.OrderStatusPending,
		PaymentMethod: entity.PaymentCash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	pending.Items = ledger.BuildLines([]ledger.LineRequest{
		{ProductID: "prod-1", Quantity: 20},
		{ProductID: "prod-2", Quantity: 10},
	}, products)
	ledger.Recompute(&pending, 0)

	completedAt := now
	completed := entity.Order{
		ID:            "order-2",
		ClientID:      "client-2",
		Status:        entity.OrderStatusCompleted,
		PaymentMethod: entity.PaymentTransfer,
		CreatedAt:     now,
		UpdatedAt:     now,
		CompletedAt:   &completedAt,
	}
	completed.Items = ledger.BuildLines([]ledger.LineRequest{{ProductID: "prod-3", Quantity: 5}}, products)
	ledger.Recompute(&completed, 20)

	return products, clients, []entity.Order{pending, completed}
}

func demoProduct(id, name string, qty int, cost, price, location string, now time.Time) entity.Product {
	return entity.Product{
		ID:        id,
		Name:      name,
		Quantity:  qty,
		Cost:      decimal.RequireFromString(cost),
		Price:     decimal.RequireFromString(price),
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
