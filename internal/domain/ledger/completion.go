package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

const unknownProductName = "Producto desconocido"

// CheckCompletion valida que el inventario cubra todas las líneas de la orden.
// La verificación es todo o nada: devuelve un *domain.StockError con un mensaje por
// cada línea deficiente, o nil si la orden puede completarse.
func CheckCompletion(order entity.Order, inventory []entity.Product) error {
	if len(order.Items) == 0 {
		return domain.NewStockError([]string{"La orden no tiene productos"})
	}
	byID := make(map[string]entity.Product, len(inventory))
	for _, p := range inventory {
		byID[p.ID] = p
	}
	requested := requestedByProduct(order.Items)
	var missing []string
	reported := make(map[string]bool, len(order.Items))
	for _, line := range order.Items {
		if reported[line.ProductID] {
			continue
		}
		reported[line.ProductID] = true
		product, ok := byID[line.ProductID]
		if !ok {
			name := line.Name
			if name == "" {
				name = unknownProductName
			}
			missing = append(missing, fmt.Sprintf("%s no existe en inventario", name))
			continue
		}
		need := requested[line.ProductID]
		if product.Quantity < need {
			missing = append(missing, fmt.Sprintf("%s falta %d unidad(es)", product.Name, need-product.Quantity))
		}
	}
	if len(missing) > 0 {
		return domain.NewStockError(missing)
	}
	return nil
}

// ApplyCompletion descuenta del inventario las cantidades de la orden y marca la orden
// como Completada. Debe llamarse sobre la misma vista que validó CheckCompletion.
func ApplyCompletion(order *entity.Order, inventory []entity.Product, now time.Time) {
	deduct := requestedByProduct(order.Items)
	for i := range inventory {
		qty, ok := deduct[inventory[i].ID]
		if !ok {
			continue
		}
		inventory[i].Quantity = max(0, inventory[i].Quantity-qty)
		inventory[i].UpdatedAt = now
	}
	order.Status = entity.OrderStatusCompleted
	completedAt := now
	order.CompletedAt = &completedAt
	order.UpdatedAt = now
}

// requestedByProduct cantidad total pedida por producto: dos líneas del mismo producto
// suman. Las cantidades negativas cuentan como 0 y la suma satura en math.MaxInt, de
// modo que un desborde siempre se reporta como faltante.
func requestedByProduct(lines []entity.OrderLine) map[string]int {
	out := make(map[string]int, len(lines))
	for _, line := range lines {
		qty := max(0, line.Quantity)
		cur := out[line.ProductID]
		if qty > math.MaxInt-cur {
			out[line.ProductID] = math.MaxInt
			continue
		}
		out[line.ProductID] = cur + qty
	}
	return out
}
