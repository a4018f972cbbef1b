package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// LineRequest línea solicitada por el llamador antes de resolverla contra el catálogo.
type LineRequest struct {
	ProductID string
	Quantity  any
}

// BuildLines resuelve las líneas contra el inventario actual. Descarta las líneas cuyo
// producto ya no existe o cuya cantidad saneada es 0, y copia precio, nombre y
// ubicación vigentes en cada línea superviviente.
func BuildLines(requests []LineRequest, inventory []entity.Product) []entity.OrderLine {
	byID := make(map[string]*entity.Product, len(inventory))
	for i := range inventory {
		byID[inventory[i].ID] = &inventory[i]
	}
	lines := make([]entity.OrderLine, 0, len(requests))
	for _, req := range requests {
		product, ok := byID[req.ProductID]
		if !ok {
			continue
		}
		qty := SanitizeQuantity(req.Quantity)
		if qty <= 0 {
			continue
		}
		lines = append(lines, entity.OrderLine{
			ProductID: product.ID,
			Quantity:  qty,
			Price:     product.Price,
			Name:      product.Name,
			Location:  product.Location,
		})
	}
	return lines
}

// Subtotal suma quantity × price de todas las líneas.
func Subtotal(lines []entity.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Totals calcula subtotal, descuento acotado y total de un conjunto de líneas.
// total = max(0, subtotal - descuento) y 0 <= descuento <= subtotal.
func Totals(lines []entity.OrderLine, discount any) (subtotal, normalizedDiscount, total decimal.Decimal) {
	subtotal = Subtotal(lines)
	normalizedDiscount = ClampDiscount(discount, subtotal)
	total = decimal.Max(decimal.Zero, subtotal.Sub(normalizedDiscount))
	return subtotal, normalizedDiscount, total
}

// Recompute reescribe Subtotal, Discount y Total de la orden desde sus líneas.
func Recompute(o *entity.Order, discount any) {
	o.Subtotal, o.Discount, o.Total = Totals(o.Items, discount)
}
