package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de Product cuando la entrada viene vacía.
const (
	DefaultProductName     = "Producto sin nombre"
	DefaultProductLocation = "Sin ubicación"
)

// Product representa un producto del catálogo: fuente de verdad del stock y del precio.
// Solo se modifica con operaciones del catálogo o al completar una orden.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"` // unidades disponibles, nunca negativo
	Cost      decimal.Decimal `json:"cost"`     // costo unitario
	Price     decimal.Decimal `json:"price"`    // precio de venta
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IsLowStock indica si la cantidad está por debajo del umbral configurado.
func (p Product) IsLowStock(threshold int) bool {
	return p.Quantity < threshold
}
