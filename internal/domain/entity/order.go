package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. Pendiente es el inicial; Completada es terminal.
const (
	OrderStatusPending   = "Pendiente"
	OrderStatusCompleted = "Completada"
)

// Métodos de pago aceptados (valores persistidos).
const (
	PaymentCash     = "Efectivo"
	PaymentQR       = "QR"
	PaymentTransfer = "Transferencia"
	PaymentOther    = "Otro"
)

// PaymentMethods en el orden en que se ofrecen; el primero es el valor por defecto.
var PaymentMethods = []string{PaymentCash, PaymentQR, PaymentTransfer, PaymentOther}

// NormalizePaymentMethod devuelve el método canónico (sin distinguir mayúsculas)
// o Efectivo si la entrada está vacía o no es reconocida.
func NormalizePaymentMethod(method string) string {
	m := strings.TrimSpace(method)
	for _, known := range PaymentMethods {
		if strings.EqualFold(known, m) {
			return known
		}
	}
	return PaymentCash
}

// OrderLine es una línea de la orden. Price, Name y Location se copian del producto
// al crear la línea para que los totales históricos no cambien si el catálogo cambia.
type OrderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Location  string          `json:"location"`
}

// Subtotal devuelve quantity × price de la línea.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order representa una orden de venta.
// Subtotal y Total siempre se recalculan desde Items y Discount.
type Order struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"clientId"`
	Items         []OrderLine     `json:"items"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// IsCompleted indica si la orden ya pasó a Completada.
func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
