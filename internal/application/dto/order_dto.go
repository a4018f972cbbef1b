package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// OrderLineRequest línea pedida: producto y cantidad (número o texto).
type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  any    `json:"quantity"`
}

// CreateOrderRequest entrada para crear una orden.
type CreateOrderRequest struct {
	ClientID      string             `json:"clientId" validate:"required"`
	Items         []OrderLineRequest `json:"items" validate:"dive"`
	Discount      any                `json:"discount"`
	PaymentMethod string             `json:"paymentMethod" validate:"max=50"`
}

// UpdateOrderRequest cambios parciales. Items nil conserva las líneas actuales;
// Discount nil conserva el descuento actual.
type UpdateOrderRequest struct {
	ClientID      *string             `json:"clientId" validate:"omitempty,min=1"`
	Items         *[]OrderLineRequest `json:"items" validate:"omitempty,dive"`
	Discount      any                 `json:"discount"`
	PaymentMethod *string             `json:"paymentMethod" validate:"omitempty,max=50"`
}

// OrderLineResponse línea de una orden con el precio capturado al crearla.
type OrderLineResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden con el nombre del cliente ya resuelto.
type OrderResponse struct {
	ID            string              `json:"id"`
	ClientID      string              `json:"clientId"`
	ClientName    string              `json:"clientName"`
	Items         []OrderLineResponse `json:"items"`
	Status        string              `json:"status"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"paymentMethod"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	CompletedAt   *time.Time          `json:"completedAt,omitempty"`
}

// OrderListResponse lista de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}

// CompletionResult resultado de completar una orden. AlreadyCompleted indica que la
// orden ya estaba completada y no se tocó el stock.
type CompletionResult struct {
	Order            *OrderResponse `json:"order"`
	AlreadyCompleted bool           `json:"alreadyCompleted"`
	Message          string         `json:"message,omitempty"`
}

// TimelinePoint total de una orden en su fecha de creación.
type TimelinePoint struct {
	OrderID string          `json:"orderId"`
	Date    time.Time       `json:"date"`
	Total   decimal.Decimal `json:"total"`
}

// NewOrderResponse arma la salida de una orden con el nombre de cliente ya resuelto.
func NewOrderResponse(o entity.Order, clientName string) OrderResponse {
	items := make([]OrderLineResponse, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, OrderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Location:  l.Location,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Subtotal:  l.Subtotal(),
		})
	}
	var completedAt *time.Time
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		completedAt = &t
	}
	return OrderResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		ClientName:    clientName,
		Items:         items,
		Status:        o.Status,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		CompletedAt:   completedAt,
	}
}

// OrderReceipt datos del comprobante imprimible de una orden.
type OrderReceipt struct {
	BusinessName  string
	Order         OrderResponse
	ClientPhone   string
	ClientAddress string
	IssuedAt      time.Time
}
