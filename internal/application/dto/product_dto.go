package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
// Quantity, Cost y Price se aceptan como número o texto; lo no numérico cuenta como 0.
type CreateProductRequest struct {
	Name     string `json:"name" validate:"max=200"`
	Quantity any    `json:"quantity"`
	Cost     any    `json:"cost"`
	Price    any    `json:"price"`
	Location string `json:"location" validate:"max=200"`
}

// UpdateProductRequest cambios parciales; los campos ausentes conservan su valor.
type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Quantity any     `json:"quantity"`
	Cost     any     `json:"cost"`
	Price    any     `json:"price"`
	Location *string `json:"location" validate:"omitempty,max=200"`
}

// ImportProductsRequest registros ya leídos de una planilla o JSON externo.
type ImportProductsRequest struct {
	Records []map[string]any `json:"records"`
}

// ImportProductsResponse cantidad de productos insertados.
type ImportProductsResponse struct {
	Inserted int `json:"inserted"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	Location  string          `json:"location"`
	LowStock  bool            `json:"lowStock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// NewProductResponse arma la salida marcando si el producto está bajo el umbral.
func NewProductResponse(p entity.Product, lowStockThreshold int) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Cost:      p.Cost,
		Price:     p.Price,
		Location:  p.Location,
		LowStock:  p.IsLowStock(lowStockThreshold),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
