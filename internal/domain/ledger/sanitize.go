package ledger

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// Sanitize interpreta value como número. Si no es un número finito devuelve fallback;
// en caso contrario devuelve el valor sin modificar (cada llamador aplica su piso).
func Sanitize(value any, fallback decimal.Decimal) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return fallback
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return fallback
		}
		return *v
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case float32:
		return fromFloat(float64(v), fallback)
	case float64:
		return fromFloat(v, fallback)
	case json.Number:
		return fromString(v.String(), fallback)
	case string:
		return fromString(v, fallback)
	case *string:
		if v == nil {
			return fallback
		}
		return fromString(*v, fallback)
	}
	return fallback
}

func fromFloat(f float64, fallback decimal.Decimal) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string, fallback decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fallback
	}
	return d
}

// SanitizeAmount sanea un monto (costo, precio, descuento) con piso en 0.
func SanitizeAmount(value any) decimal.Decimal {
	return decimal.Max(decimal.Zero, Sanitize(value, decimal.Zero))
}

// SanitizeQuantity sanea una cantidad de unidades: parte entera en [0, MaxQuantity].
func SanitizeQuantity(value any) int {
	return entity.ClampCount(Sanitize(value, decimal.Zero))
}

// SanitizeThreshold sanea el umbral de stock bajo. Si value no es numérico usa
// fallback; luego parte entera en [0, MaxQuantity].
func SanitizeThreshold(value any, fallback int) int {
	return entity.ClampCount(Sanitize(value, decimal.NewFromInt(int64(fallback))))
}

// ClampDiscount limita el descuento al rango [0, subtotal].
func ClampDiscount(value any, subtotal decimal.Decimal) decimal.Decimal {
	d := Sanitize(value, decimal.Zero)
	return decimal.Max(decimal.Zero, decimal.Min(subtotal, d))
}
