package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// MaxQuantity tope de unidades por producto, por línea de orden y del umbral de stock
// bajo. Valores mayores se recortan a este tope.
const MaxQuantity = math.MaxInt32

var maxQuantity = decimal.NewFromInt(MaxQuantity)

// ClampCount recorta d al rango [0, MaxQuantity] y toma la parte entera.
func ClampCount(d decimal.Decimal) int {
	d = decimal.Min(maxQuantity, decimal.Max(decimal.Zero, d.Floor()))
	return int(d.IntPart())
}

// decodeCount interpreta un contador de un documento guardado: número o texto
// numérico, fraccionario incluido. Ausente o null es 0; lo no numérico es fallback.
func decodeCount(raw json.RawMessage, fallback int) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	s := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fallback
		}
		s = unquoted
	}
	d, err := decimal.NewFromString(string(bytes.TrimSpace([]byte(s))))
	if err != nil {
		return fallback
	}
	return ClampCount(d)
}

// UnmarshalJSON acepta cantidades fraccionarias, negativas o como texto (documentos
// guardados por versiones anteriores) y las deja en [0, MaxQuantity].
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		Quantity json.RawMessage `json:"quantity"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Quantity = decodeCount(aux.Quantity, 0)
	return nil
}

// UnmarshalJSON mismas reglas que Product para la cantidad de la línea.
func (l *OrderLine) UnmarshalJSON(data []byte) error {
	type plain OrderLine
	aux := struct {
		*plain
		Quantity json.RawMessage `json:"quantity"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.Quantity = decodeCount(aux.Quantity, 0)
	return nil
}

// UnmarshalJSON umbral fraccionario se trunca; lo no numérico vuelve al valor por defecto.
func (s *Settings) UnmarshalJSON(data []byte) error {
	aux := struct {
		LowStockThreshold json.RawMessage `json:"lowStockThreshold"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.LowStockThreshold = decodeCount(aux.LowStockThreshold, DefaultLowStockThreshold)
	return nil
}
