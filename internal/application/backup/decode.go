package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
)

// document es el respaldo ya separado en secciones, sin interpretar.
type document map[string]json.RawMessage

func parseDocument(payload []byte) (document, bool) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || payload[0] != '{' {
		return nil, false
	}
	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}

// objects devuelve los elementos objeto de una sección arreglo. Una sección ausente o
// que no es arreglo equivale a vacía; los elementos que no son objeto se descartan.
func (d document) objects(key string) []map[string]any {
	raw, ok := d[key]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := decodeObject(item); ok {
			out = append(out, m)
		}
	}
	return out
}

// object devuelve una sección objeto (p. ej. settings).
func (d document) object(key string) (map[string]any, bool) {
	raw, ok := d[key]
	if !ok {
		return nil, false
	}
	return decodeObject(raw)
}

func decodeObject(raw json.RawMessage) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// recordDecoder convierte objetos sueltos en entidades, completando lo que falte.
type recordDecoder struct {
	ids ledger.IDGenerator
	now time.Time
}

func (r recordDecoder) product(m map[string]any) entity.Product {
	createdAt := timeField(m, "createdAt", r.now)
	return entity.Product{
		ID:        r.id(m),
		Name:      defaultString(stringField(m, "name"), entity.DefaultProductName),
		Quantity:  ledger.SanitizeQuantity(m["quantity"]),
		Cost:      ledger.SanitizeAmount(m["cost"]),
		Price:     ledger.SanitizeAmount(m["price"]),
		Location:  defaultString(stringField(m, "location"), entity.DefaultProductLocation),
		CreatedAt: createdAt,
		UpdatedAt: timeField(m, "updatedAt", createdAt),
	}
}

func (r recordDecoder) client(m map[string]any) entity.Client {
	createdAt := timeField(m, "createdAt", r.now)
	return entity.Client{
		ID:        r.id(m),
		Name:      defaultString(stringField(m, "name"), entity.DefaultClientName),
		Phone:     defaultString(stringField(m, "phone"), entity.DefaultClientPhone),
		Address:   defaultString(stringField(m, "address"), entity.DefaultClientAddress),
		CreatedAt: createdAt,
		UpdatedAt: timeField(m, "updatedAt", createdAt),
	}
}

// order conserva los montos tal como vienen en el respaldo: no se recalculan.
func (r recordDecoder) order(m map[string]any) entity.Order {
	createdAt := timeField(m, "createdAt", r.now)
	o := entity.Order{
		ID:            r.id(m),
		ClientID:      stringField(m, "clientId"),
		Items:         orderLines(m["items"]),
		Status:        entity.OrderStatusPending,
		Subtotal:      ledger.SanitizeAmount(m["subtotal"]),
		Discount:      ledger.SanitizeAmount(m["discount"]),
		Total:         ledger.SanitizeAmount(m["total"]),
		PaymentMethod: entity.NormalizePaymentMethod(stringField(m, "paymentMethod")),
		CreatedAt:     createdAt,
		UpdatedAt:     timeField(m, "updatedAt", createdAt),
	}
	if stringField(m, "status") == entity.OrderStatusCompleted {
		o.Status = entity.OrderStatusCompleted
		completedAt := timeField(m, "completedAt", o.UpdatedAt)
		o.CompletedAt = &completedAt
	}
	return o
}

func orderLines(v any) []entity.OrderLine {
	items, ok := v.([]any)
	if !ok {
		return []entity.OrderLine{}
	}
	lines := make([]entity.OrderLine, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		productID := stringField(m, "productId")
		if productID == "" {
			continue
		}
		lines = append(lines, entity.OrderLine{
			ProductID: productID,
			Quantity:  ledger.SanitizeQuantity(m["quantity"]),
			Price:     ledger.SanitizeAmount(m["price"]),
			Name:      stringField(m, "name"),
			Location:  stringField(m, "location"),
		})
	}
	return lines
}

func (r recordDecoder) id(m map[string]any) string {
	if id := stringField(m, "id"); id != "" {
		return id
	}
	return r.ids.NewID()
}

// credentials devuelve las credenciales del respaldo si traen usuario y alguna
// contraseña (hash o texto plano heredado).
func credentials(d document) (entity.Credentials, bool) {
	authSection, ok := d.object("auth")
	if !ok {
		return entity.Credentials{}, false
	}
	m, ok := authSection["credentials"].(map[string]any)
	if !ok {
		return entity.Credentials{}, false
	}
	c := entity.Credentials{
		Username:     strings.TrimSpace(stringField(m, "username")),
		PasswordHash: stringField(m, "passwordHash"),
		Password:     stringField(m, "password"),
	}
	if c.Username == "" || (c.PasswordHash == "" && c.Password == "") {
		return entity.Credentials{}, false
	}
	return c, true
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return fmt.Sprint(v)
	}
	return ""
}

func timeField(m map[string]any, key string, fallback time.Time) time.Time {
	s := strings.TrimSpace(stringField(m, key))
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fallback
	}
	return t.UTC()
}

func defaultString(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// thresholdValue extrae settings.lowStockThreshold como valor crudo (nil si falta).
func thresholdValue(d document) any {
	settings, ok := d.object("settings")
	if !ok {
		return nil
	}
	return settings["lowStockThreshold"]
}
