package entity

import "time"

// Valores por defecto de Client.
const (
	DefaultClientName    = "Cliente sin nombre"
	DefaultClientPhone   = "Sin teléfono"
	DefaultClientAddress = "Sin dirección"

	// UnknownClientName se muestra cuando una orden referencia un cliente eliminado.
	UnknownClientName = "N/A"
)

// Client representa un cliente del directorio.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
