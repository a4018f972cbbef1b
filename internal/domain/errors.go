package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidBackup      = errors.New("archivo inválido")
	ErrEmptyOrder         = errors.New("la orden no tiene productos")
	ErrClientNotFound     = errors.New("cliente no encontrado")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrOrderCompleted     = errors.New("la orden ya está completada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales incorrectas")
	ErrPasswordMismatch   = errors.New("la contraseña actual no coincide")
)

// StockError agrupa los faltantes de inventario que impiden completar una orden.
// Cada entrada de Lines corresponde a una línea deficiente de la orden.
type StockError struct {
	Lines []string
}

// NewStockError construye el error a partir de los mensajes por línea.
func NewStockError(lines []string) *StockError {
	return &StockError{Lines: lines}
}

func (e *StockError) Error() string {
	return strings.Join(e.Lines, " | ")
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// IsValidation indica si el error pertenece a la familia de validación de entrada.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidBackup) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrClientNotFound)
}

// IsNotFound indica si el error corresponde a un registro inexistente.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrOrderNotFound)
}

// IsAuth indica si el error es de autenticación.
func IsAuth(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrUnauthorized)
}
