package ledger

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator genera identificadores únicos para registros.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator genera UUID v4.
type UUIDGenerator struct{}

// NewID devuelve un UUID aleatorio.
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// Clock abstrae la hora actual para poder fijarla en tests.
type Clock interface {
	Now() time.Time
}

// SystemClock devuelve la hora del sistema en UTC.
type SystemClock struct{}

// Now hora actual UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
