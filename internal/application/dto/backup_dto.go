package dto

import (
	"time"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// BackupAuth bloque de credenciales del respaldo.
type BackupAuth struct {
	Credentials entity.Credentials `json:"credentials" yaml:"credentials"`
}

// Backup documento de exportación: todo el agregado salvo el tema, más la fecha.
type Backup struct {
	ExportedAt time.Time        `json:"exportedAt" yaml:"exportedAt"`
	Inventory  []entity.Product `json:"inventory" yaml:"inventory"`
	Clients    []entity.Client  `json:"clients" yaml:"clients"`
	Orders     []entity.Order   `json:"orders" yaml:"orders"`
	Auth       BackupAuth       `json:"auth" yaml:"auth"`
	Settings   entity.Settings  `json:"settings" yaml:"settings"`
}

// RestoreResponse resumen de lo restaurado.
type RestoreResponse struct {
	Products int `json:"products"`
	Clients  int `json:"clients"`
	Orders   int `json:"orders"`
}
