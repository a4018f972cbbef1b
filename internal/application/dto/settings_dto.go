package dto

// SettingsResponse configuración vigente.
type SettingsResponse struct {
	LowStockThreshold int    `json:"lowStockThreshold"`
	Theme             string `json:"theme"`
}

// UpdateSettingsRequest cambios parciales de configuración.
type UpdateSettingsRequest struct {
	LowStockThreshold any     `json:"lowStockThreshold"`
	Theme             *string `json:"theme" validate:"omitempty,oneof=system light dark"`
}

// UpdateThresholdRequest nuevo umbral de stock bajo (número o texto).
type UpdateThresholdRequest struct {
	LowStockThreshold any `json:"lowStockThreshold"`
}

// UpdateThemeRequest modo de tema.
type UpdateThemeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=system light dark"`
}
