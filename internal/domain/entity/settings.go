package entity

// DefaultLowStockThreshold umbral de stock bajo cuando no hay configuración.
const DefaultLowStockThreshold = 20

// Modos de tema de la interfaz (se persisten con el agregado, no se exportan).
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Settings configuración operativa del negocio.
type Settings struct {
	LowStockThreshold int `json:"lowStockThreshold"`
}

// Theme preferencia visual persistida.
type Theme struct {
	Mode string `json:"mode"`
}

// IsValidThemeMode verifica que el modo sea uno de los soportados.
func IsValidThemeMode(mode string) bool {
	switch mode {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}
