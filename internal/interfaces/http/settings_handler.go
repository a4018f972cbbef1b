package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/usecase"
)

// SettingsHandler umbral de stock bajo y tema.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/settings
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateThreshold PUT /api/settings/low-stock-threshold
func (h *SettingsHandler) UpdateThreshold(c *fiber.Ctx) error {
	var in dto.UpdateThresholdRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if _, err := h.uc.SetLowStockThreshold(c.UserContext(), in.LowStockThreshold); err != nil {
		return writeError(c, err)
	}
	return h.Get(c)
}

// UpdateTheme PUT /api/settings/theme
func (h *SettingsHandler) UpdateTheme(c *fiber.Ctx) error {
	var in dto.UpdateThemeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.SetThemeMode(c.UserContext(), in.Mode); err != nil {
		return writeError(c, err)
	}
	return h.Get(c)
}
