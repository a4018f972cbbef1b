package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biocat-api/internal/application/backup"
	"github.com/jhoicas/biocat-api/internal/application/dto"
)

// BackupHandler exportación, restauración y datos de ejemplo.
type BackupHandler struct {
	uc *backup.BackupUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.BackupUseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export GET /api/backup/export (descarga JSON).
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.Export(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="biocat-backup-%s.json"`, out.ExportedAt.Format("2006-01-02")))
	return c.JSON(out)
}

// Restore POST /api/backup/restore. El cuerpo es el documento de respaldo tal cual;
// si es inválido no se toca nada. Restaurar cierra la sesión activa.
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.UserContext(), c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Demo POST /api/backup/demo
func (h *BackupHandler) Demo(c *fiber.Ctx) error {
	if err := h.uc.LoadDemoData(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "datos de ejemplo cargados"})
}
