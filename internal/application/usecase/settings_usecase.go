package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// SettingsUseCase umbral de stock bajo y preferencia de tema.
type SettingsUseCase struct {
	ws  ports.Workspace
	log *logger.Logger
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(ws ports.Workspace, log *logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{ws: ws, log: log.Component("settings")}
}

// Get configuración vigente.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	var out dto.SettingsResponse
	err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		out = dto.SettingsResponse{LowStockThreshold: s.Settings.LowStockThreshold, Theme: s.Theme.Mode}
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetLowStockThreshold guarda floor(max(0, valor)); lo no numérico cuenta como 20.
// Devuelve el valor guardado.
func (uc *SettingsUseCase) SetLowStockThreshold(ctx context.Context, value any) (int, error) {
	threshold := ledger.SanitizeThreshold(value, entity.DefaultLowStockThreshold)
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Settings.LowStockThreshold = threshold
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int("threshold", threshold).Msg("umbral de stock bajo actualizado")
	return threshold, nil
}

// SetThemeMode guarda el modo de tema (system, light o dark).
func (uc *SettingsUseCase) SetThemeMode(ctx context.Context, mode string) error {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if !entity.IsValidThemeMode(mode) {
		return domain.ErrInvalidInput
	}
	return uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		draft.Theme.Mode = mode
		return nil
	})
}

// Update aplica cambios parciales a la configuración en una sola mutación: un tema
// inválido rechaza el cambio completo.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	var mode string
	if in.Theme != nil {
		mode = strings.ToLower(strings.TrimSpace(*in.Theme))
		if !entity.IsValidThemeMode(mode) {
			return nil, domain.ErrInvalidInput
		}
	}
	var out dto.SettingsResponse
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		if in.Theme != nil {
			draft.Theme.Mode = mode
		}
		if in.LowStockThreshold != nil {
			draft.Settings.LowStockThreshold = ledger.SanitizeThreshold(in.LowStockThreshold, entity.DefaultLowStockThreshold)
		}
		out = dto.SettingsResponse{LowStockThreshold: draft.Settings.LowStockThreshold, Theme: draft.Theme.Mode}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
