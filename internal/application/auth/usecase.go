package auth

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
	"github.com/jhoicas/biocat-api/pkg/jwt"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, logout y cambio de credenciales del único usuario del negocio.
type AuthUseCase struct {
	ws       ports.Workspace
	sessions ports.SessionStore
	clock    ledger.Clock
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(ws ports.Workspace, sessions ports.SessionStore, clock ledger.Clock, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{ws: ws, sessions: sessions, clock: clock, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login compara el usuario sin distinguir mayúsculas (case folding Unicode) y la
// contraseña exacta contra el hash guardado. Cualquier falla devuelve el mismo
// ErrInvalidCredentials para no revelar cuál de los dos datos es incorrecto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var creds entity.Credentials
	if err := uc.ws.View(ctx, func(s *entity.Snapshot) {
		creds = s.Auth.Credentials
	}); err != nil {
		return nil, err
	}
	if !sameUsername(creds.Username, in.Username) || !CheckPassword(creds.PasswordHash, in.Password) {
		uc.log.Warn().Msg("intento de login fallido")
		return nil, domain.ErrInvalidCredentials
	}

	session := uc.sessions.Start(entity.Session{Username: creds.Username, LoggedAt: uc.clock.Now()})
	token, err := jwt.Generate(uc.jwtCfg.Secret, session.Username, session.Epoch, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", session.Username).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:   token,
		Session: dto.SessionResponse{Username: session.Username, LoggedAt: session.LoggedAt},
	}, nil
}

// Logout cierra la sesión activa.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	uc.sessions.Clear()
	return nil
}

// UpdateCredentials cambia usuario y/o contraseña si CurrentPassword coincide con la
// vigente. Los campos vacíos conservan su valor.
func (uc *AuthUseCase) UpdateCredentials(ctx context.Context, in dto.UpdateCredentialsRequest) (*dto.CredentialsResponse, error) {
	var newHash string
	if in.Password != "" {
		h, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		newHash = h
	}

	var out dto.CredentialsResponse
	err := uc.ws.Run(ctx, func(draft *entity.Snapshot) error {
		creds := &draft.Auth.Credentials
		if !CheckPassword(creds.PasswordHash, in.CurrentPassword) {
			return domain.ErrPasswordMismatch
		}
		if u := strings.TrimSpace(in.Username); u != "" {
			creds.Username = u
		}
		if newHash != "" {
			creds.PasswordHash = newHash
		}
		creds.Password = ""
		out = dto.CredentialsResponse{Username: creds.Username}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", out.Username).Msg("credenciales actualizadas")
	return &out, nil
}

// CurrentSession sesión activa o nil.
func (uc *AuthUseCase) CurrentSession() *entity.Session {
	return uc.sessions.Current()
}

// ValidateSession indica si un token emitido con epoch sigue vigente: debe haber una
// sesión abierta y la época no debe haber cambiado (logout o restauración la cierran).
func (uc *AuthUseCase) ValidateSession(epoch int64) bool {
	cur := uc.sessions.Current()
	return cur != nil && cur.Epoch == epoch && epoch == uc.sessions.Epoch()
}

func sameUsername(stored, given string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(stored)) == fold.String(strings.TrimSpace(given))
}
