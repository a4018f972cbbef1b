package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biocat-api/internal/application/auth"
	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocat-api/internal/testutil"
	"github.com/jhoicas/biocat-api/pkg/jwt"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T, username, password string) (*auth.AuthUseCase, *memory.Workspace, *memory.SessionStore) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	ws := memory.NewWorkspace(&entity.Snapshot{
		Auth: entity.Auth{Credentials: entity.Credentials{Username: username, PasswordHash: hash}},
	}, nil, logger.Nop())
	sessions := memory.NewSessionStore(1)
	uc := auth.NewAuthUseCase(ws, sessions, testutil.NewStepClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "biocat-test"}, logger.Nop())
	return uc, ws, sessions
}

func TestLogin_UsuarioSinDistinguirMayusculas(t *testing.T) {
	uc, _, _ := newAuth(t, "Anahi", "2025")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "  aNAHI ", Password: "2025"})
	require.NoError(t, err)
	assert.Equal(t, "Anahi", out.Session.Username, "la sesión usa el usuario guardado")

	username, epoch, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "Anahi", username)
	assert.True(t, uc.ValidateSession(epoch))
}

func TestLogin_CaseFoldingUnicode(t *testing.T) {
	uc, _, _ := newAuth(t, "Straße", "clave")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "STRASSE", Password: "clave"})
	assert.NoError(t, err)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"usuario incorrecto", "otra", "2025"},
		{"contraseña incorrecta", "Anahi", "2024"},
		{"contraseña distingue mayúsculas", "Anahi", "2025 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, sessions := newAuth(t, "Anahi", "2025")
			_, err := uc.Login(context.Background(), dto.LoginRequest{Username: tt.username, Password: tt.password})
			require.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Equal(t, "credenciales incorrectas", err.Error())
			assert.Nil(t, sessions.Current())
		})
	}
}

func TestLogout_InvalidaToken(t *testing.T) {
	uc, _, _ := newAuth(t, "Anahi", "2025")
	ctx := context.Background()
	out, err := uc.Login(ctx, dto.LoginRequest{Username: "Anahi", Password: "2025"})
	require.NoError(t, err)
	_, epoch, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx))
	assert.False(t, uc.ValidateSession(epoch))
	assert.Nil(t, uc.CurrentSession())
}

func TestValidateSession_EpocaCambiada(t *testing.T) {
	uc, _, sessions := newAuth(t, "Anahi", "2025")
	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "Anahi", Password: "2025"})
	require.NoError(t, err)
	_, epoch, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	sessions.Invalidate()
	assert.False(t, uc.ValidateSession(epoch))
}

// Escenario D: contraseña actual incorrecta, las credenciales no cambian.
func TestUpdateCredentials_ContrasenaActualIncorrecta(t *testing.T) {
	uc, ws, _ := newAuth(t, "Anahi", "2025")
	before := ws.Snapshot().Auth.Credentials

	_, err := uc.UpdateCredentials(context.Background(), dto.UpdateCredentialsRequest{
		Username:        "Nueva",
		Password:        "nueva-clave",
		CurrentPassword: "incorrecta",
	})
	require.ErrorIs(t, err, domain.ErrPasswordMismatch)
	assert.Equal(t, "la contraseña actual no coincide", err.Error())
	assert.Equal(t, before, ws.Snapshot().Auth.Credentials)
}

func TestUpdateCredentials_CamposVaciosConservanValor(t *testing.T) {
	uc, ws, _ := newAuth(t, "Anahi", "2025")
	ctx := context.Background()

	out, err := uc.UpdateCredentials(ctx, dto.UpdateCredentialsRequest{Password: "nueva", CurrentPassword: "2025"})
	require.NoError(t, err)
	assert.Equal(t, "Anahi", out.Username)

	creds := ws.Snapshot().Auth.Credentials
	assert.True(t, auth.CheckPassword(creds.PasswordHash, "nueva"))
	assert.Empty(t, creds.Password)

	out, err = uc.UpdateCredentials(ctx, dto.UpdateCredentialsRequest{Username: " Biocat ", CurrentPassword: "nueva"})
	require.NoError(t, err)
	assert.Equal(t, "Biocat", out.Username)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "biocat", Password: "nueva"})
	assert.NoError(t, err)
}

func TestNormalizeCredentials_MigraTextoPlano(t *testing.T) {
	creds := entity.Credentials{Username: "Anahi", Password: "2025"}
	require.NoError(t, auth.NormalizeCredentials(&creds))

	assert.Empty(t, creds.Password)
	assert.True(t, auth.CheckPassword(creds.PasswordHash, "2025"))

	hashed := creds
	require.NoError(t, auth.NormalizeCredentials(&creds))
	assert.Equal(t, hashed, creds, "las credenciales ya hasheadas no cambian")
}
