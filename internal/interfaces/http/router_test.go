package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/bootstrap"
	"github.com/jhoicas/biocat-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/biocat-api/internal/interfaces/http"
	"github.com/jhoicas/biocat-api/pkg/config"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

type server struct {
	t   *testing.T
	app *fiber.App
}

func newServer(t *testing.T) *server {
	t.Helper()
	cfg := &config.Config{
		App:   config.AppConfig{Name: "biocat-test"},
		JWT:   config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, Issuer: testIssuer},
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Ledger: config.LedgerConfig{
			DefaultUsername:   "Anahi",
			DefaultPassword:   "2025",
			LowStockThreshold: 20,
		},
	}
	engine, err := bootstrap.New(context.Background(), cfg, logger.Nop(), bootstrap.Options{Repository: memory.NewSnapshotRepository()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close(context.Background()) })

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      engine.Auth,
		ProductUC:   engine.Products,
		ClientUC:    engine.Clients,
		OrderUC:     engine.Orders,
		ReceiptUC:   engine.Receipts,
		SettingsUC:  engine.Settings,
		BackupUC:    engine.Backup,
		DashboardUC: engine.Dashboard,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
	})
	return &server{t: t, app: app}
}

// do envía body (cualquier valor, o []byte tal cual) y decodifica la respuesta en out.
func (s *server) do(method, path, token string, body any, out any) int {
	s.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(s.t, err)
		if len(raw) > 0 {
			require.NoError(s.t, json.Unmarshal(raw, out), string(raw))
		}
	}
	return resp.StatusCode
}

func (s *server) login() string {
	s.t.Helper()
	var out dto.LoginResponse
	status := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "ANAHI", Password: "2025"}, &out)
	require.Equal(s.t, http.StatusOK, status)
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	var out map[string]string
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil, &out))
	assert.Equal(t, "ok", out["status"])
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	s := newServer(t)
	var out dto.ErrorResponse
	status := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "Anahi", Password: "2024"}, &out)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", out.Code)
}

func TestLogin_CamposFaltantes(t *testing.T) {
	s := newServer(t)
	var out dto.ErrorResponse
	status := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "Anahi"}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.NotEmpty(t, out.Details)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	s := newServer(t)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/products", "", nil, nil))
}

// Flujo completo: producto, cliente, orden, completado con y sin stock.
func TestFlujoOrden_CompletarYStockInsuficiente(t *testing.T) {
	s := newServer(t)
	token := s.login()

	var product dto.ProductResponse
	status := s.do(http.MethodPost, "/api/products", token, map[string]any{
		"name": "Arena Lavanda", "quantity": 10, "cost": "5", "price": 25, "location": "Depósito",
	}, &product)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, product.LowStock, "10 < 20")

	var client dto.ClientResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/clients", token, dto.CreateClientRequest{Name: "Luna Pet Shop"}, &client))

	var order dto.OrderResponse
	status = s.do(http.MethodPost, "/api/orders", token, map[string]any{
		"clientId": client.ID,
		"items":    []map[string]any{{"productId": product.ID, "quantity": 4}},
		"discount": 10,
	}, &order)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "100", order.Subtotal.String())
	assert.Equal(t, "90", order.Total.String())
	assert.Equal(t, "Luna Pet Shop", order.ClientName)

	var done dto.CompletionResult
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/orders/"+order.ID+"/complete", token, nil, &done))
	assert.False(t, done.AlreadyCompleted)

	var again dto.CompletionResult
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/orders/"+order.ID+"/complete", token, nil, &again))
	assert.True(t, again.AlreadyCompleted)

	var big dto.OrderResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/orders", token, map[string]any{
		"clientId": client.ID,
		"items":    []map[string]any{{"productId": product.ID, "quantity": 9}},
	}, &big))

	var stockErr dto.ErrorResponse
	status = s.do(http.MethodPost, "/api/orders/"+big.ID+"/complete", token, nil, &stockErr)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", stockErr.Code)
	require.Len(t, stockErr.Details, 1)
	assert.Contains(t, stockErr.Details[0], "falta 3")

	var current dto.ProductResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/products/"+product.ID, token, nil, &current))
	assert.Equal(t, 6, current.Quantity)

	var edit dto.ErrorResponse
	status = s.do(http.MethodPut, "/api/orders/"+order.ID, token, map[string]any{"discount": 0}, &edit)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ORDER_COMPLETED", edit.Code)
}

func TestOrdenes_Rechazos(t *testing.T) {
	s := newServer(t)
	token := s.login()

	var out dto.ErrorResponse
	status := s.do(http.MethodPost, "/api/orders", token, map[string]any{
		"clientId": "fantasma",
		"items":    []map[string]any{{"productId": "x", "quantity": 1}},
	}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CLIENT_NOT_FOUND", out.Code)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/orders/nada/complete", token, nil, &out))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/orders/nada", token, nil, &out))
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/orders", token, []byte("{no-json"), &out))
	assert.Equal(t, "INVALID_BODY", out.Code)
}

func TestSettings_UmbralYTema(t *testing.T) {
	s := newServer(t)
	token := s.login()

	var settings dto.SettingsResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/settings/low-stock-threshold", token,
		map[string]any{"lowStockThreshold": "7.8"}, &settings))
	assert.Equal(t, 7, settings.LowStockThreshold)

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/settings/theme", token,
		dto.UpdateThemeRequest{Mode: "dark"}, &settings))
	assert.Equal(t, "dark", settings.Theme)

	var out dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/api/settings/theme", token,
		dto.UpdateThemeRequest{Mode: "neon"}, &out))
}

// Restaurar un respaldo cierra la sesión: el token anterior deja de servir.
func TestBackup_RestaurarInvalidaToken(t *testing.T) {
	s := newServer(t)
	token := s.login()

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/backup/demo", token, nil, nil))

	var exported map[string]any
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/backup/export", token, nil, &exported))
	assert.Len(t, exported["inventory"], 3)
	assert.NotContains(t, exported, "theme")

	var bad dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/backup/restore", token, []byte("null"), &bad))
	assert.Equal(t, "INVALID_BACKUP", bad.Code)

	payload, err := json.Marshal(exported)
	require.NoError(t, err)
	var restored dto.RestoreResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/backup/restore", token, payload, &restored))
	assert.Equal(t, 3, restored.Products)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/products", token, nil, nil))

	fresh := s.login()
	var summary dto.DashboardSummary
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/dashboard/summary", fresh, nil, &summary))
	assert.Equal(t, 315, summary.TotalUnits)
}

func TestLogout_CierraSesion(t *testing.T) {
	s := newServer(t)
	token := s.login()

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/auth/logout", token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/settings", token, nil, nil))
}

func TestOrdenes_ComprobantePDF(t *testing.T) {
	s := newServer(t)
	token := s.login()

	var product dto.ProductResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/products", token, map[string]any{
		"name": "Arena Neutra", "quantity": 5, "price": "12.5",
	}, &product))
	var client dto.ClientResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/clients", token, dto.CreateClientRequest{Name: "Gatos Felices"}, &client))
	var order dto.OrderResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/orders", token, map[string]any{
		"clientId": client.ID,
		"items":    []map[string]any{{"productId": product.ID, "quantity": 2}},
	}, &order))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID+"/receipt", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "orden-"+order.ID+".pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	var missing dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/orders/nada/receipt", token, nil, &missing))
}
