package backup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biocat-api/internal/application/auth"
	"github.com/jhoicas/biocat-api/internal/application/backup"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocat-api/internal/testutil"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

var (
	demoTime   = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	exportTime = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
)

const fixtureHash = "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixt"

func demoSnapshot() *entity.Snapshot {
	products, clients, orders := backup.DemoData(demoTime)
	return &entity.Snapshot{
		Inventory: products,
		Clients:   clients,
		Orders:    orders,
		Auth:      entity.Auth{Credentials: entity.Credentials{Username: "Anahi", PasswordHash: fixtureHash}},
		Theme:     entity.Theme{Mode: entity.ThemeDark},
		Settings:  entity.Settings{LowStockThreshold: 20},
	}
}

func newBackup(t *testing.T, initial *entity.Snapshot) (*backup.BackupUseCase, *memory.Workspace, *memory.SessionStore) {
	t.Helper()
	ws := memory.NewWorkspace(initial, nil, logger.Nop())
	sessions := memory.NewSessionStore(1)
	uc := backup.NewBackupUseCase(ws, sessions, testutil.NewSequenceIDs("rest"), testutil.NewStepClock(exportTime), logger.Nop())
	return uc, ws, sessions
}

func TestExport_DocumentoDemo(t *testing.T) {
	uc, _, _ := newBackup(t, demoSnapshot())

	out, err := uc.Export(context.Background())
	require.NoError(t, err)

	data, err := json.MarshalIndent(out, "", "  ")
	require.NoError(t, err)
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export_demo", data)
}

func TestExport_EsCopiaProfunda(t *testing.T) {
	uc, ws, _ := newBackup(t, demoSnapshot())

	out, err := uc.Export(context.Background())
	require.NoError(t, err)
	out.Inventory[0].Quantity = 0
	out.Orders[0].Items[0].Quantity = 999

	snap := ws.Snapshot()
	assert.Equal(t, 160, snap.Inventory[0].Quantity)
	assert.Equal(t, 20, snap.Orders[0].Items[0].Quantity)
}

// Exportar y restaurar sobre un estado vacío reproduce el mismo agregado.
func TestExportRestore_IdaYVuelta(t *testing.T) {
	ctx := context.Background()
	source, _, _ := newBackup(t, demoSnapshot())
	exported, err := source.Export(ctx)
	require.NoError(t, err)
	payload, err := json.Marshal(exported)
	require.NoError(t, err)

	target, ws, _ := newBackup(t, &entity.Snapshot{Theme: entity.Theme{Mode: entity.ThemeLight}})
	res, err := target.Restore(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Products)
	assert.Equal(t, 2, res.Clients)
	assert.Equal(t, 2, res.Orders)

	restored := ws.Snapshot()
	want := demoSnapshot()

	wantJSON, err := json.Marshal(struct {
		I []entity.Product
		C []entity.Client
		O []entity.Order
		A entity.Auth
		S entity.Settings
	}{want.Inventory, want.Clients, want.Orders, want.Auth, want.Settings})
	require.NoError(t, err)
	gotJSON, err := json.Marshal(struct {
		I []entity.Product
		C []entity.Client
		O []entity.Order
		A entity.Auth
		S entity.Settings
	}{restored.Inventory, restored.Clients, restored.Orders, restored.Auth, restored.Settings})
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))

	assert.Equal(t, entity.ThemeLight, restored.Theme.Mode, "restaurar no cambia el tema")
}

func TestRestore_DocumentoInvalidoNoTocaNada(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"vacío", ""},
		{"espacios", "   "},
		{"null", "null"},
		{"texto", "no es json"},
		{"arreglo", `[{"inventory":[]}]`},
		{"número", "42"},
		{"json truncado", `{"inventory": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, ws, sessions := newBackup(t, demoSnapshot())
			sessions.Start(entity.Session{Username: "Anahi"})

			res, err := uc.Restore(context.Background(), []byte(tt.payload))
			require.ErrorIs(t, err, domain.ErrInvalidBackup)
			assert.True(t, domain.IsValidation(err))
			assert.Nil(t, res)

			assert.Len(t, ws.Snapshot().Inventory, 3)
			assert.NotNil(t, sessions.Current(), "un respaldo inválido no cierra la sesión")
		})
	}
}

func TestRestore_SeccionesMalFormadas(t *testing.T) {
	uc, ws, _ := newBackup(t, demoSnapshot())

	payload := `{
		"inventory": [
			{"id": "a1", "name": "Arena", "quantity": "7.9", "cost": "x", "price": -3},
			"no-es-objeto",
			{"name": "Sin id"}
		],
		"clients": {"no": "es arreglo"},
		"orders": [
			{"id": "o1", "clientId": "c1", "status": "Completada", "subtotal": 100, "discount": 10, "total": 999,
			 "items": [{"productId": "a1", "quantity": 2, "price": "50"}, {"quantity": 1}], "paymentMethod": "qr"}
		],
		"settings": {"lowStockThreshold": "no-numero"}
	}`
	_, err := uc.Restore(context.Background(), []byte(payload))
	require.NoError(t, err)

	snap := ws.Snapshot()
	require.Len(t, snap.Inventory, 2)
	assert.Equal(t, 7, snap.Inventory[0].Quantity)
	assert.Equal(t, "0", snap.Inventory[0].Cost.String())
	assert.Equal(t, "0", snap.Inventory[0].Price.String())
	assert.Equal(t, "rest-1", snap.Inventory[1].ID, "un registro sin id recibe uno nuevo")
	assert.Equal(t, entity.DefaultProductLocation, snap.Inventory[1].Location)

	assert.Empty(t, snap.Clients)

	require.Len(t, snap.Orders, 1)
	o := snap.Orders[0]
	assert.Equal(t, "999", o.Total.String(), "los montos restaurados no se recalculan")
	assert.Equal(t, entity.OrderStatusCompleted, o.Status)
	assert.NotNil(t, o.CompletedAt)
	assert.Equal(t, entity.PaymentQR, o.PaymentMethod)
	require.Len(t, o.Items, 1)

	assert.Equal(t, 20, snap.Settings.LowStockThreshold, "umbral inválido conserva el actual")
	assert.Equal(t, "Anahi", snap.Auth.Credentials.Username, "sin credenciales se conservan las actuales")
}

func TestRestore_CredencialesHeredadasSeHashean(t *testing.T) {
	uc, ws, sessions := newBackup(t, demoSnapshot())
	before := sessions.Epoch()

	payload := `{"inventory": [], "auth": {"credentials": {"username": "Biocat", "password": "secreta"}}, "settings": {"lowStockThreshold": 12.7}}`
	_, err := uc.Restore(context.Background(), []byte(payload))
	require.NoError(t, err)

	snap := ws.Snapshot()
	creds := snap.Auth.Credentials
	assert.Equal(t, "Biocat", creds.Username)
	assert.Empty(t, creds.Password)
	assert.True(t, auth.CheckPassword(creds.PasswordHash, "secreta"))
	assert.Equal(t, 12, snap.Settings.LowStockThreshold)
	assert.Empty(t, snap.Inventory)
	assert.Empty(t, snap.Orders, "las secciones ausentes quedan vacías")

	assert.Greater(t, sessions.Epoch(), before, "restaurar invalida la sesión")
}

func TestLoadDemoData(t *testing.T) {
	uc, ws, _ := newBackup(t, &entity.Snapshot{Settings: entity.Settings{LowStockThreshold: 7}})

	require.NoError(t, uc.LoadDemoData(context.Background()))

	snap := ws.Snapshot()
	assert.Len(t, snap.Inventory, 3)
	assert.Len(t, snap.Clients, 2)
	require.Len(t, snap.Orders, 2)
	assert.Equal(t, "365", snap.Orders[0].Total.String())
	assert.Equal(t, "37", snap.Orders[1].Total.String())
	assert.Equal(t, 7, snap.Settings.LowStockThreshold)
}
