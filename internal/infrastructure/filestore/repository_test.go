package filestore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

func sampleSnapshot() *entity.Snapshot {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return &entity.Snapshot{
		Inventory: []entity.Product{{
			ID: "p1", Name: "Arena Lavanda", Quantity: 10,
			Cost: decimal.RequireFromString("7.5"), Price: decimal.RequireFromString("13.9"),
			Location: "Depósito", CreatedAt: now, UpdatedAt: now,
		}},
		Clients:  []entity.Client{{ID: "c1", Name: "Luna", CreatedAt: now, UpdatedAt: now}},
		Orders:   []entity.Order{},
		Auth:     entity.Auth{Credentials: entity.Credentials{Username: "Anahi", PasswordHash: "hash"}},
		Theme:    entity.Theme{Mode: entity.ThemeDark},
		Settings: entity.Settings{LowStockThreshold: 15},
	}
}

func TestLoad_SinArchivo(t *testing.T) {
	repo := NewSnapshotRepository(afero.NewMemMapFs(), "/data", "")

	s, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, "/data/biocat-app.json", repo.Path())
}

func TestSaveLoad_IdaYVuelta(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewSnapshotRepository(fs, "/data", "biocat-app")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSnapshot()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Arena Lavanda", got.Inventory[0].Name)
	assert.True(t, decimal.RequireFromString("13.9").Equal(got.Inventory[0].Price))
	assert.Equal(t, entity.ThemeDark, got.Theme.Mode)
	assert.Equal(t, 15, got.Settings.LowStockThreshold)

	exists, err := afero.Exists(fs, "/data/biocat-app.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists, "no queda el temporal")
}

func TestSave_Reemplaza(t *testing.T) {
	repo := NewSnapshotRepository(afero.NewMemMapFs(), "/data", "biocat-app")
	ctx := context.Background()

	first := sampleSnapshot()
	require.NoError(t, repo.Save(ctx, first))
	second := sampleSnapshot()
	second.Inventory = nil
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Inventory)
}

func TestLoad_DocumentoCorrupto(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/biocat-app.json", []byte("{roto"), 0o600))
	repo := NewSnapshotRepository(fs, "/data", "biocat-app")

	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_DocumentoConCantidadesFraccionarias(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `{"inventory":[{"id":"p1","name":"Arena","quantity":7.9,"cost":5,"price":"13.9"}],
"clients":[],"orders":[{"id":"o1","clientId":"c1","items":[{"productId":"p1","quantity":"2"}],"status":"Pendiente"}],
"settings":{"lowStockThreshold":12.7}}`
	require.NoError(t, afero.WriteFile(fs, "/data/biocat-app.json", []byte(doc), 0o600))

	s, err := NewSnapshotRepository(fs, "/data", "").Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 7, s.Inventory[0].Quantity)
	assert.Equal(t, 2, s.Orders[0].Items[0].Quantity)
	assert.Equal(t, 12, s.Settings.LowStockThreshold)
}
