package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

func TestInventoryRows_OrdenDeColumnas(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	products := []entity.Product{
		{ID: "p1", Name: "Arena", Quantity: 3, Cost: decimal.NewFromInt(2), Price: decimal.NewFromInt(5), Location: "A", UpdatedAt: now},
	}

	rows := inventoryRows("biocat-app", products)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(inventoryColumns))
	assert.Equal(t, "biocat-app", rows[0][0])
	assert.Equal(t, "p1", rows[0][1])
	assert.Equal(t, 3, rows[0][3])
	assert.Equal(t, now, rows[0][7])
}

func TestInventoryRows_Vacio(t *testing.T) {
	assert.Empty(t, inventoryRows("biocat-app", nil))
}

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, isUndefinedTable(&pgconn.PgError{Code: "42P01"}))
	assert.True(t, isUndefinedTable(fmt.Errorf("leer: %w", &pgconn.PgError{Code: "42P01"})))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUndefinedTable(errors.New("conexión rechazada")))
}
