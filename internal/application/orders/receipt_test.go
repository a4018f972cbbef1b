package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biocat-api/internal/application/dto"
	"github.com/jhoicas/biocat-api/internal/application/orders"
	"github.com/jhoicas/biocat-api/internal/domain"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocat-api/internal/testutil"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

type fakeRenderer struct {
	got dto.OrderReceipt
	err error
}

func (f *fakeRenderer) RenderOrderReceipt(_ context.Context, r dto.OrderReceipt) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), f.err
}

func receiptSnapshot() *entity.Snapshot {
	s := baseSnapshot()
	s.Clients[0].Phone = "555-0101"
	s.Clients[0].Address = "Av. Siempre Viva 742"
	s.Orders = []entity.Order{
		{ID: "o1", ClientID: "c1", Status: entity.OrderStatusPending, PaymentMethod: entity.PaymentQR,
			Items: []entity.OrderLine{{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("25"), Name: "Arena Lavanda"}},
			Total: decimal.RequireFromString("50")},
		{ID: "o2", ClientID: "borrado", Status: entity.OrderStatusCompleted, PaymentMethod: entity.PaymentCash},
	}
	return s
}

func newReceiptUseCase(r orders.ReceiptRenderer) *orders.ReceiptUseCase {
	ws := memory.NewWorkspace(receiptSnapshot(), nil, logger.Nop())
	return orders.NewReceiptUseCase(ws, r, testutil.NewStepClock(testStart), "Biocat")
}

func TestReceipt_DatosDelCliente(t *testing.T) {
	r := &fakeRenderer{}
	doc, filename, err := newReceiptUseCase(r).Download(context.Background(), "o1")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Equal(t, "orden-o1.pdf", filename)
	assert.Equal(t, "Biocat", r.got.BusinessName)
	assert.Equal(t, "Luna Pet Shop", r.got.Order.ClientName)
	assert.Equal(t, "555-0101", r.got.ClientPhone)
	assert.Equal(t, "Av. Siempre Viva 742", r.got.ClientAddress)
	assert.Equal(t, "50", r.got.Order.Total.String())
	assert.Equal(t, testStart, r.got.IssuedAt)
}

func TestReceipt_ClienteEliminado(t *testing.T) {
	r := &fakeRenderer{}
	_, _, err := newReceiptUseCase(r).Download(context.Background(), "o2")
	require.NoError(t, err)

	assert.Equal(t, entity.UnknownClientName, r.got.Order.ClientName)
	assert.Empty(t, r.got.ClientPhone)
}

func TestReceipt_OrdenInexistente(t *testing.T) {
	_, _, err := newReceiptUseCase(&fakeRenderer{}).Download(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestReceipt_FallaDelGenerador(t *testing.T) {
	boom := errors.New("sin fuentes")
	_, _, err := newReceiptUseCase(&fakeRenderer{err: boom}).Download(context.Background(), "o1")
	assert.ErrorIs(t, err, boom)
}
