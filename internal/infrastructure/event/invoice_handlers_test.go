package event

import (
	"context"
	"testing"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordInvoiceEvent(ctx context.Context, ownerID uuid.UUID, eventType, status string, total decimal.Decimal) {
	m.Called(ctx, ownerID, eventType, status, total)
}

func TestInvoiceAuditLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewInvoiceAuditLogger(zap.New(core))
	inv := newInvoice(t, billing.InvoiceStatusPending)

	require.NoError(t, h.Handle(context.Background(), billing.NewInvoiceCreatedEvent(inv)))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "invoice.created", fields["event_type"])
	assert.Equal(t, "INV-2024-0001", fields["invoice_number"])
	assert.Equal(t, "pending", fields["status"])
	assert.Equal(t, "100.00", fields["total"])
	assert.Equal(t, inv.OwnerID.String(), fields["owner_id"])
}

func TestInvoiceMetricsHandler(t *testing.T) {
	ctx := context.Background()
	recorder := new(mockRecorder)
	h := NewInvoiceMetricsHandler(recorder)
	inv := newInvoice(t, billing.InvoiceStatusDraft)

	recorder.On("RecordInvoiceEvent", ctx, inv.OwnerID, "invoice.updated", "draft",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(100)) })).Once()
	recorder.On("RecordInvoiceEvent", ctx, inv.OwnerID, "invoice.deleted", "draft",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() })).Once()

	require.NoError(t, h.Handle(ctx, billing.NewInvoiceUpdatedEvent(inv)))
	require.NoError(t, h.Handle(ctx, billing.NewInvoiceDeletedEvent(inv)))

	recorder.AssertExpectations(t)
	assert.ElementsMatch(t, invoiceEventTypes, h.EventTypes())
}
