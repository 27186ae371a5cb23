package event

import (
	"context"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var invoiceEventTypes = []string{
	billing.EventTypeInvoiceCreated,
	billing.EventTypeInvoiceUpdated,
	billing.EventTypeInvoiceDeleted,
}

// invoiceFacts pulls the status and total out of any invoice event
func invoiceFacts(ev shared.DomainEvent) (number, status string, total decimal.Decimal, ok bool) {
	switch e := ev.(type) {
	case *billing.InvoiceCreatedEvent:
		return e.InvoiceNumber, string(e.Status), e.Total, true
	case *billing.InvoiceUpdatedEvent:
		return e.InvoiceNumber, string(e.Status), e.Total, true
	case *billing.InvoiceDeletedEvent:
		return e.InvoiceNumber, string(e.Status), decimal.Zero, true
	}
	return "", "", decimal.Zero, false
}

// InvoiceAuditLogger writes one structured log line per invoice event
type InvoiceAuditLogger struct {
	logger *zap.Logger
}

// NewInvoiceAuditLogger creates the handler
func NewInvoiceAuditLogger(logger *zap.Logger) *InvoiceAuditLogger {
	return &InvoiceAuditLogger{logger: logger.Named("audit")}
}

func (h *InvoiceAuditLogger) EventTypes() []string { return invoiceEventTypes }

func (h *InvoiceAuditLogger) Handle(_ context.Context, ev shared.DomainEvent) error {
	number, status, total, ok := invoiceFacts(ev)
	if !ok {
		return nil
	}
	h.logger.Info("invoice event",
		zap.String("event_type", ev.EventType()),
		zap.String("event_id", ev.EventID().String()),
		zap.String("owner_id", ev.OwnerID().String()),
		zap.String("invoice_id", ev.AggregateID().String()),
		zap.String("invoice_number", number),
		zap.String("status", status),
		zap.String("total", total.StringFixed(2)),
		zap.Time("occurred_at", ev.OccurredAt()),
	)
	return nil
}

// InvoiceEventRecorder receives invoice lifecycle counts
type InvoiceEventRecorder interface {
	RecordInvoiceEvent(ctx context.Context, ownerID uuid.UUID, eventType, status string, total decimal.Decimal)
}

// InvoiceMetricsHandler forwards invoice events to a metrics recorder
type InvoiceMetricsHandler struct {
	recorder InvoiceEventRecorder
}

// NewInvoiceMetricsHandler creates the handler
func NewInvoiceMetricsHandler(recorder InvoiceEventRecorder) *InvoiceMetricsHandler {
	return &InvoiceMetricsHandler{recorder: recorder}
}

func (h *InvoiceMetricsHandler) EventTypes() []string { return invoiceEventTypes }

func (h *InvoiceMetricsHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	_, status, total, ok := invoiceFacts(ev)
	if !ok {
		return nil
	}
	h.recorder.RecordInvoiceEvent(ctx, ev.OwnerID(), ev.EventType(), status, total)
	return nil
}

var (
	_ shared.EventHandler = (*InvoiceAuditLogger)(nil)
	_ shared.EventHandler = (*InvoiceMetricsHandler)(nil)
)
