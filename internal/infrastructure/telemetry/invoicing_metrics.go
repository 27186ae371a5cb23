package telemetry

import (
	"context"
	"errors"
	"time"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// InvoicingMetrics holds the business instruments of the invoicing core
type InvoicingMetrics struct {
	invoiceEvents   *Counter
	invoiceAmount   *Histogram
	imports         *Counter
	importedRecords *Counter
	exports         *Counter
	pdfRenders      *Counter
	pdfDuration     *Histogram
}

// NewInvoicingMetrics registers every instrument on meter
func NewInvoicingMetrics(meter metric.Meter) (*InvoicingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &InvoicingMetrics{}
	var err error
	if m.invoiceEvents, err = NewCounter(meter, "bizify_invoice_events_total",
		"Invoice lifecycle events by type and status", "{event}"); err != nil {
		return nil, err
	}
	if m.invoiceAmount, err = NewHistogram(meter, "bizify_invoice_total_amount",
		"Grand total of created invoices", "{currency}",
		10, 50, 100, 500, 1000, 5000, 10000, 50000); err != nil {
		return nil, err
	}
	if m.imports, err = NewCounter(meter, "bizify_imports_total",
		"Finished imports by outcome", "{import}"); err != nil {
		return nil, err
	}
	if m.importedRecords, err = NewCounter(meter, "bizify_imported_records_total",
		"Records written by imports", "{record}"); err != nil {
		return nil, err
	}
	if m.exports, err = NewCounter(meter, "bizify_exports_total",
		"Rendered exports by format", "{export}"); err != nil {
		return nil, err
	}
	if m.pdfRenders, err = NewCounter(meter, "bizify_invoice_pdf_renders_total",
		"Invoice PDF renders by outcome", "{render}"); err != nil {
		return nil, err
	}
	if m.pdfDuration, err = NewHistogram(meter, "bizify_invoice_pdf_render_duration_seconds",
		"Invoice PDF render latency", "s",
		0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordInvoiceEvent counts a lifecycle event. A positive total on
// invoice.created also feeds the amount histogram.
func (m *InvoicingMetrics) RecordInvoiceEvent(ctx context.Context, ownerID uuid.UUID, eventType, status string, total decimal.Decimal) {
	m.invoiceEvents.Inc(ctx,
		AttrOwnerID.String(ownerID.String()),
		AttrOperation.String(eventType),
		AttrStatus.String(status),
	)
	if eventType == "invoice.created" && total.IsPositive() {
		m.invoiceAmount.Record(ctx, total.InexactFloat64(), AttrStatus.String(status))
	}
}

// RecordImport counts a finished import and the records it wrote
func (m *InvoicingMetrics) RecordImport(ctx context.Context, success bool, stats transferapp.ImportStats) {
	m.imports.Inc(ctx, outcome(success))
	if !success {
		return
	}
	m.importedRecords.Add(ctx, int64(stats.CustomersCreated+stats.CustomersUpdated), AttrOperation.String("customer"))
	m.importedRecords.Add(ctx, int64(stats.InvoicesCreated+stats.InvoicesUpdated), AttrOperation.String("invoice"))
}

// RecordExport counts one rendered export
func (m *InvoicingMetrics) RecordExport(ctx context.Context, format string, stored bool) {
	m.exports.Inc(ctx, AttrFormat.String(format), attribute.Bool("stored", stored))
}

// RecordPDFRender counts one PDF render and its latency
func (m *InvoicingMetrics) RecordPDFRender(ctx context.Context, d time.Duration, err error) {
	attr := outcome(err == nil)
	m.pdfRenders.Inc(ctx, attr)
	m.pdfDuration.RecordDuration(ctx, d, attr)
}

func outcome(success bool) attribute.KeyValue {
	if success {
		return AttrOutcome.String("success")
	}
	return AttrOutcome.String("failure")
}

var _ transferapp.ImportMetrics = (*InvoicingMetrics)(nil)
