package billing

import (
	"context"
	"time"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	shared.Filter
	Status     *InvoiceStatus
	CustomerID *uuid.UUID
}

// ExportCriteria selects the invoices that go into an export.
// Date bounds apply to the issue date and are inclusive.
type ExportCriteria struct {
	CustomerIDs []uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
}

// CustomerRevenue is the paid total of one customer
type CustomerRevenue struct {
	CustomerID uuid.UUID
	Total      decimal.Decimal
}

// InvoiceRepository persists invoices together with their line items.
// Every query is scoped to an owner.
type InvoiceRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)
	// FindByNumber looks an invoice up by its natural key.
	FindByNumber(ctx context.Context, ownerID uuid.UUID, number string) (*Invoice, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter InvoiceFilter) (int64, error)
	FindForExport(ctx context.Context, ownerID uuid.UUID, criteria ExportCriteria) ([]Invoice, error)

	// Save upserts the invoice and makes the stored line set equal to inv.Items:
	// lines missing from inv.Items are deleted.
	Save(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error

	ExistsForCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[InvoiceStatus]int64, error)
	// SumPaid sums the totals of paid invoices issued in [from, to). Nil bounds are open.
	SumPaid(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) (decimal.Decimal, error)
	RevenueByCustomer(ctx context.Context, ownerID uuid.UUID, limit int) ([]CustomerRevenue, error)
	CountDistinctCustomers(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// InvoiceSequence hands out monotonically increasing invoice sequence numbers
// per owner and year. Implementations must be safe under concurrent callers.
type InvoiceSequence interface {
	Next(ctx context.Context, ownerID uuid.UUID, year int) (int64, error)
}

// SettingsRepository resolves the current settings record of an owner.
type SettingsRepository interface {
	// FindCurrent returns the most recently updated record, or shared.ErrNotFound.
	FindCurrent(ctx context.Context, ownerID uuid.UUID) (*Settings, error)
	// ReplaceCurrent removes every other record of the owner and saves s.
	ReplaceCurrent(ctx context.Context, s *Settings) error
	DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error
}
