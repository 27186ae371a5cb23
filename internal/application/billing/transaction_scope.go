package billing

import (
	"context"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
)

// TransactionScope runs a unit of work against repositories that share one
// database transaction. The work commits when fn returns nil and rolls back
// on any error, panic or context cancellation.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the open transaction.
type TransactionalRepositories interface {
	Customers() partner.CustomerRepository
	Invoices() billing.InvoiceRepository
	Settings() billing.SettingsRepository
	Sequence() billing.InvoiceSequence
}

// NoOpTransactionScope runs fn directly against the given repositories.
// It is meant for tests where the repositories are mocks.
type NoOpTransactionScope struct {
	customers partner.CustomerRepository
	invoices  billing.InvoiceRepository
	settings  billing.SettingsRepository
	sequence  billing.InvoiceSequence
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	customers partner.CustomerRepository,
	invoices billing.InvoiceRepository,
	settings billing.SettingsRepository,
	sequence billing.InvoiceSequence,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{customers: customers, invoices: invoices, settings: settings, sequence: sequence}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.customers }
func (s *NoOpTransactionScope) Invoices() billing.InvoiceRepository   { return s.invoices }
func (s *NoOpTransactionScope) Settings() billing.SettingsRepository  { return s.settings }
func (s *NoOpTransactionScope) Sequence() billing.InvoiceSequence     { return s.sequence }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
