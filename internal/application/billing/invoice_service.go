package billing

import (
	"context"
	"errors"
	"time"

	partnerapp "github.com/bizify/backend/internal/application/partner"
	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds the search for a free invoice number when imported
// invoices already occupy numbers the sequence would hand out.
const maxNumberAttempts = 1000

// InvoiceService creates, edits and removes invoices
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	customerRepo   partner.CustomerRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		txScope:      txScope,
		logger:       logger,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a new invoice. The number is {prefix}{year}-{seq:03d} where the
// prefix comes from the current settings and seq from the owner's sequence.
func (s *InvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	draft, err := req.Draft()
	if err != nil {
		return nil, err
	}

	var (
		inv      *billing.Invoice
		customer *partner.Customer
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err = repos.Customers().FindByIDForOwner(ctx, ownerID, draft.CustomerID)
		if err != nil {
			return customerNotFound(err)
		}

		settings, err := repos.Settings().FindCurrent(ctx, ownerID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		now := s.now()
		number, err := allocateNumber(ctx, repos, ownerID, settings.Prefix(), now.Year())
		if err != nil {
			return err
		}

		inv, err = billing.NewInvoice(ownerID, number, draft, now)
		if err != nil {
			return err
		}
		return repos.Invoices().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("total", inv.Total.String()),
	)
	s.publishDomainEvents(ctx, inv)
	return s.toResponse(inv, customer), nil
}

// allocateNumber draws from the sequence until it yields a number that is not
// taken yet.
func allocateNumber(ctx context.Context, repos TransactionalRepositories, ownerID uuid.UUID, prefix string, year int) (string, error) {
	for range maxNumberAttempts {
		seq, err := repos.Sequence().Next(ctx, ownerID, year)
		if err != nil {
			return "", err
		}
		number := billing.FormatInvoiceNumber(prefix, year, seq)
		_, err = repos.Invoices().FindByNumber(ctx, ownerID, number)
		if errors.Is(err, shared.ErrNotFound) {
			return number, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", shared.NewDomainError(shared.CodeInvalidState, "Could not allocate an invoice number")
}

// GetByID returns an invoice with its items and customer
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, invoiceNotFound(err)
	}
	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, inv.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return s.toResponse(inv, customer), nil
}

// List returns a page of invoices
func (s *InvoiceService) List(ctx context.Context, ownerID uuid.UUID, filter InvoiceListFilter) (shared.Paginated[InvoiceResponse], error) {
	f, err := filter.ToDomain()
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}
	invoices, err := s.invoiceRepo.FindAllForOwner(ctx, ownerID, f)
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}
	total, err := s.invoiceRepo.CountForOwner(ctx, ownerID, f)
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}

	customers, err := s.customersOf(ctx, ownerID, invoices)
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}

	items := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		var c *partner.Customer
		if found, ok := customers[invoices[i].CustomerID]; ok {
			c = &found
		}
		items[i] = *s.toResponse(&invoices[i], c)
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

func (s *InvoiceService) customersOf(ctx context.Context, ownerID uuid.UUID, invoices []billing.Invoice) (map[uuid.UUID]partner.Customer, error) {
	byID := make(map[uuid.UUID]partner.Customer)
	if len(invoices) == 0 {
		return byID, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(invoices))
	ids := make([]uuid.UUID, 0, len(invoices))
	for _, inv := range invoices {
		if _, ok := seen[inv.CustomerID]; ok {
			continue
		}
		seen[inv.CustomerID] = struct{}{}
		ids = append(ids, inv.CustomerID)
	}
	customers, err := s.customerRepo.FindByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		byID[c.ID] = c
	}
	return byID, nil
}

// Update applies a partial update. When items are supplied they are reconciled
// with the stored lines by id and the totals are recomputed.
func (s *InvoiceService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	var (
		inv      *billing.Invoice
		customer *partner.Customer
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.Invoices().FindByIDForOwner(ctx, ownerID, id)
		if err != nil {
			return invoiceNotFound(err)
		}

		patch, err := req.Patch(inv)
		if err != nil {
			return err
		}
		customerID := patch.CustomerID.OrElse(inv.CustomerID)
		customer, err = repos.Customers().FindByIDForOwner(ctx, ownerID, customerID)
		if err != nil {
			if patch.CustomerID.IsSet() {
				return customerNotFound(err)
			}
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
		}

		if err := inv.ApplyPatch(patch); err != nil {
			return err
		}
		return repos.Invoices().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice updated",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("total", inv.Total.String()),
	)
	s.publishDomainEvents(ctx, inv)
	return s.toResponse(inv, customer), nil
}

// Delete removes an invoice together with its items
func (s *InvoiceService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*DeletedInvoiceResponse, error) {
	var (
		inv     *billing.Invoice
		deleted billing.DeletedInvoice
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.Invoices().FindByIDForOwner(ctx, ownerID, id)
		if err != nil {
			return invoiceNotFound(err)
		}
		deleted = inv.MarkDeleted()
		return repos.Invoices().Delete(ctx, ownerID, id)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice deleted", zap.String("invoice_number", deleted.InvoiceNumber))
	s.publishDomainEvents(ctx, inv)
	return &DeletedInvoiceResponse{
		ID:            deleted.ID,
		InvoiceNumber: deleted.InvoiceNumber,
		Status:        deleted.Status,
	}, nil
}

func (s *InvoiceService) toResponse(inv *billing.Invoice, customer *partner.Customer) *InvoiceResponse {
	resp := ToInvoiceResponse(inv)
	if customer != nil {
		c := partnerapp.ToCustomerResponse(customer)
		resp.Customer = &c
	}
	return &resp
}

// publishDomainEvents publishes the invoice's pending events once the
// transaction has committed. Publishing failures are logged, not returned.
func (s *InvoiceService) publishDomainEvents(ctx context.Context, inv *billing.Invoice) {
	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
	}
}

func invoiceNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(shared.CodeNotFound, "Invoice not found")
	}
	return err
}

func customerNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(shared.CodeNotFound, "Customer not found")
	}
	return err
}
