package partner

import (
	"context"
	"errors"
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const topCustomersLimit = 5

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, invoiceRepo billing.InvoiceRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Create creates a new customer. The email must be unused within the owner.
func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(ownerID, req.Profile())
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, ownerID, customer.Email, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.String("customer_id", customer.ID.String()))
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID returns a customer of the owner
func (s *CustomerService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, customerNotFound(err)
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID, filter CustomerListFilter) (shared.Paginated[CustomerResponse], error) {
	f := filter.ToDomain()
	customers, err := s.customerRepo.FindAllForOwner(ctx, ownerID, f)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	total, err := s.customerRepo.CountForOwner(ctx, ownerID, f)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, customerNotFound(err)
	}
	if err := customer.ApplyPatch(req.Patch()); err != nil {
		return nil, err
	}
	if req.Email.IsSet() {
		if err := s.ensureEmailFree(ctx, ownerID, customer.Email, customer.ID); err != nil {
			return nil, err
		}
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer that is not referenced by any invoice
func (s *CustomerService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, id); err != nil {
		return customerNotFound(err)
	}
	used, err := s.invoiceRepo.ExistsForCustomer(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if used {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot delete customer with existing invoices")
	}
	return s.customerRepo.Delete(ctx, ownerID, id)
}

// Stats summarizes the customers of an owner
func (s *CustomerService) Stats(ctx context.Context, ownerID uuid.UUID) (*CustomerStats, error) {
	total, err := s.customerRepo.CountForOwner(ctx, ownerID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	newThisMonth, err := s.customerRepo.CountCreatedSince(ctx, ownerID, monthStart)
	if err != nil {
		return nil, err
	}

	active, err := s.invoiceRepo.CountDistinctCustomers(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	top, err := s.topCustomers(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &CustomerStats{
		TotalCustomers:        total,
		NewCustomersThisMonth: newThisMonth,
		ActiveCustomers:       active,
		TopCustomers:          top,
	}, nil
}

func (s *CustomerService) topCustomers(ctx context.Context, ownerID uuid.UUID) ([]TopCustomer, error) {
	revenue, err := s.invoiceRepo.RevenueByCustomer(ctx, ownerID, topCustomersLimit)
	if err != nil {
		return nil, err
	}
	if len(revenue) == 0 {
		return []TopCustomer{}, nil
	}

	ids := make([]uuid.UUID, len(revenue))
	for i, r := range revenue {
		ids[i] = r.CustomerID
	}
	customers, err := s.customerRepo.FindByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]partner.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	top := make([]TopCustomer, 0, len(revenue))
	for _, r := range revenue {
		c, ok := byID[r.CustomerID]
		if !ok {
			continue
		}
		top = append(top, TopCustomer{
			ID:         c.ID,
			Name:       c.Name,
			Company:    c.Company,
			TotalSpent: billing.NewAmount(r.Total),
		})
	}
	return top, nil
}

func (s *CustomerService) ensureEmailFree(ctx context.Context, ownerID uuid.UUID, email string, self uuid.UUID) error {
	existing, err := s.customerRepo.FindByEmail(ctx, ownerID, email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == self {
		return nil
	}
	return shared.NewDomainError(shared.CodeAlreadyExists, "Customer with this email already exists")
}

func customerNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(shared.CodeNotFound, "Customer not found")
	}
	return err
}
