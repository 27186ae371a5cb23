package partner

import (
	"context"
	"testing"
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCustomerService() (*CustomerService, *testutil.MockCustomerRepository, *testutil.MockInvoiceRepository) {
	customers := new(testutil.MockCustomerRepository)
	invoices := new(testutil.MockInvoiceRepository)
	return NewCustomerService(customers, invoices, zap.NewNop()), customers, invoices
}

func newTestCustomer(t *testing.T, ownerID uuid.UUID, name, email string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(ownerID, partner.Profile{Name: name, Email: email})
	require.NoError(t, err)
	return c
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("creates customer with normalized email", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		customers.On("FindByEmail", ctx, ownerID, "ada@example.com").Return(nil, shared.ErrNotFound)
		customers.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, ownerID, CreateCustomerRequest{Name: "Ada", Email: " Ada@Example.com "})

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", resp.Email)
		assert.Equal(t, ownerID, resp.OwnerID)
		customers.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		existing := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
		customers.On("FindByEmail", ctx, ownerID, "ada@example.com").Return(existing, nil)

		_, err := svc.Create(ctx, ownerID, CreateCustomerRequest{Name: "Other", Email: "ada@example.com"})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc, _, _ := newTestCustomerService()

		_, err := svc.Create(ctx, ownerID, CreateCustomerRequest{Name: "Ada", Email: "not-an-email"})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestCustomerService_GetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		c := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
		customers.On("FindByIDForOwner", ctx, ownerID, c.ID).Return(c, nil)

		resp, err := svc.GetByID(ctx, ownerID, c.ID)

		require.NoError(t, err)
		assert.Equal(t, c.ID, resp.ID)
		assert.Equal(t, "Ada", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		id := uuid.New()
		customers.On("FindByIDForOwner", ctx, ownerID, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetByID(ctx, ownerID, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "Customer not found", err.Error())
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	svc, customers, _ := newTestCustomerService()

	filter := CustomerListFilter{Search: "ada", Page: 2, PageSize: 1}
	domainFilter := filter.ToDomain()
	c := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
	customers.On("FindAllForOwner", ctx, ownerID, domainFilter).Return([]partner.Customer{*c}, nil)
	customers.On("CountForOwner", ctx, ownerID, domainFilter).Return(int64(3), nil)

	page, err := svc.List(ctx, ownerID, filter)

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("only present fields change", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		c := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
		c.City = "London"
		customers.On("FindByIDForOwner", ctx, ownerID, c.ID).Return(c, nil)
		customers.On("Save", ctx, c).Return(nil)

		resp, err := svc.Update(ctx, ownerID, c.ID, UpdateCustomerRequest{Company: shared.Some("Analytical Engines")})

		require.NoError(t, err)
		assert.Equal(t, "Analytical Engines", resp.Company)
		assert.Equal(t, "London", resp.City)
		customers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("email taken by another customer", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		c := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
		other := newTestCustomer(t, ownerID, "Grace", "grace@example.com")
		customers.On("FindByIDForOwner", ctx, ownerID, c.ID).Return(c, nil)
		customers.On("FindByEmail", ctx, ownerID, "grace@example.com").Return(other, nil)

		_, err := svc.Update(ctx, ownerID, c.ID, UpdateCustomerRequest{Email: shared.Some("grace@example.com")})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		c := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
		customers.On("FindByIDForOwner", ctx, ownerID, c.ID).Return(c, nil)
		customers.On("FindByEmail", ctx, ownerID, "ada@example.com").Return(c, nil)
		customers.On("Save", ctx, c).Return(nil)

		_, err := svc.Update(ctx, ownerID, c.ID, UpdateCustomerRequest{Email: shared.Some("ADA@example.com")})

		require.NoError(t, err)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("deletes unused customer", func(t *testing.T) {
		svc, customers, invoices := newTestCustomerService()
		c := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
		customers.On("FindByIDForOwner", ctx, ownerID, c.ID).Return(c, nil)
		invoices.On("ExistsForCustomer", ctx, ownerID, c.ID).Return(false, nil)
		customers.On("Delete", ctx, ownerID, c.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, ownerID, c.ID))
		customers.AssertExpectations(t)
	})

	t.Run("customer with invoices is kept", func(t *testing.T) {
		svc, customers, invoices := newTestCustomerService()
		c := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
		customers.On("FindByIDForOwner", ctx, ownerID, c.ID).Return(c, nil)
		invoices.On("ExistsForCustomer", ctx, ownerID, c.ID).Return(true, nil)

		err := svc.Delete(ctx, ownerID, c.ID)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		customers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc, customers, _ := newTestCustomerService()
		id := uuid.New()
		customers.On("FindByIDForOwner", ctx, ownerID, id).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, ownerID, id), shared.ErrNotFound)
	})
}

func TestCustomerService_Stats(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	svc, customers, invoices := newTestCustomerService()
	svc.now = func() time.Time { return time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC) }

	ada := newTestCustomer(t, ownerID, "Ada", "ada@example.com")
	ada.Company = "Engines Ltd"
	grace := newTestCustomer(t, ownerID, "Grace", "grace@example.com")

	customers.On("CountForOwner", ctx, ownerID, shared.Filter{}).Return(int64(4), nil)
	customers.On("CountCreatedSince", ctx, ownerID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)).Return(int64(2), nil)
	invoices.On("CountDistinctCustomers", ctx, ownerID).Return(int64(2), nil)
	invoices.On("RevenueByCustomer", ctx, ownerID, 5).Return([]billing.CustomerRevenue{
		{CustomerID: grace.ID, Total: decimal.RequireFromString("1500.5")},
		{CustomerID: ada.ID, Total: decimal.RequireFromString("300")},
	}, nil)
	customers.On("FindByIDs", ctx, ownerID, []uuid.UUID{grace.ID, ada.ID}).Return([]partner.Customer{*ada, *grace}, nil)

	stats, err := svc.Stats(ctx, ownerID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalCustomers)
	assert.Equal(t, int64(2), stats.NewCustomersThisMonth)
	assert.Equal(t, int64(2), stats.ActiveCustomers)
	require.Len(t, stats.TopCustomers, 2)
	assert.Equal(t, "Grace", stats.TopCustomers[0].Name)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(stats.TopCustomers[0].TotalSpent.Decimal()))
	assert.Equal(t, "Engines Ltd", stats.TopCustomers[1].Company)
}

func TestCustomerService_Stats_NoRevenue(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	svc, customers, invoices := newTestCustomerService()

	customers.On("CountForOwner", ctx, ownerID, shared.Filter{}).Return(int64(0), nil)
	customers.On("CountCreatedSince", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	invoices.On("CountDistinctCustomers", ctx, ownerID).Return(int64(0), nil)
	invoices.On("RevenueByCustomer", ctx, ownerID, 5).Return([]billing.CustomerRevenue{}, nil)

	stats, err := svc.Stats(ctx, ownerID)

	require.NoError(t, err)
	assert.NotNil(t, stats.TopCustomers)
	assert.Empty(t, stats.TopCustomers)
	customers.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything, mock.Anything)
}
