package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	billingapp "github.com/bizify/backend/internal/application/billing"
	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/identity"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func saveCustomer(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name, email string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(ownerID, partner.Profile{Name: name, Email: email})
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(context.Background(), c))
	return c
}

func saveInvoice(t *testing.T, db *gorm.DB, ownerID uuid.UUID, number string, customerID uuid.UUID, issued time.Time, status billing.InvoiceStatus, lines ...billing.LineDraft) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice(ownerID, number, billing.InvoiceDraft{
		CustomerID: customerID,
		Items:      lines,
		IssueDate:  &issued,
		Status:     status,
	}, issued)
	require.NoError(t, err)
	require.NoError(t, NewGormInvoiceRepository(db).Save(context.Background(), inv))
	return inv
}

func line(desc string, qty, price int64) billing.LineDraft {
	return billing.LineDraft{Description: desc, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price)}
}

func TestGormCustomerRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormCustomerRepository(db)
	owner, other := uuid.New(), uuid.New()

	grace := saveCustomer(t, db, owner, "Grace Hopper", "grace@example.com")
	ada := saveCustomer(t, db, owner, "Ada Lovelace", "ada@example.com")
	saveCustomer(t, db, other, "Grace Elsewhere", "grace@example.com")

	t.Run("find by email is case insensitive", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, owner, "  GRACE@example.com ")
		require.NoError(t, err)
		assert.Equal(t, grace.ID, found.ID)
	})

	t.Run("other owners are invisible", func(t *testing.T) {
		_, err := repo.FindByIDForOwner(ctx, other, ada.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate email per owner", func(t *testing.T) {
		dup, err := partner.NewCustomer(owner, partner.Profile{Name: "Copy", Email: "ada@example.com"})
		require.NoError(t, err)
		err = repo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("search and paginate", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, OrderBy: "name", OrderDir: "asc", Search: "love"}
		found, err := repo.FindAllForOwner(ctx, owner, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Ada Lovelace", found[0].Name)

		count, err := repo.CountForOwner(ctx, owner, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("find by ids orders by name", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, owner, []uuid.UUID{grace.ID, ada.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, ada.ID, found[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, owner, ada.ID))
		assert.ErrorIs(t, repo.Delete(ctx, owner, ada.ID), shared.ErrNotFound)
	})
}

func TestGormInvoiceRepository_SaveReconcilesItems(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	owner := uuid.New()
	customer := saveCustomer(t, db, owner, "Grace", "grace@example.com")

	inv := saveInvoice(t, db, owner, "INV-2024-001", customer.ID, day(2024, 1, 15), billing.InvoiceStatusDraft,
		line("Design", 2, 50), line("Hosting", 1, 20))

	stored, err := repo.FindByIDForOwner(ctx, owner, inv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Design", stored.Items[0].Description)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(120)), stored.Total.String())

	keep := stored.Items[1].ID
	require.NoError(t, stored.ReconcileItems([]billing.LineDraft{
		{ID: &keep, Description: "Hosting (annual)", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200)},
		line("Support", 3, 10),
	}))
	require.NoError(t, repo.Save(ctx, stored))

	reloaded, err := repo.FindByNumber(ctx, owner, "INV-2024-001")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, keep, reloaded.Items[0].ID)
	assert.Equal(t, "Hosting (annual)", reloaded.Items[0].Description)
	assert.Equal(t, "Support", reloaded.Items[1].Description)
	assert.True(t, reloaded.Subtotal.Equal(decimal.NewFromInt(230)), reloaded.Subtotal.String())

	var rows int64
	require.NoError(t, db.Model(&models.InvoiceItemModel{}).Where("invoice_id = ?", inv.ID).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestGormInvoiceRepository_DuplicateNumber(t *testing.T) {
	db := newSQLiteDB(t)
	owner := uuid.New()
	customer := saveCustomer(t, db, owner, "Grace", "grace@example.com")
	saveInvoice(t, db, owner, "INV-2024-001", customer.ID, day(2024, 1, 15), billing.InvoiceStatusDraft)

	dup, err := billing.NewInvoice(owner, "INV-2024-001", billing.InvoiceDraft{CustomerID: customer.ID}, day(2024, 2, 1))
	require.NoError(t, err)

	err = NewGormInvoiceRepository(db).Save(context.Background(), dup)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormInvoiceRepository_FindForExport(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	owner := uuid.New()
	grace := saveCustomer(t, db, owner, "Grace", "grace@example.com")
	ada := saveCustomer(t, db, owner, "Ada", "ada@example.com")

	saveInvoice(t, db, owner, "INV-2024-003", grace.ID, time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC), billing.InvoiceStatusPaid)
	saveInvoice(t, db, owner, "INV-2024-001", grace.ID, day(2024, 1, 10), billing.InvoiceStatusPaid)
	saveInvoice(t, db, owner, "INV-2024-002", ada.ID, day(2024, 2, 10), billing.InvoiceStatusPending)
	saveInvoice(t, db, owner, "INV-2024-004", ada.ID, day(2024, 4, 1), billing.InvoiceStatusDraft)

	numbers := func(invs []billing.Invoice) []string {
		out := make([]string, len(invs))
		for i := range invs {
			out[i] = invs[i].InvoiceNumber
		}
		return out
	}

	all, err := repo.FindForExport(ctx, owner, billing.ExportCriteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-2024-001", "INV-2024-002", "INV-2024-003", "INV-2024-004"}, numbers(all))

	from, to := day(2024, 2, 1), day(2024, 3, 31)
	ranged, err := repo.FindForExport(ctx, owner, billing.ExportCriteria{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-2024-002", "INV-2024-003"}, numbers(ranged))

	byCustomer, err := repo.FindForExport(ctx, owner, billing.ExportCriteria{CustomerIDs: []uuid.UUID{ada.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-2024-002", "INV-2024-004"}, numbers(byCustomer))

	counts, err := repo.CountByStatus(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[billing.InvoiceStatusPaid])
	assert.NotContains(t, counts, billing.InvoiceStatusOverdue)

	distinct, err := repo.CountDistinctCustomers(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), distinct)

	used, err := repo.ExistsForCustomer(ctx, owner, ada.ID)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestGormInvoiceRepository_DeleteAllForOwner(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormInvoiceRepository(db)
	owner := uuid.New()
	customer := saveCustomer(t, db, owner, "Grace", "grace@example.com")
	saveInvoice(t, db, owner, "INV-2024-001", customer.ID, day(2024, 1, 10), billing.InvoiceStatusDraft, line("Design", 1, 10))

	require.NoError(t, repo.DeleteAllForOwner(ctx, owner))

	var items int64
	require.NoError(t, db.Model(&models.InvoiceItemModel{}).Count(&items).Error)
	assert.Zero(t, items)
	count, err := repo.CountForOwner(ctx, owner, billing.InvoiceFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGormSettingsRepository_DuplicateRows(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	// rows written before the unique owner index existed
	require.NoError(t, db.Migrator().DropIndex(&models.SettingsModel{}, "OwnerID"))
	repo := NewGormSettingsRepository(db)
	owner := uuid.New()

	base := day(2024, 1, 1)
	for i, name := range []string{"Old", "Newest", "Middle"} {
		s := billing.NewSettings(owner, name)
		s.CreatedAt = base
		s.UpdatedAt = base.Add(time.Duration([]int{1, 3, 2}[i]) * time.Hour)
		require.NoError(t, db.Create(models.SettingsModelFromDomain(s)).Error)
	}

	current, err := repo.FindCurrent(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Newest", current.CompanyName)

	current.CompanyName = "Acme"
	require.NoError(t, repo.ReplaceCurrent(ctx, current))

	var rows int64
	require.NoError(t, db.Model(&models.SettingsModel{}).Where("owner_id = ?", owner).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	current, err = repo.FindCurrent(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Acme", current.CompanyName)
}

func TestGormSettingsRepository_NotFound(t *testing.T) {
	_, err := NewGormSettingsRepository(newSQLiteDB(t)).FindCurrent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newSQLiteDB(t))

	user, err := identity.NewUser("Ada@Example.com", "", "secret123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	exists, err := repo.ExistsByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.VerifyPassword("secret123"))

	dup, err := identity.NewUser("ada@example.com", "Ada", "secret123")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormTransactionScope_RollsBack(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	scope := NewGormTransactionScope(db)
	owner := uuid.New()
	failure := errors.New("boom")

	err := scope.Execute(ctx, func(repos billingapp.TransactionalRepositories) error {
		c, err := partner.NewCustomer(owner, partner.Profile{Name: "Grace", Email: "grace@example.com"})
		require.NoError(t, err)
		if err := repos.Customers().Save(ctx, c); err != nil {
			return err
		}
		if _, err := repos.Sequence().Next(ctx, owner, 2024); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	count, err := NewGormCustomerRepository(db).CountForOwner(ctx, owner, shared.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)

	next, err := NewGormInvoiceSequence(db).Next(ctx, owner, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next, "the rolled back allocation is reused")
}
