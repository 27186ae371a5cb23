package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByIDForOwner finds an invoice with its items
func (r *GormInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, ownerID uuid.UUID, number string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("owner_id = ? AND invoice_number = ?", ownerID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner lists invoices with their items
func (r *GormInvoiceRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	query := paginate(preloadItems(r.scoped(ctx, ownerID, filter)), filter.Filter, InvoiceSortFields, "issue_date")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// CountForOwner counts invoices matching the filter
func (r *GormInvoiceRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	err := r.scoped(ctx, ownerID, filter).Count(&count).Error
	return count, err
}

// FindForExport returns invoices selected by criteria, oldest first.
// DateTo includes its whole day.
func (r *GormInvoiceRepository) FindForExport(ctx context.Context, ownerID uuid.UUID, criteria billing.ExportCriteria) ([]billing.Invoice, error) {
	query := preloadItems(r.db.WithContext(ctx)).Where("owner_id = ?", ownerID)
	if len(criteria.CustomerIDs) > 0 {
		query = query.Where("customer_id IN ?", criteria.CustomerIDs)
	}
	if criteria.DateFrom != nil {
		query = query.Where("issue_date >= ?", startOfDay(*criteria.DateFrom))
	}
	if criteria.DateTo != nil {
		query = query.Where("issue_date < ?", startOfDay(*criteria.DateTo).AddDate(0, 0, 1))
	}

	var rows []models.InvoiceModel
	if err := query.Order("issue_date ASC").Order("invoice_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// Save upserts the invoice and replaces its stored line set with inv.Items
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError(shared.CodeAlreadyExists, "Invoice number already exists: "+inv.InvoiceNumber)
			}
			return err
		}

		stale := tx.Where("invoice_id = ?", model.ID)
		if len(model.Items) > 0 {
			keep := make([]uuid.UUID, len(model.Items))
			for i := range model.Items {
				keep[i] = model.Items[i].ID
			}
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}

		if len(model.Items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&model.Items).Error
	})
}

// Delete removes an invoice and its items
func (r *GormInvoiceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&models.InvoiceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItemModel{}).Error
	})
}

// DeleteAllForOwner removes every invoice of an owner with their items
func (r *GormInvoiceRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.InvoiceModel{}).Select("id").Where("owner_id = ?", ownerID)
		if err := tx.Where("invoice_id IN (?)", owned).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("owner_id = ?", ownerID).Delete(&models.InvoiceModel{}).Error
	})
}

// ExistsForCustomer reports whether any invoice references the customer
func (r *GormInvoiceRepository) ExistsForCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND customer_id = ?", ownerID, customerID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus returns the number of invoices per status. Missing statuses are absent.
func (r *GormInvoiceRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[billing.InvoiceStatus]int64, error) {
	var rows []struct {
		Status billing.InvoiceStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("status, COUNT(*) AS count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[billing.InvoiceStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// SumPaid sums the totals of paid invoices issued in [from, to)
func (r *GormInvoiceRepository) SumPaid(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(total), 0)").
		Where("owner_id = ? AND status = ?", ownerID, billing.InvoiceStatusPaid)
	if from != nil {
		query = query.Where("issue_date >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("issue_date < ?", to.UTC())
	}

	var sum decimal.Decimal
	if err := query.Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// RevenueByCustomer returns the customers with the highest paid totals
func (r *GormInvoiceRepository) RevenueByCustomer(ctx context.Context, ownerID uuid.UUID, limit int) ([]billing.CustomerRevenue, error) {
	var rows []struct {
		CustomerID uuid.UUID
		Total      decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("customer_id, SUM(total) AS total").
		Where("owner_id = ? AND status = ?", ownerID, billing.InvoiceStatusPaid).
		Group("customer_id").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]billing.CustomerRevenue, len(rows))
	for i, row := range rows {
		out[i] = billing.CustomerRevenue{CustomerID: row.CustomerID, Total: row.Total}
	}
	return out, nil
}

// CountDistinctCustomers counts customers with at least one invoice
func (r *GormInvoiceRepository) CountDistinctCustomers(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ?", ownerID).
		Distinct("customer_id").
		Count(&count).Error
	return count, err
}

func (r *GormInvoiceRepository) scoped(ctx context.Context, ownerID uuid.UUID, filter billing.InvoiceFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("owner_id = ?", ownerID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(invoice_number) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	return query
}

func toInvoices(rows []models.InvoiceModel) []billing.Invoice {
	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
