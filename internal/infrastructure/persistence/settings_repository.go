package persistence

import (
	"context"
	"errors"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettingsRepository implements SettingsRepository using GORM.
// Databases created before the unique owner index may still hold several
// rows per owner; reads pick the newest one and writes remove the rest.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindCurrent returns the most recently updated settings row of an owner
func (r *GormSettingsRepository) FindCurrent(ctx context.Context, ownerID uuid.UUID) (*billing.Settings, error) {
	var model models.SettingsModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("COALESCE(updated_at, created_at) DESC").
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ReplaceCurrent deletes every other row of the owner and saves s
func (r *GormSettingsRepository) ReplaceCurrent(ctx context.Context, s *billing.Settings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND id <> ?", s.OwnerID, s.ID).
			Delete(&models.SettingsModel{}).Error; err != nil {
			return err
		}
		return tx.Save(models.SettingsModelFromDomain(s)).Error
	})
}

// DeleteAllForOwner removes every settings row of an owner
func (r *GormSettingsRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&models.SettingsModel{}).Error
}

var _ billing.SettingsRepository = (*GormSettingsRepository)(nil)
