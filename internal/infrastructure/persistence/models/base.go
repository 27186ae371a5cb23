package models

import (
	"time"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity.
// Timestamps are stored in UTC so range queries compare consistently on SQLite.
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt.UTC()
	m.UpdatedAt = e.UpdatedAt.UTC()
}

// ownedRoot rebuilds the aggregate root part of an owned domain entity.
// Pending domain events are never persisted, so the result carries none.
func ownedRoot(m BaseModel, ownerID uuid.UUID) shared.OwnedAggregateRoot {
	return shared.OwnedAggregateRoot{
		BaseEntity: m.ToDomain(),
		OwnerID:    ownerID,
	}
}
