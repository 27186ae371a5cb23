package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetOwnerID() uuid.UUID
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// OwnedAggregateRoot is the base for every aggregate that belongs to one user.
// No aggregate is ever visible outside its owner.
type OwnedAggregateRoot struct {
	BaseEntity
	OwnerID      uuid.UUID
	domainEvents []DomainEvent
}

// NewOwnedAggregateRoot creates a new owner-scoped aggregate root
func NewOwnedAggregateRoot(ownerID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseEntity: NewBaseEntity(),
		OwnerID:    ownerID,
	}
}

func (a *OwnedAggregateRoot) GetOwnerID() uuid.UUID {
	return a.OwnerID
}

// BelongsTo reports whether the aggregate is owned by ownerID.
func (a *OwnedAggregateRoot) BelongsTo(ownerID uuid.UUID) bool {
	return a.OwnerID == ownerID
}

// AddDomainEvent adds a domain event to be published
func (a *OwnedAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *OwnedAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *OwnedAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
