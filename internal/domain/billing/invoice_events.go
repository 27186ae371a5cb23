package billing

import (
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated = "invoice.created"
	EventTypeInvoiceUpdated = "invoice.updated"
	EventTypeInvoiceDeleted = "invoice.deleted"
)

// InvoiceCreatedEvent is published when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Status        InvoiceStatus   `json:"status"`
	Total         decimal.Decimal `json:"total"`
}

func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID, inv.OwnerID),
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		Status:          inv.Status,
		Total:           inv.Total,
	}
}

// InvoiceUpdatedEvent is published after a patch has been applied
type InvoiceUpdatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	Status        InvoiceStatus   `json:"status"`
	Total         decimal.Decimal `json:"total"`
}

func NewInvoiceUpdatedEvent(inv *Invoice) *InvoiceUpdatedEvent {
	return &InvoiceUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceUpdated, AggregateTypeInvoice, inv.ID, inv.OwnerID),
		InvoiceNumber:   inv.InvoiceNumber,
		Status:          inv.Status,
		Total:           inv.Total,
	}
}

// InvoiceDeletedEvent is published when an invoice and its items are removed
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string        `json:"invoice_number"`
	Status        InvoiceStatus `json:"status"`
}

func NewInvoiceDeletedEvent(inv *Invoice) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceDeleted, AggregateTypeInvoice, inv.ID, inv.OwnerID),
		InvoiceNumber:   inv.InvoiceNumber,
		Status:          inv.Status,
	}
}
