package billing

import (
	"strings"
	"time"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// AllInvoiceStatuses lists every valid status in display order.
var AllInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// IsValid reports whether s is a known status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// ParseInvoiceStatus parses a status name, case-insensitively.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidInput, "Invalid invoice status: "+s)
	}
	return status, nil
}

// LineItem is a single billed line. It only exists inside an Invoice.
type LineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// LineDraft is caller input for a line item. A nil ID means "new line".
type LineDraft struct {
	ID          *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

func newLineItem(invoiceID uuid.UUID, d LineDraft) (LineItem, error) {
	amount, err := ItemAmount(d.Quantity, d.UnitPrice)
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Amount:      amount,
	}, nil
}

// Invoice is the aggregate root for billing documents.
// Subtotal, TaxAmount and Total are derived from Items, TaxRate and Discount
// and are recomputed by every mutating method.
type Invoice struct {
	shared.OwnedAggregateRoot
	InvoiceNumber string
	CustomerID    uuid.UUID
	IssueDate     time.Time
	DueDate       *time.Time
	Status        InvoiceStatus
	Notes         string
	TaxRate       decimal.Decimal
	Discount      decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Items         []LineItem
}

// InvoiceDraft carries the fields needed to open a new invoice.
type InvoiceDraft struct {
	CustomerID uuid.UUID
	Items      []LineDraft
	TaxRate    decimal.Decimal
	Discount   decimal.Decimal
	IssueDate  *time.Time
	DueDate    *time.Time
	Status     InvoiceStatus
	Notes      string
}

// NewInvoice creates an invoice with computed totals.
// issueDate falls back to now when the draft does not carry one.
func NewInvoice(ownerID uuid.UUID, number string, draft InvoiceDraft, now time.Time) (*Invoice, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invoice number cannot be empty")
	}
	if draft.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Customer is required")
	}
	status := draft.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid invoice status: "+string(status))
	}

	inv := &Invoice{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		InvoiceNumber:      number,
		CustomerID:         draft.CustomerID,
		IssueDate:          now,
		DueDate:            draft.DueDate,
		Status:             status,
		Notes:              draft.Notes,
		TaxRate:            draft.TaxRate,
		Discount:           draft.Discount,
	}
	if draft.IssueDate != nil {
		inv.IssueDate = *draft.IssueDate
	}

	if err := inv.ReplaceItems(draft.Items); err != nil {
		return nil, err
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))
	return inv, nil
}

// InvoicePatch is a partial update. Only present fields are applied.
type InvoicePatch struct {
	CustomerID shared.Optional[uuid.UUID]
	IssueDate  shared.Optional[time.Time]
	DueDate    shared.Optional[*time.Time]
	Status     shared.Optional[InvoiceStatus]
	Notes      shared.Optional[string]
	TaxRate    shared.Optional[decimal.Decimal]
	Discount   shared.Optional[decimal.Decimal]
	Items      shared.Optional[[]LineDraft]
}

// ApplyPatch applies a partial update. When Items is present the line set is
// reconciled by ID before totals are recomputed.
func (i *Invoice) ApplyPatch(p InvoicePatch) error {
	if status, ok := p.Status.Get(); ok && !status.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid invoice status: "+string(status))
	}
	if customerID, ok := p.CustomerID.Get(); ok && customerID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Customer is required")
	}

	p.CustomerID.Apply(&i.CustomerID)
	p.IssueDate.Apply(&i.IssueDate)
	p.DueDate.Apply(&i.DueDate)
	p.Status.Apply(&i.Status)
	p.Notes.Apply(&i.Notes)
	p.TaxRate.Apply(&i.TaxRate)
	p.Discount.Apply(&i.Discount)

	var err error
	if drafts, ok := p.Items.Get(); ok {
		err = i.ReconcileItems(drafts)
	} else {
		err = i.Recalculate()
	}
	if err != nil {
		return err
	}

	i.Touch()
	i.AddDomainEvent(NewInvoiceUpdatedEvent(i))
	return nil
}

// ReconcileItems merges drafts into the current line set by identity:
// a draft whose ID matches an existing line updates it in place, any other
// draft becomes a new line, and existing lines not referenced are dropped.
func (i *Invoice) ReconcileItems(drafts []LineDraft) error {
	existing := make(map[uuid.UUID]LineItem, len(i.Items))
	for _, item := range i.Items {
		existing[item.ID] = item
	}

	next := make([]LineItem, 0, len(drafts))
	for _, d := range drafts {
		if d.ID != nil {
			if item, ok := existing[*d.ID]; ok {
				amount, err := ItemAmount(d.Quantity, d.UnitPrice)
				if err != nil {
					return err
				}
				item.Description = d.Description
				item.Quantity = d.Quantity
				item.UnitPrice = d.UnitPrice
				item.Amount = amount
				next = append(next, item)
				// a repeated id creates a new line the second time
				delete(existing, *d.ID)
				continue
			}
		}
		item, err := newLineItem(i.ID, d)
		if err != nil {
			return err
		}
		next = append(next, item)
	}

	return i.setItems(next)
}

// ReplaceItems discards every line and builds a fresh set from drafts.
// Draft IDs are ignored.
func (i *Invoice) ReplaceItems(drafts []LineDraft) error {
	next := make([]LineItem, 0, len(drafts))
	for _, d := range drafts {
		item, err := newLineItem(i.ID, d)
		if err != nil {
			return err
		}
		next = append(next, item)
	}
	return i.setItems(next)
}

func (i *Invoice) setItems(items []LineItem) error {
	prev := i.Items
	i.Items = items
	if err := i.Recalculate(); err != nil {
		i.Items = prev
		return err
	}
	return nil
}

// Recalculate re-derives Subtotal, TaxAmount and Total from the line set.
// Discount keeps the entered value; the clamp only applies to the arithmetic.
func (i *Invoice) Recalculate() error {
	lines := make([]Line, len(i.Items))
	for idx, item := range i.Items {
		lines[idx] = Line{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	totals, err := ComputeTotals(lines, i.TaxRate, i.Discount)
	if err != nil {
		return err
	}
	i.Subtotal = totals.Subtotal
	i.TaxAmount = totals.TaxAmount
	i.Total = totals.Total
	return nil
}

// AppliedDiscount is the part of Discount that reduced the taxable base.
func (i *Invoice) AppliedDiscount() decimal.Decimal {
	return ClampDiscount(i.Subtotal, i.Discount)
}

// IsOverdueAt reports whether an unpaid invoice has passed its due date.
func (i *Invoice) IsOverdueAt(t time.Time) bool {
	if i.DueDate == nil {
		return false
	}
	if i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled {
		return false
	}
	return t.After(*i.DueDate)
}

// MarkDeleted records the deletion event before the aggregate is removed.
func (i *Invoice) MarkDeleted() DeletedInvoice {
	i.AddDomainEvent(NewInvoiceDeletedEvent(i))
	return DeletedInvoice{ID: i.ID, InvoiceNumber: i.InvoiceNumber, Status: i.Status}
}

// DeletedInvoice is what remains visible after an invoice is deleted.
type DeletedInvoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	Status        InvoiceStatus
}
