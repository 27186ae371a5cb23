package persistence

import (
	"context"
	"fmt"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceSequence allocates invoice sequence numbers from the
// invoice_sequences table. It must run inside the transaction that creates
// the invoice so the allocation rolls back together with it.
type GormInvoiceSequence struct {
	db *gorm.DB
}

// NewGormInvoiceSequence creates a new GormInvoiceSequence
func NewGormInvoiceSequence(db *gorm.DB) *GormInvoiceSequence {
	return &GormInvoiceSequence{db: db}
}

// Next increments and returns the counter of (ownerID, year). The first value is 1.
func (s *GormInvoiceSequence) Next(ctx context.Context, ownerID uuid.UUID, year int) (int64, error) {
	db := s.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		return s.nextLocked(db, ownerID, year)
	}
	return s.nextUpsert(db, ownerID, year)
}

// nextLocked serializes concurrent creators on the sequence row.
func (s *GormInvoiceSequence) nextLocked(db *gorm.DB, ownerID uuid.UUID, year int) (int64, error) {
	if err := db.Exec(
		"INSERT INTO invoice_sequences (owner_id, year, last_value) VALUES (?, ?, 0) ON CONFLICT (owner_id, year) DO NOTHING",
		ownerID, year,
	).Error; err != nil {
		return 0, fmt.Errorf("init invoice sequence: %w", err)
	}

	var last int64
	if err := db.Raw(
		"SELECT last_value FROM invoice_sequences WHERE owner_id = ? AND year = ? FOR UPDATE",
		ownerID, year,
	).Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("lock invoice sequence: %w", err)
	}

	next := last + 1
	if err := db.Exec(
		"UPDATE invoice_sequences SET last_value = ? WHERE owner_id = ? AND year = ?",
		next, ownerID, year,
	).Error; err != nil {
		return 0, fmt.Errorf("advance invoice sequence: %w", err)
	}
	return next, nil
}

// nextUpsert relies on SQLite's single writer for isolation.
func (s *GormInvoiceSequence) nextUpsert(db *gorm.DB, ownerID uuid.UUID, year int) (int64, error) {
	if err := db.Exec(
		"INSERT INTO invoice_sequences (owner_id, year, last_value) VALUES (?, ?, 1) "+
			"ON CONFLICT (owner_id, year) DO UPDATE SET last_value = invoice_sequences.last_value + 1",
		ownerID, year,
	).Error; err != nil {
		return 0, fmt.Errorf("advance invoice sequence: %w", err)
	}

	var last int64
	if err := db.Raw(
		"SELECT last_value FROM invoice_sequences WHERE owner_id = ? AND year = ?",
		ownerID, year,
	).Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("read invoice sequence: %w", err)
	}
	return last, nil
}

var _ billing.InvoiceSequence = (*GormInvoiceSequence)(nil)
