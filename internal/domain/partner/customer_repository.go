package partner

import (
	"context"
	"time"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository persists customers. Every query is scoped to an owner.
type CustomerRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error)
	// FindByEmail looks a customer up by its natural key.
	FindByEmail(ctx context.Context, ownerID uuid.UUID, email string) (*Customer, error)
	FindByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]Customer, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	CountCreatedSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (int64, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error
}
