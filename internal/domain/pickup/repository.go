package pickup

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for pickup requests. Listings are
// returned newest first; admin reads populate Owner.
type Repository interface {
	Create(ctx context.Context, p *PickupRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*PickupRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*PickupRequest, error)
	List(ctx context.Context, filter *Filter) ([]*PickupRequest, error)
	Update(ctx context.Context, p *PickupRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, completedAt *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetStatistics(ctx context.Context) (*Statistics, error)
}
