package admin

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for admins.
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHashed string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
