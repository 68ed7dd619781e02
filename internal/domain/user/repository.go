package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for users. Email lookups are
// case-insensitive; callers pass lowercased addresses.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHashed string) error
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expires time.Time) error
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*User, error)
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
