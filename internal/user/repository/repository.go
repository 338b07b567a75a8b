package repository

import (
	"context"

	"github.com/8syncdev/elearn-auth/internal/user/domain"
)

// Repository defines persistence for user accounts.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns one page of users ordered by id. search filters by
	// case-insensitive substring over username, phone, email, and full name.
	List(ctx context.Context, limit, offset int32, search string) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// Create persists the user and fills in the generated ID and timestamps.
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	// Delete removes the row. Returns false when no such user exists.
	Delete(ctx context.Context, id int64) (bool, error)
}
