package repository

import (
	"context"

	"github.com/8syncdev/elearn-auth/internal/role/domain"
)

// Repository defines persistence for roles and user-role assignments.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, limit, offset int32) ([]*domain.Role, error)
	Count(ctx context.Context) (int64, error)
	// Create persists the role and fills in the generated ID.
	Create(ctx context.Context, r *domain.Role) error
	Update(ctx context.Context, r *domain.Role) error
	// Delete removes the role row. Returns false when no such role exists.
	Delete(ctx context.Context, id int64) (bool, error)

	// ListLinks returns one page of user-role assignments ordered by user then role.
	ListLinks(ctx context.Context, limit, offset int32) ([]*domain.UserRole, error)
	CountLinks(ctx context.Context) (int64, error)
	// HasLink reports whether the exact user-role assignment exists.
	HasLink(ctx context.Context, userID, roleID int64) (bool, error)
	// ListByUser returns the roles assigned to the given user.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Role, error)
	// HasRole reports whether the user holds the named role.
	HasRole(ctx context.Context, userID int64, name string) (bool, error)
	// Assign links a user to a role. Assigning twice is a no-op.
	Assign(ctx context.Context, userID, roleID int64) error
	// Unassign removes the link. Returns false when the link did not exist.
	Unassign(ctx context.Context, userID, roleID int64) (bool, error)
}
