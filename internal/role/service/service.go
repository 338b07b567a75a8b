package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/8syncdev/elearn-auth/internal/role/domain"
)

// Well-known role names seeded at install time.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Sentinel errors for the role service; handlers map them to HTTP statuses.
var (
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleNameTaken = errors.New("role name already exists")
	// ErrInvalidInput wraps field validation failures so handlers can
	// distinguish them from storage errors.
	ErrInvalidInput = errors.New("invalid input")
)

// Repo is the role repository surface needed by the service.
type Repo interface {
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, limit, offset int32) ([]*domain.Role, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, r *domain.Role) error
	Update(ctx context.Context, r *domain.Role) error
	Delete(ctx context.Context, id int64) (bool, error)
	ListLinks(ctx context.Context, limit, offset int32) ([]*domain.UserRole, error)
	CountLinks(ctx context.Context) (int64, error)
	HasLink(ctx context.Context, userID, roleID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Role, error)
	HasRole(ctx context.Context, userID int64, name string) (bool, error)
	Assign(ctx context.Context, userID, roleID int64) error
	Unassign(ctx context.Context, userID, roleID int64) (bool, error)
}

// Service implements role management and user-role assignment.
type Service struct {
	repo Repo
}

// NewService returns a Service backed by the given repository.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Get returns the role with the given id or ErrRoleNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Role, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRoleNotFound
	}
	return r, nil
}

// List returns one page of roles plus the total role count.
// page is 1-based; pageSize is clamped to [1, 100].
func (s *Service) List(ctx context.Context, page, pageSize int32) ([]*domain.Role, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	roles, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// Count returns the total number of roles.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Create persists a new role with the given name and description.
func (s *Service) Create(ctx context.Context, name, description string) (*domain.Role, error) {
	role := &domain.Role{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description)}
	if err := role.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	existing, err := s.repo.GetByName(ctx, role.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleNameTaken
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Update rewrites the name and description of the role with the given id.
func (s *Service) Update(ctx context.Context, id int64, name, description string) (*domain.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	name = strings.TrimSpace(name)
	if name != role.Name {
		other, err := s.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != role.ID {
			return nil, ErrRoleNameTaken
		}
	}
	role.Name = name
	role.Description = strings.TrimSpace(description)
	if err := role.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes the role with the given id or returns ErrRoleNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoleNotFound
	}
	return nil
}

// ListLinks returns one page of user-role assignments plus the total link count.
// page is 1-based; pageSize is clamped to [1, 100].
func (s *Service) ListLinks(ctx context.Context, page, pageSize int32) ([]*domain.UserRole, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	total, err := s.repo.CountLinks(ctx)
	if err != nil {
		return nil, 0, err
	}
	links, err := s.repo.ListLinks(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// HasLink reports whether the exact user-role assignment exists.
func (s *Service) HasLink(ctx context.Context, userID, roleID int64) (bool, error) {
	return s.repo.HasLink(ctx, userID, roleID)
}

// Assign links a user to an existing role. Assigning twice is a no-op.
func (s *Service) Assign(ctx context.Context, userID, roleID int64) error {
	role, err := s.repo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}
	return s.repo.Assign(ctx, userID, roleID)
}

// Unassign removes a user-role link. Returns ErrRoleNotFound when the link
// did not exist.
func (s *Service) Unassign(ctx context.Context, userID, roleID int64) error {
	ok, err := s.repo.Unassign(ctx, userID, roleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoleNotFound
	}
	return nil
}

// ListByUser returns the roles assigned to the given user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Role, error) {
	return s.repo.ListByUser(ctx, userID)
}

// HasRole reports whether the user holds the named role.
func (s *Service) HasRole(ctx context.Context, userID int64, name string) (bool, error) {
	return s.repo.HasRole(ctx, userID, name)
}

// AssignByNames links the user to each named role. Every name must
// resolve to an existing role or ErrRoleNotFound is returned.
func (s *Service) AssignByNames(ctx context.Context, userID int64, names []string) error {
	for _, name := range names {
		role, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if role == nil {
			return ErrRoleNotFound
		}
		if err := s.repo.Assign(ctx, userID, role.ID); err != nil {
			return err
		}
	}
	return nil
}

// UnassignByNames removes the user's link to each named role.
// Missing roles and missing links are skipped silently.
func (s *Service) UnassignByNames(ctx context.Context, userID int64, names []string) error {
	for _, name := range names {
		role, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if role == nil {
			continue
		}
		if _, err := s.repo.Unassign(ctx, userID, role.ID); err != nil {
			return err
		}
	}
	return nil
}
