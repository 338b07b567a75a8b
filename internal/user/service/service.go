package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/8syncdev/elearn-auth/internal/security"
	"github.com/8syncdev/elearn-auth/internal/user/domain"
)

// Sentinel errors for the user service; handlers map them to HTTP statuses.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	// ErrInvalidInput wraps field validation failures so handlers can
	// distinguish them from storage errors.
	ErrInvalidInput = errors.New("invalid input")
)

// Repo is the user repository surface needed by the service.
type Repo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, limit, offset int32, search string) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// CreateInput carries the fields accepted when creating an account.
// Password is plaintext and is hashed before persistence.
type CreateInput struct {
	Username string
	Password string
	Phone    string
	Email    string
	FullName string
	Avatar   string
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
// A non-nil Password is rehashed; an existing hash is never overwritten otherwise.
type UpdateInput struct {
	Username    *string
	Password    *string
	Phone       *string
	Email       *string
	FullName    *string
	Avatar      *string
	IsActive    *bool
	IsDeleted   *bool
	IsBlocked   *bool
	IsSuspended *bool
}

// Service implements account management on top of a user repository.
type Service struct {
	repo   Repo
	hasher *security.Hasher
}

// NewService returns a Service with the given dependencies.
func NewService(repo Repo, hasher *security.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Count returns the total number of accounts.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Get returns the user with the given id or ErrUserNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetByUsername returns the user with the given username or ErrUserNotFound.
func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// List returns one page of users plus the total account count.
// page is 1-based; pageSize is clamped to [1, 100].
func (s *Service) List(ctx context.Context, page, pageSize int32, search string) ([]*domain.User, int64, error) {
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
	users, err := s.repo.List(ctx, pageSize, (page-1)*pageSize, strings.TrimSpace(search))
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create hashes the password and persists a new active account.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		Username:  username,
		Password:  hashed,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		FullName:  strings.TrimSpace(in.FullName),
		Avatar:    strings.TrimSpace(in.Avatar),
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies a partial update to the account with the given id.
// The password is rehashed only when a new one is supplied.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username != u.Username {
			other, err := s.repo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != u.ID {
				return nil, ErrUsernameTaken
			}
			u.Username = username
		}
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 8 {
			return nil, ErrWeakPassword
		}
		hashed, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hashed
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Avatar != nil {
		u.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsDeleted != nil {
		u.IsDeleted = *in.IsDeleted
	}
	if in.IsBlocked != nil {
		u.IsBlocked = *in.IsBlocked
	}
	if in.IsSuspended != nil {
		u.IsSuspended = *in.IsSuspended
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// VerifyPassword reports whether the password matches the stored hash for
// the named account. A missing account verifies as false, not as an error.
func (s *Service) VerifyPassword(ctx context.Context, username, password string) (bool, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return s.hasher.Verify(password, u.Password), nil
}

// Delete removes the account with the given id or returns ErrUserNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
