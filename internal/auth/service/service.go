package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/8syncdev/elearn-auth/internal/security"
	"github.com/8syncdev/elearn-auth/internal/user/domain"
)

// Sentinel errors for the auth service. All credential and status
// failures collapse into ErrInvalidCredentials so callers cannot
// distinguish a wrong password from a suspended account.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service implements password login, token refresh, and token verification.
type Service struct {
	users  UserRepo
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewService returns a Service with the given dependencies.
func NewService(users UserRepo, hasher *security.Hasher, tokens *security.TokenProvider) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Login authenticates with username and password and returns a fresh token pair.
// The account must pass the status gates: active, not deleted, not suspended,
// not blocked. Any failure returns ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*security.TokenPair, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CanAuthenticate() {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.IssuePair(strconv.FormatInt(user.ID, 10), user.Username, user.FullName)
}

// Refresh validates the refresh token, re-checks the account's status gates,
// and returns a new token pair. The old refresh token is not revoked; it
// stays valid until its own expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*security.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.Kind != security.KindRefresh {
		return nil, ErrInvalidRefreshToken
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CanAuthenticate() {
		return nil, ErrInvalidRefreshToken
	}
	return s.tokens.IssuePair(claims.UserID, user.Username, user.FullName)
}

// VerifyToken checks that the given string is a currently valid ACCESS token
// and returns its claims. It does not consult the user store.
func (s *Service) VerifyToken(token string) (*security.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Kind != security.KindAccess {
		return nil, security.ErrWrongTokenKind
	}
	return claims, nil
}
