package domain

import (
	"errors"
	"time"
)

// User is the core account entity. Password holds the salted hash in
// "salt:hash" form; plaintext passwords are never stored or transmitted.
type User struct {
	ID          int64
	Username    string
	Password    string
	Phone       string
	Email       string
	FullName    string
	Avatar      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsActive    bool
	IsDeleted   bool
	IsBlocked   bool
	IsSuspended bool
}

const (
	minUsernameLen = 5
	maxUsernameLen = 100
)

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if len(u.Username) < minUsernameLen || len(u.Username) > maxUsernameLen {
		return errors.New("username must be between 5 and 100 characters")
	}
	if u.Password == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// CanAuthenticate reports whether the account passes the status gates:
// active, not soft-deleted, not suspended, not blocked.
func (u *User) CanAuthenticate() bool {
	return u.IsActive && !u.IsDeleted && !u.IsSuspended && !u.IsBlocked
}
