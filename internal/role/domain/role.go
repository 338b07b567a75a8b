package domain

import "errors"

// Role is a named permission group, e.g. "admin" or "user".
type Role struct {
	ID          int64
	Name        string
	Description string
}

// UserRole links an account to a role.
type UserRole struct {
	UserID int64
	RoleID int64
}

const maxRoleNameLen = 50

// Validate validates the role for persistence.
func (r *Role) Validate() error {
	if r.Name == "" {
		return errors.New("role name is required")
	}
	if len(r.Name) > maxRoleNameLen {
		return errors.New("role name must be at most 50 characters")
	}
	return nil
}
