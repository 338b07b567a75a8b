package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/8syncdev/elearn-auth/internal/role/domain"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a role repository that uses the given pool for persistence.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByID returns the role for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE id = $1`, id))
}

// GetByName returns the role with the given name, or nil if not found.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE name = $1`, name))
}

// List returns one page of roles ordered by id.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int32) ([]*domain.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description FROM roles ORDER BY id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRoles(rows)
}

// Count returns the total number of role rows.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM roles`).Scan(&n)
	return n, err
}

// Create persists the role and fills in the generated ID.
func (r *PostgresRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`,
		role.Name, role.Description).Scan(&role.ID)
}

// Update rewrites the role's name and description.
func (r *PostgresRepository) Update(ctx context.Context, role *domain.Role) error {
	_, err := r.pool.Exec(ctx, `UPDATE roles SET name = $2, description = $3 WHERE id = $1`,
		role.ID, role.Name, role.Description)
	return err
}

// Delete removes the role row. Returns false when no such role exists.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListLinks returns one page of user-role assignments ordered by user then role.
func (r *PostgresRepository) ListLinks(ctx context.Context, limit, offset int32) ([]*domain.UserRole, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, role_id FROM user_roles
		 ORDER BY user_id ASC, role_id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.UserRole
	for rows.Next() {
		var link domain.UserRole
		if err := rows.Scan(&link.UserID, &link.RoleID); err != nil {
			return nil, err
		}
		out = append(out, &link)
	}
	return out, rows.Err()
}

// CountLinks returns the total number of user-role assignments.
func (r *PostgresRepository) CountLinks(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM user_roles`).Scan(&n)
	return n, err
}

// HasLink reports whether the exact user-role assignment exists.
func (r *PostgresRepository) HasLink(ctx context.Context, userID, roleID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role_id = $2)`,
		userID, roleID).Scan(&ok)
	return ok, err
}

// ListByUser returns the roles assigned to the given user ordered by role id.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.name, r.description FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRoles(rows)
}

// HasRole reports whether the user holds the named role.
func (r *PostgresRepository) HasRole(ctx context.Context, userID int64, name string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = $1 AND r.name = $2
		)`, userID, name).Scan(&ok)
	return ok, err
}

// Assign links a user to a role. Assigning twice is a no-op.
func (r *PostgresRepository) Assign(ctx context.Context, userID, roleID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, role_id) DO NOTHING`, userID, roleID)
	return err
}

// Unassign removes the link. Returns false when the link did not exist.
func (r *PostgresRepository) Unassign(ctx context.Context, userID, roleID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanRole(row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func collectRoles(rows pgx.Rows) ([]*domain.Role, error) {
	var out []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		out = append(out, &role)
	}
	return out, rows.Err()
}
