package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/8syncdev/elearn-auth/internal/user/domain"
)

const userColumns = `id, username, password, phone, email, full_name, avatar,
	created_at, updated_at, is_active, is_deleted, is_blocked, is_suspended`

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a user repository that uses the given pool for persistence.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername returns the user with the given username, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// List returns one page of users ordered by id, optionally filtered by a
// case-insensitive substring over username, phone, email, and full name.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int32, search string) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if search != "" {
		query += ` WHERE username ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1 OR full_name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY id ASC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Count returns the total number of user rows.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

// Create persists the user and fills in the generated ID and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password, phone, email, full_name, avatar,
			is_active, is_deleted, is_blocked, is_suspended)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.Password, u.Phone, u.Email, u.FullName, u.Avatar,
		u.IsActive, u.IsDeleted, u.IsBlocked, u.IsSuspended,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// Update updates the existing user record and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, u *domain.User) error {
	return r.pool.QueryRow(ctx,
		`UPDATE users SET username = $2, password = $3, phone = $4, email = $5,
			full_name = $6, avatar = $7, is_active = $8, is_deleted = $9,
			is_blocked = $10, is_suspended = $11, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		u.ID, u.Username, u.Password, u.Phone, u.Email, u.FullName, u.Avatar,
		u.IsActive, u.IsDeleted, u.IsBlocked, u.IsSuspended,
	).Scan(&u.UpdatedAt)
}

// Delete removes the row. Returns false when no such user exists.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Phone, &u.Email, &u.FullName,
		&u.Avatar, &u.CreatedAt, &u.UpdatedAt, &u.IsActive, &u.IsDeleted,
		&u.IsBlocked, &u.IsSuspended)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
