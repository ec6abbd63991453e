// Package repository provides PostgreSQL persistence for users and todos.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/okoshkin/tasklist/internal/apperr"
	"github.com/okoshkin/tasklist/internal/models"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresUserRepository implements user persistence against a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Create inserts a new user row and fills in the generated ID and timestamps.
// A unique-constraint violation on username or email is returned as a
// field-agnostic *apperr.ConflictError.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &apperr.ConflictError{}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetByID fetches a single user by primary key.
// Returns apperr.ErrNotFound if no such row exists.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		  FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail fetches a single user by email address.
// Returns apperr.ErrNotFound if no such row exists.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		  FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetByUsernameOrEmail fetches the first user whose username or email matches,
// for the registration pre-check. Returns apperr.ErrNotFound when neither matches.
func (r *PostgresUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		  FROM users WHERE username = $1 OR email = $2
	`, username, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by username or email: %w", err)
	}
	return user, nil
}

// List returns users ordered by id, applying offset and limit.
func (r *PostgresUserRepository) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		  FROM users ORDER BY id OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update replaces username, email and password hash of an existing user and
// refreshes updated_at. A unique-constraint violation at commit time is
// returned as a field-agnostic *apperr.ConflictError because the database
// does not report which column collided.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE users
		   SET username = $1, email = $2, password_hash = $3, updated_at = now()
		 WHERE id = $4
		RETURNING created_at, updated_at
	`, user.Username, user.Email, user.PasswordHash, user.ID).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, &apperr.ConflictError{}
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes the user row. Todos owned by the user are left in place;
// ownership scoping keeps them unreachable by anyone else.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint failure.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
