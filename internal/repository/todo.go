package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/okoshkin/tasklist/internal/apperr"
	"github.com/okoshkin/tasklist/internal/models"
)

// TodoFilter narrows a todo listing. Zero values mean "no constraint".
// All active constraints are AND-composed with the owner predicate.
type TodoFilter struct {
	// Title, when non-empty, matches todos whose title contains it.
	Title string
	// Description, when non-empty, matches todos whose description contains it.
	Description string
	// State, when non-empty, matches todos in exactly that state.
	State models.TodoState
	// Offset is the number of matching rows to skip.
	Offset int
	// Limit caps the number of returned rows.
	Limit int
}

// PostgresTodoRepository implements todo persistence against a PostgreSQL database.
// Every operation is scoped by the owning user's id; a todo owned by someone
// else behaves exactly like a missing row.
type PostgresTodoRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTodoRepository creates a new PostgresTodoRepository with the given
// database connection.
func NewPostgresTodoRepository(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{DB: db}
}

// Create inserts a todo owned by userID and fills in the generated ID and timestamps.
func (r *PostgresTodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO todos (title, description, state, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, todo.Title, todo.Description, todo.State, todo.UserID).
		Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// GetByID fetches a single todo owned by userID.
// Returns apperr.ErrNotFound when the row is absent or owned by another user.
func (r *PostgresTodoRepository) GetByID(ctx context.Context, userID, id int64) (*models.Todo, error) {
	todo := &models.Todo{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, description, state, user_id, created_at, updated_at
		  FROM todos WHERE user_id = $1 AND id = $2
	`, userID, id).
		Scan(&todo.ID, &todo.Title, &todo.Description, &todo.State, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// buildListQuery assembles the owner-scoped listing query. The owner predicate
// is always present; filters only ever narrow it further, so the ownership
// invariant cannot be dropped by any call site.
func buildListQuery(userID int64, f TodoFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, title, description, state, user_id, created_at, updated_at
		  FROM todos WHERE user_id = $1`)
	args := []any{userID}

	if f.Title != "" {
		args = append(args, "%"+f.Title+"%")
		sb.WriteString(" AND title LIKE $" + strconv.Itoa(len(args)))
	}
	if f.Description != "" {
		args = append(args, "%"+f.Description+"%")
		sb.WriteString(" AND description LIKE $" + strconv.Itoa(len(args)))
	}
	if f.State != "" {
		args = append(args, f.State)
		sb.WriteString(" AND state = $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" ORDER BY id")
	args = append(args, f.Offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	args = append(args, f.Limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))

	return sb.String(), args
}

// List returns the todos owned by userID that match the filter, ordered by id.
func (r *PostgresTodoRepository) List(ctx context.Context, userID int64, f TodoFilter) ([]models.Todo, error) {
	query, args := buildListQuery(userID, f)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var td models.Todo
		if err := rows.Scan(&td.ID, &td.Title, &td.Description, &td.State, &td.UserID, &td.CreatedAt, &td.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, td)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update rewrites the mutable fields of a todo owned by userID and refreshes
// updated_at. Returns apperr.ErrNotFound when the row is absent or owned by
// another user.
func (r *PostgresTodoRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE todos
		   SET title = $1, description = $2, state = $3, updated_at = now()
		 WHERE user_id = $4 AND id = $5
		RETURNING created_at, updated_at
	`, todo.Title, todo.Description, todo.State, todo.UserID, todo.ID).
		Scan(&todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// Delete removes a todo owned by userID.
// Returns apperr.ErrNotFound when the row is absent or owned by another user.
func (r *PostgresTodoRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM todos WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
