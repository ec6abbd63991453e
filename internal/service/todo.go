package service

import (
	"context"

	"github.com/okoshkin/tasklist/internal/models"
	"github.com/okoshkin/tasklist/internal/repository"
)

// TodoRepository defines the persistence operations needed by the TodoService.
// All operations are scoped by the owning user's id.
type TodoRepository interface {
	// Create inserts a todo and returns it with ID and timestamps set.
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	// GetByID returns the todo owned by userID, or apperr.ErrNotFound.
	GetByID(ctx context.Context, userID, id int64) (*models.Todo, error)
	// List returns the todos owned by userID matching the filter.
	List(ctx context.Context, userID int64, f repository.TodoFilter) ([]models.Todo, error)
	// Update rewrites the mutable fields of a todo owned by userID.
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	// Delete removes a todo owned by userID.
	Delete(ctx context.Context, userID, id int64) error
}

// TodoPatch carries a partial todo update. Nil fields are left unchanged.
type TodoPatch struct {
	Title       *string
	Description *string
	State       *models.TodoState
}

// TodoService implements ownership-scoped todo management. The owner is
// always taken from the authenticated user, never from request data, and a
// todo owned by someone else is indistinguishable from a missing one.
type TodoService struct {
	// repo is the underlying persistence repository.
	repo TodoRepository
}

// NewTodoService constructs a TodoService with the provided TodoRepository.
func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// Create inserts a todo owned by the current user. The state has already
// been validated against the closed enumeration by the transport layer.
func (s *TodoService) Create(ctx context.Context, current *models.User, title, description string, state models.TodoState) (*models.Todo, error) {
	todo := &models.Todo{
		Title:       title,
		Description: description,
		State:       state,
		UserID:      current.ID,
	}
	return s.repo.Create(ctx, todo)
}

// List returns the current user's todos matching the filter.
func (s *TodoService) List(ctx context.Context, current *models.User, f repository.TodoFilter) ([]models.Todo, error) {
	return s.repo.List(ctx, current.ID, f)
}

// Patch applies a partial update to a todo owned by the current user.
// Only non-nil fields change; an empty patch is a no-op that still returns
// the stored todo.
func (s *TodoService) Patch(ctx context.Context, current *models.User, id int64, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.repo.GetByID(ctx, current.ID, id)
	if err != nil {
		return nil, err
	}

	// An empty patch must not touch the row, so updated_at stays as-is.
	if patch.Title == nil && patch.Description == nil && patch.State == nil {
		return todo, nil
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.State != nil {
		todo.State = *patch.State
	}

	return s.repo.Update(ctx, todo)
}

// Delete removes a todo owned by the current user.
func (s *TodoService) Delete(ctx context.Context, current *models.User, id int64) error {
	return s.repo.Delete(ctx, current.ID, id)
}
