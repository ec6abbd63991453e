package service

import (
	"context"
	"errors"
	"testing"

	"github.com/okoshkin/tasklist/internal/apperr"
	"github.com/okoshkin/tasklist/internal/models"
	"github.com/okoshkin/tasklist/internal/repository"
)

type fakeTodoRepo struct {
	stored map[int64]*models.Todo

	created *models.Todo
	updated *models.Todo
	deleted int64

	listFilter repository.TodoFilter
	listUserID int64
}

func newFakeTodoRepo(todos ...*models.Todo) *fakeTodoRepo {
	stored := make(map[int64]*models.Todo)
	for _, td := range todos {
		stored[td.ID] = td
	}
	return &fakeTodoRepo{stored: stored}
}

func (f *fakeTodoRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	f.created = todo
	todo.ID = 1
	return todo, nil
}

func (f *fakeTodoRepo) GetByID(ctx context.Context, userID, id int64) (*models.Todo, error) {
	td, ok := f.stored[id]
	if !ok || td.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	copied := *td
	return &copied, nil
}

func (f *fakeTodoRepo) List(ctx context.Context, userID int64, filter repository.TodoFilter) ([]models.Todo, error) {
	f.listUserID = userID
	f.listFilter = filter
	return nil, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if td, ok := f.stored[todo.ID]; !ok || td.UserID != todo.UserID {
		return nil, apperr.ErrNotFound
	}
	f.updated = todo
	return todo, nil
}

func (f *fakeTodoRepo) Delete(ctx context.Context, userID, id int64) error {
	td, ok := f.stored[id]
	if !ok || td.UserID != userID {
		return apperr.ErrNotFound
	}
	f.deleted = id
	return nil
}

func TestTodoCreate_OwnerForcedToCaller(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	current := &models.User{ID: 7}

	todo, err := svc.Create(context.Background(), current, "Test todo 1", "desc", models.StateTodo)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if todo.UserID != 7 {
		t.Errorf("owner = %d; want the caller's id 7", todo.UserID)
	}
}

func TestTodoList_ScopedToCaller(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	current := &models.User{ID: 7}

	filter := repository.TodoFilter{Title: "Test", Offset: 1, Limit: 2}
	if _, err := svc.List(context.Background(), current, filter); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.listUserID != 7 {
		t.Errorf("list scoped to user %d; want 7", repo.listUserID)
	}
	if repo.listFilter != filter {
		t.Errorf("filter passed through = %+v; want %+v", repo.listFilter, filter)
	}
}

func TestTodoPatch_OnlySuppliedFieldsChange(t *testing.T) {
	repo := newFakeTodoRepo(&models.Todo{
		ID: 10, Title: "old title", Description: "old desc", State: models.StateTodo, UserID: 1,
	})
	svc := NewTodoService(repo)
	current := &models.User{ID: 1}

	newState := models.StateDone
	todo, err := svc.Patch(context.Background(), current, 10, TodoPatch{State: &newState})
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if todo.State != models.StateDone {
		t.Errorf("state = %q; want done", todo.State)
	}
	if todo.Title != "old title" || todo.Description != "old desc" {
		t.Errorf("unpatched fields changed: %+v", todo)
	}
}

func TestTodoPatch_EmptyPatchIsNoOp(t *testing.T) {
	repo := newFakeTodoRepo(&models.Todo{
		ID: 10, Title: "old title", Description: "old desc", State: models.StateTodo, UserID: 1,
	})
	svc := NewTodoService(repo)
	current := &models.User{ID: 1}

	todo, err := svc.Patch(context.Background(), current, 10, TodoPatch{})
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if todo.Title != "old title" || todo.Description != "old desc" || todo.State != models.StateTodo {
		t.Errorf("empty patch changed fields: %+v", todo)
	}
	if repo.updated != nil {
		t.Errorf("empty patch reached the repository: %+v", repo.updated)
	}
}

func TestTodoPatch_OtherOwnerIsNotFound(t *testing.T) {
	repo := newFakeTodoRepo(&models.Todo{ID: 10, Title: "t", State: models.StateTodo, UserID: 1})
	svc := NewTodoService(repo)
	other := &models.User{ID: 2}

	title := "hijack"
	_, err := svc.Patch(context.Background(), other, 10, TodoPatch{Title: &title})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Patch error = %v; want apperr.ErrNotFound", err)
	}
}

func TestTodoDelete_OtherOwnerIsNotFound(t *testing.T) {
	repo := newFakeTodoRepo(&models.Todo{ID: 10, Title: "t", State: models.StateTodo, UserID: 1})
	svc := NewTodoService(repo)
	other := &models.User{ID: 2}

	err := svc.Delete(context.Background(), other, 10)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Delete error = %v; want apperr.ErrNotFound", err)
	}
	if repo.deleted != 0 {
		t.Errorf("delete reached the repository for another user's todo")
	}
}
