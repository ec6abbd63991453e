package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/okoshkin/tasklist/internal/middleware"
	"github.com/okoshkin/tasklist/internal/models"
	"github.com/okoshkin/tasklist/internal/repository"
	"github.com/okoshkin/tasklist/internal/service"
)

// TodoService defines the interface for todo operations required by the TodoHandler.
type TodoService interface {
	// Create inserts a todo owned by the current user.
	Create(ctx context.Context, current *models.User, title, description string, state models.TodoState) (*models.Todo, error)
	// List returns the current user's todos matching the filter.
	List(ctx context.Context, current *models.User, f repository.TodoFilter) ([]models.Todo, error)
	// Patch applies a partial update to a todo owned by the current user.
	Patch(ctx context.Context, current *models.User, id int64, patch service.TodoPatch) (*models.Todo, error)
	// Delete removes a todo owned by the current user.
	Delete(ctx context.Context, current *models.User, id int64) error
}

// TodoHandler handles HTTP requests for todo management.
// Every route it serves sits behind the bearer-auth middleware.
type TodoHandler struct {
	TodoService TodoService
}

// TodoRequest is the JSON payload for creating a todo.
type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
}

// TodoPatchRequest is the JSON payload for a partial todo update.
// Absent fields are left unchanged.
type TodoPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	State       *string `json:"state"`
}

// TodoPublic is the todo representation returned to clients.
type TodoPublic struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	State       models.TodoState `json:"state"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func publicTodo(t *models.Todo) TodoPublic {
	return TodoPublic{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		State:       t.State,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create handles POST /todos/ requests.
// The state must be a member of the closed enumeration; the owner is always
// the authenticated caller, regardless of anything in the request body.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	state, err := models.ParseTodoState(req.State)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	current := middleware.UserFromContext(r.Context())
	todo, err := h.TodoService.Create(r.Context(), current, req.Title, req.Description, state)
	if err != nil {
		writeError(w, err, detailTaskNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, publicTodo(todo))
}

// List handles GET /todos/ requests.
// Query parameters title, description and state narrow the listing with AND
// semantics on top of the caller's ownership; offset and limit paginate the
// filtered set.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.TodoFilter{
		Title:       q.Get("title"),
		Description: q.Get("description"),
	}
	if s := q.Get("state"); s != "" {
		state, err := models.ParseTodoState(s)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.State = state
	}
	filter.Offset, filter.Limit = pagination(r)

	current := middleware.UserFromContext(r.Context())
	todos, err := h.TodoService.List(r.Context(), current, filter)
	if err != nil {
		writeError(w, err, detailTaskNotFound)
		return
	}

	public := make([]TodoPublic, 0, len(todos))
	for i := range todos {
		public = append(public, publicTodo(&todos[i]))
	}
	writeJSON(w, http.StatusOK, map[string][]TodoPublic{"todos": public})
}

// Patch handles PATCH /todos/{id} requests.
// Only the fields present in the body change; an empty body is a valid
// no-op. A todo owned by another user yields the same 404 as a missing one.
func (h *TodoHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailTaskNotFound)
		return
	}

	// A missing body is a valid empty patch, same as "{}".
	var req TodoPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	patch := service.TodoPatch{Title: req.Title, Description: req.Description}
	if req.State != nil {
		state, err := models.ParseTodoState(*req.State)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.State = &state
	}

	current := middleware.UserFromContext(r.Context())
	todo, err := h.TodoService.Patch(r.Context(), current, id, patch)
	if err != nil {
		writeError(w, err, detailTaskNotFound)
		return
	}

	writeJSON(w, http.StatusOK, publicTodo(todo))
}

// Delete handles DELETE /todos/{id} requests.
// Same ownership policy as Patch: another user's todo is a 404.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailTaskNotFound)
		return
	}

	current := middleware.UserFromContext(r.Context())
	if err := h.TodoService.Delete(r.Context(), current, id); err != nil {
		writeError(w, err, detailTaskNotFound)
		return
	}

	writeMessage(w, http.StatusOK, detailTaskDeleted)
}
