package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okoshkin/tasklist/internal/middleware"
	"github.com/okoshkin/tasklist/internal/models"
)

// UserService defines the interface for user management operations
// required by the UserHandler.
type UserService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	// Get returns the user with the given id.
	Get(ctx context.Context, id int64) (*models.User, error)
	// List returns users ordered by id with offset/limit applied.
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	// Update replaces username, email and password of the caller's account.
	Update(ctx context.Context, current *models.User, id int64, username, email, password string) (*models.User, error)
	// Delete removes the caller's account.
	Delete(ctx context.Context, current *models.User, id int64) error
}

// UserHandler handles HTTP requests for registration and user self-service.
type UserHandler struct {
	UserService UserService
}

// UserRequest is the JSON payload for creating or replacing a user.
type UserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPublic is the user representation returned to clients.
// It never carries the password hash.
type UserPublic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func publicUser(u *models.User) UserPublic {
	return UserPublic{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Create handles POST /users/ requests.
// It registers a new user and responds 201 with the public fields, or 409
// naming the conflicting field when the username or email is taken.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err, detailUserNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, publicUser(user))
}

// List handles GET /users/ requests with optional offset/limit query parameters.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	users, err := h.UserService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err, detailUserNotFound)
		return
	}

	public := make([]UserPublic, 0, len(users))
	for i := range users {
		public = append(public, publicUser(&users[i]))
	}
	writeJSON(w, http.StatusOK, map[string][]UserPublic{"users": public})
}

// Get handles GET /users/{id} requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailUserNotFound)
		return
	}

	user, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, detailUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, publicUser(user))
}

// Update handles PUT /users/{id} requests.
// All three fields are replaced; callers may only update their own account.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailUserNotFound)
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	current := middleware.UserFromContext(r.Context())
	user, err := h.UserService.Update(r.Context(), current, id, req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err, detailUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, publicUser(user))
}

// Delete handles DELETE /users/{id} requests.
// Callers may only delete their own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailUserNotFound)
		return
	}

	current := middleware.UserFromContext(r.Context())
	if err := h.UserService.Delete(r.Context(), current, id); err != nil {
		writeError(w, err, detailUserNotFound)
		return
	}

	writeMessage(w, http.StatusOK, detailUserDeleted)
}

// pathID parses the named chi URL parameter as an int64.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// pagination reads offset/limit query parameters, falling back to
// offset 0 and limit 100 when absent or malformed.
func pagination(r *http.Request) (offset, limit int) {
	offset = 0
	limit = 100
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}
	return offset, limit
}
