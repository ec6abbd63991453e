package http

import (
	"context"
	"net/http"

	"github.com/okoshkin/tasklist/internal/middleware"
	"github.com/okoshkin/tasklist/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Login verifies the credentials and returns a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Refresh mints a fresh token for an authenticated user.
	Refresh(ctx context.Context, user *models.User) (string, error)
}

// AuthHandler handles HTTP requests for login and token refresh.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// TokenResponse is the JSON body returned by the token endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token handles POST /auth/token requests.
// It expects a form-encoded body with "username" (the email) and "password"
// fields and responds with an access token, or 401 with a merged detail
// string that never reveals whether the account exists.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	token, err := h.AuthService.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, err, detailUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "Bearer"})
}

// Refresh handles POST /auth/refresh requests.
// The caller must already be authenticated; a new token with a fresh expiry
// is issued for the same subject. The old token stays valid until it expires.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	token, err := h.AuthService.Refresh(r.Context(), user)
	if err != nil {
		writeError(w, err, detailUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "Bearer"})
}
