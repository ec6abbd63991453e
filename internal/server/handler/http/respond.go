// Package http provides HTTP handlers for authentication, user self-service
// and todo management.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okoshkin/tasklist/internal/apperr"
)

// Canonical response detail strings. Several internal failure causes share
// a single string so the response never reveals which check failed.
const (
	detailBadCredentials   = "Incorrect email or password"
	detailBadToken         = "Could not validate credentials"
	detailForbidden        = "Not enough permissions"
	detailUserNotFound     = "User not found!"
	detailTaskNotFound     = "Task not found."
	detailUserDeleted      = "User deleted!"
	detailTaskDeleted      = "Task has been deleted successfully."
	detailInvalidRequest   = "Invalid request"
	detailInternalError    = "Internal server error"
	detailCombinedConflict = "Username or Email already exists"
)

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error body of the form {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeMessage writes a success confirmation of the form {"message": "..."}.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps a service error to its HTTP status and detail string.
// notFoundDetail names the resource for 404 responses; everything the
// caller is not allowed to distinguish is already collapsed by the
// service layer.
func writeError(w http.ResponseWriter, err error, notFoundDetail string) {
	if ce, ok := apperr.IsConflict(err); ok {
		if ce.Field == "" {
			writeDetail(w, http.StatusConflict, detailCombinedConflict)
			return
		}
		writeDetail(w, http.StatusConflict, ce.Field+" already exists")
		return
	}

	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, detailBadCredentials)
	case errors.Is(err, apperr.ErrInvalidToken):
		writeDetail(w, http.StatusUnauthorized, detailBadToken)
	case errors.Is(err, apperr.ErrForbidden):
		writeDetail(w, http.StatusForbidden, detailForbidden)
	case errors.Is(err, apperr.ErrNotFound):
		writeDetail(w, http.StatusNotFound, notFoundDetail)
	default:
		writeDetail(w, http.StatusInternalServerError, detailInternalError)
	}
}
