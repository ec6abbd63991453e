// Package apperr defines the error kinds shared across services, repositories
// and HTTP handlers. Services collapse internal failure causes into one of
// these kinds before the error crosses a component boundary, so callers never
// learn which internal check failed.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// repository specific errors
	ErrNotFound = errors.New("not found")

	// auth-specific errors
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("not enough permissions")

	// service specific errors
	ErrInternal = errors.New("internal error")
)

// ConflictError reports a unique-field collision on a persisted entity.
// Field names the conflicting column when the collision was detected by a
// pre-insert lookup; it is empty when the collision surfaced as a database
// constraint violation at commit time, where the column is unknown.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "already exists"
	}
	return fmt.Sprintf("%s already exists", e.Field)
}

// IsConflict reports whether err is a ConflictError and returns it.
func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
