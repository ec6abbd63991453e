// Package service provides business-logic services for authentication,
// user self-service and todo management, delegating persistence to
// repository interfaces.
package service

import (
	"context"
	"errors"

	"github.com/okoshkin/tasklist/internal/apperr"
	"github.com/okoshkin/tasklist/internal/models"
	"github.com/okoshkin/tasklist/internal/security"
)

// AuthUserRepository defines the persistence operations required by
// the authentication service.
type AuthUserRepository interface {
	// GetByEmail returns the user with the given email address,
	// or apperr.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService implements login, token refresh and bearer-token resolution.
type AuthService struct {
	// repo performs the user lookups.
	repo AuthUserRepository
	// tokens issues and validates bearer tokens.
	tokens *security.TokenManager
}

// NewAuthService constructs an AuthService using the provided repository
// and token manager.
func NewAuthService(repo AuthUserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Login verifies the credentials and mints a bearer token whose subject is
// the user's email. An unknown email and a wrong password both return
// apperr.ErrInvalidCredentials; the caller cannot tell which check failed,
// so login responses never reveal whether an account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", apperr.ErrInternal
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", apperr.ErrInternal
	}
	return token, nil
}

// Refresh mints a fresh token for an already-authenticated user. The old
// token stays valid until its own expiry; there is no revocation list.
func (s *AuthService) Refresh(ctx context.Context, user *models.User) (string, error) {
	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", apperr.ErrInternal
	}
	return token, nil
}

// ResolveToken validates a bearer token and resolves its subject to a
// persisted user. A bad token and a subject with no matching user row both
// return apperr.ErrInvalidToken, so a deleted account is indistinguishable
// from a forged or expired token.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}

	user, err := s.repo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, apperr.ErrInternal
	}
	return user, nil
}
