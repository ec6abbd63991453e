package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okoshkin/tasklist/internal/apperr"
)

// TokenManager issues and validates signed, time-limited bearer tokens.
// The secret and lifetime are fixed at construction and never mutated,
// so a single manager is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager returns a TokenManager signing with the given secret.
// Tokens expire ttl after issuance.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue mints an HS256-signed token whose subject is the given identity
// (the user's email) with issued-at now and expiry now+ttl.
func (m *TokenManager) Issue(subject string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})
	return token.SignedString(m.secret)
}

// Validate verifies the token's signature and expiry and returns its subject.
// A bad signature, an expired or malformed token, and a missing subject claim
// all return apperr.ErrInvalidToken; callers cannot tell these causes apart.
func (m *TokenManager) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, apperr.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", apperr.ErrInvalidToken
	}

	return claims.Subject, nil
}
