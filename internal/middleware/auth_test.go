package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okoshkin/tasklist/internal/apperr"
	"github.com/okoshkin/tasklist/internal/models"
)

type fakeResolver struct {
	user *models.User
	err  error

	gotToken string
}

func (f *fakeResolver) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	f.gotToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestBearerAuth_RejectsWithUniformBody(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		resolver *fakeResolver
	}{
		{"missing header", "", &fakeResolver{}},
		{"wrong scheme", "Basic abc", &fakeResolver{}},
		{"empty token", "Bearer ", &fakeResolver{}},
		{"resolver rejects", "Bearer sometoken", &fakeResolver{err: apperr.ErrInvalidToken}},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Error("next handler must not run")
			})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/todos/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			BearerAuth(tt.resolver)(next).ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()
			if res.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d; want 401", res.StatusCode)
			}
			body, _ := io.ReadAll(res.Body)
			bodies = append(bodies, string(body))
		})
	}

	// Every rejection reads the same; the caller learns nothing about why.
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("rejection bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestBearerAuth_StoresUserInContext(t *testing.T) {
	user := &models.User{ID: 1, Email: "alice@example.com"}
	resolver := &fakeResolver{user: user}

	var seen *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/todos/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")

	BearerAuth(resolver)(next).ServeHTTP(rec, req)

	if resolver.gotToken != "goodtoken" {
		t.Errorf("resolver received token %q; want %q", resolver.gotToken, "goodtoken")
	}
	if seen == nil || seen.ID != user.ID {
		t.Fatalf("handler saw user %+v; want %+v", seen, user)
	}
}

func TestUserFromContext_Missing(t *testing.T) {
	if user := UserFromContext(context.Background()); user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}
