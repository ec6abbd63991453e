package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/okoshkin/tasklist/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// tasklist API. It applies request logging globally and bearer-token
// authentication to the protected route groups.
//
// Routes:
//
//	GET    /                → welcome message
//	GET    /home            → welcome page (HTML)
//	POST   /auth/token      → authHandler.Token (form-encoded credentials)
//	POST   /auth/refresh    → authHandler.Refresh (bearer auth)
//	POST   /users/          → userHandler.Create
//	GET    /users/          → userHandler.List
//	GET    /users/{id}      → userHandler.Get
//	PUT    /users/{id}      → userHandler.Update (bearer auth)
//	DELETE /users/{id}      → userHandler.Delete (bearer auth)
//	POST   /todos/          → todoHandler.Create (bearer auth)
//	GET    /todos/          → todoHandler.List (bearer auth)
//	PATCH  /todos/{id}      → todoHandler.Patch (bearer auth)
//	DELETE /todos/{id}      → todoHandler.Delete (bearer auth)
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	todoHandler *TodoHandler,
	resolver middleware.UserResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	requireAuth := middleware.BearerAuth(resolver)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Hello, world!"})
	})

	r.Get("/home", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html>
	<head>
		<title>tasklist</title>
	</head>
	<body>
		<h1>Hello, world!</h1>
	</body>
</html>`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.Token)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/refresh", authHandler.Refresh)
		})
	})

	r.Route("/users", func(r chi.Router) {
		// Public endpoints
		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)
		r.Patch("/{id}", todoHandler.Patch)
		r.Delete("/{id}", todoHandler.Delete)
	})

	return r
}
