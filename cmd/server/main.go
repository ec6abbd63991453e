// Package main initializes and starts the tasklist HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/okoshkin/tasklist/internal/config"
	"github.com/okoshkin/tasklist/internal/db"
	"github.com/okoshkin/tasklist/internal/logger"
	"github.com/okoshkin/tasklist/internal/repository"
	"github.com/okoshkin/tasklist/internal/security"
	"github.com/okoshkin/tasklist/internal/server/handler/http"
	"github.com/okoshkin/tasklist/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.SecretKey == "" {
		zapLogger.Fatal("token signing secret is not configured")
	}

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(context.Background(), options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and todos.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	todoRepo := repository.NewPostgresTodoRepository(postgresDB)

	// The token manager signs with the process-wide secret; the secret is
	// read-only after startup.
	tokens := security.NewTokenManager(options.SecretKey, options.TokenTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	todoService := service.NewTodoService(todoRepo)

	// Create HTTP handlers for auth, user and todo endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	userHandler := &http.UserHandler{UserService: userService}
	todoHandler := &http.TodoHandler{TodoService: todoService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, userHandler, todoHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
